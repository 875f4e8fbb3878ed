package app

import (
	"bytes"
	"encoding/base64"
	"image/png"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kegliz/zxsyn/renderer"
)

// GraphRequest carries a .zx document.
type GraphRequest struct {
	Graph string `json:"graph" binding:"required"`
}

// SimplifyRequest names a simplification strategy.
type SimplifyRequest struct {
	Strategy string `json:"strategy"`
}

// MapRequest carries a device description for mapping.
type MapRequest struct {
	Device string `json:"device" binding:"required"`
}

// GateResponse is one extracted gate.
type GateResponse struct {
	Name   string `json:"name"`
	Qubits []int  `json:"qubits"`
	Phase  string `json:"phase,omitempty"`
}

var badRequestErrorMsg = "Bad Request - please contact the administrator"
var internalServerErrorMsg = "Internal Server Error - please contact the administrator"

// RootHandler is the handler for the / endpoint
func (a *appServer) RootHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":    "zxsyn",
		"version": a.version,
	})
}

// HealthHandler is the handler for the /health endpoint
func (a *appServer) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// SaveGraph parses and stores a .zx document.
func (a *appServer) SaveGraph(c *gin.Context) {
	var req GraphRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": badRequestErrorMsg})
		return
	}
	id, err := a.zs.SaveGraphText(req.Graph)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// GetGraph renders a stored graph back to .zx text.
func (a *appServer) GetGraph(c *gin.Context) {
	text, err := a.zs.GraphText(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"graph": text})
}

// SimplifyGraph runs a strategy on the stored graph.
func (a *appServer) SimplifyGraph(c *gin.Context) {
	var req SimplifyRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": badRequestErrorMsg})
		return
	}
	if err := a.zs.Simplify(c.Request.Context(), c.Param("id"), req.Strategy); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	text, err := a.zs.GraphText(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": internalServerErrorMsg})
		return
	}
	c.JSON(http.StatusOK, gin.H{"graph": text})
}

// ExtractCircuit reads a circuit out of the stored graph.
func (a *appServer) ExtractCircuit(c *gin.Context) {
	circuit, err := a.zs.Extract(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	gates := make([]GateResponse, 0, circuit.NumGates())
	for _, g := range circuit.Gates() {
		gr := GateResponse{Name: string(g.Type), Qubits: g.Qubits}
		if !g.Phase.IsZero() {
			gr.Phase = g.Phase.RatString()
		}
		gates = append(gates, gr)
	}
	c.JSON(http.StatusOK, gin.H{"qubits": circuit.NumQubits(), "gates": gates})
}

// MapGraph extracts the stored graph and maps it onto a device.
func (a *appServer) MapGraph(c *gin.Context) {
	var req MapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": badRequestErrorMsg})
		return
	}
	circuit, err := a.zs.Extract(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	summary, err := a.zs.MapCircuit(c.Request.Context(), circuit, req.Device)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// RenderGraph draws the stored graph as a PNG.
func (a *appServer) RenderGraph(c *gin.Context) {
	l, err := a.getLoggerFromContext(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": internalServerErrorMsg})
		return
	}
	g, err := a.zs.Graph(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	img, err := renderer.NewRenderer(48).Render(g)
	if err != nil {
		l.Error().Err(err).Msg("render failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": internalServerErrorMsg})
		return
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": internalServerErrorMsg})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"image": base64.StdEncoding.EncodeToString(buf.Bytes()),
	})
}
