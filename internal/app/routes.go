package app

import (
	"net/http"

	"github.com/kegliz/zxsyn/internal/server/router"
)

func (a *appServer) routes() []*router.Route {
	return []*router.Route{
		{
			Name:        "root",
			Method:      http.MethodGet,
			Pattern:     "/",
			HandlerFunc: a.RootHandler,
		},
		{
			Name:        "health",
			Method:      http.MethodGet,
			Pattern:     "/health",
			HandlerFunc: a.HealthHandler,
		},
		{
			Name:        "api.graphs.save",
			Method:      http.MethodPost,
			Pattern:     "/api/graphs",
			HandlerFunc: a.SaveGraph,
		},
		{
			Name:        "api.graphs.get",
			Method:      http.MethodGet,
			Pattern:     "/api/graphs/:id",
			HandlerFunc: a.GetGraph,
		},
		{
			Name:        "api.graphs.simplify",
			Method:      http.MethodPost,
			Pattern:     "/api/graphs/:id/simplify",
			HandlerFunc: a.SimplifyGraph,
		},
		{
			Name:        "api.graphs.extract",
			Method:      http.MethodPost,
			Pattern:     "/api/graphs/:id/extract",
			HandlerFunc: a.ExtractCircuit,
		},
		{
			Name:        "api.graphs.map",
			Method:      http.MethodPost,
			Pattern:     "/api/graphs/:id/map",
			HandlerFunc: a.MapGraph,
		},
		{
			Name:        "api.graphs.render",
			Method:      http.MethodGet,
			Pattern:     "/api/graphs/:id/img",
			HandlerFunc: a.RenderGraph,
		},
	}
}
