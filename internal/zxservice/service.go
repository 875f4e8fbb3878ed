// Package zxservice wires the synthesis core behind a small service
// API: store graphs, simplify them, extract circuits, map them onto
// devices.
package zxservice

import (
	"context"
	"fmt"
	"strings"

	"github.com/kegliz/zxsyn/device"
	"github.com/kegliz/zxsyn/duostra"
	"github.com/kegliz/zxsyn/extract"
	"github.com/kegliz/zxsyn/internal/logger"
	"github.com/kegliz/zxsyn/qcir"
	"github.com/kegliz/zxsyn/simp"
	"github.com/kegliz/zxsyn/zx"
	"github.com/kegliz/zxsyn/zxio"
)

type (
	// MapSummary is the client-facing mapping result.
	MapSummary struct {
		Depth      int      `json:"depth"`
		TotalTime  int      `json:"total_time"`
		NumSwaps   int      `json:"num_swaps"`
		Operations []string `json:"operations"`
	}

	// ServiceOptions configures a Service.
	ServiceOptions struct {
		Logger *logger.Logger
		Store  GraphStore
		Config duostra.Config
	}

	// Service is the pipeline facade used by the HTTP handlers and CLI.
	Service interface {
		SaveGraphText(text string) (string, error)
		GraphText(id string) (string, error)
		Simplify(ctx context.Context, id, strategy string) error
		Extract(ctx context.Context, id string) (*qcir.QCir, error)
		MapCircuit(ctx context.Context, c *qcir.QCir, deviceText string) (*MapSummary, error)
		Graph(id string) (*zx.Graph, error)
	}

	service struct {
		store  GraphStore
		logger *logger.Logger
		driver *simp.Driver
		cfg    duostra.Config
	}
)

// NewService creates a new service.
func NewService(opts ServiceOptions) Service {
	if opts.Logger == nil {
		opts.Logger = logger.NewLogger(logger.LoggerOptions{})
	}
	if opts.Store == nil {
		opts.Store = NewGraphStore()
	}
	return &service{
		store:  opts.Store,
		logger: opts.Logger.SpawnForService("zxservice"),
		driver: simp.NewDriver(simp.DriverOptions{Logger: opts.Logger}),
		cfg:    opts.Config,
	}
}

func (s *service) SaveGraphText(text string) (string, error) {
	g, err := zxio.ReadString(text)
	if err != nil {
		return "", err
	}
	return s.store.SaveGraph(g)
}

func (s *service) Graph(id string) (*zx.Graph, error) { return s.store.GetGraph(id) }

func (s *service) GraphText(id string) (string, error) {
	g, err := s.store.GetGraph(id)
	if err != nil {
		return "", err
	}
	return zxio.WriteString(g, zxio.WriteOptions{Complete: true})
}

// Simplify runs a named strategy in place.
func (s *service) Simplify(ctx context.Context, id, strategy string) error {
	g, err := s.store.GetGraph(id)
	if err != nil {
		return err
	}
	switch strategy {
	case "clifford-simp", "":
		_, err = s.driver.CliffordSimp(ctx, g)
	case "full-reduce":
		_, err = s.driver.FullReduce(ctx, g)
	case "to-graph-like":
		err = s.driver.ToGraphLike(ctx, g)
	default:
		return fmt.Errorf("zxservice: unknown strategy %q", strategy)
	}
	if err != nil {
		return err
	}
	return s.store.PutGraph(id, g)
}

// Extract normalises the stored graph and reads a circuit back out.
func (s *service) Extract(ctx context.Context, id string) (*qcir.QCir, error) {
	g, err := s.store.GetGraph(id)
	if err != nil {
		return nil, err
	}
	work := g.Copy()
	if err := s.driver.ToGraphLike(ctx, work); err != nil {
		return nil, err
	}
	return extract.NewExtractor(work, extract.Options{Logger: s.logger}).Run(ctx)
}

// MapCircuit routes a circuit onto the described device.
func (s *service) MapCircuit(ctx context.Context, c *qcir.QCir, deviceText string) (*MapSummary, error) {
	dev, err := device.ReadString(deviceText)
	if err != nil {
		return nil, err
	}
	res, err := duostra.NewDuostra(s.cfg, s.logger).Map(ctx, c, dev)
	if err != nil {
		return nil, err
	}
	summary := &MapSummary{
		Depth:     res.FinalCost,
		TotalTime: res.TotalTime,
		NumSwaps:  res.NumSwaps,
	}
	var ops []string
	for _, op := range res.Operations {
		ops = append(ops, strings.TrimSpace(op.String()))
	}
	summary.Operations = ops
	return summary, nil
}
