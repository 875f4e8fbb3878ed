// Command zxsyn runs the synthesis pipeline on a .zx file: simplify,
// extract, and (optionally) map onto a device description.
//
//	zxsyn -zx graph.zx [-device device.txt] [-strategy full-reduce]
//
// Exit status: 0 on success, 1 on failure, 130 when interrupted.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/kegliz/zxsyn/device"
	"github.com/kegliz/zxsyn/duostra"
	"github.com/kegliz/zxsyn/extract"
	"github.com/kegliz/zxsyn/internal/config"
	"github.com/kegliz/zxsyn/internal/logger"
	"github.com/kegliz/zxsyn/simp"
	"github.com/kegliz/zxsyn/zxio"
)

func main() {
	os.Exit(run())
}

func run() int {
	zxPath := flag.String("zx", "", "input .zx graph file")
	devicePath := flag.String("device", "", "optional device description file")
	strategy := flag.String("strategy", "full-reduce", "simplification strategy")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	log := logger.NewLogger(logger.LoggerOptions{Debug: *verbose})
	if *zxPath == "" {
		fmt.Fprintln(os.Stderr, "zxsyn: -zx is required")
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	code, err := pipeline(ctx, log, *zxPath, *devicePath, *strategy)
	if err != nil {
		if interrupted(err) {
			fmt.Fprintln(os.Stderr, "zxsyn: interrupted")
			return 130
		}
		fmt.Fprintf(os.Stderr, "zxsyn: %v\n", err)
		return 1
	}
	return code
}

func interrupted(err error) bool {
	return errors.Is(err, simp.ErrInterrupted) ||
		errors.Is(err, extract.ErrInterrupted) ||
		errors.Is(err, duostra.ErrInterrupted) ||
		errors.Is(err, context.Canceled)
}

func pipeline(ctx context.Context, log *logger.Logger, zxPath, devicePath, strategy string) (int, error) {
	f, err := os.Open(zxPath)
	if err != nil {
		return 1, err
	}
	defer f.Close()
	g, err := zxio.Read(f)
	if err != nil {
		return 1, err
	}
	log.Info().Int("vertices", g.NumVertices()).Int("edges", g.NumEdges()).Msg("graph loaded")

	driver := simp.NewDriver(simp.DriverOptions{Logger: log})
	if err := driver.ToGraphLike(ctx, g); err != nil {
		return 1, err
	}
	switch strategy {
	case "clifford-simp":
		_, err = driver.CliffordSimp(ctx, g)
	case "full-reduce":
		_, err = driver.FullReduce(ctx, g)
	case "none":
	default:
		return 1, fmt.Errorf("unknown strategy %q", strategy)
	}
	if err != nil {
		return 1, err
	}
	if err := driver.ToGraphLike(ctx, g); err != nil {
		return 1, err
	}
	log.Info().Int("vertices", g.NumVertices()).Int("tcount", g.TCount()).Msg("simplified")

	circuit, err := extract.NewExtractor(g, extract.Options{Logger: log}).Run(ctx)
	if err != nil {
		return 1, err
	}
	fmt.Printf("extracted %d gates over %d qubits\n", circuit.NumGates(), circuit.NumQubits())
	for _, gate := range circuit.Gates() {
		fmt.Printf("  %s\n", gate)
	}

	if devicePath == "" {
		return 0, nil
	}
	df, err := os.Open(devicePath)
	if err != nil {
		return 1, err
	}
	defer df.Close()
	dev, err := device.Read(df)
	if err != nil {
		return 1, err
	}

	conf, err := config.Load()
	if err != nil {
		return 1, err
	}
	duoCfg, err := conf.Duostra()
	if err != nil {
		return 1, err
	}
	res, err := duostra.NewDuostra(duoCfg, log).Map(ctx, circuit, dev)
	if err != nil {
		return 1, err
	}
	fmt.Println()
	fmt.Println("Duostra Result:")
	fmt.Printf("Scheduler:      %s\n", duoCfg.Scheduler)
	fmt.Printf("Router:         %s\n", duoCfg.Router)
	fmt.Printf("Placer:         %s\n", duoCfg.Placer)
	fmt.Printf("Mapping Depth:  %d\n", res.FinalCost)
	fmt.Printf("Total Time:     %d\n", res.TotalTime)
	fmt.Printf("#SWAP:          %d\n", res.NumSwaps)
	for _, op := range res.Operations {
		fmt.Printf("  %s\n", op)
	}
	return 0, nil
}
