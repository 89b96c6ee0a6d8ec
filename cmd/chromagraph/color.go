package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"chromagraph/internal/coloring"
	"chromagraph/internal/domain"
	"chromagraph/internal/layout"
	"chromagraph/internal/logging"
	"chromagraph/internal/parser"
	"chromagraph/internal/service"
	"chromagraph/internal/store"
)

type colorOptions struct {
	nodes     string
	edges     string
	threshold float64
	endpoint  string
	file      string
}

func colorCmd() *cobra.Command {
	var opts colorOptions

	cmd := &cobra.Command{
		Use:   "color",
		Short: "Color a graph once and print each node's class",
		Example: `  chromagraph color --nodes "a,b,c" --edges "a-b,b-c"
  chromagraph color --file graph.yaml --endpoint http://localhost:5000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runColor(cmd.Context(), cmd.OutOrStdout(), opts, cmd.Flags().Changed("threshold"))
		},
	}

	cmd.Flags().StringVar(&opts.nodes, "nodes", "", "Comma-separated node names")
	cmd.Flags().StringVar(&opts.edges, "edges", "", "Comma-separated edges, e.g. a-b,b-c")
	cmd.Flags().Float64Var(&opts.threshold, "threshold", 0, "Threshold forwarded to the coloring service")
	cmd.Flags().StringVar(&opts.endpoint, "endpoint", "", "Coloring service URL (overrides config)")
	cmd.Flags().StringVar(&opts.file, "file", "", "JSON or YAML graph file to load first")
	return cmd
}

func runColor(ctx context.Context, out io.Writer, opts colorOptions, thresholdSet bool) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	if opts.endpoint != "" {
		cfg.Coloring.Endpoint = opts.endpoint
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer logger.Sync()

	st := store.New(store.WithLogger(logger))
	bus := service.NewEventBus()
	graphs := service.NewGraphService(st, bus, service.WithLogger(logger))

	if opts.file != "" {
		if err := importFile(graphs, opts.file); err != nil {
			return err
		}
	}
	graphs.AddNodes(opts.nodes)
	if opts.edges != "" {
		if _, err := graphs.AddEdges(opts.edges); err != nil {
			return fmt.Errorf("%s: %w", domain.UserMessage(err), err)
		}
	}
	if thresholdSet {
		graphs.SetThreshold(opts.threshold)
	}

	graph := graphs.Graph()
	if graph.IsEmpty() {
		return fmt.Errorf("graph is empty: pass --nodes or --file")
	}
	printGraph(out, graph)

	client := coloring.NewClient(coloringConfig(cfg.Coloring), coloring.WithLogger(logger))
	colorer := service.NewColoringService(st, client, bus, nil, logger)
	result, err := colorer.Generate(ctx)
	if err != nil {
		logger.Debug("coloring failed", zap.Error(err))
		return fmt.Errorf("%s: %w", domain.UserMessage(err), err)
	}

	printColoring(out, graph.Nodes, result)
	return nil
}

func importFile(graphs *service.GraphService, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := graphs.Import(filepath.Ext(path), f); err != nil {
		return fmt.Errorf("import %s: %w", path, err)
	}
	return nil
}

func printGraph(out io.Writer, g domain.Graph) {
	fmt.Fprintf(out, "%s %s\n", subtle.Sprint("nodes:"), parser.FormatNodeList(g.Nodes))
	if len(g.Edges) > 0 {
		fmt.Fprintf(out, "%s %s\n", subtle.Sprint("edges:"), parser.FormatEdgeList(g.Edges))
	}
}

func printColoring(out io.Writer, nodes []string, c domain.Coloring) {
	total := layout.TotalColors(c)
	for _, n := range nodes {
		idx, ok := c[n]
		if !ok {
			fmt.Fprintf(out, "%s: %s\n", n, subtle.Sprint("uncolored"))
			continue
		}
		rgb := layout.ColorOf(idx, total)
		fmt.Fprintf(out, "%s: %d %s\n", n, idx, swatch(rgb).Sprint("●"+rgb.Hex()))
	}
	fmt.Fprintf(out, "%s %d colors\n", good.Sprint("✓"), total)
}
