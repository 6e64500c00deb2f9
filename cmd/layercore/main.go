// Command layercore ranks a graph described in a small text file using
// network simplex and prints the result as JSON, Markdown, or SVG.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"cdr.dev/slog"
	"cdr.dev/slog/sloggers/sloghuman"
	"github.com/alecthomas/chroma/quick"
	"github.com/spf13/pflag"

	"oss.terrastruct.com/layercore"
	"oss.terrastruct.com/layercore/cmd/layercore/internal/graphfile"
	"oss.terrastruct.com/layercore/diagdraw"
	"oss.terrastruct.com/layercore/reportmd"
	"oss.terrastruct.com/layercore/watchserver"
)

func main() {
	in := pflag.StringP("in", "i", "", "path to a graph file (required)")
	format := pflag.StringP("format", "f", "json", "output format: json, md, or svg")
	minLen := pflag.Int("minlen", 0, "override the graph file's minimum edge length (0 = use file)")
	dumpInput := pflag.Bool("dump-input", false, "print the input file with syntax highlighting before running")
	watch := pflag.String("watch", "", "serve live layering results over a websocket on the given address, e.g. :8080")
	pflag.Parse()

	if err := run(*in, *format, *minLen, *dumpInput, *watch); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(in, format string, minLenOverride int, dumpInput bool, watchAddr string) error {
	if in == "" {
		return fmt.Errorf("layercore: -in is required")
	}
	logger := slog.Make(sloghuman.Sink(os.Stderr))
	ctx := context.Background()

	load := func() (*layercore.Graph, error) {
		return loadGraph(in, minLenOverride, dumpInput)
	}

	if watchAddr != "" {
		srv := watchserver.New(logger, load)
		go func() {
			if err := srv.Watch(ctx, in); err != nil {
				logger.Error(ctx, "watch loop exited", slog.Error(err))
			}
		}()
		logger.Info(ctx, "serving live layering results", slog.F("addr", watchAddr))
		return http.ListenAndServe(watchAddr, srv)
	}

	g, err := load()
	if err != nil {
		return err
	}

	result, err := layercore.Run(ctx, g, logger)
	if err != nil {
		return fmt.Errorf("layercore: %w", err)
	}

	switch format {
	case "json":
		return json.NewEncoder(os.Stdout).Encode(result)
	case "md":
		fmt.Print(reportmd.Markdown(g, result))
		return nil
	case "svg":
		svg, err := diagdraw.RenderSVG(g, diagdraw.Options{ShowCutValues: true})
		if err != nil {
			return fmt.Errorf("layercore: %w", err)
		}
		fmt.Print(svg)
		return nil
	default:
		return fmt.Errorf("layercore: unknown -format %q (want json, md, or svg)", format)
	}
}

func loadGraph(path string, minLenOverride int, dumpInput bool) (*layercore.Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("layercore: read %s: %w", path, err)
	}

	if dumpInput {
		if err := quick.Highlight(os.Stdout, string(data), "yaml", "terminal256", "monokai"); err != nil {
			return nil, fmt.Errorf("layercore: highlight input: %w", err)
		}
	}

	g, _, err := graphfile.ParseWithMinLen(bytes.NewReader(data), minLenOverride)
	if err != nil {
		return nil, fmt.Errorf("layercore: parse %s: %w", path, err)
	}
	return g, nil
}
