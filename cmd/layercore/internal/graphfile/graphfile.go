// Package graphfile parses a minimal text format describing a directed
// graph for layercore to rank: one edge per line as "tail head [weight]",
// vertex labels assigned ids in first-seen order, blank lines and lines
// starting with "#" ignored, and an optional leading "minlen N" directive
// overriding the default minimum edge length of 1.
package graphfile

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"oss.terrastruct.com/layercore"
)

// Labels maps a parsed graph's vertex labels back to their assigned ids, in
// case a caller needs to report results by name instead of id.
type Labels struct {
	ByID    []string
	ByLabel map[string]layercore.VertexID
}

// Parse reads a graph description from r.
func Parse(r io.Reader) (*layercore.Graph, *Labels, error) {
	return ParseWithMinLen(r, 0)
}

// ParseWithMinLen reads a graph description from r like Parse, but if
// override is greater than zero, it takes precedence over both the file's
// own "minlen" directive and the default of 1.
func ParseWithMinLen(r io.Reader, override int) (*layercore.Graph, *Labels, error) {
	minLen := 1
	if override > 0 {
		minLen = override
	}
	labels := &Labels{ByLabel: map[string]layercore.VertexID{}}
	var g *layercore.Graph

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) == 2 && strings.EqualFold(fields[0], "minlen") {
			if g != nil {
				return nil, nil, fmt.Errorf("graphfile: line %d: minlen must appear before any edge", lineNo)
			}
			n, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, nil, fmt.Errorf("graphfile: line %d: invalid minlen %q: %w", lineNo, fields[1], err)
			}
			if override <= 0 {
				minLen = n
			}
			continue
		}

		if g == nil {
			g = layercore.NewGraph(minLen)
		}

		if len(fields) < 2 || len(fields) > 3 {
			return nil, nil, fmt.Errorf("graphfile: line %d: expected \"tail head [weight]\", got %q", lineNo, line)
		}

		weight := 1
		if len(fields) == 3 {
			w, err := strconv.Atoi(fields[2])
			if err != nil {
				return nil, nil, fmt.Errorf("graphfile: line %d: invalid weight %q: %w", lineNo, fields[2], err)
			}
			weight = w
		}

		tail := vertexFor(g, labels, fields[0])
		head := vertexFor(g, labels, fields[1])
		g.AddEdge(tail, head, weight)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("graphfile: read: %w", err)
	}

	if g == nil {
		g = layercore.NewGraph(minLen)
	}
	return g, labels, nil
}

func vertexFor(g *layercore.Graph, labels *Labels, label string) layercore.VertexID {
	if id, ok := labels.ByLabel[label]; ok {
		return id
	}
	id := g.AddVertex()
	labels.ByLabel[label] = id
	labels.ByID = append(labels.ByID, label)
	return id
}
