// Package layerscript evaluates small JavaScript snippets that compute a
// per-edge weight from the edge's endpoints and attributes, so a graph
// built from some other source format can assign network-simplex weights
// without recompiling anything.
//
// It is grounded on the teacher's sandboxed script-evaluation pattern
// (lib/jsrunner), but retargeted: the teacher's runner drives the browser's
// native engine over syscall/js for in-browser diagram scripting, while
// this package embeds goja so the same kind of snippet can run server-side,
// once per edge, with no browser involved.
package layerscript

import (
	"fmt"

	"github.com/dop251/goja"
)

// EdgeContext is the data a weight script can read about the edge it is
// scoring.
type EdgeContext struct {
	Tail, Head string
	Attrs      map[string]interface{}
}

// WeightScript is a compiled weight expression, reusable across many edges
// without re-parsing.
type WeightScript struct {
	source  string
	program *goja.Program
}

// Compile parses source as a JavaScript expression or statement list that
// must leave a numeric value as the completion value, given `tail`, `head`,
// and `attrs` bindings (see EdgeContext).
func Compile(source string) (*WeightScript, error) {
	program, err := goja.Compile("weight.js", source, false)
	if err != nil {
		return nil, fmt.Errorf("layerscript: compile weight script: %w", err)
	}
	return &WeightScript{source: source, program: program}, nil
}

// Eval runs the script against one edge's context and returns its weight.
// Each call gets a fresh goja.Runtime, so scripts cannot leak state between
// edges.
func (s *WeightScript) Eval(ec EdgeContext) (int, error) {
	vm := goja.New()
	if err := vm.Set("tail", ec.Tail); err != nil {
		return 0, fmt.Errorf("layerscript: bind tail: %w", err)
	}
	if err := vm.Set("head", ec.Head); err != nil {
		return 0, fmt.Errorf("layerscript: bind head: %w", err)
	}
	if err := vm.Set("attrs", ec.Attrs); err != nil {
		return 0, fmt.Errorf("layerscript: bind attrs: %w", err)
	}

	v, err := vm.RunProgram(s.program)
	if err != nil {
		return 0, fmt.Errorf("layerscript: run weight script for edge %s->%s: %w", ec.Tail, ec.Head, err)
	}

	weight := int(v.ToInteger())
	if weight < 1 {
		return 0, fmt.Errorf("layerscript: weight script for edge %s->%s returned non-positive weight %d", ec.Tail, ec.Head, weight)
	}
	return weight, nil
}

// String returns the original script source, for logging and reports.
func (s *WeightScript) String() string {
	return s.source
}
