package layercore

import "go.uber.org/multierr"

// Validate checks the construction-time invariants from SPEC_FULL.md §7
// (NonPositiveWeight, NonPositiveMinimumLength), collecting every violation
// found rather than stopping at the first, so a caller building a graph
// from untrusted data sees the full picture in one report.
func Validate(g *Graph) error {
	var errs error

	if g.minimumLength < 1 {
		errs = multierr.Append(errs, newError(NonPositiveMinimumLength,
			"minimum_length must be >= 1, got %d", g.minimumLength))
	}

	for _, e := range g.EdgeIDs() {
		if w := g.Weight(e); w < 1 {
			tail, head := g.Endpoints(e)
			errs = multierr.Append(errs, newError(NonPositiveWeight,
				"edge %d (%d->%d) has non-positive weight %d", e, tail, head, w))
		}
	}

	return errs
}
