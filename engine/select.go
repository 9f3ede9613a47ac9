package engine

// OverrideConfig toggles the optional resource-bound overrides.
// MustRun is always active; it is a hard constraint, not a feature flag.
type OverrideConfig struct {
	MinResourcesEnabled bool
	MaxResourcesEnabled bool
	// ForceMaxEnabled lets individual queues opt into the max-resources
	// demotion (via Queue.ForceMax) without turning it on fleet-wide through
	// MaxResourcesEnabled.
	ForceMaxEnabled bool
}

// computeBenefit returns a candidate's benefit, applying the override rules
// in the order: base finite value, then max-resources demotion, then
// min-resources promotion, then must-run promotion. MustRun is applied last
// so it always wins: a queue marked must-run at priority 1 is selected
// ahead of every other constraint.
func computeBenefit(c *Candidate, bias float64, assignedCount int, cfg OverrideConfig) Benefit {
	// Capacity beyond what's actually pending at this priority is wasted:
	// clamping to task_count is what lets a queue drop out of contention
	// once enough capacity has already been committed to it (see the
	// decrement step in Decide).
	effective := min(c.realCapacity, max(c.TaskCount, 0))
	b := Finite(float64(effective) * queueWeight(c.Queue, bias) / float64(max(c.Priority, 1)))

	maxApplies := cfg.MaxResourcesEnabled || (cfg.ForceMaxEnabled && c.Queue.ForceMax)
	if maxApplies && assignedCount >= c.Queue.MaxResources {
		b = Finite(0)
	}
	if cfg.MinResourcesEnabled && c.Queue.MinResources > 0 && assignedCount < c.Queue.MinResources {
		b = Infinite()
	}
	if c.Queue.MustRun && c.Priority == 1 {
		b = Infinite()
	}
	return b
}

// tieBreakLess reports whether a should be preferred over b when their
// benefits compare equal: must_run beats non-must_run, then higher
// criticality wins, then shorter SLA wins.
func tieBreakLess(a, b *Candidate) bool {
	if a.Queue.MustRun != b.Queue.MustRun {
		return a.Queue.MustRun
	}
	if a.Queue.Criticality != b.Queue.Criticality {
		return a.Queue.Criticality > b.Queue.Criticality
	}
	return a.Queue.SLA < b.Queue.SLA
}

// selectBest returns the index of the highest-ranked candidate under
// benefit-then-tiebreak ordering.
func selectBest(candidates []*Candidate, bias float64, assignedCounts map[string]int, cfg OverrideConfig) int {
	bestIdx := 0
	bestBenefit := computeBenefit(candidates[0], bias, assignedCounts[candidates[0].Queue.ID], cfg)
	for i := 1; i < len(candidates); i++ {
		b := computeBenefit(candidates[i], bias, assignedCounts[candidates[i].Queue.ID], cfg)
		switch b.Compare(bestBenefit) {
		case 1:
			bestIdx, bestBenefit = i, b
		case 0:
			if tieBreakLess(candidates[i], candidates[bestIdx]) {
				bestIdx, bestBenefit = i, b
			}
		}
	}
	return bestIdx
}
