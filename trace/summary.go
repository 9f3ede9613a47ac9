package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalDecisions        int
	MeanSelectedBenefit   float64
	MaxSelectedBenefit    float64
	InfiniteOverrideCount int
	PerQueueSelections    map[string]int
}

// Summarize computes aggregate statistics from a SimulationTrace. Safe for
// nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		PerQueueSelections: make(map[string]int),
	}
	if st == nil {
		return summary
	}

	summary.TotalDecisions = len(st.Decisions)

	var (
		finiteTotal float64
		finiteCount int
	)
	for _, d := range st.Decisions {
		for _, a := range d.Assignments {
			summary.PerQueueSelections[a.QueueID]++
		}
		for _, c := range d.Candidates {
			if !c.Selected {
				continue
			}
			if c.Benefit.Kind == BenefitKindInfinite {
				summary.InfiniteOverrideCount++
				continue
			}
			finiteTotal += c.Benefit.Value
			finiteCount++
			if finiteCount == 1 || c.Benefit.Value > summary.MaxSelectedBenefit {
				summary.MaxSelectedBenefit = c.Benefit.Value
			}
		}
	}

	if finiteCount > 0 {
		summary.MeanSelectedBenefit = finiteTotal / float64(finiteCount)
	}

	return summary
}
