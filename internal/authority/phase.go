package authority

// #region insight-phase

// InsightPhase is one of five graduated capability levels constraining
// what claims generated content may make. Phases form a total order:
// locked < descriptive < diagnostic < prescriptive < predictive.
type InsightPhase string

const (
	PhaseLocked       InsightPhase = "locked"
	PhaseDescriptive  InsightPhase = "descriptive"
	PhaseDiagnostic   InsightPhase = "diagnostic"
	PhasePrescriptive InsightPhase = "prescriptive"
	PhasePredictive   InsightPhase = "predictive"
)

// phaseOrder enumerates phases in ascending capability.
var phaseOrder = []InsightPhase{
	PhaseLocked,
	PhaseDescriptive,
	PhaseDiagnostic,
	PhasePrescriptive,
	PhasePredictive,
}

// #endregion insight-phase

// #region ordering

// Rank returns the phase's position in the ladder, 0 for locked.
// Unknown values rank as locked so malformed input never gains capability.
func (p InsightPhase) Rank() int {
	for i, ph := range phaseOrder {
		if ph == p {
			return i
		}
	}
	return 0
}

// AtLeast reports whether p grants at least the capability of other.
func (p InsightPhase) AtLeast(other InsightPhase) bool {
	return p.Rank() >= other.Rank()
}

// Next returns the next phase up the ladder, or the phase itself at the top.
func (p InsightPhase) Next() InsightPhase {
	r := p.Rank()
	if r >= len(phaseOrder)-1 {
		return p
	}
	return phaseOrder[r+1]
}

// Valid reports whether p is one of the five known phases.
func (p InsightPhase) Valid() bool {
	for _, ph := range phaseOrder {
		if ph == p {
			return true
		}
	}
	return false
}

// #endregion ordering

// #region inference-depth

// InferenceDepth bounds how far past raw observation a claim may reach.
type InferenceDepth string

const (
	DepthNone        InferenceDepth = "none"
	DepthObservation InferenceDepth = "observation"
	DepthCausality   InferenceDepth = "causality"
	DepthSuggestion  InferenceDepth = "suggestion"
	DepthPrediction  InferenceDepth = "prediction"
)

// #endregion inference-depth
