package authority

// #region contract

// Contract fixes the vocabulary a phase permits in generated output.
// Entries are static configuration, loaded once and never mutated.
type Contract struct {
	Phase             InsightPhase
	AllowedVerbs      []string
	ForbiddenVerbs    []string
	ResponseTemplate  string
	MaxInferenceDepth InferenceDepth
}

// #endregion contract

// #region verb-tables

var descriptiveVerbs = []string{
	"observe", "describe", "list", "show", "report", "summarize",
}

var diagnosticVerbs = append(append([]string{}, descriptiveVerbs...),
	"explain", "analyze", "because", "caused by", "correlates with",
)

var prescriptiveVerbs = append(append([]string{}, diagnosticVerbs...),
	"suggest", "consider", "option", "alternative",
)

var predictiveVerbs = append(append([]string{}, prescriptiveVerbs...),
	"predict", "forecast", "trend", "expect",
)

// #endregion verb-tables

// #region contract-table

// contracts is the per-phase authority table. The forbidden sets do not
// shrink monotonically up the ladder: "predict"/"forecast" stay forbidden
// through prescriptive and only become allowed at predictive.
var contracts = map[InsightPhase]Contract{
	PhaseLocked: {
		Phase:        PhaseLocked,
		AllowedVerbs: nil,
		ForbiddenVerbs: []string{
			"observe", "describe", "explain", "suggest", "predict",
			"recommend", "analyze",
		},
		ResponseTemplate:  "Core314 is still collecting activity data for your integrations. Insights unlock automatically once enough history accumulates.",
		MaxInferenceDepth: DepthNone,
	},
	PhaseDescriptive: {
		Phase:        PhaseDescriptive,
		AllowedVerbs: descriptiveVerbs,
		ForbiddenVerbs: []string{
			"explain why", "because", "caused by", "suggest", "recommend",
			"predict", "will", "should",
		},
		ResponseTemplate:  "Here is what Core314 observed across your connected integrations during this period.",
		MaxInferenceDepth: DepthObservation,
	},
	PhaseDiagnostic: {
		Phase:        PhaseDiagnostic,
		AllowedVerbs: diagnosticVerbs,
		ForbiddenVerbs: []string{
			"suggest", "recommend", "should", "predict", "will", "forecast",
		},
		ResponseTemplate:  "Core314 analyzed the observed activity and identified the factors correlated with this pattern.",
		MaxInferenceDepth: DepthCausality,
	},
	PhasePrescriptive: {
		Phase:        PhasePrescriptive,
		AllowedVerbs: prescriptiveVerbs,
		ForbiddenVerbs: []string{
			"must", "should", "will", "predict", "forecast", "guarantee",
		},
		ResponseTemplate:  "Based on the diagnosed patterns, Core314 has options you may want to consider.",
		MaxInferenceDepth: DepthSuggestion,
	},
	PhasePredictive: {
		Phase:        PhasePredictive,
		AllowedVerbs: predictiveVerbs,
		ForbiddenVerbs: []string{
			"guarantee", "certain", "definitely", "must",
		},
		ResponseTemplate:  "Core314 expects the following trends based on your accumulated history.",
		MaxInferenceDepth: DepthPrediction,
	},
}

// #endregion contract-table

// #region registry

// GetContract returns the authority contract for a phase.
// Unknown phases resolve to the locked contract.
func GetContract(phase InsightPhase) Contract {
	if c, ok := contracts[phase]; ok {
		return c
	}
	return contracts[PhaseLocked]
}

// #endregion registry
