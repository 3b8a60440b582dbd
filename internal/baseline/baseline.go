package baseline

// #region usage
// Usage reports generation cost. Baseline payloads never touch a model,
// so every field stays zero.
type Usage struct {
	PromptTokens     int     `json:"prompt_tokens"`
	CompletionTokens int     `json:"completion_tokens"`
	TotalTokens      int     `json:"total_tokens"`
	CostUSD          float64 `json:"cost_usd"`
}

// #endregion usage

// #region response
// Response is the shared envelope for every baseline surface. One
// generic builder replaces the per-surface near-duplicates while
// preserving each surface's exact external contract.
type Response[T any] struct {
	Mode    string `json:"mode"` // always "baseline"
	Message string `json:"message"`
	Data    T      `json:"data"`
	Usage   Usage  `json:"usage"`
}

func newResponse[T any](data T, message string) Response[T] {
	return Response[T]{
		Mode:    "baseline",
		Message: message,
		Data:    data,
	}
}

// #endregion response

// #region chat-reply

// ChatReply is the fixed chat/generic fallback text. Byte-exact: it
// never varies by tenant, locale, or time, and any deviation is a
// regression against the published contract.
const ChatReply = "You have the following integrations connected: Slack, Microsoft Teams.\n" +
	"Core314 is currently observing these integrations.\n" +
	"Efficiency metrics are not yet available.\n" +
	"Your Global Fusion Score is 50.\n" +
	"Core314 will begin scoring automatically as activity data is collected."

// #endregion chat-reply

// #region surface-data

type ChatData struct {
	Reply string `json:"reply"`
}

type ScenarioData struct {
	Scenarios []string `json:"scenarios"`
}

type InsightData struct {
	Insights []string `json:"insights"`
}

type AdminData struct {
	Alerts []string `json:"alerts"`
}

type OptimizationData struct {
	Recommendations []string `json:"recommendations"`
}

type PredictionData struct {
	Forecasts []string `json:"forecasts"`
}

type GovernanceData struct {
	Findings []string `json:"findings"`
}

type SupportData struct {
	Suggestions []string `json:"suggestions"`
}

type AnomalyData struct {
	Anomalies []string `json:"anomalies"`
}

type DecisionData struct {
	Options []string `json:"options"`
}

// #endregion surface-data

// #region surfaces

// ChatResponse returns the fixed chat fallback.
func ChatResponse() Response[ChatData] {
	return newResponse(ChatData{Reply: ChatReply},
		"Core314 is collecting activity data before generating chat insights.")
}

// GenericResponse mirrors the chat fallback for unscoped AI surfaces.
func GenericResponse() Response[ChatData] {
	return newResponse(ChatData{Reply: ChatReply},
		"Core314 is collecting activity data before generating responses.")
}

// ScenariosResponse returns the empty scenario-modeling fallback.
func ScenariosResponse() Response[ScenarioData] {
	return newResponse(ScenarioData{Scenarios: []string{}},
		"Scenario modeling unlocks once Core314 begins computing your Global Fusion Score.")
}

// InsightsResponse returns the empty insights fallback.
func InsightsResponse() Response[InsightData] {
	return newResponse(InsightData{Insights: []string{}},
		"Insights become available after Core314 has observed enough integration activity.")
}

// AdminResponse returns the empty admin-surface fallback.
func AdminResponse() Response[AdminData] {
	return newResponse(AdminData{Alerts: []string{}},
		"Administrative AI summaries are unavailable while Core314 is still observing.")
}

// OptimizationResponse returns the empty optimization fallback.
func OptimizationResponse() Response[OptimizationData] {
	return newResponse(OptimizationData{Recommendations: []string{}},
		"Optimization recommendations require computed efficiency metrics.")
}

// PredictionResponse returns the empty prediction fallback.
func PredictionResponse() Response[PredictionData] {
	return newResponse(PredictionData{Forecasts: []string{}},
		"Forecasting requires a computed Global Fusion Score and accumulated history.")
}

// GovernanceResponse returns the empty governance fallback.
func GovernanceResponse() Response[GovernanceData] {
	return newResponse(GovernanceData{Findings: []string{}},
		"Governance reviews begin after Core314 starts computing your score.")
}

// SupportResponse returns the empty support fallback.
func SupportResponse() Response[SupportData] {
	return newResponse(SupportData{Suggestions: []string{}},
		"Support suggestions become available once integration activity is scored.")
}

// AnomalyResponse returns the empty anomaly-detection fallback.
func AnomalyResponse() Response[AnomalyData] {
	return newResponse(AnomalyData{Anomalies: []string{}},
		"Anomaly detection requires a baseline of observed activity first.")
}

// DecisionResponse returns the empty decision-support fallback.
func DecisionResponse() Response[DecisionData] {
	return newResponse(DecisionData{Options: []string{}},
		"Decision support activates after Core314 begins computing your score.")
}

// #endregion surfaces
