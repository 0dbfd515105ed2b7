package verification

// Gap is one identified rule violation, tagged with the regulation or rule
// family it belongs to. A product is compliant iff its gap list is empty.
type Gap struct {
	Regulation string `json:"regulation"`
	Issue      string `json:"issue"`
}

// RunSummary reports the outcome counts of one orchestrator run.
type RunSummary struct {
	Processed int `json:"processed"`
	Passed    int `json:"passed"`
	Failed    int `json:"failed"`
}
