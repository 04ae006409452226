package schema

// Report is the output of one analysis run.
type Report struct {
	Tool       string               `json:"tool"`
	Version    string               `json:"version"`
	Input      Input                `json:"input"`
	Problem    Problem              `json:"problem"`
	Summaries  []MethodologySummary `json:"summaries"`
	Findings   Findings             `json:"findings"`
	Conclusion Conclusion           `json:"conclusion"`
	Solutions  []Solution           `json:"solutions"`
	Summary    Summary              `json:"summary"`
}

// Input captures the parameters used for this run.
type Input struct {
	CaseFile      string `json:"caseFile,omitempty"`
	CaseHash      string `json:"caseHash,omitempty"` // sha256 of the case file
	RiskThreshold string `json:"riskThreshold"`
}

// Summary holds methodology coverage and FMEA risk counts.
// Counts always reflect all failure modes before any --risk-threshold filtering.
type Summary struct {
	Coverage    int `json:"coverage"` // percent of the four methodologies with a summary
	Completed   int `json:"completed"`
	HighRisk    int `json:"highRisk"`
	MediumRisk  int `json:"mediumRisk"`
	LowRisk     int `json:"lowRisk"`
	TotalCauses int `json:"totalCauses"`
}

// MethodologySummary is the generated paragraph for one methodology.
type MethodologySummary struct {
	Methodology Methodology `json:"methodology"`
	Name        string      `json:"name"`
	Summary     string      `json:"summary"`
}

// Findings carries the structured results behind each summary. A nil field
// means the methodology had no usable data.
type Findings struct {
	Ishikawa *IshikawaFinding `json:"ishikawa"`
	FiveWhys *FiveWhysFinding `json:"fiveWhys"`
	Pareto   *ParetoFinding   `json:"pareto"`
	FMEA     *FMEAFinding     `json:"fmea"`
}

// IshikawaFinding lists the significant categories.
type IshikawaFinding struct {
	TotalCauses int               `json:"totalCauses"`
	Significant []CategoryFinding `json:"significant"`
	// Fallback is set when no category reached the significance share and the
	// category with the most causes was used instead.
	Fallback bool `json:"fallback"`
}

// CategoryFinding is one significant Ishikawa category.
type CategoryFinding struct {
	CategoryID int      `json:"categoryId"`
	Category   string   `json:"category"`
	Count      int      `json:"count"`
	Share      float64  `json:"share"`
	Causes     []string `json:"causes"`
}

// FiveWhysFinding is the answered chain and the cause it points at.
type FiveWhysFinding struct {
	Answers  []string `json:"answers"`
	Complete bool     `json:"complete"`
	Cause    string   `json:"cause"`
}

// ParetoShare is a cause with its share of the total frequency.
type ParetoShare struct {
	Name       string  `json:"name"`
	Frequency  int     `json:"frequency"`
	Percentage float64 `json:"percentage"`
}

// ParetoFinding is the ranked table and its vital few.
type ParetoFinding struct {
	ValidCauses int           `json:"validCauses"`
	Total       int           `json:"total"`
	Ranked      []ParetoShare `json:"ranked"`
	VitalFew    []ParetoShare `json:"vitalFew"`
	Cumulative  float64       `json:"cumulative"`
}

// FMEAFinding lists the critical failure modes, highest RPN first.
type FMEAFinding struct {
	Evaluated int           `json:"evaluated"`
	Critical  []FailureMode `json:"critical"`
	// AboveThreshold is false when no mode reached the critical RPN and the
	// top modes were taken instead.
	AboveThreshold bool     `json:"aboveThreshold"`
	UniqueCauses   []string `json:"uniqueCauses"`
}

// PatternID tags one entry of the root-cause taxonomy.
type PatternID string

// Pattern is a scored root-cause candidate.
type Pattern struct {
	ID         PatternID `json:"id"`
	Text       string    `json:"text"`
	Score      int       `json:"score"`
	Confidence float64   `json:"confidence"`
}

// Conclusion is the integrated cross-methodology result.
type Conclusion struct {
	Patterns  []Pattern `json:"patterns"`
	RootCause string    `json:"rootCause"`
	// Source is the methodology the root cause was taken from when no common
	// pattern could be scored. Empty when RootCause is a pattern.
	Source          Methodology `json:"source,omitempty"`
	Recommendations []string    `json:"recommendations"`
	Markdown        string      `json:"markdown"`
}

// RiskBand classifies a failure mode by RPN.
type RiskBand string

const (
	RiskLow    RiskBand = "low"
	RiskMedium RiskBand = "medium"
	RiskHigh   RiskBand = "high"
)

// RiskBandOrdinal returns the numeric ordering for a band.
// low(0) < medium(1) < high(2). Returns -1 for an unrecognised band.
func RiskBandOrdinal(b RiskBand) int {
	switch b {
	case RiskLow:
		return 0
	case RiskMedium:
		return 1
	case RiskHigh:
		return 2
	default:
		return -1
	}
}
