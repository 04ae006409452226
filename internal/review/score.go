package review

import "github.com/dshills/rootcause/internal/schema"

// RPN thresholds for the risk bands.
const (
	HighRPN   = 200
	MediumRPN = 100
)

// Band classifies an RPN: high >= 200, medium >= 100, low otherwise.
func Band(rpn int) schema.RiskBand {
	switch {
	case rpn >= HighRPN:
		return schema.RiskHigh
	case rpn >= MediumRPN:
		return schema.RiskMedium
	default:
		return schema.RiskLow
	}
}

// Counts returns the high, medium and low counts for all modes.
func Counts(modes []schema.FailureMode) (high, medium, low int) {
	for _, m := range modes {
		switch Band(m.RPN) {
		case schema.RiskHigh:
			high++
		case schema.RiskMedium:
			medium++
		default:
			low++
		}
	}
	return
}

// FilterByBand returns only the modes at or above the threshold band.
func FilterByBand(modes []schema.FailureMode, threshold schema.RiskBand) []schema.FailureMode {
	if threshold == schema.RiskLow {
		return modes
	}
	out := make([]schema.FailureMode, 0, len(modes))
	for _, m := range modes {
		if meetsBand(Band(m.RPN), threshold) {
			out = append(out, m)
		}
	}
	return out
}

// Exceeds reports whether any mode is at or above the threshold band.
func Exceeds(modes []schema.FailureMode, threshold schema.RiskBand) bool {
	for _, m := range modes {
		if meetsBand(Band(m.RPN), threshold) {
			return true
		}
	}
	return false
}

func meetsBand(b, threshold schema.RiskBand) bool {
	return schema.RiskBandOrdinal(b) >= schema.RiskBandOrdinal(threshold)
}

// Coverage returns how many methodologies produced a summary and the
// matching percentage of the four.
func Coverage(summaries []schema.MethodologySummary) (completed, percent int) {
	for _, s := range summaries {
		if s.Summary != "" {
			completed++
		}
	}
	return completed, completed * 100 / len(schema.Methodologies)
}

// Summarize builds the report summary. Counts always reflect all failure
// modes, before any output filtering.
func Summarize(c *schema.Case, summaries []schema.MethodologySummary, findings schema.Findings) schema.Summary {
	var s schema.Summary
	s.Completed, s.Coverage = Coverage(summaries)
	if c != nil && c.FMEA != nil {
		s.HighRisk, s.MediumRisk, s.LowRisk = Counts(c.FMEA.FailureModes)
	}
	if findings.Ishikawa != nil {
		s.TotalCauses = findings.Ishikawa.TotalCauses
	}
	return s
}
