package review

import (
	"testing"

	"github.com/dshills/rootcause/internal/schema"
)

func makeModes(rpns ...int) []schema.FailureMode {
	modes := make([]schema.FailureMode, len(rpns))
	for i, r := range rpns {
		modes[i] = schema.FailureMode{RPN: r}
	}
	return modes
}

// --- Band tests ---

func TestBand_Boundaries(t *testing.T) {
	cases := []struct {
		rpn  int
		want schema.RiskBand
	}{
		{1, schema.RiskLow},
		{99, schema.RiskLow},
		{100, schema.RiskMedium},
		{199, schema.RiskMedium},
		{200, schema.RiskHigh},
		{1000, schema.RiskHigh},
	}
	for _, tc := range cases {
		if got := Band(tc.rpn); got != tc.want {
			t.Errorf("Band(%d) = %q, want %q", tc.rpn, got, tc.want)
		}
	}
}

func TestCounts_Mixed(t *testing.T) {
	high, medium, low := Counts(makeModes(310, 220, 125, 50, 8))
	if high != 2 || medium != 1 || low != 2 {
		t.Errorf("Counts = %d/%d/%d, want 2/1/2", high, medium, low)
	}
}

// --- FilterByBand tests ---

func TestFilterByBand_HighThreshold(t *testing.T) {
	filtered := FilterByBand(makeModes(310, 125, 50), schema.RiskHigh)
	if len(filtered) != 1 || filtered[0].RPN != 310 {
		t.Errorf("expected only the 310 mode, got %+v", filtered)
	}
}

func TestFilterByBand_LowThreshold_ReturnsAll(t *testing.T) {
	filtered := FilterByBand(makeModes(310, 125, 50), schema.RiskLow)
	if len(filtered) != 3 {
		t.Errorf("expected 3 modes with low threshold, got %d", len(filtered))
	}
}

func TestExceeds(t *testing.T) {
	if !Exceeds(makeModes(50, 150), schema.RiskMedium) {
		t.Error("150 should exceed medium")
	}
	if Exceeds(makeModes(50, 150), schema.RiskHigh) {
		t.Error("150 should not exceed high")
	}
	if Exceeds(nil, schema.RiskLow) {
		t.Error("no modes never exceed")
	}
}

// --- Coverage tests ---

func TestCoverage(t *testing.T) {
	summaries := []schema.MethodologySummary{
		{Methodology: schema.MethodIshikawa, Summary: "x"},
		{Methodology: schema.MethodFiveWhys},
		{Methodology: schema.MethodPareto, Summary: "y"},
		{Methodology: schema.MethodFMEA},
	}
	completed, percent := Coverage(summaries)
	if completed != 2 || percent != 50 {
		t.Errorf("Coverage = %d, %d%%; want 2, 50%%", completed, percent)
	}
}

func TestSummarize_CountsBeforeFiltering(t *testing.T) {
	c := &schema.Case{FMEA: &schema.FMEAData{FailureModes: makeModes(300, 120, 10)}}
	s := Summarize(c, nil, schema.Findings{})
	if s.HighRisk != 1 || s.MediumRisk != 1 || s.LowRisk != 1 {
		t.Errorf("unexpected counts: %+v", s)
	}
}
