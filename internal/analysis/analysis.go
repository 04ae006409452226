// Package analysis turns methodology data into findings and Spanish summary
// paragraphs, and integrates the summaries into one root-cause conclusion.
// Every function is pure: absent or empty data yields an empty summary and a
// nil finding, never an error.
package analysis

import "github.com/dshills/rootcause/internal/schema"

// Summarize returns the summary paragraph for one methodology of c.
func Summarize(m schema.Methodology, c *schema.Case) string {
	if c == nil {
		return ""
	}
	switch m {
	case schema.MethodIshikawa:
		return IshikawaText(AnalyzeIshikawa(c.Ishikawa))
	case schema.MethodFiveWhys:
		return FiveWhysText(AnalyzeFiveWhys(c.FiveWhys), c.Problem)
	case schema.MethodPareto:
		return ParetoText(AnalyzePareto(c.Pareto))
	case schema.MethodFMEA:
		return FMEAText(AnalyzeFMEA(c.FMEA))
	}
	return ""
}

// Summaries returns one entry per methodology in report order. Methodologies
// without usable data have an empty Summary.
func Summaries(c *schema.Case) []schema.MethodologySummary {
	out := make([]schema.MethodologySummary, 0, len(schema.Methodologies))
	for _, m := range schema.Methodologies {
		out = append(out, schema.MethodologySummary{
			Methodology: m,
			Name:        m.DisplayName(),
			Summary:     Summarize(m, c),
		})
	}
	return out
}

// Collect returns the structured findings for every methodology of c.
func Collect(c *schema.Case) schema.Findings {
	if c == nil {
		return schema.Findings{}
	}
	return schema.Findings{
		Ishikawa: AnalyzeIshikawa(c.Ishikawa),
		FiveWhys: AnalyzeFiveWhys(c.FiveWhys),
		Pareto:   AnalyzePareto(c.Pareto),
		FMEA:     AnalyzeFMEA(c.FMEA),
	}
}
