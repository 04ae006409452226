package catalog

import (
	"strings"

	"github.com/dshills/rootcause/internal/schema"
	"github.com/dshills/rootcause/internal/textscan"
)

const (
	// MaxSolutions caps the list returned by SelectSolutions.
	MaxSolutions = 5
	// MaxRecommendations caps the list returned by Recommendations.
	MaxRecommendations = 5
)

// SelectSolutions picks corrective actions for a conclusion: the area's
// solutions first, then those triggered by conclusion keywords, then the
// general list. Titles are deduplicated (first wins) and the result is
// capped at MaxSolutions. An empty conclusion yields an empty list.
func (c *Catalog) SelectSolutions(conclusion string, area schema.Area) []schema.Solution {
	out := []schema.Solution{}
	if strings.TrimSpace(conclusion) == "" {
		return out
	}

	words := textscan.Keywords(conclusion, 3, nil)

	var candidates []schema.Solution
	candidates = append(candidates, c.AreaSolutions[area]...)
	for _, ks := range c.KeywordSolutions {
		if anyContains(words, ks.Keyword) {
			candidates = append(candidates, ks.Solutions...)
		}
	}
	candidates = append(candidates, c.GeneralSolutions...)

	seen := make(map[string]bool, len(candidates))
	for _, s := range candidates {
		if seen[s.Title] {
			continue
		}
		seen[s.Title] = true
		out = append(out, s)
		if len(out) >= MaxSolutions {
			break
		}
	}
	return out
}

// Recommendations builds the recommendation list for a root cause: tables
// whose keyword appears in the root cause are prepended to the generic list,
// later matches ahead of earlier ones, and the area table goes in front of
// everything. The result is capped at MaxRecommendations.
func (c *Catalog) Recommendations(rootCause string, area schema.Area) []string {
	recs := append([]string(nil), c.GenericRecommendations...)

	lower := strings.ToLower(rootCause)
	for _, kr := range c.KeywordRecommendations {
		if strings.Contains(lower, kr.Keyword) {
			recs = append(append([]string(nil), kr.Recommendations...), recs...)
		}
	}
	if areaRecs, ok := c.AreaRecommendations[area]; ok && area != "" {
		recs = append(append([]string(nil), areaRecs...), recs...)
	}

	if len(recs) > MaxRecommendations {
		recs = recs[:MaxRecommendations]
	}
	return recs
}

func anyContains(words []string, keyword string) bool {
	for _, w := range words {
		if strings.Contains(w, keyword) {
			return true
		}
	}
	return false
}
