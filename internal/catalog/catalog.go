// Package catalog holds the static corrective-action tables: solutions per
// area and per keyword, recommendations, and the root-cause pattern taxonomy.
package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dshills/rootcause/internal/schema"
)

// KeywordSolutions are appended when a conclusion word contains Keyword.
type KeywordSolutions struct {
	Keyword   string            `yaml:"keyword"`
	Solutions []schema.Solution `yaml:"solutions"`
}

// KeywordRecommendations are prepended when the root cause contains Keyword.
type KeywordRecommendations struct {
	Keyword         string   `yaml:"keyword"`
	Recommendations []string `yaml:"recommendations"`
}

// Pattern is a candidate root-cause sentence of the taxonomy.
type Pattern struct {
	ID   schema.PatternID `yaml:"id"`
	Text string           `yaml:"text"`
}

// Catalog is the full set of tables. Keyword tables are ordered: the order
// decides precedence when several keywords match.
type Catalog struct {
	AreaSolutions          map[schema.Area][]schema.Solution `yaml:"areaSolutions"`
	KeywordSolutions       []KeywordSolutions                `yaml:"keywordSolutions"`
	GeneralSolutions       []schema.Solution                 `yaml:"generalSolutions"`
	AreaRecommendations    map[schema.Area][]string          `yaml:"areaRecommendations"`
	KeywordRecommendations []KeywordRecommendations          `yaml:"keywordRecommendations"`
	GenericRecommendations []string                          `yaml:"genericRecommendations"`
	Patterns               []Pattern                         `yaml:"patterns"`
	Stopwords              []string                          `yaml:"stopwords"`
}

// Default returns a fresh copy of the built-in catalog.
func Default() *Catalog {
	return &Catalog{
		AreaSolutions:          areaSolutions(),
		KeywordSolutions:       keywordSolutions(),
		GeneralSolutions:       generalSolutions(),
		AreaRecommendations:    areaRecommendations(),
		KeywordRecommendations: keywordRecommendations(),
		GenericRecommendations: genericRecommendations(),
		Patterns:               patterns(),
		Stopwords:              stopwords(),
	}
}

// LoadFile reads a YAML catalog and lays it over the defaults. Tables missing
// from the file keep their built-in values; tables present replace them whole.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML catalog data over the defaults.
func Parse(data []byte) (*Catalog, error) {
	var override Catalog
	if err := yaml.Unmarshal(data, &override); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	c := Default()
	if len(override.AreaSolutions) > 0 {
		c.AreaSolutions = override.AreaSolutions
	}
	if len(override.KeywordSolutions) > 0 {
		c.KeywordSolutions = override.KeywordSolutions
	}
	if len(override.GeneralSolutions) > 0 {
		c.GeneralSolutions = override.GeneralSolutions
	}
	if len(override.AreaRecommendations) > 0 {
		c.AreaRecommendations = override.AreaRecommendations
	}
	if len(override.KeywordRecommendations) > 0 {
		c.KeywordRecommendations = override.KeywordRecommendations
	}
	if len(override.GenericRecommendations) > 0 {
		c.GenericRecommendations = override.GenericRecommendations
	}
	if len(override.Patterns) > 0 {
		c.Patterns = override.Patterns
	}
	if len(override.Stopwords) > 0 {
		c.Stopwords = override.Stopwords
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// StopwordSet returns the stopwords as a lookup set.
func (c *Catalog) StopwordSet() map[string]bool {
	set := make(map[string]bool, len(c.Stopwords))
	for _, w := range c.Stopwords {
		set[w] = true
	}
	return set
}

func (c *Catalog) validate() error {
	for area := range c.AreaSolutions {
		if !schema.IsValidArea(area) {
			return fmt.Errorf("catalog: unknown area %q in areaSolutions", area)
		}
	}
	for area := range c.AreaRecommendations {
		if !schema.IsValidArea(area) {
			return fmt.Errorf("catalog: unknown area %q in areaRecommendations", area)
		}
	}
	seen := make(map[schema.PatternID]bool, len(c.Patterns))
	for i, p := range c.Patterns {
		if p.ID == "" || p.Text == "" {
			return fmt.Errorf("catalog: pattern[%d] needs id and text", i)
		}
		if seen[p.ID] {
			return fmt.Errorf("catalog: duplicate pattern id %q", p.ID)
		}
		seen[p.ID] = true
	}
	for i, s := range c.allSolutions() {
		if s.Title == "" {
			return fmt.Errorf("catalog: solution[%d] title is required", i)
		}
	}
	return nil
}

func (c *Catalog) allSolutions() []schema.Solution {
	var all []schema.Solution
	for _, sols := range c.AreaSolutions {
		all = append(all, sols...)
	}
	for _, ks := range c.KeywordSolutions {
		all = append(all, ks.Solutions...)
	}
	return append(all, c.GeneralSolutions...)
}
