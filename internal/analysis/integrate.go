package analysis

import (
	"bytes"
	"sort"
	"strings"
	"text/template"

	"github.com/dshills/rootcause/internal/catalog"
	"github.com/dshills/rootcause/internal/schema"
	"github.com/dshills/rootcause/internal/textscan"
)

const (
	topKeywords  = 10
	topPatterns  = 3
	minWordRunes = 3
)

// keySentenceMarkers select the sentences that likely talk about causes.
var keySentenceMarkers = []string{"causa", "recomend", "prioriz", "crítico"}

// fallbackPriority is the order in which a single methodology is trusted when
// no common pattern emerges.
var fallbackPriority = []schema.Methodology{
	schema.MethodFMEA, schema.MethodFiveWhys, schema.MethodPareto, schema.MethodIshikawa,
}

// Integrate combines the non-empty summaries into one conclusion. Key
// sentences are tokenized, their most frequent keywords score the catalog
// patterns, and the best pattern becomes the root cause. With no summaries
// the zero Conclusion is returned.
func Integrate(summaries []schema.MethodologySummary, p schema.Problem, cat *catalog.Catalog) schema.Conclusion {
	var valid []schema.MethodologySummary
	for _, s := range summaries {
		if strings.TrimSpace(s.Summary) != "" {
			valid = append(valid, s)
		}
	}
	if len(valid) == 0 {
		return schema.Conclusion{}
	}

	var keySentences []string
	for _, s := range valid {
		for _, sentence := range textscan.Sentences(s.Summary) {
			if textscan.ContainsAny(sentence, keySentenceMarkers...) {
				keySentences = append(keySentences, sentence)
			}
		}
	}

	c := schema.Conclusion{Patterns: ScorePatterns(keySentences, cat)}
	if len(c.Patterns) > 0 {
		c.RootCause = c.Patterns[0].Text
		c.Recommendations = cat.Recommendations(c.RootCause, p.Area)
	} else {
		c.Source, c.RootCause = fallbackRootCause(valid)
		c.Recommendations = cat.Recommendations("", p.Area)
	}

	c.Markdown = renderConclusion(valid, p, c)
	return c
}

// ScorePatterns scores every catalog pattern by how many of its words are
// among the most frequent keywords of sentences and returns the best three,
// ties in catalog order. No sentences means no patterns.
func ScorePatterns(sentences []string, cat *catalog.Catalog) []schema.Pattern {
	if len(sentences) == 0 {
		return nil
	}
	top := make(map[string]bool, topKeywords)
	for _, w := range rankKeywords(sentences, cat.StopwordSet(), topKeywords) {
		top[w] = true
	}

	scored := make([]schema.Pattern, 0, len(cat.Patterns))
	for _, p := range cat.Patterns {
		words := strings.Fields(strings.ToLower(p.Text))
		score := 0
		for _, w := range words {
			if top[w] {
				score++
			}
		}
		var confidence float64
		if len(words) > 0 {
			confidence = float64(score) / float64(len(words))
		}
		scored = append(scored, schema.Pattern{ID: p.ID, Text: p.Text, Score: score, Confidence: confidence})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored[:min(topPatterns, len(scored))]
}

// rankKeywords returns the n most frequent keywords, ties in first-seen order.
func rankKeywords(sentences []string, stop map[string]bool, n int) []string {
	counts := make(map[string]int)
	var order []string
	for _, s := range sentences {
		for _, w := range textscan.Keywords(s, minWordRunes, stop) {
			if counts[w] == 0 {
				order = append(order, w)
			}
			counts[w]++
		}
	}
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	return order[:min(n, len(order))]
}

// fallbackRootCause picks the most trusted methodology present and returns
// its sentence naming the root or main cause, or its first sentence.
func fallbackRootCause(valid []schema.MethodologySummary) (schema.Methodology, string) {
	for _, m := range fallbackPriority {
		for _, s := range valid {
			if s.Methodology != m {
				continue
			}
			sentences := textscan.Sentences(s.Summary)
			for _, sentence := range sentences {
				if textscan.ContainsAny(sentence, "causa raíz", "principal") {
					return m, sentence
				}
			}
			if len(sentences) > 0 {
				return m, sentences[0]
			}
		}
	}
	return "", ""
}

type highlight struct {
	Name     string
	Sentence string
}

type conclusionView struct {
	Problem         schema.Problem
	Methods         []string
	Highlights      []highlight
	Patterns        []schema.Pattern
	RootCause       string
	SourceName      string
	Contributing    []schema.Pattern
	Recommendations []string
}

var conclusionTemplate = template.Must(template.New("conclusion").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}).Parse(`# Análisis Integrado de Causa Raíz

## Resumen del Problema
**Problema:** {{ .Problem.Title }}
**Descripción:** {{ .Problem.Description }}
**Área:** {{ .Problem.Area }}
**Impacto:** {{ .Problem.Impact }}

## Metodologías Aplicadas
Se han aplicado {{ len .Methods }} metodologías de análisis de causa raíz:
{{ range .Methods }}- {{ . }}
{{ end }}
## Hallazgos Principales por Metodología
{{ range .Highlights }}### {{ .Name }}
{{ .Sentence }}.

{{ end }}## Patrones Comunes Identificados
{{ if .Patterns }}{{ range $i, $p := .Patterns }}{{ inc $i }}. {{ $p.Text }}
{{ end }}{{ else }}No se identificaron patrones comunes claros entre las diferentes metodologías.
{{ end }}
## Conclusión de Causa Raíz
{{ if .Patterns }}Basado en el análisis integrado de las diferentes metodologías, se concluye que la causa raíz principal del problema es:

**{{ .RootCause }}**
{{ if .Contributing }}
Factores contribuyentes adicionales incluyen:
{{ range .Contributing }}- {{ .Text }}
{{ end }}{{ end }}{{ else if .RootCause }}Basado principalmente en el análisis de {{ .SourceName }}, se concluye que la causa raíz principal del problema es:

**{{ .RootCause }}**
{{ else }}No se ha podido determinar una causa raíz concluyente. Se recomienda profundizar el análisis.
{{ end }}
## Recomendaciones
Basado en la causa raíz identificada, se recomienda:

{{ range $i, $r := .Recommendations }}{{ inc $i }}. {{ $r }}
{{ end }}`))

func renderConclusion(valid []schema.MethodologySummary, p schema.Problem, c schema.Conclusion) string {
	view := conclusionView{
		Problem:         p,
		Patterns:        c.Patterns,
		RootCause:       c.RootCause,
		SourceName:      c.Source.DisplayName(),
		Recommendations: c.Recommendations,
	}
	if len(c.Patterns) > 1 {
		view.Contributing = c.Patterns[1:]
	}
	for _, s := range valid {
		view.Methods = append(view.Methods, s.Name)
		sentences := textscan.Sentences(s.Summary)
		if len(sentences) > 0 {
			view.Highlights = append(view.Highlights, highlight{Name: s.Name, Sentence: sentences[0]})
		}
	}

	var buf bytes.Buffer
	// The template only ranges over slices and prints strings.
	_ = conclusionTemplate.Execute(&buf, view)
	return buf.String()
}
