package analysis

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dshills/rootcause/internal/schema"
)

// SignificantShare is the percentage of all causes a category needs to be
// reported as significant.
const SignificantShare = 20.0

// AnalyzeIshikawa finds the significant categories of d. Categories are
// visited in ascending id order; causes filed under an id with no matching
// category still count toward the total. Returns nil when there are no causes.
func AnalyzeIshikawa(d *schema.IshikawaData) *schema.IshikawaFinding {
	if d == nil || len(d.Causes) == 0 {
		return nil
	}

	ids := make([]int, 0, len(d.Causes))
	total := 0
	for id, causes := range d.Causes {
		ids = append(ids, id)
		total += len(causes)
	}
	if total == 0 {
		return nil
	}
	sort.Ints(ids)

	names := make(map[int]string, len(d.Categories))
	for _, cat := range d.Categories {
		names[cat.ID] = cat.Name
	}

	finding := &schema.IshikawaFinding{TotalCauses: total}
	for _, id := range ids {
		count := len(d.Causes[id])
		share := float64(count) / float64(total) * 100
		name, ok := names[id]
		if share < SignificantShare || !ok {
			continue
		}
		finding.Significant = append(finding.Significant, categoryFinding(d, id, name, count, share))
	}
	if len(finding.Significant) > 0 {
		return finding
	}

	maxID, maxCount := 0, 0
	for _, id := range ids {
		if n := len(d.Causes[id]); n > maxCount {
			maxID, maxCount = id, n
		}
	}
	if name, ok := names[maxID]; ok && maxCount > 0 {
		share := float64(maxCount) / float64(total) * 100
		finding.Significant = append(finding.Significant, categoryFinding(d, maxID, name, maxCount, share))
		finding.Fallback = true
	}
	return finding
}

func categoryFinding(d *schema.IshikawaData, id int, name string, count int, share float64) schema.CategoryFinding {
	texts := make([]string, 0, len(d.Causes[id]))
	for _, c := range d.Causes[id] {
		texts = append(texts, c.Text)
	}
	return schema.CategoryFinding{
		CategoryID: id,
		Category:   name,
		Count:      count,
		Share:      share,
		Causes:     texts,
	}
}

// IshikawaText renders f as a summary paragraph.
func IshikawaText(f *schema.IshikawaFinding) string {
	if f == nil {
		return ""
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Basado en el análisis de Ishikawa, se han identificado %d posibles causas distribuidas en diferentes categorías. ", f.TotalCauses)

	if len(f.Significant) == 0 {
		sb.WriteString("No se han identificado categorías con un número significativo de causas. Se recomienda profundizar el análisis.")
		return sb.String()
	}

	names := make([]string, len(f.Significant))
	for i, c := range f.Significant {
		names[i] = c.Category
	}
	fmt.Fprintf(&sb, "Las categorías más significativas son: %s. ", strings.Join(names, ", "))

	for _, c := range f.Significant {
		if len(c.Causes) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "\n\nEn la categoría \"%s\", las causas principales identificadas son: %s. ", c.Category, strings.Join(c.Causes, "; "))
	}

	fmt.Fprintf(&sb, "\n\nSe recomienda priorizar acciones correctivas enfocadas en la categoría \"%s\" para abordar la causa raíz del problema.", f.Significant[0].Category)
	return sb.String()
}
