package analysis

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dshills/rootcause/internal/schema"
)

// VitalShare is the cumulative percentage the vital few must reach.
const VitalShare = 80.0

// shareEpsilon absorbs float error when shares such as 1/3 sum to the threshold.
const shareEpsilon = 1e-9

// AnalyzePareto ranks causes with a name and a positive frequency by
// frequency, highest first; equal frequencies keep their input order. The
// vital few is the shortest ranked prefix whose cumulative share reaches
// VitalShare. Returns nil when no cause is usable.
func AnalyzePareto(d *schema.ParetoData) *schema.ParetoFinding {
	if d == nil {
		return nil
	}
	var valid []schema.ParetoCause
	total := 0
	for _, c := range d.Causes {
		if strings.TrimSpace(c.Name) == "" || c.Frequency <= 0 {
			continue
		}
		valid = append(valid, c)
		total += c.Frequency
	}
	if len(valid) == 0 {
		return nil
	}
	sort.SliceStable(valid, func(i, j int) bool {
		return valid[i].Frequency > valid[j].Frequency
	})

	f := &schema.ParetoFinding{ValidCauses: len(valid), Total: total}
	for _, c := range valid {
		f.Ranked = append(f.Ranked, schema.ParetoShare{
			Name:       c.Name,
			Frequency:  c.Frequency,
			Percentage: float64(c.Frequency) / float64(total) * 100,
		})
	}
	for _, s := range f.Ranked {
		f.VitalFew = append(f.VitalFew, s)
		f.Cumulative += s.Percentage
		if f.Cumulative >= VitalShare-shareEpsilon {
			break
		}
	}
	return f
}

// VitalNames returns the names of the vital few.
func VitalNames(f *schema.ParetoFinding) []string {
	if f == nil {
		return nil
	}
	names := make([]string, len(f.VitalFew))
	for i, s := range f.VitalFew {
		names[i] = s.Name
	}
	return names
}

// ParetoText renders f as a summary paragraph.
func ParetoText(f *schema.ParetoFinding) string {
	if f == nil {
		return ""
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "El análisis de Pareto ha identificado %d causas potenciales del problema. ", f.ValidCauses)
	fmt.Fprintf(&sb, "Siguiendo el principio de Pareto (regla 80/20), se han identificado %d causas principales que representan aproximadamente el %.1f%% del problema:\n\n", len(f.VitalFew), f.Cumulative)
	for i, s := range f.VitalFew {
		fmt.Fprintf(&sb, "%d. %s (%.1f%% del total)\n", i+1, s.Name, s.Percentage)
	}
	top := f.VitalFew[0]
	fmt.Fprintf(&sb, "\nLa causa principal \"%s\" representa por sí sola el %.1f%% del problema, lo que la convierte en el factor más crítico a abordar.\n\n", top.Name, top.Percentage)
	fmt.Fprintf(&sb, "Se recomienda priorizar acciones correctivas enfocadas en estas \"pocas vitales\", especialmente en \"%s\", para obtener la mayor mejora con el menor esfuerzo.", top.Name)
	return sb.String()
}
