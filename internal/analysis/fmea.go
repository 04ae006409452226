package analysis

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dshills/rootcause/internal/schema"
)

const (
	// CriticalRPN is the RPN at or above which a failure mode is critical.
	CriticalRPN = 200
	// fallbackModes is how many top modes are reported when none is critical.
	fallbackModes = 3
)

// AnalyzeFMEA ranks failure modes by RPN, highest first; equal RPNs keep
// their input order. Modes at or above CriticalRPN are critical; when none
// is, the top three are reported instead. Returns nil when there are no modes.
func AnalyzeFMEA(d *schema.FMEAData) *schema.FMEAFinding {
	if d == nil || len(d.FailureModes) == 0 {
		return nil
	}
	sorted := append([]schema.FailureMode(nil), d.FailureModes...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].RPN > sorted[j].RPN
	})

	f := &schema.FMEAFinding{Evaluated: len(d.FailureModes)}
	for _, m := range sorted {
		if m.RPN >= CriticalRPN {
			f.Critical = append(f.Critical, m)
		}
	}
	f.AboveThreshold = len(f.Critical) > 0
	if !f.AboveThreshold {
		f.Critical = sorted[:min(fallbackModes, len(sorted))]
	}

	seen := make(map[string]bool, len(f.Critical))
	for _, m := range f.Critical {
		if !seen[m.Cause] {
			seen[m.Cause] = true
			f.UniqueCauses = append(f.UniqueCauses, m.Cause)
		}
	}
	return f
}

// FMEAText renders f as a summary paragraph. The highest-RPN mode is quoted
// as the root cause.
func FMEAText(f *schema.FMEAFinding) string {
	if f == nil || len(f.Critical) == 0 {
		return ""
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "El análisis FMEA ha evaluado %d modos de falla potenciales. ", f.Evaluated)
	fmt.Fprintf(&sb, "Se han identificado %d modos de falla críticos con los mayores valores de RPN:\n\n", len(f.Critical))

	for i, m := range f.Critical {
		actions := m.Actions
		if strings.TrimSpace(actions) == "" {
			actions = "No especificadas"
		}
		fmt.Fprintf(&sb, "%d. Modo de falla: \"%s\" en el proceso \"%s\"\n", i+1, m.FailureMode, m.Process)
		fmt.Fprintf(&sb, "   - Severidad: %d, Ocurrencia: %d, Detección: %d\n", m.Severity, m.Occurrence, m.Detection)
		fmt.Fprintf(&sb, "   - RPN: %d\n", m.RPN)
		fmt.Fprintf(&sb, "   - Causa: \"%s\"\n", m.Cause)
		fmt.Fprintf(&sb, "   - Efecto: \"%s\"\n", m.Effect)
		fmt.Fprintf(&sb, "   - Acciones recomendadas: %s\n\n", actions)
	}

	top := f.Critical[0]
	if len(f.UniqueCauses) == 1 {
		fmt.Fprintf(&sb, "El análisis revela una causa raíz común en los modos de falla críticos: \"%s\". Esta debe ser la prioridad para las acciones correctivas.", f.UniqueCauses[0])
	} else {
		fmt.Fprintf(&sb, "El análisis revela múltiples causas en los modos de falla críticos: %s.\n\n", strings.Join(f.UniqueCauses, "; "))
		fmt.Fprintf(&sb, "La causa más crítica está asociada con el modo de falla de mayor RPN: \"%s\".", top.Cause)
	}

	fmt.Fprintf(&sb, "\n\nSe recomienda implementar acciones correctivas inmediatas para el modo de falla \"%s\" (RPN = %d), enfocándose en su causa raíz: \"%s\".", top.FailureMode, top.RPN, top.Cause)
	return sb.String()
}
