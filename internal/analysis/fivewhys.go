package analysis

import (
	"fmt"
	"strings"

	"github.com/dshills/rootcause/internal/schema"
)

// AnalyzeFiveWhys collects the non-empty answers of d. The chain is complete
// once MaxWhys answers exist; the last answer is the (root or provisional)
// cause. Returns nil when no answer was given.
func AnalyzeFiveWhys(d *schema.FiveWhysData) *schema.FiveWhysFinding {
	if d == nil {
		return nil
	}
	var answers []string
	for _, w := range d.Whys {
		if a := strings.TrimSpace(w.Answer); a != "" {
			answers = append(answers, a)
		}
	}
	if len(answers) == 0 {
		return nil
	}
	complete := len(answers) >= schema.MaxWhys
	if complete {
		answers = answers[:schema.MaxWhys]
	}
	return &schema.FiveWhysFinding{
		Answers:  answers,
		Complete: complete,
		Cause:    answers[len(answers)-1],
	}
}

// FiveWhysText renders f as a summary paragraph. The problem title is quoted
// when the chain is complete.
func FiveWhysText(f *schema.FiveWhysFinding, p schema.Problem) string {
	if f == nil {
		return ""
	}
	var sb strings.Builder
	if f.Complete {
		fmt.Fprintf(&sb, "El análisis de los 5 Por qué ha permitido identificar la causa raíz del problema: \"%s\".\n\n", f.Cause)
		fmt.Fprintf(&sb, "Esta conclusión se alcanzó después de un análisis sistemático que profundizó en las causas subyacentes, partiendo del problema inicial: \"%s\".\n\n", p.Title)
		sb.WriteString("La cadena de causalidad identificada es:\n")
		writeChain(&sb, f.Answers)
		sb.WriteString("\nSe recomienda implementar acciones correctivas que aborden directamente esta causa raíz para prevenir la recurrencia del problema.")
		return sb.String()
	}

	fmt.Fprintf(&sb, "El análisis de los Por qué ha identificado como posible causa: \"%s\".\n\n", f.Cause)
	sb.WriteString("Sin embargo, el análisis no se completó hasta el quinto nivel de profundidad. Se recomienda continuar el análisis para identificar la causa raíz fundamental.\n\n")
	sb.WriteString("La cadena de causalidad identificada hasta ahora es:\n")
	writeChain(&sb, f.Answers)
	return strings.TrimRight(sb.String(), "\n")
}

func writeChain(sb *strings.Builder, answers []string) {
	for i, a := range answers {
		fmt.Fprintf(sb, "%d. %s\n", i+1, a)
	}
}
