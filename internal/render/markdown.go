package render

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/dshills/rootcause/internal/schema"
)

type markdownRenderer struct{}

var mdTemplate = template.Must(template.New("report").Parse(`# Informe de Análisis de Causa Raíz

**Problema:** {{ .Problem.Title }}
**Área:** {{ .Problem.Area }} | **Impacto:** {{ .Problem.Impact }} | **Fecha:** {{ .Problem.Date }} | **Estado:** {{ .Problem.Status }}
**Cobertura:** {{ .Summary.Coverage }}% ({{ .Summary.Completed }}/4 metodologías)
**Riesgo FMEA:** alto {{ .Summary.HighRisk }} | medio {{ .Summary.MediumRisk }} | bajo {{ .Summary.LowRisk }}
> Nota: los conteos de riesgo incluyen todos los modos de falla; --risk-threshold puede ocultar algunos en este informe.

---

{{ if .Conclusion.Markdown }}{{ .Conclusion.Markdown }}{{ else }}_Sin datos suficientes para una conclusión._{{ end }}
{{ with .Findings.FMEA }}{{ if .Critical }}
---

## Modos de Falla Críticos

| Proceso | Modo de falla | S | O | D | RPN | Causa |
|---|---|---|---|---|---|---|
{{ range .Critical }}| {{ .Process }} | {{ .FailureMode }} | {{ .Severity }} | {{ .Occurrence }} | {{ .Detection }} | {{ .RPN }} | {{ .Cause }} |
{{ end }}{{ end }}{{ end }}{{ if .Solutions }}
---

## Soluciones Propuestas
{{ range .Solutions }}
### {{ .Title }}
{{ .Description }}

*Impacto:* {{ .Impact }} | *Esfuerzo:* {{ .Effort }} | *Plazo:* {{ .Timeframe }}{{ if .Responsible }} | *Responsable:* {{ .Responsible }}{{ end }}
{{ end }}{{ end }}
---
*{{ .Tool }} {{ .Version }}{{ if .Input.CaseHash }} | {{ .Input.CaseHash }}{{ end }}*
`))

func (r *markdownRenderer) Render(report *schema.Report) ([]byte, error) {
	var buf bytes.Buffer
	if err := mdTemplate.Execute(&buf, report); err != nil {
		return nil, fmt.Errorf("rendering markdown: %w", err)
	}
	return buf.Bytes(), nil
}
