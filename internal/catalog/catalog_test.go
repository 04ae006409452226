package catalog

import (
	"strings"
	"testing"

	"github.com/dshills/rootcause/internal/schema"
)

func TestDefault_AllAreasExceptOtherHaveSolutions(t *testing.T) {
	c := Default()
	for _, area := range []schema.Area{
		schema.AreaProduction, schema.AreaQuality, schema.AreaLogistics,
		schema.AreaMaintenance, schema.AreaSafety,
	} {
		if len(c.AreaSolutions[area]) == 0 {
			t.Errorf("area %q has no solutions", area)
		}
		if len(c.AreaRecommendations[area]) == 0 {
			t.Errorf("area %q has no recommendations", area)
		}
	}
	if len(c.Patterns) != 10 {
		t.Errorf("expected 10 patterns, got %d", len(c.Patterns))
	}
	if err := c.validate(); err != nil {
		t.Errorf("default catalog invalid: %v", err)
	}
}

func TestDefault_ReturnsIndependentCopies(t *testing.T) {
	a := Default()
	a.GeneralSolutions[0].Title = "changed"
	if Default().GeneralSolutions[0].Title == "changed" {
		t.Error("Default shares state between calls")
	}
}

func TestSelectSolutions_EmptyConclusion(t *testing.T) {
	got := Default().SelectSolutions("   ", schema.AreaProduction)
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil list, got %v", got)
	}
}

func TestSelectSolutions_AreaFirstThenKeywordThenGeneral(t *testing.T) {
	got := Default().SelectSolutions("Problemas de comunicación entre turnos.", schema.AreaLogistics)
	if len(got) != MaxSolutions {
		t.Fatalf("expected %d solutions, got %d", MaxSolutions, len(got))
	}
	want := []string{
		"Optimización de la cadena de suministro",
		"Sistema de gestión de inventario",
		"Optimización de rutas y flujos",
		"Sistema de comunicación estructurada",
		"Estandarización de procedimientos operativos",
	}
	for i, title := range want {
		if got[i].Title != title {
			t.Errorf("solution[%d] = %q, want %q", i, got[i].Title, title)
		}
	}
}

func TestSelectSolutions_UnknownAreaUsesKeywordsAndGeneral(t *testing.T) {
	got := Default().SelectSolutions("Mantenimiento insuficiente de equipos", schema.AreaOther)
	if got[0].Title != "Sistema CMMS" {
		t.Errorf("first solution = %q, want Sistema CMMS", got[0].Title)
	}
	if len(got) != MaxSolutions {
		t.Errorf("expected %d solutions, got %d", MaxSolutions, len(got))
	}
}

func TestSelectSolutions_DeduplicatesByTitle(t *testing.T) {
	c := Default()
	c.AreaSolutions[schema.AreaQuality] = append(c.AreaSolutions[schema.AreaQuality], c.GeneralSolutions[0])
	got := c.SelectSolutions("texto cualquiera sin claves", schema.AreaQuality)
	seen := map[string]bool{}
	for _, s := range got {
		if seen[s.Title] {
			t.Errorf("duplicate title %q", s.Title)
		}
		seen[s.Title] = true
	}
}

func TestSelectSolutions_KeywordMatchesInsideWords(t *testing.T) {
	// "procedimientos" contains "procedimiento"
	got := Default().SelectSolutions("Faltan procedimientos escritos", "")
	if got[0].Title != "Sistema de gestión documental" {
		t.Errorf("first solution = %q, want Sistema de gestión documental", got[0].Title)
	}
}

func TestRecommendations_GenericOnly(t *testing.T) {
	got := Default().Recommendations("", "")
	if len(got) != 3 {
		t.Fatalf("expected 3 generic recommendations, got %d", len(got))
	}
}

func TestRecommendations_AreaThenKeywordThenGeneric(t *testing.T) {
	got := Default().Recommendations("Mantenimiento inadecuado o insuficiente de equipos", schema.AreaProduction)
	if len(got) != MaxRecommendations {
		t.Fatalf("expected %d recommendations, got %d", MaxRecommendations, len(got))
	}
	if got[0] != "Implementar metodología SMED para reducir tiempos de cambio" {
		t.Errorf("first recommendation should come from the area table, got %q", got[0])
	}
	if got[3] != "Implementar un sistema de mantenimiento preventivo basado en condiciones" {
		t.Errorf("fourth recommendation should come from the keyword table, got %q", got[3])
	}
}

func TestRecommendations_LaterKeywordWinsFront(t *testing.T) {
	got := Default().Recommendations("falta de procedimientos y de calidad", "")
	if !strings.Contains(got[0], "calidad") {
		t.Errorf("expected calidad table first, got %q", got[0])
	}
	if !strings.Contains(got[3], "procedimientos") {
		t.Errorf("expected procedimientos table after calidad, got %q", got[3])
	}
}

func TestParse_OverridesOnlyPresentTables(t *testing.T) {
	data := []byte(`
generalSolutions:
  - title: Revisión semanal
    description: Reunión semanal de seguimiento.
    impact: Medio
    effort: Bajo
    timeframe: Corto plazo
`)
	c, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(c.GeneralSolutions) != 1 || c.GeneralSolutions[0].Title != "Revisión semanal" {
		t.Errorf("general solutions not overridden: %+v", c.GeneralSolutions)
	}
	if len(c.AreaSolutions[schema.AreaProduction]) != 3 {
		t.Error("area solutions should keep defaults")
	}
}

func TestParse_RejectsUnknownArea(t *testing.T) {
	_, err := Parse([]byte("areaSolutions:\n  Marketing:\n    - title: X\n"))
	if err == nil {
		t.Error("expected error for unknown area")
	}
}

func TestParse_RejectsDuplicatePatternIDs(t *testing.T) {
	data := []byte("patterns:\n  - {id: A, text: uno}\n  - {id: A, text: dos}\n")
	if _, err := Parse(data); err == nil {
		t.Error("expected error for duplicate pattern ids")
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := LoadFile("/nonexistent/catalog.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}
