package revision

import (
	"strings"
	"testing"
)

func TestDiff_Changed(t *testing.T) {
	prev := "## Conclusión\n\nFalta de mantenimiento preventivo.\n"
	cur := "## Conclusión\n\nProcedimientos inadecuados o inexistentes.\n"
	out := Diff(prev, cur)
	if out == "" {
		t.Fatal("expected non-empty diff")
	}
	if !strings.HasPrefix(out, "@@") {
		t.Errorf("diff does not start with a hunk header: %q", out)
	}
}

func TestDiff_Identical(t *testing.T) {
	if out := Diff("igual", "igual"); out != "" {
		t.Errorf("expected empty diff, got %q", out)
	}
}

func TestDiff_WhitespaceOnly(t *testing.T) {
	prev := "línea uno   \r\nlínea dos\r\n"
	cur := "línea uno\nlínea dos\n"
	if out := Diff(prev, cur); out != "" {
		t.Errorf("expected empty diff for whitespace-only change, got %q", out)
	}
}

func TestDiff_FromEmpty(t *testing.T) {
	if out := Diff("", "nueva conclusión"); out == "" {
		t.Error("expected diff from empty previous")
	}
}

func TestStats(t *testing.T) {
	ins, del := Stats("abc", "abXc")
	if ins != 1 || del != 0 {
		t.Errorf("Stats = (%d, %d), want (1, 0)", ins, del)
	}
}
