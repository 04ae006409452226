package validate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/dshills/rootcause/internal/schema"
)

const (
	minScore = 1
	maxScore = 10
	maxRPN   = maxScore * maxScore * maxScore
	dateFmt  = "2006-01-02"
)

// ParseCase strips markdown fences, decodes a JSON or YAML case and
// normalizes it. JSON is detected by a leading '{'.
func ParseCase(raw []byte, now time.Time) (*schema.Case, error) {
	cleaned := stripFences(string(raw))

	var c schema.Case
	if strings.HasPrefix(cleaned, "{") {
		dec := json.NewDecoder(bytes.NewReader([]byte(cleaned)))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&c); err != nil {
			return nil, fmt.Errorf("JSON parse failed: %w", err)
		}
	} else {
		dec := yaml.NewDecoder(strings.NewReader(cleaned))
		dec.KnownFields(true)
		if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("YAML parse failed: %w", err)
		}
	}

	if err := Case(&c, now); err != nil {
		return nil, err
	}
	return &c, nil
}

// stripFences removes leading/trailing markdown code fences (```json ... ``` or ``` ... ```).
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx >= 0 {
			s = s[idx+1:]
		}
	}
	if strings.HasSuffix(s, "```") {
		if idx := strings.LastIndex(s, "\n```"); idx >= 0 {
			s = s[:idx]
		}
	}
	return strings.TrimSpace(s)
}

// Case validates and normalizes every part of c in place.
func Case(c *schema.Case, now time.Time) error {
	if err := Problem(&c.Problem, now); err != nil {
		return err
	}
	if c.Ishikawa != nil {
		if err := Ishikawa(c.Ishikawa); err != nil {
			return err
		}
	}
	if c.FiveWhys != nil {
		if err := FiveWhys(c.FiveWhys); err != nil {
			return err
		}
	}
	if c.Pareto != nil {
		if err := Pareto(c.Pareto); err != nil {
			return err
		}
	}
	if c.FMEA != nil {
		if err := FMEA(c.FMEA); err != nil {
			return err
		}
	}
	return nil
}

// Problem checks the required fields and enums of p and fills the id, date
// and status when they are missing.
func Problem(p *schema.Problem, now time.Time) error {
	p.Title = strings.TrimSpace(p.Title)
	p.Description = strings.TrimSpace(p.Description)
	if p.Title == "" {
		return fmt.Errorf("problem: title is required")
	}
	if p.Description == "" {
		return fmt.Errorf("problem: description is required")
	}
	if p.Impact != "" && !schema.IsValidImpact(p.Impact) {
		return fmt.Errorf("problem: invalid impact %q (must be Bajo, Medio, Alto or Crítico)", p.Impact)
	}
	if p.Area != "" && !schema.IsValidArea(p.Area) {
		return fmt.Errorf("problem: unknown area %q", p.Area)
	}
	if p.Status == "" {
		p.Status = schema.StatusInAnalysis
	} else if !schema.IsValidStatus(p.Status) {
		return fmt.Errorf("problem: invalid status %q", p.Status)
	}
	if p.Date == "" {
		p.Date = now.Format(dateFmt)
	} else if _, err := time.Parse(dateFmt, p.Date); err != nil {
		return fmt.Errorf("problem: date %q is not YYYY-MM-DD", p.Date)
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// Ishikawa checks category ids and names. Missing categories default to the
// six classic ones.
func Ishikawa(d *schema.IshikawaData) error {
	if len(d.Categories) == 0 {
		d.Categories = schema.DefaultIshikawaCategories()
	}
	seen := make(map[int]bool, len(d.Categories))
	for i, cat := range d.Categories {
		prefix := fmt.Sprintf("ishikawa.categories[%d]", i)
		if strings.TrimSpace(cat.Name) == "" {
			return fmt.Errorf("%s: name is required", prefix)
		}
		if seen[cat.ID] {
			return fmt.Errorf("%s: duplicate id %d", prefix, cat.ID)
		}
		seen[cat.ID] = true
	}
	return nil
}

// FiveWhys checks the chain is at most MaxWhys deep.
func FiveWhys(d *schema.FiveWhysData) error {
	if len(d.Whys) > schema.MaxWhys {
		return fmt.Errorf("fiveWhys: %d whys exceeds the maximum of %d", len(d.Whys), schema.MaxWhys)
	}
	return nil
}

// Pareto rejects negative frequencies.
func Pareto(d *schema.ParetoData) error {
	for i, c := range d.Causes {
		if c.Frequency < 0 {
			return fmt.Errorf("pareto.causes[%d]: frequency %d must be ≥ 0", i, c.Frequency)
		}
	}
	return nil
}

// FMEA checks the 1..10 scales and sets RPN from them whenever all three are
// given. A mode that carries its own RPN may leave the scales unset.
func FMEA(d *schema.FMEAData) error {
	for i := range d.FailureModes {
		m := &d.FailureModes[i]
		prefix := fmt.Sprintf("fmea.failureModes[%d]", i)
		if m.RPN < 0 || m.RPN > maxRPN {
			return fmt.Errorf("%s: rpn %d out of range 0..%d", prefix, m.RPN, maxRPN)
		}
		required := m.RPN == 0
		for _, s := range []struct {
			name  string
			value int
		}{
			{"severity", m.Severity},
			{"occurrence", m.Occurrence},
			{"detection", m.Detection},
		} {
			if err := validateScore(s.value, required, prefix+"."+s.name); err != nil {
				return err
			}
		}
		if m.Severity != 0 && m.Occurrence != 0 && m.Detection != 0 {
			m.RPN = m.ComputeRPN()
		}
	}
	return nil
}

func validateScore(v int, required bool, prefix string) error {
	if v == 0 && !required {
		return nil
	}
	if v < minScore || v > maxScore {
		return fmt.Errorf("%s: %d out of range %d..%d", prefix, v, minScore, maxScore)
	}
	return nil
}
