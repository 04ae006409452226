package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/dshills/rootcause/internal/schema"
)

// entry is one stored methodology, conclusion or solution record.
type entry struct {
	kind string
	rec  schema.Record[any]
}

const (
	kindConclusion = "conclusion"
	kindSolutions  = "solutions"
)

// Memory is a process-local store backed by slices with linear scans.
// It is safe for concurrent use. Payloads are copied on the way in and out,
// so callers never share state with the store.
type Memory struct {
	mu       sync.RWMutex
	problems []schema.Problem
	records  []entry
	stamp    stamp
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{stamp: defaultStamp()}
}

func (m *Memory) SaveProblem(_ context.Context, p schema.Problem) (schema.Problem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.problems {
		if m.problems[i].ID == p.ID {
			if p.CreatedAt.IsZero() {
				p.CreatedAt = m.problems[i].CreatedAt
			}
			m.problems[i] = p
			return p, nil
		}
	}
	if p.ID == "" {
		p.ID = m.stamp.newID()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = m.stamp.now()
	}
	m.problems = append(m.problems, p)
	return p, nil
}

// replace drops the record for (kind, problemID) and appends a new one.
func (m *Memory) replace(kind, problemID string, data any) schema.Record[any] {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.records[:0]
	for _, e := range m.records {
		if e.kind == kind && e.rec.ProblemID == problemID {
			continue
		}
		kept = append(kept, e)
	}
	rec := schema.Record[any]{
		ID:        m.stamp.newID(),
		ProblemID: problemID,
		Data:      data,
		CreatedAt: m.stamp.now(),
	}
	m.records = append(kept, entry{kind: kind, rec: rec})
	return rec
}

// deepCopy round-trips v through JSON, the same encoding the gorm backend
// stores, so both backends hand back equal values.
func deepCopy[T any](v T) (*T, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	out := new(T)
	if err := json.Unmarshal(raw, out); err != nil {
		return nil, err
	}
	return out, nil
}

func saveMemory[T any](m *Memory, kind schema.Methodology, problemID string, data T) (schema.Record[T], error) {
	stored, err := deepCopy(data)
	if err != nil {
		return schema.Record[T]{}, fmt.Errorf("copying %s: %w", kind, err)
	}
	r := m.replace(string(kind), problemID, stored)
	return schema.Record[T]{ID: r.ID, ProblemID: r.ProblemID, Data: data, CreatedAt: r.CreatedAt}, nil
}

func (m *Memory) SaveIshikawa(_ context.Context, problemID string, d schema.IshikawaData) (schema.Record[schema.IshikawaData], error) {
	return saveMemory(m, schema.MethodIshikawa, problemID, d)
}

func (m *Memory) SaveFiveWhys(_ context.Context, problemID string, d schema.FiveWhysData) (schema.Record[schema.FiveWhysData], error) {
	return saveMemory(m, schema.MethodFiveWhys, problemID, d)
}

func (m *Memory) SavePareto(_ context.Context, problemID string, d schema.ParetoData) (schema.Record[schema.ParetoData], error) {
	return saveMemory(m, schema.MethodPareto, problemID, d)
}

func (m *Memory) SaveFMEA(_ context.Context, problemID string, d schema.FMEAData) (schema.Record[schema.FMEAData], error) {
	return saveMemory(m, schema.MethodFMEA, problemID, d)
}

func (m *Memory) SaveConclusion(_ context.Context, problemID, text string) (schema.ConclusionRecord, error) {
	r := m.replace(kindConclusion, problemID, text)
	return schema.ConclusionRecord{ID: r.ID, ProblemID: problemID, Conclusion: text, CreatedAt: r.CreatedAt}, nil
}

func (m *Memory) SaveSolutions(_ context.Context, problemID string, solutions []schema.Solution) (schema.SolutionSet, error) {
	solutions = append([]schema.Solution{}, solutions...)
	r := m.replace(kindSolutions, problemID, solutions)
	return schema.SolutionSet{ID: r.ID, ProblemID: problemID, Solutions: solutions, CreatedAt: r.CreatedAt}, nil
}

func (m *Memory) ProblemData(_ context.Context, id string) (schema.ProblemData, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	pd := schema.ProblemData{Solutions: []schema.Solution{}}
	for i := range m.problems {
		if m.problems[i].ID == id {
			p := m.problems[i]
			pd.Problem = &p
			break
		}
	}
	for _, e := range m.records {
		if e.rec.ProblemID != id {
			continue
		}
		var err error
		switch v := e.rec.Data.(type) {
		case *schema.IshikawaData:
			pd.IshikawaData, err = deepCopy(*v)
		case *schema.FiveWhysData:
			pd.FiveWhysData, err = deepCopy(*v)
		case *schema.ParetoData:
			pd.ParetoData, err = deepCopy(*v)
		case *schema.FMEAData:
			pd.FMEAData, err = deepCopy(*v)
		case string:
			text := v
			pd.Conclusion = &text
		case []schema.Solution:
			pd.Solutions = nonNil(append([]schema.Solution{}, v...))
		}
		if err != nil {
			return schema.ProblemData{Solutions: []schema.Solution{}}, fmt.Errorf("copying %s for %s: %w", e.kind, id, err)
		}
	}
	return pd, nil
}

func (m *Memory) ListProblems(_ context.Context) ([]schema.Problem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]schema.Problem{}, m.problems...), nil
}

func (m *Memory) Close() error { return nil }
