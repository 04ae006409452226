// Package workflow orchestrates validation, analysis, storage and solution
// selection for both the CLI and the HTTP server.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/dshills/rootcause/internal/analysis"
	"github.com/dshills/rootcause/internal/catalog"
	"github.com/dshills/rootcause/internal/logger"
	"github.com/dshills/rootcause/internal/review"
	"github.com/dshills/rootcause/internal/revision"
	"github.com/dshills/rootcause/internal/schema"
	"github.com/dshills/rootcause/internal/schema/validate"
	"github.com/dshills/rootcause/internal/store"
)

// Tool is the name stamped on every report.
const Tool = "rootcause"

var (
	ErrProblemNotFound    = errors.New("problem not found")
	ErrUnknownMethodology = errors.New("unknown methodology")
	// ErrInvalid wraps every input validation failure.
	ErrInvalid = errors.New("invalid input")
)

// Options tune a report.
type Options struct {
	CaseFile      string
	CaseHash      string
	RiskThreshold schema.RiskBand
	Version       string
}

// MethodologyResult is a saved methodology record with its generated summary.
type MethodologyResult struct {
	Methodology schema.Methodology `json:"methodology"`
	Record      any                `json:"record"`
	Summary     string             `json:"summary"`
}

// ConclusionResult is a saved conclusion plus the diff from the one it replaced.
type ConclusionResult struct {
	Record     schema.ConclusionRecord `json:"record"`
	Conclusion schema.Conclusion       `json:"conclusion"`
	// Diff is empty when there was no previous conclusion or it was identical.
	Diff string `json:"diff"`
	// Inserted and Deleted count the runes the revision added and removed.
	Inserted int `json:"inserted"`
	Deleted  int `json:"deleted"`
}

// Engine runs analyses against a store and a solution catalog.
type Engine struct {
	store   store.Store
	catalog atomic.Pointer[catalog.Catalog]
	log     *logger.Logger
	now     func() time.Time
}

// New returns an Engine. A nil catalog uses the built-in tables and a nil
// logger discards output.
func New(s store.Store, cat *catalog.Catalog, log *logger.Logger) *Engine {
	if cat == nil {
		cat = catalog.Default()
	}
	if log == nil {
		log = logger.NewNop()
	}
	e := &Engine{store: s, log: log.With("service", "Workflow"), now: time.Now}
	e.catalog.Store(cat)
	return e
}

// SetCatalog swaps the solution catalog used by later calls. Calls already
// running keep the catalog they started with.
func (e *Engine) SetCatalog(cat *catalog.Catalog) {
	if cat == nil {
		cat = catalog.Default()
	}
	e.catalog.Store(cat)
}

// Analyze builds a full report for c without touching the store.
func (e *Engine) Analyze(c *schema.Case, opts Options) *schema.Report {
	threshold := opts.RiskThreshold
	if threshold == "" {
		threshold = schema.RiskLow
	}

	cat := e.catalog.Load()
	summaries := analysis.Summaries(c)
	findings := analysis.Collect(c)
	conclusion := analysis.Integrate(summaries, c.Problem, cat)
	summary := review.Summarize(c, summaries, findings)

	if findings.FMEA != nil {
		filtered := *findings.FMEA
		filtered.Critical = review.FilterByBand(findings.FMEA.Critical, threshold)
		findings.FMEA = &filtered
	}

	e.log.Debug("case analyzed",
		"problem_id", c.Problem.ID,
		"coverage", summary.Coverage,
		"root_cause", conclusion.RootCause,
		"patterns", len(conclusion.Patterns),
	)

	return &schema.Report{
		Tool:    Tool,
		Version: opts.Version,
		Input: schema.Input{
			CaseFile:      opts.CaseFile,
			CaseHash:      opts.CaseHash,
			RiskThreshold: string(threshold),
		},
		Problem:    c.Problem,
		Summaries:  summaries,
		Findings:   findings,
		Conclusion: conclusion,
		Solutions:  cat.SelectSolutions(conclusion.Markdown, c.Problem.Area),
		Summary:    summary,
	}
}

// SaveProblem validates p, fills its defaults and stores it.
func (e *Engine) SaveProblem(ctx context.Context, p schema.Problem) (schema.Problem, error) {
	if err := validate.Problem(&p, e.now()); err != nil {
		return schema.Problem{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	saved, err := e.store.SaveProblem(ctx, p)
	if err != nil {
		return schema.Problem{}, err
	}
	e.log.Info("problem saved", "problem_id", saved.ID, "area", saved.Area)
	return saved, nil
}

// SaveCase stores the problem and every methodology present in c.
func (e *Engine) SaveCase(ctx context.Context, c *schema.Case) error {
	p, err := e.store.SaveProblem(ctx, c.Problem)
	if err != nil {
		return err
	}
	c.Problem = p
	if c.Ishikawa != nil {
		if _, err := e.store.SaveIshikawa(ctx, p.ID, *c.Ishikawa); err != nil {
			return err
		}
	}
	if c.FiveWhys != nil {
		if _, err := e.store.SaveFiveWhys(ctx, p.ID, *c.FiveWhys); err != nil {
			return err
		}
	}
	if c.Pareto != nil {
		if _, err := e.store.SavePareto(ctx, p.ID, *c.Pareto); err != nil {
			return err
		}
	}
	if c.FMEA != nil {
		if _, err := e.store.SaveFMEA(ctx, p.ID, *c.FMEA); err != nil {
			return err
		}
	}
	e.log.Info("case saved", "problem_id", p.ID)
	return nil
}

// SaveMethodology decodes raw for the methodology named by tag, stores it
// and returns the record with its summary. The problem need not exist; its
// title is only used to word the Five-Whys summary.
func (e *Engine) SaveMethodology(ctx context.Context, problemID, tag string, raw []byte) (*MethodologyResult, error) {
	m, ok := schema.ParseMethodology(tag)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMethodology, tag)
	}
	data, err := validate.DecodeMethodology(m, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	pd, err := e.store.ProblemData(ctx, problemID)
	if err != nil {
		return nil, err
	}
	c := &schema.Case{}
	if pd.Problem != nil {
		c.Problem = *pd.Problem
	}

	var record any
	switch d := data.(type) {
	case *schema.IshikawaData:
		c.Ishikawa = d
		record, err = e.store.SaveIshikawa(ctx, problemID, *d)
	case *schema.FiveWhysData:
		c.FiveWhys = d
		record, err = e.store.SaveFiveWhys(ctx, problemID, *d)
	case *schema.ParetoData:
		c.Pareto = d
		record, err = e.store.SavePareto(ctx, problemID, *d)
	case *schema.FMEAData:
		c.FMEA = d
		record, err = e.store.SaveFMEA(ctx, problemID, *d)
	}
	if err != nil {
		return nil, err
	}

	e.log.Info("methodology saved", "problem_id", problemID, "methodology", m)
	return &MethodologyResult{Methodology: m, Record: record, Summary: analysis.Summarize(m, c)}, nil
}

// Conclude integrates the stored methodology data into a conclusion, stores
// it over any previous one and returns the diff between the two.
func (e *Engine) Conclude(ctx context.Context, problemID string) (*ConclusionResult, error) {
	pd, err := e.store.ProblemData(ctx, problemID)
	if err != nil {
		return nil, err
	}
	c, ok := schema.CaseFromProblemData(pd)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProblemNotFound, problemID)
	}

	conclusion := analysis.Integrate(analysis.Summaries(c), c.Problem, e.catalog.Load())
	rec, err := e.store.SaveConclusion(ctx, problemID, conclusion.Markdown)
	if err != nil {
		return nil, err
	}

	res := &ConclusionResult{Record: rec, Conclusion: conclusion}
	if pd.Conclusion != nil {
		res.Diff = revision.Diff(*pd.Conclusion, conclusion.Markdown)
		if res.Diff != "" {
			res.Inserted, res.Deleted = revision.Stats(*pd.Conclusion, conclusion.Markdown)
		}
	}
	e.log.Info("conclusion saved",
		"problem_id", problemID,
		"root_cause", conclusion.RootCause,
		"revised", res.Diff != "",
		"inserted", res.Inserted,
		"deleted", res.Deleted,
	)
	return res, nil
}

// ProposeSolutions stores override when it is non-nil, otherwise the catalog
// selection for the stored conclusion and the problem area.
func (e *Engine) ProposeSolutions(ctx context.Context, problemID string, override []schema.Solution) (schema.SolutionSet, error) {
	pd, err := e.store.ProblemData(ctx, problemID)
	if err != nil {
		return schema.SolutionSet{}, err
	}
	if pd.Problem == nil {
		return schema.SolutionSet{}, fmt.Errorf("%w: %s", ErrProblemNotFound, problemID)
	}

	solutions := override
	if solutions == nil {
		var conclusion string
		if pd.Conclusion != nil {
			conclusion = *pd.Conclusion
		}
		solutions = e.catalog.Load().SelectSolutions(conclusion, pd.Problem.Area)
	}

	set, err := e.store.SaveSolutions(ctx, problemID, solutions)
	if err != nil {
		return schema.SolutionSet{}, err
	}
	e.log.Info("solutions saved", "problem_id", problemID, "count", len(set.Solutions), "override", override != nil)
	return set, nil
}

// ProblemData returns everything stored for id.
func (e *Engine) ProblemData(ctx context.Context, id string) (schema.ProblemData, error) {
	return e.store.ProblemData(ctx, id)
}

// ListProblems returns every stored problem in insertion order.
func (e *Engine) ListProblems(ctx context.Context) ([]schema.Problem, error) {
	return e.store.ListProblems(ctx)
}

// Report analyzes the stored data for problemID. Stored solutions, when
// present, replace the catalog selection.
func (e *Engine) Report(ctx context.Context, problemID string, opts Options) (*schema.Report, error) {
	pd, err := e.store.ProblemData(ctx, problemID)
	if err != nil {
		return nil, err
	}
	c, ok := schema.CaseFromProblemData(pd)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProblemNotFound, problemID)
	}
	report := e.Analyze(c, opts)
	if len(pd.Solutions) > 0 {
		report.Solutions = pd.Solutions
	}
	return report, nil
}
