package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormLogger "gorm.io/gorm/logger"

	"github.com/dshills/rootcause/internal/logger"
	"github.com/dshills/rootcause/internal/schema"
)

type problemRow struct {
	ID          string `gorm:"primaryKey;type:varchar(64)"`
	Title       string
	Description string
	Impact      string
	Area        string
	Date        string `gorm:"type:varchar(10)"`
	Status      string
	CreatedAt   time.Time `gorm:"index"`
}

func (problemRow) TableName() string { return "problems" }

type methodologyRow struct {
	ID        string `gorm:"primaryKey;type:varchar(64)"`
	ProblemID string `gorm:"index:idx_methodology_problem_kind;type:varchar(64)"`
	Kind      string `gorm:"index:idx_methodology_problem_kind;type:varchar(16)"`
	Data      datatypes.JSON
	CreatedAt time.Time
}

func (methodologyRow) TableName() string { return "methodology_records" }

type conclusionRow struct {
	ID         string `gorm:"primaryKey;type:varchar(64)"`
	ProblemID  string `gorm:"index;type:varchar(64)"`
	Conclusion string `gorm:"type:text"`
	CreatedAt  time.Time
}

func (conclusionRow) TableName() string { return "conclusions" }

type solutionSetRow struct {
	ID        string `gorm:"primaryKey;type:varchar(64)"`
	ProblemID string `gorm:"index;type:varchar(64)"`
	Solutions datatypes.JSON
	CreatedAt time.Time
}

func (solutionSetRow) TableName() string { return "solution_sets" }

// Gorm stores records in a SQL database through gorm.
type Gorm struct {
	db    *gorm.DB
	log   *logger.Logger
	stamp stamp
}

// OpenGorm connects with dialector and migrates the schema.
func OpenGorm(dialector gorm.Dialector, log *logger.Logger) (*Gorm, error) {
	if log == nil {
		log = logger.NewNop()
	}
	gormLog := gormLogger.New(
		zap.NewStdLog(log.SugaredLogger.Desugar()),
		gormLogger.Config{
			SlowThreshold:             1 * time.Second,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(dialector, &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   gormLog,
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", dialector.Name(), err)
	}
	if err := db.AutoMigrate(&problemRow{}, &methodologyRow{}, &conclusionRow{}, &solutionSetRow{}); err != nil {
		return nil, fmt.Errorf("migrating %s schema: %w", dialector.Name(), err)
	}
	return &Gorm{db: db, log: log.With("service", "GormStore", "driver", dialector.Name()), stamp: defaultStamp()}, nil
}

func (g *Gorm) SaveProblem(ctx context.Context, p schema.Problem) (schema.Problem, error) {
	if p.ID == "" {
		p.ID = g.stamp.newID()
	}
	row := problemRow{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Impact:      string(p.Impact),
		Area:        string(p.Area),
		Date:        p.Date,
		Status:      string(p.Status),
		CreatedAt:   p.CreatedAt,
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = g.stamp.now()
	}
	err := g.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"title", "description", "impact", "area", "date", "status"}),
		}).
		Create(&row).Error
	if err != nil {
		return schema.Problem{}, fmt.Errorf("saving problem %s: %w", p.ID, err)
	}

	// An update keeps the original creation time.
	var stored problemRow
	if err := g.db.WithContext(ctx).First(&stored, "id = ?", p.ID).Error; err != nil {
		return schema.Problem{}, fmt.Errorf("reloading problem %s: %w", p.ID, err)
	}
	return stored.toProblem(), nil
}

func (r problemRow) toProblem() schema.Problem {
	return schema.Problem{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Impact:      schema.Impact(r.Impact),
		Area:        schema.Area(r.Area),
		Date:        r.Date,
		Status:      schema.Status(r.Status),
		CreatedAt:   r.CreatedAt.UTC(),
	}
}

// replaceMethodology deletes the (kind, problemID) row and inserts data in
// one transaction.
func (g *Gorm) replaceMethodology(ctx context.Context, kind schema.Methodology, problemID string, data any) (methodologyRow, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return methodologyRow{}, fmt.Errorf("encoding %s: %w", kind, err)
	}
	row := methodologyRow{
		ID:        g.stamp.newID(),
		ProblemID: problemID,
		Kind:      string(kind),
		Data:      datatypes.JSON(raw),
		CreatedAt: g.stamp.now(),
	}
	err = g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("problem_id = ? AND kind = ?", problemID, string(kind)).Delete(&methodologyRow{}).Error; err != nil {
			return err
		}
		return tx.Create(&row).Error
	})
	if err != nil {
		return methodologyRow{}, fmt.Errorf("saving %s for %s: %w", kind, problemID, err)
	}
	return row, nil
}

func saveMethodology[T any](ctx context.Context, g *Gorm, kind schema.Methodology, problemID string, data T) (schema.Record[T], error) {
	row, err := g.replaceMethodology(ctx, kind, problemID, data)
	if err != nil {
		return schema.Record[T]{}, err
	}
	return schema.Record[T]{ID: row.ID, ProblemID: problemID, Data: data, CreatedAt: row.CreatedAt}, nil
}

func (g *Gorm) SaveIshikawa(ctx context.Context, problemID string, d schema.IshikawaData) (schema.Record[schema.IshikawaData], error) {
	return saveMethodology(ctx, g, schema.MethodIshikawa, problemID, d)
}

func (g *Gorm) SaveFiveWhys(ctx context.Context, problemID string, d schema.FiveWhysData) (schema.Record[schema.FiveWhysData], error) {
	return saveMethodology(ctx, g, schema.MethodFiveWhys, problemID, d)
}

func (g *Gorm) SavePareto(ctx context.Context, problemID string, d schema.ParetoData) (schema.Record[schema.ParetoData], error) {
	return saveMethodology(ctx, g, schema.MethodPareto, problemID, d)
}

func (g *Gorm) SaveFMEA(ctx context.Context, problemID string, d schema.FMEAData) (schema.Record[schema.FMEAData], error) {
	return saveMethodology(ctx, g, schema.MethodFMEA, problemID, d)
}

func (g *Gorm) SaveConclusion(ctx context.Context, problemID, text string) (schema.ConclusionRecord, error) {
	row := conclusionRow{ID: g.stamp.newID(), ProblemID: problemID, Conclusion: text, CreatedAt: g.stamp.now()}
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("problem_id = ?", problemID).Delete(&conclusionRow{}).Error; err != nil {
			return err
		}
		return tx.Create(&row).Error
	})
	if err != nil {
		return schema.ConclusionRecord{}, fmt.Errorf("saving conclusion for %s: %w", problemID, err)
	}
	return schema.ConclusionRecord{ID: row.ID, ProblemID: problemID, Conclusion: text, CreatedAt: row.CreatedAt}, nil
}

func (g *Gorm) SaveSolutions(ctx context.Context, problemID string, solutions []schema.Solution) (schema.SolutionSet, error) {
	solutions = nonNil(solutions)
	raw, err := json.Marshal(solutions)
	if err != nil {
		return schema.SolutionSet{}, fmt.Errorf("encoding solutions: %w", err)
	}
	row := solutionSetRow{ID: g.stamp.newID(), ProblemID: problemID, Solutions: datatypes.JSON(raw), CreatedAt: g.stamp.now()}
	err = g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("problem_id = ?", problemID).Delete(&solutionSetRow{}).Error; err != nil {
			return err
		}
		return tx.Create(&row).Error
	})
	if err != nil {
		return schema.SolutionSet{}, fmt.Errorf("saving solutions for %s: %w", problemID, err)
	}
	return schema.SolutionSet{ID: row.ID, ProblemID: problemID, Solutions: solutions, CreatedAt: row.CreatedAt}, nil
}

func (g *Gorm) ProblemData(ctx context.Context, id string) (schema.ProblemData, error) {
	pd := schema.ProblemData{Solutions: []schema.Solution{}}
	db := g.db.WithContext(ctx)

	var p problemRow
	switch err := db.First(&p, "id = ?", id).Error; {
	case err == nil:
		problem := p.toProblem()
		pd.Problem = &problem
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return pd, fmt.Errorf("loading problem %s: %w", id, err)
	}

	var rows []methodologyRow
	if err := db.Where("problem_id = ?", id).Find(&rows).Error; err != nil {
		return pd, fmt.Errorf("loading methodologies for %s: %w", id, err)
	}
	for _, r := range rows {
		if err := decodeInto(&pd, schema.Methodology(r.Kind), r.Data); err != nil {
			return pd, fmt.Errorf("decoding %s for %s: %w", r.Kind, id, err)
		}
	}

	var c conclusionRow
	switch err := db.Where("problem_id = ?", id).Order("created_at desc").Take(&c).Error; {
	case err == nil:
		text := c.Conclusion
		pd.Conclusion = &text
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return pd, fmt.Errorf("loading conclusion for %s: %w", id, err)
	}

	var s solutionSetRow
	switch err := db.Where("problem_id = ?", id).Order("created_at desc").Take(&s).Error; {
	case err == nil:
		var solutions []schema.Solution
		if err := json.Unmarshal(s.Solutions, &solutions); err != nil {
			return pd, fmt.Errorf("decoding solutions for %s: %w", id, err)
		}
		pd.Solutions = nonNil(solutions)
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return pd, fmt.Errorf("loading solutions for %s: %w", id, err)
	}
	return pd, nil
}

func decodeInto(pd *schema.ProblemData, kind schema.Methodology, raw []byte) error {
	switch kind {
	case schema.MethodIshikawa:
		pd.IshikawaData = new(schema.IshikawaData)
		return json.Unmarshal(raw, pd.IshikawaData)
	case schema.MethodFiveWhys:
		pd.FiveWhysData = new(schema.FiveWhysData)
		return json.Unmarshal(raw, pd.FiveWhysData)
	case schema.MethodPareto:
		pd.ParetoData = new(schema.ParetoData)
		return json.Unmarshal(raw, pd.ParetoData)
	case schema.MethodFMEA:
		pd.FMEAData = new(schema.FMEAData)
		return json.Unmarshal(raw, pd.FMEAData)
	}
	return fmt.Errorf("unknown kind %q", kind)
}

func (g *Gorm) ListProblems(ctx context.Context) ([]schema.Problem, error) {
	var rows []problemRow
	if err := g.db.WithContext(ctx).Order("created_at asc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("listing problems: %w", err)
	}
	out := make([]schema.Problem, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toProblem())
	}
	return out, nil
}

func (g *Gorm) Close() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
