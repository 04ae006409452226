package store

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"

	"github.com/dshills/rootcause/internal/config"
	"github.com/dshills/rootcause/internal/schema"
)

// fixedStamp yields sequential ids and one-second-apart timestamps.
func fixedStamp() stamp {
	ids, ticks := 0, 0
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return stamp{
		newID: func() string { ids++; return fmt.Sprintf("id-%03d", ids) },
		now:   func() time.Time { ticks++; return base.Add(time.Duration(ticks) * time.Second) },
	}
}

func backends(t *testing.T) map[string]Store {
	t.Helper()
	mem := NewMemory()
	mem.stamp = fixedStamp()

	g, err := OpenGorm(sqlite.Open(filepath.Join(t.TempDir(), "rca.db")), nil)
	require.NoError(t, err)
	g.stamp = fixedStamp()
	t.Cleanup(func() { _ = g.Close() })

	return map[string]Store{"memory": mem, "sqlite": g}
}

func problem(id, title string) schema.Problem {
	return schema.Problem{
		ID:          id,
		Title:       title,
		Description: "desc",
		Impact:      schema.ImpactHigh,
		Area:        schema.AreaMaintenance,
		Date:        "2024-01-01",
		Status:      schema.StatusInAnalysis,
	}
}

func TestStore_UnknownProblemData(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			pd, err := s.ProblemData(context.Background(), "missing")
			require.NoError(t, err)
			assert.Nil(t, pd.Problem)
			assert.Nil(t, pd.IshikawaData)
			assert.Nil(t, pd.FiveWhysData)
			assert.Nil(t, pd.ParetoData)
			assert.Nil(t, pd.FMEAData)
			assert.Nil(t, pd.Conclusion)
			assert.NotNil(t, pd.Solutions)
			assert.Empty(t, pd.Solutions)
		})
	}
}

func TestStore_SaveProblemUpsert(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			first, err := s.SaveProblem(ctx, problem("p-1", "Primero"))
			require.NoError(t, err)
			_, err = s.SaveProblem(ctx, problem("p-2", "Segundo"))
			require.NoError(t, err)

			updated := problem("p-1", "Primero editado")
			updated.Status = schema.StatusResolved
			got, err := s.SaveProblem(ctx, updated)
			require.NoError(t, err)
			assert.Equal(t, "Primero editado", got.Title)
			assert.True(t, first.CreatedAt.Equal(got.CreatedAt), "creation time must survive an update")

			list, err := s.ListProblems(ctx)
			require.NoError(t, err)
			require.Len(t, list, 2)
			assert.Equal(t, "p-1", list[0].ID)
			assert.Equal(t, schema.StatusResolved, list[0].Status)
			assert.Equal(t, "p-2", list[1].ID)
		})
	}
}

func TestStore_LastWriteWins(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.SaveProblem(ctx, problem("p-1", "t"))
			require.NoError(t, err)

			r1, err := s.SavePareto(ctx, "p-1", schema.ParetoData{Causes: []schema.ParetoCause{{Name: "A", Frequency: 1}}})
			require.NoError(t, err)
			r2, err := s.SavePareto(ctx, "p-1", schema.ParetoData{Causes: []schema.ParetoCause{{Name: "B", Frequency: 9}}})
			require.NoError(t, err)
			assert.NotEqual(t, r1.ID, r2.ID)

			pd, err := s.ProblemData(ctx, "p-1")
			require.NoError(t, err)
			require.NotNil(t, pd.ParetoData)
			require.Len(t, pd.ParetoData.Causes, 1)
			assert.Equal(t, "B", pd.ParetoData.Causes[0].Name)

			_, err = s.SaveConclusion(ctx, "p-1", "vieja")
			require.NoError(t, err)
			_, err = s.SaveConclusion(ctx, "p-1", "nueva")
			require.NoError(t, err)
			pd, err = s.ProblemData(ctx, "p-1")
			require.NoError(t, err)
			require.NotNil(t, pd.Conclusion)
			assert.Equal(t, "nueva", *pd.Conclusion)
		})
	}
}

func TestStore_AllKinds(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.SaveProblem(ctx, problem("p-1", "t"))
			require.NoError(t, err)

			_, err = s.SaveIshikawa(ctx, "p-1", schema.IshikawaData{
				Categories: schema.DefaultIshikawaCategories(),
				Causes:     map[int][]schema.IshikawaCause{3: {{Text: "Desgaste"}}},
			})
			require.NoError(t, err)
			_, err = s.SaveFiveWhys(ctx, "p-1", schema.FiveWhysData{Whys: []schema.Why{{ID: 1, Answer: "porque sí"}}})
			require.NoError(t, err)
			_, err = s.SaveFMEA(ctx, "p-1", schema.FMEAData{FailureModes: []schema.FailureMode{{FailureMode: "Rotura", RPN: 220}}})
			require.NoError(t, err)
			_, err = s.SaveSolutions(ctx, "p-1", []schema.Solution{{Title: "CMMS"}})
			require.NoError(t, err)

			pd, err := s.ProblemData(ctx, "p-1")
			require.NoError(t, err)
			require.NotNil(t, pd.IshikawaData)
			assert.Equal(t, "Desgaste", pd.IshikawaData.Causes[3][0].Text)
			require.NotNil(t, pd.FiveWhysData)
			assert.Equal(t, "porque sí", pd.FiveWhysData.Whys[0].Answer)
			require.NotNil(t, pd.FMEAData)
			assert.Equal(t, 220, pd.FMEAData.FailureModes[0].RPN)
			require.Len(t, pd.Solutions, 1)
			assert.Equal(t, "CMMS", pd.Solutions[0].Title)
			assert.Nil(t, pd.ParetoData)
		})
	}
}

func TestStore_MethodologyWithoutProblem(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.SaveFiveWhys(ctx, "orphan", schema.FiveWhysData{})
			require.NoError(t, err)
			pd, err := s.ProblemData(ctx, "orphan")
			require.NoError(t, err)
			assert.Nil(t, pd.Problem)
			assert.NotNil(t, pd.FiveWhysData)
		})
	}
}

func TestOpen(t *testing.T) {
	s, err := Open(config.StoreConfig{Driver: config.DriverMemory}, nil)
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, s)

	s, err = Open(config.StoreConfig{Driver: config.DriverSQLite, DSN: filepath.Join(t.TempDir(), "x.db")}, nil)
	require.NoError(t, err)
	assert.IsType(t, &Gorm{}, s)
	require.NoError(t, s.Close())

	_, err = Open(config.StoreConfig{Driver: "oracle"}, nil)
	assert.Error(t, err)
}

func TestStore_ReturnedDataIsACopy(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			saved := schema.ParetoData{Causes: []schema.ParetoCause{{Name: "Rodamientos", Frequency: 50}}}
			_, err := s.SavePareto(ctx, "p-1", saved)
			require.NoError(t, err)
			saved.Causes[0].Name = "cambiado antes de leer"

			pd, err := s.ProblemData(ctx, "p-1")
			require.NoError(t, err)
			require.NotNil(t, pd.ParetoData)
			assert.Equal(t, "Rodamientos", pd.ParetoData.Causes[0].Name)
			pd.ParetoData.Causes[0].Name = "cambiado tras leer"

			again, err := s.ProblemData(ctx, "p-1")
			require.NoError(t, err)
			assert.Equal(t, "Rodamientos", again.ParetoData.Causes[0].Name)
		})
	}
}
