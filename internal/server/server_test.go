package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/rootcause/internal/schema"
	"github.com/dshills/rootcause/internal/store"
	"github.com/dshills/rootcause/internal/workflow"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	engine := workflow.New(store.NewMemory(), nil, nil)
	return NewRouter(RouterConfig{
		Handler:        NewHandler(engine, nil, "test"),
		AllowedOrigins: []string{"http://localhost:5173"},
	})
}

func do(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) APIError {
	t.Helper()
	var env ErrorEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env.Error
}

const problemBody = `{"id":"p-1","title":"Paradas de línea","description":"La línea 3 se detiene","impact":"Alto","area":"Mantenimiento"}`

func TestHealthCheck(t *testing.T) {
	w := do(t, newTestRouter(t), http.MethodGet, "/healthcheck", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))
}

func TestProblems_CreateListGet(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/api/problems", problemBody)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var p schema.Problem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	assert.Equal(t, schema.StatusInAnalysis, p.Status)

	w = do(t, r, http.MethodGet, "/api/problems", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []schema.Problem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	w = do(t, r, http.MethodGet, "/api/problems/p-1", "")
	require.Equal(t, http.StatusOK, w.Code)
	var pd schema.ProblemData
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pd))
	require.NotNil(t, pd.Problem)
	assert.Equal(t, "Paradas de línea", pd.Problem.Title)
}

func TestProblems_Validation(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/api/problems", `{"title":"sin descripción"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "validation_failed", decodeError(t, w).Code)

	w = do(t, r, http.MethodPost, "/api/problems", `{not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetProblem_UnknownIsNulls(t *testing.T) {
	w := do(t, newTestRouter(t), http.MethodGet, "/api/problems/missing", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"problem": null, "ishikawaData": null, "fiveWhysData": null,
		"paretoData": null, "fmeaData": null, "conclusion": null, "solutions": []
	}`, w.Body.String())
}

func TestSaveMethodology(t *testing.T) {
	r := newTestRouter(t)
	do(t, r, http.MethodPost, "/api/problems", problemBody)

	w := do(t, r, http.MethodPut, "/api/problems/p-1/fmea",
		`{"failureModes":[{"failureMode":"Rodamiento","cause":"Desgaste","severity":8,"occurrence":5,"detection":6}]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var res struct {
		Methodology string `json:"methodology"`
		Summary     string `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "fmea", res.Methodology)
	assert.Contains(t, res.Summary, "240")

	w = do(t, r, http.MethodPut, "/api/problems/p-1/spc", `{}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "unknown_methodology", decodeError(t, w).Code)

	w = do(t, r, http.MethodPut, "/api/problems/p-1/pareto", `{"causes":[{"name":"A","frequency":-2}]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestConclusionAndSolutions(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/api/problems/missing/conclusion", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "problem_not_found", decodeError(t, w).Code)

	do(t, r, http.MethodPost, "/api/problems", problemBody)
	do(t, r, http.MethodPut, "/api/problems/p-1/fiveWhys",
		`{"whys":[{"id":1,"answer":"Falla el equipo"},{"id":2,"answer":"Falta de mantenimiento preventivo"}]}`)

	w = do(t, r, http.MethodPost, "/api/problems/p-1/conclusion", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(t, r, http.MethodPost, "/api/problems/p-1/solutions", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var set schema.SolutionSet
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &set))
	assert.NotEmpty(t, set.Solutions)

	w = do(t, r, http.MethodPost, "/api/problems/p-1/solutions", `{"solutions":[{"title":"Propia"}]}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &set))
	require.Len(t, set.Solutions, 1)
	assert.Equal(t, "Propia", set.Solutions[0].Title)

	w = do(t, r, http.MethodPost, "/api/problems/missing/solutions", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSolve(t *testing.T) {
	r := newTestRouter(t)
	body := `{"problem":{"title":"t","description":"d","area":"Calidad"},
		"pareto":{"causes":[{"name":"A","frequency":50},{"name":"B","frequency":30},{"name":"C","frequency":20}]}}`

	w := do(t, r, http.MethodPost, "/api/solve", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var report schema.Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	require.NotNil(t, report.Findings.Pareto)
	assert.Len(t, report.Findings.Pareto.VitalFew, 2)
	assert.Equal(t, "test", report.Version)

	w = do(t, r, http.MethodPost, "/api/solve?riskThreshold=extreme", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPost, "/api/solve", `{"problem":{"title":"t"}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSolveStored(t *testing.T) {
	r := newTestRouter(t)
	w := do(t, r, http.MethodGet, "/api/solve/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	do(t, r, http.MethodPost, "/api/problems", problemBody)
	w = do(t, r, http.MethodGet, "/api/solve/p-1", "")
	require.Equal(t, http.StatusOK, w.Code)
	var report schema.Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, "p-1", report.Problem.ID)
}

func TestCORS_Preflight(t *testing.T) {
	r := newTestRouter(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/problems", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_EmptyOriginsAllowAll(t *testing.T) {
	gin.SetMode(gin.TestMode)
	for _, origins := range [][]string{nil, {" ", ""}} {
		var r *gin.Engine
		require.NotPanics(t, func() {
			r = NewRouter(RouterConfig{
				Handler:        NewHandler(workflow.New(store.NewMemory(), nil, nil), nil, "test"),
				AllowedOrigins: origins,
			})
		})
		req := httptest.NewRequest(http.MethodOptions, "/api/problems", nil)
		req.Header.Set("Origin", "http://elsewhere.test")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	}
}
