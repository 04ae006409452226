package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dshills/rootcause/internal/logger"
	"github.com/dshills/rootcause/internal/schema"
	"github.com/dshills/rootcause/internal/schema/validate"
	"github.com/dshills/rootcause/internal/workflow"
)

// Handler serves the problem, methodology and solve endpoints.
type Handler struct {
	engine  *workflow.Engine
	log     *logger.Logger
	version string
	now     func() time.Time
}

func NewHandler(engine *workflow.Engine, log *logger.Logger, version string) *Handler {
	if log == nil {
		log = logger.NewNop()
	}
	return &Handler{engine: engine, log: log.With("service", "HTTPHandler"), version: version, now: time.Now}
}

func (h *Handler) HealthCheck(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

// fail logs err and writes the error envelope for it.
func (h *Handler) fail(c *gin.Context, err error) {
	status, code := statusFor(err)
	h.log.Warn("request failed",
		"path", c.FullPath(),
		"status", status,
		"code", code,
		"error", err.Error(),
		"request_id", c.GetString("request_id"),
	)
	RespondError(c, status, code, err)
}

func (h *Handler) badRequest(c *gin.Context, err error) {
	h.fail(c, fmt.Errorf("%w: %v", workflow.ErrInvalid, err))
}

// GET /api/problems
func (h *Handler) ListProblems(c *gin.Context) {
	problems, err := h.engine.ListProblems(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	if problems == nil {
		problems = []schema.Problem{}
	}
	RespondOK(c, problems)
}

// POST /api/problems
func (h *Handler) SaveProblem(c *gin.Context) {
	var p schema.Problem
	if err := c.ShouldBindJSON(&p); err != nil {
		h.badRequest(c, err)
		return
	}
	saved, err := h.engine.SaveProblem(c.Request.Context(), p)
	if err != nil {
		h.fail(c, err)
		return
	}
	RespondOK(c, saved)
}

// GET /api/problems/:id
func (h *Handler) GetProblem(c *gin.Context) {
	pd, err := h.engine.ProblemData(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	RespondOK(c, pd)
}

// PUT /api/problems/:id/:methodology
func (h *Handler) SaveMethodology(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		h.badRequest(c, err)
		return
	}
	res, err := h.engine.SaveMethodology(c.Request.Context(), c.Param("id"), c.Param("methodology"), raw)
	if err != nil {
		h.fail(c, err)
		return
	}
	RespondOK(c, res)
}

// POST /api/problems/:id/conclusion
func (h *Handler) Conclude(c *gin.Context) {
	res, err := h.engine.Conclude(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	RespondOK(c, res)
}

type solutionsRequest struct {
	Solutions *[]schema.Solution `json:"solutions"`
}

// POST /api/problems/:id/solutions
// An empty body, or one without "solutions", selects from the catalog.
func (h *Handler) ProposeSolutions(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		h.badRequest(c, err)
		return
	}
	var override []schema.Solution
	if strings.TrimSpace(string(raw)) != "" {
		var req solutionsRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			h.badRequest(c, err)
			return
		}
		if req.Solutions != nil {
			override = *req.Solutions
			if override == nil {
				override = []schema.Solution{}
			}
		}
	}
	set, err := h.engine.ProposeSolutions(c.Request.Context(), c.Param("id"), override)
	if err != nil {
		h.fail(c, err)
		return
	}
	RespondOK(c, set)
}

func (h *Handler) options(c *gin.Context) (workflow.Options, bool) {
	threshold := schema.RiskBand(c.DefaultQuery("riskThreshold", string(schema.RiskLow)))
	if schema.RiskBandOrdinal(threshold) < 0 {
		h.badRequest(c, fmt.Errorf("riskThreshold must be low, medium or high, got %q", threshold))
		return workflow.Options{}, false
	}
	return workflow.Options{RiskThreshold: threshold, Version: h.version}, true
}

// POST /api/solve
func (h *Handler) Solve(c *gin.Context) {
	opts, ok := h.options(c)
	if !ok {
		return
	}
	var cs schema.Case
	if err := c.ShouldBindJSON(&cs); err != nil {
		h.badRequest(c, err)
		return
	}
	if err := validate.Case(&cs, h.now()); err != nil {
		h.badRequest(c, err)
		return
	}
	RespondOK(c, h.engine.Analyze(&cs, opts))
}

// GET /api/solve/:id
func (h *Handler) SolveStored(c *gin.Context) {
	opts, ok := h.options(c)
	if !ok {
		return
	}
	report, err := h.engine.Report(c.Request.Context(), c.Param("id"), opts)
	if err != nil {
		h.fail(c, err)
		return
	}
	RespondOK(c, report)
}
