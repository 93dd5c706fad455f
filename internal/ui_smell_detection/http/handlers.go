package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/detection"
	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/domain"
	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/graph/export"
	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/ingest"
	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/report"
	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/service"
)

// ReportLookup finds a cached report by graph hash.
type ReportLookup interface {
	GetLatest(ctx context.Context, graphHash string) (*domain.Report, error)
}

// RunStore reads recorded analysis runs.
type RunStore interface {
	GetByID(ctx context.Context, id string) (*domain.AnalysisRun, error)
	ListByUnit(ctx context.Context, unit string, limit int) ([]*domain.AnalysisRun, error)
}

type Handler struct {
	svc     *service.Service
	reports ReportLookup
	runs    RunStore
	baseCfg detection.Config
	maxBody int64
	log     logrus.FieldLogger
}

type HandlerOptions struct {
	Reports      ReportLookup
	Runs         RunStore
	MaxBodyBytes int64
	Logger       logrus.FieldLogger
}

func NewHandler(svc *service.Service, baseCfg detection.Config, opts HandlerOptions) *Handler {
	h := &Handler{
		svc:     svc,
		reports: opts.Reports,
		runs:    opts.Runs,
		baseCfg: baseCfg,
		maxBody: opts.MaxBodyBytes,
		log:     opts.Logger,
	}
	if h.maxBody <= 0 {
		h.maxBody = 4 << 20
	}
	if h.log == nil {
		h.log = logrus.StandardLogger()
	}
	return h
}

// AnalyzeRaw analyses a document posted inline as JSON.
func (h *Handler) AnalyzeRaw(c *gin.Context) {
	var req AnalyzeRawRequest
	if !h.bindJSON(c, &req) {
		return
	}
	if strings.TrimSpace(req.Document) == "" {
		fail(c, http.StatusBadRequest, "document is required")
		return
	}
	cfg, ok := h.config(c, req.Config)
	if !ok {
		return
	}

	res, err := h.svc.AnalyzeBytes(c.Request.Context(), req.Unit, req.Format, []byte(req.Document), cfg)
	if err != nil {
		h.analysisError(c, err)
		return
	}
	h.respond(c, res)
}

// AnalyzeUpload analyses a multipart "file" upload. Rule thresholds can be
// narrowed with the "rules" form field.
func (h *Handler) AnalyzeUpload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBody)
	file, err := c.FormFile("file")
	if err != nil {
		fail(c, http.StatusBadRequest, "file is required")
		return
	}
	f, err := file.Open()
	if err != nil {
		fail(c, http.StatusBadRequest, fmt.Sprintf("open upload: %v", err))
		return
	}
	defer f.Close()
	b, err := io.ReadAll(f)
	if err != nil {
		fail(c, http.StatusBadRequest, fmt.Sprintf("read upload: %v", err))
		return
	}

	cfg, ok := h.config(c, detection.Config{EnabledRules: detection.ParseRuleList(c.PostForm("rules"))})
	if !ok {
		return
	}

	unit := c.PostForm("unit")
	if unit == "" {
		unit = filepath.Base(file.Filename)
	}
	res, err := h.svc.AnalyzeUnit(c.Request.Context(), ingest.SourceUnit{
		Name:    unit,
		Path:    file.Filename,
		Format:  c.PostForm("format"),
		Content: b,
	}, cfg)
	if err != nil {
		h.analysisError(c, err)
		return
	}
	h.respond(c, res)
}

// AnalyzeBatch analyses several inline documents; malformed ones come back
// as diagnostics next to the reports of the rest.
func (h *Handler) AnalyzeBatch(c *gin.Context) {
	var req BatchRequest
	if !h.bindJSON(c, &req) {
		return
	}
	if len(req.Units) == 0 {
		fail(c, http.StatusBadRequest, "units must not be empty")
		return
	}
	cfg, ok := h.config(c, req.Config)
	if !ok {
		return
	}

	units := make([]ingest.SourceUnit, len(req.Units))
	for i, u := range req.Units {
		name := u.Unit
		if name == "" {
			name = "unit-" + strconv.Itoa(i+1)
		}
		units[i] = ingest.SourceUnit{Name: name, Format: u.Format, Content: []byte(u.Document)}
	}

	res, err := h.svc.AnalyzeBatch(c.Request.Context(), units, cfg, req.Workers)
	if err != nil {
		h.analysisError(c, err)
		return
	}

	format, err := report.ParseFormat(c.DefaultQuery("format", "json"))
	if err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if format != report.FormatJSON {
		h.writeReports(c, format, res.Reports, res.ExitCode)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GraphDOT renders the posted document as Graphviz DOT.
func (h *Handler) GraphDOT(c *gin.Context) {
	var req DotRequest
	if !h.bindJSON(c, &req) {
		return
	}
	g, err := ingest.FromBytes(c.Request.Context(), "", req.Format, []byte(req.Document))
	if err != nil {
		h.analysisError(c, err)
		return
	}

	var findings []domain.Finding
	if c.Query("findings") == "true" {
		r, err := h.svc.Analyze(c.Request.Context(), g, h.baseCfg)
		if err != nil {
			h.analysisError(c, err)
			return
		}
		findings = r.Findings
	}
	title := req.Title
	if title == "" {
		title = g.Unit()
	}
	c.Data(http.StatusOK, "text/vnd.graphviz; charset=utf-8", []byte(export.ToDOT(g, title, findings)))
}

// Rules lists the registered rules and the effective base thresholds.
func (h *Handler) Rules(c *gin.Context) {
	cfg := h.baseCfg.WithDefaults()
	resp := RulesResponse{Config: cfg}
	for _, d := range detection.All() {
		resp.Rules = append(resp.Rules, RuleInfo{ID: d.Name(), Enabled: cfg.Enabled(d.Name())})
	}
	c.JSON(http.StatusOK, resp)
}

// GetReport returns a cached report by graph hash.
func (h *Handler) GetReport(c *gin.Context) {
	if h.reports == nil {
		fail(c, http.StatusServiceUnavailable, "report cache is disabled")
		return
	}
	r, err := h.reports.GetLatest(c.Request.Context(), c.Param("hash"))
	if errors.Is(err, domain.ErrReportNotFound) {
		fail(c, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		h.internal(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (h *Handler) GetRun(c *gin.Context) {
	if h.runs == nil {
		fail(c, http.StatusServiceUnavailable, "run history is disabled")
		return
	}
	run, err := h.runs.GetByID(c.Request.Context(), c.Param("id"))
	if errors.Is(err, domain.ErrRunNotFound) {
		fail(c, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		h.internal(c, err)
		return
	}
	c.JSON(http.StatusOK, run)
}

func (h *Handler) ListRuns(c *gin.Context) {
	if h.runs == nil {
		fail(c, http.StatusServiceUnavailable, "run history is disabled")
		return
	}
	unit := c.Query("unit")
	if unit == "" {
		fail(c, http.StatusBadRequest, "unit is required")
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	runs, err := h.runs.ListByUnit(c.Request.Context(), unit, limit)
	if err != nil {
		h.internal(c, err)
		return
	}
	if runs == nil {
		runs = []*domain.AnalysisRun{}
	}
	c.JSON(http.StatusOK, gin.H{"runs": runs})
}

func (h *Handler) bindJSON(c *gin.Context, v any) bool {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBody)
	if err := c.ShouldBindJSON(v); err != nil {
		fail(c, http.StatusBadRequest, "invalid json body")
		return false
	}
	return true
}

func (h *Handler) config(c *gin.Context, override detection.Config) (detection.Config, bool) {
	cfg := h.baseCfg.Merge(override)
	if err := cfg.Validate(); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return detection.Config{}, false
	}
	return cfg, true
}

func (h *Handler) respond(c *gin.Context, res *service.UnitResult) {
	reports := []domain.Report{res.Report}
	exit := report.ExitCode(reports, 0)

	format, err := report.ParseFormat(c.DefaultQuery("format", "json"))
	if err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if format != report.FormatJSON {
		h.writeReports(c, format, reports, exit)
		return
	}
	c.JSON(http.StatusOK, AnalyzeResponse{UnitResult: res, ExitCode: exit})
}

func (h *Handler) writeReports(c *gin.Context, format report.Format, reports []domain.Report, exit int) {
	contentType := "text/plain; charset=utf-8"
	if format == report.FormatYAML {
		contentType = "application/yaml"
	}
	c.Status(http.StatusOK)
	c.Header("Content-Type", contentType)
	if err := report.Write(c.Writer, format, reports, exit); err != nil {
		h.log.WithError(err).Error("failed to write report")
	}
}

func (h *Handler) analysisError(c *gin.Context, err error) {
	var malformed *domain.MalformedGraphError
	switch {
	case errors.As(err, &malformed):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error(), Reason: malformed.Reason})
	case errors.Is(err, domain.ErrUnknownRule):
		fail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		fail(c, http.StatusRequestTimeout, "analysis abandoned")
	default:
		h.internal(c, err)
	}
}

func (h *Handler) internal(c *gin.Context, err error) {
	h.log.WithError(err).WithField("path", c.Request.URL.Path).Error("request failed")
	fail(c, http.StatusInternalServerError, "internal error")
}

func fail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Error: msg})
}
