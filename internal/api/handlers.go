package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"bp-advisor/internal/bp"
	"bp-advisor/internal/config"
	"bp-advisor/internal/export"
	"bp-advisor/internal/health"
	"bp-advisor/internal/logs"
	"bp-advisor/internal/metrics"
	"bp-advisor/internal/observability"
)

const (
	defaultLogLimit = 50
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	metrics      *metrics.Registry
	prom         *observability.Metrics
	logger       *logs.Logger
	analyzer     *health.Analyzer
	exportPolicy config.ExportPolicy
	now          func() time.Time
}

// NewHandler creates a new API handler.
func NewHandler(
	reg *metrics.Registry,
	prom *observability.Metrics,
	logger *logs.Logger,
	exportPolicy config.ExportPolicy,
) *Handler {
	return &Handler{
		metrics:      reg,
		prom:         prom,
		logger:       logger,
		analyzer:     health.NewAnalyzer(reg, logger),
		exportPolicy: exportPolicy,
		now:          time.Now,
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *Handler) badRequest(w http.ResponseWriter, r *http.Request, msg string) {
	h.metrics.Inc(metrics.BadRequestsTotal)
	h.logger.Warn("bad request",
		zap.String("path", r.URL.Path),
		zap.String("reason", msg),
		zap.String("request_id", RequestID(r.Context())),
	)
	http.Error(w, msg, http.StatusBadRequest)
}

/* ---------------- POST /v1/classify ---------------- */

type classifyRequest struct {
	Systolic  *int `json:"systolic"`
	Diastolic *int `json:"diastolic"`
	HeartRate *int `json:"heart_rate,omitempty"`
}

type heartRateResponse struct {
	BPM int `json:"bpm"`
	bp.HeartRateInfo
}

type classifyResponse struct {
	Systolic  int                `json:"systolic"`
	Diastolic int                `json:"diastolic"`
	Category  bp.Category        `json:"category"`
	HeartRate *heartRateResponse `json:"heart_rate,omitempty"`
}

func (h *Handler) Classify(w http.ResponseWriter, r *http.Request) {
	var req classifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.badRequest(w, r, "invalid json body")
		return
	}
	if req.Systolic == nil || req.Diastolic == nil {
		h.badRequest(w, r, "systolic and diastolic are required")
		return
	}

	category := bp.Classify(*req.Systolic, *req.Diastolic)
	h.metrics.Inc(metrics.ReadingsClassifiedTotal)
	h.metrics.Inc(metrics.CategoryKey(category.String()))
	h.prom.ObserveClassification(category.String())

	resp := classifyResponse{
		Systolic:  *req.Systolic,
		Diastolic: *req.Diastolic,
		Category:  category,
	}
	if req.HeartRate != nil {
		h.metrics.Inc(metrics.HeartRatesClassified)
		resp.HeartRate = &heartRateResponse{
			BPM:           *req.HeartRate,
			HeartRateInfo: bp.HeartRateAdvice(bp.ClassifyHeartRate(*req.HeartRate)),
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

/* ---------------- POST /v1/weekly ---------------- */

type weeklyRequest struct {
	Readings []bp.Reading `json:"readings"`
}

func (h *Handler) Weekly(w http.ResponseWriter, r *http.Request) {
	var req weeklyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.badRequest(w, r, "invalid json body")
		return
	}

	result := bp.AnalyzeWeek(req.Readings)

	h.metrics.Inc(metrics.WeeklyAnalysesTotal)
	h.metrics.Inc(metrics.AdvisoryKey(string(result.Type)))
	if result.Stats == nil {
		h.metrics.Inc(metrics.WeeklyInsufficientTotal)
	}
	h.prom.ObserveAdvisory(string(result.Type))

	if result.Type == bp.TypeDanger {
		h.logger.Warn("crisis reading in weekly window",
			zap.String("request_id", RequestID(r.Context())),
			zap.Int("readings", len(req.Readings)),
		)
	}

	writeJSON(w, http.StatusOK, result)
}

/* ---------------- POST /v1/export ---------------- */

type exportReading struct {
	TakenAt   time.Time `json:"taken_at"`
	Systolic  int       `json:"systolic"`
	Diastolic int       `json:"diastolic"`
	HeartRate int       `json:"heart_rate,omitempty"`
}

type exportRequest struct {
	PatientName string          `json:"patient_name,omitempty"`
	Readings    []exportReading `json:"readings"`
}

func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.badRequest(w, r, "invalid json body")
		return
	}

	patient := req.PatientName
	if patient == "" {
		patient = h.exportPolicy.DefaultPatient
	}

	entries := make([]export.Entry, len(req.Readings))
	for i, rd := range req.Readings {
		entries[i] = export.Entry{
			TakenAt:   rd.TakenAt,
			Reading:   bp.Reading{Systolic: rd.Systolic, Diastolic: rd.Diastolic},
			HeartRate: rd.HeartRate,
		}
	}

	data, err := export.Workbook(export.Options{
		PatientName: patient,
		Creator:     h.exportPolicy.Creator,
		Now:         h.now,
	}, entries)
	if errors.Is(err, export.ErrNoReadings) {
		h.badRequest(w, r, err.Error())
		return
	}
	if err != nil {
		h.metrics.Inc(metrics.ExportFailuresTotal)
		h.logger.Error("export failed",
			zap.Error(err),
			zap.String("request_id", RequestID(r.Context())),
		)
		http.Error(w, "failed to generate report", http.StatusInternalServerError)
		return
	}

	h.metrics.Inc(metrics.ExportsTotal)

	filename := fmt.Sprintf("bp-report-%s.xlsx", h.now().Format("2006-01-02"))
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

/* ---------------- GET /metrics ---------------- */

func (h *Handler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.metrics.SnapshotPrefix(r.URL.Query().Get("prefix")))
}

/* ---------------- GET /health ---------------- */

func (h *Handler) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.analyzer.Analyze())
}

/* ---------------- GET /admin/logs ---------------- */

func (h *Handler) GetLogs(w http.ResponseWriter, r *http.Request) {
	n := defaultLogLimit
	if raw := r.URL.Query().Get("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			h.badRequest(w, r, "n must be a non-negative integer")
			return
		}
		n = parsed
	}
	writeJSON(w, http.StatusOK, h.logger.GetLast(n))
}
