package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/emicklei/go-restful/v3"
	"github.com/google/uuid"
	"github.com/isavita/sugai/internal/analyzer"
	"github.com/isavita/sugai/internal/api/middleware"
	"github.com/isavita/sugai/internal/importer"
	"github.com/isavita/sugai/internal/models"
	"github.com/isavita/sugai/internal/store"
	"github.com/rs/zerolog"
)

// MaxUploadSize caps the export archive accepted by the upload endpoints.
const MaxUploadSize = 64 << 20 // 64 MiB

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

type Handler struct {
	analyzer       *analyzer.Analyzer
	singleAnalyzer *analyzer.SingleAdvisorAnalyzer
	importer       *importer.Importer
	reports        store.ReportStore
	logger         *zerolog.Logger
}

func NewHandler(
	anz *analyzer.Analyzer,
	singleAnalyzer *analyzer.SingleAdvisorAnalyzer,
	imp *importer.Importer,
	reports store.ReportStore,
	logger *zerolog.Logger,
) *Handler {
	return &Handler{
		analyzer:       anz,
		singleAnalyzer: singleAnalyzer,
		importer:       imp,
		reports:        reports,
		logger:         logger,
	}
}

// POST /api/v1/analyses
// Multipart body: "file" = export zip, optional "settings" = PumpSettings JSON.
// Returns: AnalysisReport
func (h *Handler) CreateAnalysis(req *restful.Request, resp *restful.Response) {
	request, err := h.readAnalysisRequest(req)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to read upload")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	h.logger.Info().
		Str("request_id", request.RequestID).
		Int("readings", len(request.Data.Readings)).
		Msg("Start analysis")

	ctx := req.Request.Context()
	report := h.analyzer.Analyze(ctx, *request)

	if err := h.reports.Save(ctx, report); err != nil {
		h.logger.Error().Err(err).Str("request_id", report.ID).Msg("Failed to save report")
	}

	h.logger.Info().
		Str("request_id", report.ID).
		Str("status", string(report.Status)).
		Msg("Analysis complete")

	resp.WriteHeaderAndEntity(http.StatusOK, report)
}

// POST /api/v1/analyses/advisor/{advisor_name}
func (h *Handler) CreateSingleAdvisorAnalysis(req *restful.Request, resp *restful.Response) {
	advisorName := req.PathParameter("advisor_name")

	request, err := h.readAnalysisRequest(req)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to read upload")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	h.logger.Info().
		Str("request_id", request.RequestID).
		Str("advisor_name", advisorName).
		Msg("Start single-advisor analysis")

	ctx := req.Request.Context()
	report, err := h.singleAnalyzer.Analyze(ctx, advisorName, *request)
	if errors.Is(err, analyzer.ErrAdvisorNotFound) {
		middleware.HandleError(resp, err, http.StatusNotFound)
		return
	}
	if err != nil {
		middleware.HandleError(resp, err, http.StatusInternalServerError)
		return
	}

	if err := h.reports.Save(ctx, report); err != nil {
		h.logger.Error().Err(err).Str("request_id", report.ID).Msg("Failed to save report")
	}

	resp.WriteHeaderAndEntity(http.StatusOK, report)
}

// GET /api/v1/analyses/{analysis_id}
func (h *Handler) GetAnalysis(req *restful.Request, resp *restful.Response) {
	id := req.PathParameter("analysis_id")

	report, err := h.reports.Get(req.Request.Context(), id)
	if errors.Is(err, store.ErrReportNotFound) {
		middleware.HandleError(resp, err, http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.Error().Err(err).Str("analysis_id", id).Msg("Failed to load report")
		middleware.HandleError(resp, err, http.StatusInternalServerError)
		return
	}

	resp.WriteHeaderAndEntity(http.StatusOK, report)
}

// GET /api/v1/analyses?limit=N
func (h *Handler) ListAnalyses(req *restful.Request, resp *restful.Response) {
	limit := 50
	if limitStr := req.QueryParameter("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
		} else {
			h.logger.Warn().Str("limit", limitStr).Msg("Invalid limit, using default 50")
		}
	}

	reports, err := h.reports.List(req.Request.Context(), limit)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list reports")
		middleware.HandleError(resp, err, http.StatusInternalServerError)
		return
	}

	resp.WriteHeaderAndEntity(http.StatusOK, reports)
}

// Health handler GET /api/v1/health
func (h *Handler) Health(req *restful.Request, resp *restful.Response) {
	healthResponse := HealthResponse{
		Status:  "ok",
		Version: "1.0.0",
	}

	resp.WriteHeaderAndEntity(http.StatusOK, healthResponse)
}

// readAnalysisRequest parses the multipart upload into a normalized
// AnalysisRequest: export archive, settings JSON (defaults when absent) and
// a fresh request ID.
func (h *Handler) readAnalysisRequest(req *restful.Request) (*models.AnalysisRequest, error) {
	if err := req.Request.ParseMultipartForm(MaxUploadSize); err != nil {
		return nil, fmt.Errorf("invalid multipart form: %w", err)
	}

	file, header, err := req.Request.FormFile("file")
	if err != nil {
		return nil, fmt.Errorf("missing export file: %w", err)
	}
	defer file.Close()

	data, err := h.importUpload(file, header.Size)
	if err != nil {
		return nil, err
	}

	settings := models.DefaultSettings()
	if settingsJSON := req.Request.FormValue("settings"); settingsJSON != "" {
		if err := json.Unmarshal([]byte(settingsJSON), &settings); err != nil {
			return nil, fmt.Errorf("invalid settings JSON: %w", err)
		}
	}

	return &models.AnalysisRequest{
		RequestID: uuid.New().String(),
		Settings:  settings,
		Data:      *data,
	}, nil
}

func (h *Handler) importUpload(file multipart.File, size int64) (*models.PumpData, error) {
	if size > MaxUploadSize {
		return nil, fmt.Errorf("export archive exceeds %d bytes", int64(MaxUploadSize))
	}

	// multipart.File implements ReaderAt for on-disk spills but not for all
	// in-memory cases, so buffer the archive before handing it to zip.
	buf, err := io.ReadAll(io.LimitReader(file, MaxUploadSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(buf)) > MaxUploadSize {
		return nil, fmt.Errorf("export archive exceeds %d bytes", int64(MaxUploadSize))
	}

	return h.importer.ImportZip(bytes.NewReader(buf), int64(len(buf)))
}
