package api

import (
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"github.com/emicklei/go-restful/v3"
	"github.com/google/uuid"
	"github.com/isavita/sugai/internal/models"
	"github.com/isavita/sugai/internal/report"
)

// WebHandler serves the browser UI: the upload + settings form and the
// rendered analysis result.
type WebHandler struct {
	api *Handler
}

func NewWebHandler(api *Handler) *WebHandler {
	return &WebHandler{api: api}
}

// RegisterWeb mounts the HTML pages on the container's fallback mux, below
// the JSON API web services.
func RegisterWeb(container *restful.Container, web *WebHandler) {
	container.Handle("/", http.HandlerFunc(web.Index))
	container.Handle("/analyze", http.HandlerFunc(web.Analyze))
}

// GET /
func (w *WebHandler) Index(resp http.ResponseWriter, req *http.Request) {
	if req.URL.Path != "/" {
		http.NotFound(resp, req)
		return
	}

	type row struct {
		Hour  int
		Label string
	}
	rows := make([]row, 0, 24)
	for hour := 0; hour < 24; hour++ {
		rows = append(rows, row{Hour: hour, Label: fmt.Sprintf("%02d:00", hour)})
	}

	resp.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(resp, rows); err != nil {
		w.api.logger.Error().Err(err).Msg("Failed to render index page")
	}
}

// POST /analyze
func (w *WebHandler) Analyze(resp http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		http.Error(resp, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := req.ParseMultipartForm(MaxUploadSize); err != nil {
		w.renderError(resp, fmt.Errorf("invalid form: %w", err))
		return
	}

	file, header, err := req.FormFile("file")
	if err != nil {
		w.renderError(resp, fmt.Errorf("missing export file: %w", err))
		return
	}
	defer file.Close()

	data, err := w.api.importUpload(file, header.Size)
	if err != nil {
		w.renderError(resp, err)
		return
	}

	request := models.AnalysisRequest{
		RequestID: uuid.New().String(),
		Settings:  settingsFromForm(req.Form),
		Data:      *data,
	}

	ctx := req.Context()
	rep := w.api.analyzer.Analyze(ctx, request)

	if err := w.api.reports.Save(ctx, rep); err != nil {
		w.api.logger.Error().Err(err).Str("request_id", rep.ID).Msg("Failed to save report")
	}

	rendered, err := report.RenderMarkdown(report.RenderReport(rep))
	if err != nil {
		w.renderError(resp, err)
		return
	}

	resp.Header().Set("Content-Type", "text/html; charset=utf-8")
	err = resultTemplate.Execute(resp, map[string]any{
		"ReportID": rep.ID,
		"Status":   rep.Status,
		"Body":     template.HTML(rendered),
	})
	if err != nil {
		w.api.logger.Error().Err(err).Msg("Failed to render result page")
	}
}

func (w *WebHandler) renderError(resp http.ResponseWriter, err error) {
	resp.Header().Set("Content-Type", "text/html; charset=utf-8")
	resp.WriteHeader(http.StatusBadRequest)
	renderErr := resultTemplate.Execute(resp, map[string]any{
		"ReportID": "",
		"Status":   models.StatusFailed,
		"Body":     template.HTML("<p>" + template.HTMLEscapeString(err.Error()) + "</p>"),
	})
	if renderErr != nil {
		w.api.logger.Error().Err(renderErr).Msg("Failed to render error page")
	}
}

// settingsFromForm collects the 24-block profile from the hourly form
// fields, falling back to the defaults for anything missing or unparseable.
func settingsFromForm(form url.Values) models.PumpSettings {
	settings := models.DefaultSettings()

	for hour := 0; hour < 24; hour++ {
		block := &settings.TimedSettings[hour]

		if v := form.Get(fmt.Sprintf("basal_rate_%d", hour)); v != "" {
			if rate, err := strconv.ParseFloat(v, 64); err == nil {
				block.BasalRate = rate
			}
		}
		if v := form.Get(fmt.Sprintf("correction_factor_%d", hour)); v != "" {
			block.CorrectionFactor = v
		}
		if v := form.Get(fmt.Sprintf("carb_ratio_%d", hour)); v != "" {
			block.CarbRatio = v
		}
		if v := form.Get(fmt.Sprintf("target_bg_%d", hour)); v != "" {
			if target, err := strconv.ParseFloat(v, 64); err == nil {
				block.TargetBG = target
			}
		}
	}

	return settings
}

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head>
<title>Insulin Pump Settings Analyzer</title>
<style>
.settings-table { width: auto; margin: 0 auto; border-collapse: collapse; }
.settings-table th, .settings-table td { padding: 0.3em; text-align: left; }
.settings-table input { width: 6em; padding: 0.2em; margin: 0; height: 2em; }
.content-container { max-width: 1000px; margin: 0 auto; padding: 1em; }
.upload-section { margin-bottom: 1.5em; }
.settings-form { padding: 1em; border-radius: 4px; }
</style>
</head>
<body>
<h1>Insulin Pump Settings Analyzer</h1>
<form method="POST" action="/analyze" enctype="multipart/form-data" class="content-container">
  <div class="upload-section">
    <h2>Upload Data</h2>
    <input type="file" name="file" accept=".zip">
  </div>
  <div class="settings-form">
    <h2>Insulin Pump Settings</h2>
    <table class="settings-table">
      <tr>
        <th>Time</th>
        <th>Basal Rate (U/hr)</th>
        <th>Correction Factor (1:mmol/L)</th>
        <th>Carb Ratio (1:grams)</th>
        <th>Target BG (mmol/L)</th>
      </tr>
      {{range .}}
      <tr>
        <td>{{.Label}}</td>
        <td><input type="number" step="0.1" name="basal_rate_{{.Hour}}" value="0.0"></td>
        <td><input type="text" name="correction_factor_{{.Hour}}" value="1:3.0"></td>
        <td><input type="text" name="carb_ratio_{{.Hour}}" value="1:10"></td>
        <td><input type="number" step="0.1" name="target_bg_{{.Hour}}" value="5.6"></td>
      </tr>
      {{end}}
    </table>
  </div>
  <button type="submit">Analyze</button>
</form>
</body>
</html>
`))

var resultTemplate = template.Must(template.New("result").Parse(`<!DOCTYPE html>
<html>
<head><title>Analysis Results</title></head>
<body>
<div class="content-container">
  <h1>Analysis Results</h1>
  {{if .ReportID}}<p>Report {{.ReportID}}: {{.Status}}</p>{{end}}
  {{.Body}}
  <a href="/">Back</a>
</div>
</body>
</html>
`))
