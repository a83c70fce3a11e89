package mcpadapter

import (
	"context"

	"github.com/google/uuid"
	"github.com/isavita/sugai/internal/analyzer"
	"github.com/isavita/sugai/internal/importer"
	"github.com/isavita/sugai/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// AnalyzeInput is the MCP tool input schema for full pipeline analysis.
type AnalyzeInput struct {
	RequestID  string               `json:"request_id,omitempty" jsonschema:"optional request identifier, generated when absent"`
	ExportPath string               `json:"export_path" jsonschema:"path to the pump export zip archive"`
	Settings   *models.PumpSettings `json:"settings,omitempty" jsonschema:"optional 24-block pump profile, defaults used when absent"`
}

// AnalyzeSingleAdvisorInput is the MCP tool input schema for single advisor analysis.
type AnalyzeSingleAdvisorInput struct {
	RequestID   string               `json:"request_id,omitempty" jsonschema:"optional request identifier, generated when absent"`
	ExportPath  string               `json:"export_path" jsonschema:"path to the pump export zip archive"`
	Settings    *models.PumpSettings `json:"settings,omitempty" jsonschema:"optional 24-block pump profile, defaults used when absent"`
	AdvisorName string               `json:"advisor_name" jsonschema:"advisor name: basal, bolus, or alarms"`
}

// NewAnalyzeHandler returns a tool handler that runs the full pipeline.
// Pass the returned function to mcp.AddTool.
func NewAnalyzeHandler(anz *analyzer.Analyzer, imp *importer.Importer) func(context.Context, *mcp.CallToolRequest, AnalyzeInput) (*mcp.CallToolResult, models.AnalysisReport, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input AnalyzeInput) (*mcp.CallToolResult, models.AnalysisReport, error) {
		return AnalyzeExport(ctx, anz, imp, req, input)
	}
}

// AnalyzeExport imports the archive and runs the full analysis pipeline.
func AnalyzeExport(
	ctx context.Context,
	anz *analyzer.Analyzer,
	imp *importer.Importer,
	req *mcp.CallToolRequest,
	input AnalyzeInput,
) (*mcp.CallToolResult, models.AnalysisReport, error) {
	request, err := buildRequest(imp, input.RequestID, input.ExportPath, input.Settings)
	if err != nil {
		return nil, models.AnalysisReport{}, err
	}

	report := anz.Analyze(ctx, *request)
	return nil, report, nil
}

// NewAnalyzeSingleAdvisorHandler returns a tool handler for single advisor analysis.
// Pass the returned function to mcp.AddTool.
func NewAnalyzeSingleAdvisorHandler(singleAnz *analyzer.SingleAdvisorAnalyzer, imp *importer.Importer) func(context.Context, *mcp.CallToolRequest, AnalyzeSingleAdvisorInput) (*mcp.CallToolResult, models.AnalysisReport, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input AnalyzeSingleAdvisorInput) (*mcp.CallToolResult, models.AnalysisReport, error) {
		return AnalyzeSingleAdvisor(ctx, singleAnz, imp, req, input)
	}
}

// AnalyzeSingleAdvisor imports the archive and runs one named advisor.
func AnalyzeSingleAdvisor(
	ctx context.Context,
	singleAnz *analyzer.SingleAdvisorAnalyzer,
	imp *importer.Importer,
	req *mcp.CallToolRequest,
	input AnalyzeSingleAdvisorInput,
) (*mcp.CallToolResult, models.AnalysisReport, error) {
	request, err := buildRequest(imp, input.RequestID, input.ExportPath, input.Settings)
	if err != nil {
		return nil, models.AnalysisReport{}, err
	}

	report, err := singleAnz.Analyze(ctx, input.AdvisorName, *request)
	return nil, report, err
}

func buildRequest(imp *importer.Importer, requestID, exportPath string, settings *models.PumpSettings) (*models.AnalysisRequest, error) {
	data, err := imp.ImportFile(exportPath)
	if err != nil {
		return nil, err
	}

	if requestID == "" {
		requestID = uuid.New().String()
	}

	resolved := models.DefaultSettings()
	if settings != nil {
		resolved = *settings
	}

	return &models.AnalysisRequest{
		RequestID: requestID,
		Settings:  resolved,
		Data:      *data,
	}, nil
}
