package report

import (
	"strings"
	"testing"

	"github.com/isavita/sugai/internal/models"
)

func TestRenderMarkdown(t *testing.T) {
	html, err := RenderMarkdown("### Pattern Identified\n- Between 2-5 AM glucose drops")
	if err != nil {
		t.Fatalf("RenderMarkdown failed: %v", err)
	}

	if !strings.Contains(html, "<h3") {
		t.Errorf("Expected h3 heading in output: %s", html)
	}
	if !strings.Contains(html, "<li>") {
		t.Errorf("Expected list item in output: %s", html)
	}
}

func TestRenderMarkdown_Table(t *testing.T) {
	html, err := RenderMarkdown("| Hour | Mean |\n| --- | --- |\n| 02:00 | 5.1 |")
	if err != nil {
		t.Fatalf("RenderMarkdown failed: %v", err)
	}

	// GFM tables must be enabled
	if !strings.Contains(html, "<table>") {
		t.Errorf("Expected table in output: %s", html)
	}
}

func TestRenderReport_Complete(t *testing.T) {
	rep := models.AnalysisReport{
		Status: models.StatusComplete,
		Sections: []models.AdvisorSection{
			{Name: "basal-advisor", Recommendation: "### Recommended Change\nLower 02:00 block"},
			{Name: "bolus-advisor", Error: "Failed to call LLM"},
		},
	}

	out := RenderReport(rep)

	if !strings.Contains(out, "Recommended Change") {
		t.Errorf("Expected recommendation in output: %s", out)
	}
	if !strings.Contains(out, "bolus-advisor") || !strings.Contains(out, "unavailable") {
		t.Errorf("Expected failed section notice: %s", out)
	}
}

func TestRenderReport_InsufficientData(t *testing.T) {
	rep := models.AnalysisReport{
		Status: models.StatusInsufficientData,
		Checks: []models.CheckResult{
			{Name: "coverage-checker", Score: 0, Reason: "No CGM readings in export"},
		},
	}

	out := RenderReport(rep)

	if !strings.Contains(out, "Not enough data") {
		t.Errorf("Expected gate notice: %s", out)
	}
	if !strings.Contains(out, "No CGM readings in export") {
		t.Errorf("Expected check reason: %s", out)
	}
}
