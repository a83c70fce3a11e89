package prechecks

import (
	"github.com/isavita/sugai/internal/models"
)

// Checker is one deterministic data-quality gate run before any LLM call.
type Checker interface {
	Check(request models.AnalysisRequest) models.CheckResult
}
