package advisor

import (
	"context"

	"github.com/isavita/sugai/internal/models"
	"github.com/isavita/sugai/internal/prompt"
)

// Advisor produces one markdown recommendation section from the formatted
// pump data.
type Advisor interface {
	Advise(ctx context.Context, input prompt.Input) models.AdvisorSection
	Name() string
}
