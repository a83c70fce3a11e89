package advisor

import (
	"fmt"
)

// AdvisorFactory resolves advisors by name for single-advisor runs.
type AdvisorFactory struct {
	advisors map[string]Advisor
}

// NewAdvisorFactory indexes the given advisors by name.
func NewAdvisorFactory(advisors []Advisor) *AdvisorFactory {
	advisorsMap := make(map[string]Advisor, len(advisors))
	for _, a := range advisors {
		advisorsMap[a.Name()] = a
	}

	return &AdvisorFactory{
		advisors: advisorsMap,
	}
}

func (f *AdvisorFactory) Get(advisorName string) (Advisor, error) {
	adv, exist := f.advisors[advisorName]
	if !exist {
		return nil, fmt.Errorf("advisor not found")
	}

	return adv, nil
}
