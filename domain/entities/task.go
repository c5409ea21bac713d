package entities

import "time"

// ScenarioStatus represents the state of a scenario run
type ScenarioStatus string

const (
	ScenarioStatusPending ScenarioStatus = "pending"
	ScenarioStatusRunning ScenarioStatus = "running"
	ScenarioStatusPassed  ScenarioStatus = "passed"
	ScenarioStatusFailed  ScenarioStatus = "failed"
)

// ScenarioResult is the outcome of one scenario
type ScenarioResult struct {
	Name     string         `json:"name"`
	Status   ScenarioStatus `json:"status"`
	Error    string         `json:"error,omitempty"`
	Duration time.Duration  `json:"duration"`
	Evidence *Evidence      `json:"evidence,omitempty"`
}

// RunReport collects the results of one suite run
type RunReport struct {
	ID         string           `json:"id"`
	StartedAt  time.Time        `json:"started_at"`
	FinishedAt time.Time        `json:"finished_at"`
	Results    []ScenarioResult `json:"results"`
	Passed     int              `json:"passed"`
	Failed     int              `json:"failed"`
}

// Add appends a result and updates the counters
func (r *RunReport) Add(result ScenarioResult) {
	r.Results = append(r.Results, result)
	switch result.Status {
	case ScenarioStatusPassed:
		r.Passed++
	case ScenarioStatusFailed:
		r.Failed++
	}
}
