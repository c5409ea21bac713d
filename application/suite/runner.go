package suite

import (
	"context"
	"time"

	"saucedemo_automation/domain/entities"
	"saucedemo_automation/domain/interfaces"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Runner executes scenarios one after another on a single session
type Runner struct {
	session   *Session
	store     interfaces.ReportStore
	scenarios []Scenario
	logger    *logrus.Logger
}

// NewRunner - creates runner over the given scenarios
func NewRunner(session *Session, store interfaces.ReportStore, scenarios []Scenario, logger *logrus.Logger) *Runner {
	return &Runner{
		session:   session,
		store:     store,
		scenarios: scenarios,
		logger:    logger,
	}
}

// Scenarios returns the scenarios the runner knows
func (r *Runner) Scenarios() []Scenario {
	return r.scenarios
}

// Run - executes the scenarios matching filter and saves the report. A
// cancelled context stops the run between scenarios; the partial report is
// still saved and returned together with the context error.
func (r *Runner) Run(ctx context.Context, filter string) (*entities.RunReport, error) {
	selected, err := Select(r.scenarios, filter)
	if err != nil {
		return nil, err
	}

	report := &entities.RunReport{
		ID:        uuid.NewString(),
		StartedAt: time.Now(),
		Results:   make([]entities.ScenarioResult, 0, len(selected)),
	}
	r.logger.Infof("Run %s: %d scenarios", report.ID, len(selected))

	var runErr error
loop:
	for _, sc := range selected {
		select {
		case <-ctx.Done():
			runErr = errors.Wrap(ctx.Err(), "run canceled")
			break loop
		default:
		}

		report.Add(r.runOne(ctx, report.ID, sc))
	}

	report.FinishedAt = time.Now()
	if err := r.store.SaveReport(report); err != nil {
		return report, errors.Wrap(err, "save report")
	}
	r.logger.Infof("Run %s finished: %d passed, %d failed", report.ID, report.Passed, report.Failed)
	return report, runErr
}

func (r *Runner) runOne(ctx context.Context, reportID string, sc Scenario) entities.ScenarioResult {
	started := time.Now()
	r.logger.Infof("Running %s", sc.Name)

	err := r.session.SignIn(ctx)
	if err != nil {
		err = errors.Wrap(err, "sign in")
	} else {
		err = sc.Run(ctx, r.session)
	}

	result := entities.ScenarioResult{
		Name:     sc.Name,
		Status:   entities.ScenarioStatusPassed,
		Duration: time.Since(started),
	}
	if err != nil {
		result.Status = entities.ScenarioStatusFailed
		result.Error = err.Error()
		result.Evidence = r.evidence(ctx, reportID, sc.Name)
		r.logger.Errorf("FAIL %s: %v", sc.Name, err)
		return result
	}

	r.logger.Infof("PASS %s (%s)", sc.Name, result.Duration.Round(time.Millisecond))
	return result
}

// evidence captures where the browser was when a scenario failed. Capture
// problems are logged and never replace the scenario error.
func (r *Runner) evidence(ctx context.Context, reportID, name string) *entities.Evidence {
	browser := r.session.Browser
	ev := &entities.Evidence{}

	if u, err := browser.CurrentURL(ctx); err == nil {
		ev.URL = u
	}
	if title, err := browser.Title(ctx); err == nil {
		ev.Title = title
	}

	png, err := browser.Screenshot(ctx)
	if err != nil {
		r.logger.Warnf("No screenshot for %s: %v", name, err)
		return ev
	}
	path, err := r.store.SaveScreenshot(reportID, name, png)
	if err != nil {
		r.logger.Warnf("Failed to save screenshot for %s: %v", name, err)
		return ev
	}
	ev.Screenshot = path
	return ev
}
