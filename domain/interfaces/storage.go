package interfaces

import "saucedemo_automation/domain/entities"

// ReportStore persists suite run reports and failure artifacts
type ReportStore interface {
	// SaveReport stores a finished run report
	SaveReport(report *entities.RunReport) error

	// LoadLatest loads the most recently saved report
	LoadLatest() (*entities.RunReport, error)

	// SaveScreenshot stores a screenshot and returns its path
	SaveScreenshot(reportID, scenario string, png []byte) (string, error)
}
