package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"saucedemo_automation/domain/entities"
	"saucedemo_automation/domain/interfaces"

	"github.com/go-faster/errors"
)

// ErrNoReport is returned by LoadLatest before any report was saved
var ErrNoReport = errors.New("no report saved yet")

const latestReportFile = "latest.json"

type reportStore struct {
	dir string
}

// NewReportStore - creates report storage rooted at dir
func NewReportStore(dir string) (interfaces.ReportStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(err, "failed to create report directory")
	}
	return &reportStore{dir: dir}, nil
}

// SaveReport - saves report under its id and as the latest report
func (s *reportStore) SaveReport(report *entities.RunReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal report")
	}
	if err := os.WriteFile(filepath.Join(s.dir, "report-"+report.ID+".json"), data, 0644); err != nil {
		return errors.Wrap(err, "write report")
	}
	return os.WriteFile(filepath.Join(s.dir, latestReportFile), data, 0644)
}

// LoadLatest - loads the most recently saved report
func (s *reportStore) LoadLatest() (*entities.RunReport, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, latestReportFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoReport
		}
		return nil, err
	}

	var report entities.RunReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, errors.Wrap(err, "decode report")
	}

	return &report, nil
}

// SaveScreenshot - stores a failure screenshot next to the reports
func (s *reportStore) SaveScreenshot(reportID, scenario string, png []byte) (string, error) {
	path := filepath.Join(s.dir, reportID+"-"+fileSafe(scenario)+".png")
	if err := os.WriteFile(path, png, 0644); err != nil {
		return "", errors.Wrap(err, "write screenshot")
	}
	return path, nil
}

// fileSafe replaces characters that are awkward in file names
func fileSafe(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ' ', ':', '(', ')', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, name)
}
