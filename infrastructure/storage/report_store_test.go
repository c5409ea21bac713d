package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"saucedemo_automation/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportStore_SaveAndLoadLatest(t *testing.T) {
	dir := t.TempDir()
	store, err := NewReportStore(dir)
	require.NoError(t, err)

	_, err = store.LoadLatest()
	assert.ErrorIs(t, err, ErrNoReport)

	started := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	report := &entities.RunReport{ID: "run-1", StartedAt: started, FinishedAt: started.Add(time.Minute)}
	report.Add(entities.ScenarioResult{Name: "known-item-verification", Status: entities.ScenarioStatusPassed, Duration: time.Second})
	report.Add(entities.ScenarioResult{Name: "sort/price-asc", Status: entities.ScenarioStatusFailed, Error: "not sorted"})

	require.NoError(t, store.SaveReport(report))
	assert.FileExists(t, filepath.Join(dir, "report-run-1.json"))

	latest, err := store.LoadLatest()
	require.NoError(t, err)
	assert.Equal(t, "run-1", latest.ID)
	assert.Equal(t, 1, latest.Passed)
	assert.Equal(t, 1, latest.Failed)
	assert.Equal(t, report.Results, latest.Results)
	assert.True(t, started.Equal(latest.StartedAt))
}

func TestReportStore_SaveScreenshot(t *testing.T) {
	dir := t.TempDir()
	store, err := NewReportStore(dir)
	require.NoError(t, err)

	path, err := store.SaveScreenshot("run-2", "title-navigation/test.allthethings()-t-shirt-(red)", []byte("png"))
	require.NoError(t, err)

	assert.Equal(t, dir, filepath.Dir(path))
	assert.Equal(t, "run-2-title-navigation_test.allthethings__-t-shirt-_red_.png", filepath.Base(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "png", string(data))
}
