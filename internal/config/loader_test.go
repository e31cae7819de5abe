package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("GO_ACCOUNTING_LANDING_TEST_DEFAULTS", WithConfigFileSearchPaths(t.TempDir()))
	require.NoError(t, err)

	assert.Equal(t, "go-accounting-landing", cfg.App.Name)
	assert.Equal(t, "GL001", cfg.Landing.LedgerID)
	assert.Equal(t, "Corporate", cfg.Landing.ExchangeRateType)
	assert.Equal(t, ThresholdComparatorGreaterThan, cfg.Landing.ThresholdComparator)
	assert.Equal(t, 50, cfg.Landing.HR.ErrorThreshold)
	assert.Equal(t, "ETL_HR", cfg.Landing.HR.CreatedBy)
	assert.Equal(t, PayrollModeFabricated, cfg.Landing.HR.PayrollMode)
	assert.Equal(t, 100, cfg.Landing.Inventory.ErrorThreshold)
	assert.Equal(t, "error-data", cfg.CloudStorageConfig.ErrorDataPrefix)
	assert.Equal(t, time.Minute, cfg.MasterData.RefreshInterval)
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	content := []byte(`
app:
  name: landing-test
  env: dev
landing:
  workers: 8
  threshold_comparator: gte
  inventory:
    movement_types: [RCV, ISS]
mapping:
  hr_accounts:
    salary: "6199"
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), content, 0o600))

	t.Setenv("GO_ACCOUNTING_LANDING_TEST_FILE_LANDING_SALES_ERROR_THRESHOLD", "7")

	cfg, err := Load("GO_ACCOUNTING_LANDING_TEST_FILE", WithConfigFileSearchPaths(dir))
	require.NoError(t, err)

	assert.Equal(t, "landing-test", cfg.App.Name)
	assert.Equal(t, DEV_ENV, StringToEnvironment(cfg.App.Env))
	assert.Equal(t, 8, cfg.Landing.Workers)
	assert.Equal(t, ThresholdComparatorGreaterThanOrEqual, cfg.Landing.ThresholdComparator)
	assert.Equal(t, []string{"RCV", "ISS"}, cfg.Landing.Inventory.MovementTypes)
	assert.Equal(t, 7, cfg.Landing.Sales.ErrorThreshold)
	assert.Equal(t, "6199", cfg.Mapping.HRAccounts["salary"])
}
