package config

const (
	ThresholdComparatorGreaterThan        = "gt"
	ThresholdComparatorGreaterThanOrEqual = "gte"

	PayrollModeFabricated = "fabricated"
	PayrollModeFile       = "file"
	PayrollModeInline     = "inline"
)

// ThresholdCrossed reports whether errorCount aborts a batch with the given threshold.
// A threshold <= 0 disables the check.
func (l Landing) ThresholdCrossed(errorCount, threshold int) bool {
	if threshold <= 0 {
		return false
	}
	if l.ThresholdComparator == ThresholdComparatorGreaterThanOrEqual {
		return errorCount >= threshold
	}
	return errorCount > threshold
}

// SystemConfig returns the common settings of a source system.
func (l Landing) SystemConfig(system string) SourceSystemConfig {
	switch system {
	case SourceSystemHR:
		return l.HR.SourceSystemConfig
	case SourceSystemInventory:
		return l.Inventory.SourceSystemConfig
	default:
		return l.Sales
	}
}
