package common

import "errors"

var (
	ErrValidation              = errors.New("validation failed")
	ErrDataNotFound            = errors.New("data not found")
	ErrInvalidFormatDate       = errors.New("invalid format date")
	ErrFilePathEmpty           = errors.New("file path is empty")
	ErrCSVHeaderMismatch       = errors.New("csv row does not match header")
	ErrUnableGetTransformer    = errors.New("unable to get transformer")
	ErrUnknownSourceSystem     = errors.New("unknown source system")
	ErrAmountOutOfRange        = errors.New("amount out of range")
	ErrInvalidExchangeRate     = errors.New("invalid exchange rate")
	ErrErrorThresholdExceeded  = errors.New("error threshold exceeded")
	ErrBatchAlreadyRunning     = errors.New("batch is already running")
	ErrBatchAlreadyLoaded      = errors.New("batch is already loaded")
	ErrUnsupportedPayrollMode  = errors.New("unsupported payroll mode")
	ErrUnsupportedOrchestrator = errors.New("unsupported orchestration mode")
	ErrExchangeRateUnavailable = errors.New("exchange rate unavailable")
)
