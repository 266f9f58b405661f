package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidOrder     ErrorCode = 100
	ErrCodeInvalidQuantity  ErrorCode = 101
	ErrCodeInvalidPrice     ErrorCode = 102
	ErrCodeInvalidSide      ErrorCode = 103
	ErrCodeInvalidOrderType ErrorCode = 104

	// Risk errors (200-299)
	ErrCodeRiskRejected         ErrorCode = 200
	ErrCodeTradeAmountTooSmall  ErrorCode = 201
	ErrCodeTradeAmountTooLarge  ErrorCode = 202
	ErrCodePositionRatioTooHigh ErrorCode = 203
	ErrCodeDailyLossExceeded    ErrorCode = 204
	ErrCodeDrawdownExceeded     ErrorCode = 205
	ErrCodeTradingSuspended     ErrorCode = 206

	// Venue errors (300-399)
	ErrCodeOrderRejected        ErrorCode = 300
	ErrCodeInsufficientCash     ErrorCode = 301
	ErrCodeInsufficientPosition ErrorCode = 302
	ErrCodeOrderNotFound        ErrorCode = 303
	ErrCodeOrderNotCancellable  ErrorCode = 304
	ErrCodeVenueUnavailable     ErrorCode = 305
	ErrCodeJournalFailed        ErrorCode = 306

	// Auto-trading errors (400-499)
	ErrCodeNotRunning           ErrorCode = 400
	ErrCodeAlreadyRunning       ErrorCode = 401
	ErrCodeNoMonitors           ErrorCode = 402
	ErrCodeOutsideTradingWindow ErrorCode = 403
	ErrCodeOrderLimitReached    ErrorCode = 404
	ErrCodeDailyLossLimit       ErrorCode = 405
	ErrCodePositionLimit        ErrorCode = 406
	ErrCodeZeroQuantity         ErrorCode = 407

	// Config errors (500-599)
	ErrCodeConfigInvalid  ErrorCode = 500
	ErrCodeConfigNotFound ErrorCode = 501
)
