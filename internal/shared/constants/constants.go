package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// Default pagination
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// HTTP Headers
	HeaderAuthorization   = "Authorization"
	HeaderXRequestID      = "X-Request-ID"
	HeaderXRefreshedToken = "X-Refreshed-Token"

	// Context keys
	ContextKeyUsername  = "username"
	ContextKeyUserRole  = "user_role"
	ContextKeyRequestID = "request_id"

	// Table names
	TableMachines           = "machines"
	TableInstruments        = "instruments"
	TableUsers              = "users"
	TableBreakdownTickets   = "breakdown_tickets"
	TablePreventiveTickets  = "preventive_tickets"
	TableCalibrationTickets = "calibration_tickets"

	// AnonymousReporter is recorded as attended_by on breakdowns reported without login.
	AnonymousReporter = "Anonymous"
)
