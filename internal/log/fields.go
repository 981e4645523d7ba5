package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldUserAgent  = "user_agent"
	FieldError      = "error"
	FieldOperation  = "operation"

	FieldPaymentID   = "payment_id"
	FieldAccountID   = "account_id"
	FieldCategoryID  = "category_id"
	FieldAmountCents = "amount_cents"
	FieldPaymentType = "payment_type"
	FieldWarning     = "warning"
	FieldDateStart   = "start"
	FieldDateEnd     = "end"
)

// Components defines standard component names
const (
	ComponentApp        = "app"
	ComponentHTTP       = "http"
	ComponentPayment    = "payment"
	ComponentProjection = "projection"
	ComponentStorage    = "storage"
	ComponentAMQP       = "amqp"
	ComponentWorker     = "worker"
	ComponentCache      = "cache"
	ComponentBackend    = "backend"
)

// Operations defines standard operation names
const (
	OpCreate   = "create"
	OpRead     = "read"
	OpDelete   = "delete"
	OpList     = "list"
	OpProject  = "project"
	OpCompute  = "compute"
	OpShutdown = "shutdown"
	OpStartup  = "startup"
)
