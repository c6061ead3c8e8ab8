package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldQuery      = "query"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldUserAgent  = "user_agent"
	FieldError      = "error"
	FieldOperation  = "operation"

	FieldRecordID   = "record_id"
	FieldRecordKind = "record_kind"
	FieldBuyerID    = "buyer_id"
	FieldOwnerID    = "land_owner_id"
	FieldLandID     = "land_id"
	FieldAmount     = "amount"
	FieldVisitDate  = "visit_date"
	FieldLedgerRef  = "ledger_ref"
)

// Components defines standard component names
const (
	ComponentApp       = "app"
	ComponentHTTP      = "http"
	ComponentStorage   = "storage"
	ComponentAMQP      = "amqp"
	ComponentWorker    = "worker"
	ComponentLedger    = "ledger"
	ComponentRecords   = "records"
	ComponentRateLimit = "rate_limit"
	ComponentTrace     = "trace"
)
