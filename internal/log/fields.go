package log

// Common field names for structured logging.
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldOperation  = "operation"

	FieldEntryID  = "entry_id"
	FieldRuleID   = "rule_id"
	FieldKind     = "kind"
	FieldCategory = "category"
	FieldAmount   = "amount"
	FieldYear     = "year"
	FieldMonth    = "month"
	FieldKey      = "storage_key"
)

// Standard component names.
const (
	ComponentApp          = "app"
	ComponentHTTP         = "http"
	ComponentLedger       = "ledger"
	ComponentRegistry     = "registry"
	ComponentMaterializer = "materializer"
	ComponentImporter     = "importer"
	ComponentStorage      = "storage"
	ComponentAMQP         = "amqp"
	ComponentWorker       = "worker"
	ComponentExport       = "export"
)

// Standard operation names.
const (
	OpCreate      = "create"
	OpDelete      = "delete"
	OpList        = "list"
	OpImport      = "import"
	OpMaterialize = "materialize"
	OpProject     = "project"
	OpLoad        = "load"
	OpSave        = "save"
	OpAppend      = "append"
	OpStartup     = "startup"
	OpShutdown    = "shutdown"
)
