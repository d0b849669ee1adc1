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
	FieldSuccess    = "success"
	FieldError      = "error"
	FieldOperation  = "operation"

	FieldRecordID     = "id"
	FieldDish         = "dish"
	FieldAmountTenths = "amount_tenths"
	FieldCalories     = "calories"
	FieldMode         = "mode"
	FieldCategory     = "category"
	FieldInterval     = "interval"
	FieldTicket       = "ticket"
	FieldWeekRange    = "range"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentRecord  = "record"
	ComponentStorage = "storage"
	ComponentCatalog = "catalog"
	ComponentDraw    = "draw"
	ComponentCache   = "drawcache"
)

// Operations defines standard operation names
const (
	OpSave     = "save"
	OpGet      = "get"
	OpUpdate   = "update"
	OpDelete   = "delete"
	OpDraw     = "draw"
	OpStats    = "week_stats"
	OpList     = "week_records"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithRecord adds record-related fields
func (f LogFields) WithRecord(id int64, dish string, amountTenths int64, mode string) LogFields {
	f[FieldRecordID] = id
	f[FieldDish] = dish
	f[FieldAmountTenths] = amountTenths
	f[FieldMode] = mode
	return f
}

// WithTicket adds the draw cache ticket field
func (f LogFields) WithTicket(ticket string) LogFields {
	f[FieldTicket] = ticket
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
