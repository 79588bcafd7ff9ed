package log

// Canonical field name constants for structured logging.
const (
	FieldService   = "service"
	FieldComponent = "component"

	// Load diagnostics
	FieldPath  = "path"
	FieldLine  = "line"
	FieldText  = "text"
	FieldKey   = "key"
	FieldValue = "value"
	FieldType  = "type"
	FieldKind  = "kind"
)
