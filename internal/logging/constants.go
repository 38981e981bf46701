package logging

// Standardized field names for structured logging.
const (
	FieldFile      = "file_path"
	FieldAccount   = "account"
	FieldPeriod    = "period"
	FieldIssuer    = "issuer"
	FieldStage     = "stage"
	FieldStrategy  = "strategy"
	FieldKeyword   = "keyword"
	FieldCategory  = "category"
	FieldReason    = "reason"
	FieldStatus    = "status"
	FieldError     = "error"
	FieldCount     = "count"
	FieldAmount    = "amount"
	FieldRunID     = "run_id"
	FieldComponent = "component"
	FieldOutputDir = "output_dir"
)
