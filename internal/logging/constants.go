package logging

// Standardized field names for structured logging.
// Extractors, the classifier and the scanner all log with these keys so
// scan output can be filtered by message, strategy or pattern type.
const (
	FieldFile        = "file_path"
	FieldSender      = "sender"
	FieldMessageID   = "message_id"
	FieldStrategy    = "strategy"
	FieldPatternType = "pattern_type"
	FieldScore       = "score"
	FieldConfidence  = "confidence"
	FieldSource      = "source"
	FieldField       = "field"
	FieldOperation   = "operation"
	FieldError       = "error"
	FieldDuration    = "duration_ms"
	FieldCount       = "count"
	FieldWorkers     = "workers"
	FieldDelimiter   = "delimiter"
	FieldInputFile   = "input_file"
	FieldOutputFile  = "output_file"
)
