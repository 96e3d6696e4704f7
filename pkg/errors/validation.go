package errors

// ValidationError covers malformed input caught before it reaches storage:
// an empty key, an empty value, a bad configuration field.
type ValidationError struct {
	*baseError
	field    string
	rule     string
	provided any
	expected any
}

// NewValidationError creates a new validation-specific error.
func NewValidationError(cause error, code ErrorCode, msg string) *ValidationError {
	return &ValidationError{baseError: NewBaseError(cause, code, msg)}
}

func (ve *ValidationError) WithMessage(msg string) *ValidationError {
	ve.baseError.WithMessage(msg)
	return ve
}

func (ve *ValidationError) WithDetail(key string, value any) *ValidationError {
	ve.baseError.WithDetail(key, value)
	return ve
}

// WithField sets which field failed validation.
func (ve *ValidationError) WithField(field string) *ValidationError {
	ve.field = field
	return ve
}

// WithRule specifies which validation rule was violated.
func (ve *ValidationError) WithRule(rule string) *ValidationError {
	ve.rule = rule
	return ve
}

// WithProvided captures the value that failed validation.
func (ve *ValidationError) WithProvided(value any) *ValidationError {
	ve.provided = value
	return ve
}

// WithExpected describes what would have been valid.
func (ve *ValidationError) WithExpected(value any) *ValidationError {
	ve.expected = value
	return ve
}

func (ve *ValidationError) Field() string    { return ve.field }
func (ve *ValidationError) Rule() string     { return ve.rule }
func (ve *ValidationError) Provided() any    { return ve.provided }
func (ve *ValidationError) Expected() any    { return ve.expected }

// NewRequiredFieldError reports a missing or empty required field.
func NewRequiredFieldError(fieldName string) *ValidationError {
	return NewValidationError(nil, ErrorCodeInvalidInput, "required field is missing or empty").
		WithField(fieldName).
		WithRule("required")
}

// NewFieldFormatError reports a field whose value doesn't match the expected format.
func NewFieldFormatError(fieldName string, provided any, expected string) *ValidationError {
	return NewValidationError(nil, ErrorCodeInvalidInput, "field value does not match expected format").
		WithField(fieldName).
		WithRule("format").
		WithProvided(provided).
		WithExpected(expected)
}

// NewFieldRangeError reports a field whose value is outside an acceptable range.
func NewFieldRangeError(fieldName string, provided any, min, max any) *ValidationError {
	return NewValidationError(nil, ErrorCodeInvalidInput, "field value is outside acceptable range").
		WithField(fieldName).
		WithRule("range").
		WithProvided(provided).
		WithDetail("minValue", min).
		WithDetail("maxValue", max)
}

// NewConfigurationValidationError reports an invalid configuration value.
func NewConfigurationValidationError(field string, issue string) *ValidationError {
	return NewValidationError(nil, ErrorCodeInvalidInput, "configuration validation failed").
		WithField(field).
		WithRule("configuration_integrity").
		WithDetail("issue", issue)
}
