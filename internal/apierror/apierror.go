// Package apierror defines the single error envelope every 4xx/5xx response
// uses. Handlers translate service errors into one of these two shapes;
// internals (SQL text, stack traces) stay in the logs.
package apierror

// APIError carries a human-readable detail and nothing else.
type APIError struct {
	Detail string `json:"detail"`
}

func (e *APIError) Error() string { return e.Detail }

func New(detail string) *APIError {
	return &APIError{Detail: detail}
}

// ValidationError adds the per-field failures from request binding.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}
