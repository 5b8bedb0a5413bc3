package validator

// Validator checks tagged struct fields and reports all violations at once.
type Validator interface {
	Validate(data any) error
}
