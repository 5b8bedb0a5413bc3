package uid

// NumberID generates int64 identifiers for database records.
type NumberID interface {
	Generate() int64
}

// StringID generates string identifiers (correlation IDs, token IDs).
type StringID interface {
	Generate() string
}
