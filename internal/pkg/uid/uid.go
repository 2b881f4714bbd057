// Package uid generates identifiers: snowflake numbers for rows and
// UUID v7 strings for correlation ids, token ids and object keys.
package uid

// NumberID generates unique, roughly time ordered int64 values.
type NumberID interface {
	Generate() int64
}

// StringID generates unique string values.
type StringID interface {
	Generate() string
}
