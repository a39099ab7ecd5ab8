package domain

import "errors"

// Sentinel errors for the pipeline failure classes. Callers wrap these
// with fmt.Errorf("...: %w", err) to attach record and stage context.
var (
	// ErrValidation marks malformed or missing required input, such as an
	// empty author name or a CSV file without a required column.
	ErrValidation = errors.New("invalid input")

	// ErrStoreUnavailable marks an unreachable relational or document
	// store. Fatal for the run, never retried.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrFetch marks a failed network fetch of the primary article source.
	// Supplementary content fetches degrade to empty content instead.
	ErrFetch = errors.New("fetch failed")

	// ErrPersistence marks a failed write. Relational-side it aborts the
	// batch transaction; document-side it is recorded and the batch
	// continues.
	ErrPersistence = errors.New("persist failed")
)
