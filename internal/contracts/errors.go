package contracts

import "errors"

// Error kinds separating recoverable per-ticker failures from fatal ones.
// The pipeline catches everything but fatal errors, logs the ticker and
// cause, and moves on.
var (
	// ErrProviderUnavailable marks network, HTTP >= 500 or timeout
	// failures on an external call. Per-ticker recoverable.
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrProviderEmpty marks a successful call returning no usable data.
	// Per-ticker recoverable.
	ErrProviderEmpty = errors.New("provider returned no data")

	// ErrSchemaViolation marks an LLM response failing JSON-schema
	// validation. The ticker is skipped, never guessed.
	ErrSchemaViolation = errors.New("llm response violates schema")

	// ErrNoRows means no ticker survived the run. Fatal: no CSV is
	// written, no report is sent, the process exits non-zero.
	ErrNoRows = errors.New("no rows survived screening")
)
