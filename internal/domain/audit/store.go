package audit

import "context"

// Store persists audit records. The async audit service guarantees Append
// is never called on the request hot path.
type Store interface {
	// Append stores records.
	Append(ctx context.Context, records ...Record) error

	// Flush forces pending records to storage. Called during shutdown.
	Flush(ctx context.Context) error

	// Close releases resources.
	Close() error
}
