package retryqueue

// registerConfig holds per-registration options.
type registerConfig struct {
	onComplete CompletionFunc
}

// RegisterOption configures a single registration.
type RegisterOption func(*registerConfig)

// WithCompletion sets a callback invoked exactly once, with the item's
// id, when the operation completes successfully. It is not invoked on
// failure, cancellation, or disposal.
func WithCompletion(fn CompletionFunc) RegisterOption {
	return func(rc *registerConfig) {
		rc.onComplete = fn
	}
}
