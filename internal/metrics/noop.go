package metrics

import "time"

// NoopRecorder discards all events.
type NoopRecorder struct{}

// NewNoop returns a Recorder that does nothing.
func NewNoop() *NoopRecorder {
	return &NoopRecorder{}
}

// IncUserRegistered does nothing.
func (n *NoopRecorder) IncUserRegistered() {}

// IncTokenIssued does nothing.
func (n *NoopRecorder) IncTokenIssued() {}

// IncRecipeCreated does nothing.
func (n *NoopRecorder) IncRecipeCreated() {}

// IncRecipeUpdated does nothing.
func (n *NoopRecorder) IncRecipeUpdated() {}

// IncRecipeDeleted does nothing.
func (n *NoopRecorder) IncRecipeDeleted() {}

// IncCartExported does nothing.
func (n *NoopRecorder) IncCartExported() {}

// ObserveCartBuildDuration does nothing.
func (n *NoopRecorder) ObserveCartBuildDuration(time.Duration) {}
