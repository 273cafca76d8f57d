// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Recorder receives domain events for instrumentation.
// Implementations must be safe for concurrent use.
type Recorder interface {
	IncUserRegistered()
	IncTokenIssued()
	IncRecipeCreated()
	IncRecipeUpdated()
	IncRecipeDeleted()
	IncCartExported()
	ObserveCartBuildDuration(duration time.Duration)
}
