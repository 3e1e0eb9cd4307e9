package detector

import (
	"errors"
	"fmt"
)

// Sentinel errors for the three failure classes surfaced by the detector.
// ErrInvalidInput and ErrInvalidConfig are raised before any pixel work
// begins; ErrRuntime wraps unexpected failures inside the pipeline and is
// not retryable.
var (
	ErrInvalidInput  = errors.New("detector: invalid input frame")
	ErrInvalidConfig = errors.New("detector: invalid configuration")
	ErrRuntime       = errors.New("detector: runtime failure")
)

// ValidationError reports the first configuration rule that failed.
// Rule is a stable dotted path into the configuration (e.g. "shape.maxArea").
type ValidationError struct {
	Rule    string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("detector: config rule %s: %s", e.Rule, e.Message)
}

// Is makes every ValidationError match ErrInvalidConfig.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidConfig
}
