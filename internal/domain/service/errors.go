package service

import "fmt"

// ModelLookupError reports a request for a model key that was never
// registered. This indicates a wiring or configuration error, not bad user
// input.
type ModelLookupError struct {
	Key string
}

// Error implements the error interface.
func (e *ModelLookupError) Error() string {
	return fmt.Sprintf("no model registered for key %q", e.Key)
}

// ExplainerLookupError reports that no registered explainer matched a
// model's name. The caller decides whether an unexplained model is fatal.
type ExplainerLookupError struct {
	ModelName string
}

// Error implements the error interface.
func (e *ExplainerLookupError) Error() string {
	return fmt.Sprintf("no explainer matches model %q", e.ModelName)
}

// ModelExecutionError wraps an unexpected failure inside a model's Predict.
// Execution errors are fatal to the whole ensemble call; the engine never
// substitutes a guessed score for a failed model.
type ModelExecutionError struct {
	ModelKey string
	Err      error
}

// Error implements the error interface.
func (e *ModelExecutionError) Error() string {
	return fmt.Sprintf("model %q failed during prediction: %v", e.ModelKey, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ModelExecutionError) Unwrap() error {
	return e.Err
}
