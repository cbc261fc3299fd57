// Package inference describes the learned models the classifiers and the
// transcription engine may delegate to, and whether each one is loaded.
package inference

import "errors"

var errNeverLoaded = errors.New("model was never loaded")

// Handle is either Loaded(model) or Unavailable(reason). The zero value is
// Unavailable.
type Handle[T any] struct {
	model  T
	loaded bool
	reason error
}

func Loaded[T any](model T) Handle[T] {
	return Handle[T]{model: model, loaded: true}
}

func Unavailable[T any](reason error) Handle[T] {
	if reason == nil {
		reason = errNeverLoaded
	}
	return Handle[T]{reason: reason}
}

// Get returns the model and true when the handle is Loaded.
func (h Handle[T]) Get() (T, bool) {
	return h.model, h.loaded
}

func (h Handle[T]) IsLoaded() bool {
	return h.loaded
}

// Reason explains why the handle is Unavailable. It is nil for Loaded handles.
func (h Handle[T]) Reason() error {
	if h.loaded {
		return nil
	}
	if h.reason == nil {
		return errNeverLoaded
	}
	return h.reason
}

// Status is a short description used by the health endpoint.
func (h Handle[T]) Status() string {
	if h.loaded {
		return "loaded"
	}
	return "unavailable: " + h.Reason().Error()
}
