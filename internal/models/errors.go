package models

import "errors"

// Request-level failures. Every one of them maps to a 400 at the HTTP boundary.
var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrExtraction     = errors.New("extraction failed")
	ErrTranscription  = errors.New("transcription failed")
	ErrConversion     = errors.New("audio conversion failed")
	ErrNoContent      = errors.New("no analyzable content")
)
