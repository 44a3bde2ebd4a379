package service

import (
	"strings"
)

// MissingFieldsError reports required trip fields that were absent or empty.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "Missing required fields: " + strings.Join(e.Fields, ", ")
}

// UpstreamError is the single failure kind of the generation call.
// Message carries the provider failure text; causes are never distinguished.
type UpstreamError struct {
	Message string
}

func (e *UpstreamError) Error() string {
	return "Error generating itinerary: " + e.Message
}
