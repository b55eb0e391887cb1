package domain

import "errors"

// Failure kinds shared by the resolution pipeline and the provider adapters.
// Callers wrap them with context and inspect them with errors.Is.
var (
	// The compact code matches neither the global nor the local shape, or fails to decode.
	ErrMalformedCode = errors.New("malformed compact code")
	// A local compact code whose reference place could not be located.
	ErrNoAnchor = errors.New("no anchor for local compact code")
	// A geocoding, matrix or route service was unreachable, timed out or answered non-success.
	ErrLookupFailed = errors.New("lookup failed")
	// The geocoding service answered but had nothing for the query.
	ErrNoResult = errors.New("no result")
	// Every resolution tier failed for a record.
	ErrUnresolved = errors.New("unresolved")
	// Fewer than two resolved stops were available for sequencing.
	ErrInsufficientPoints = errors.New("insufficient points")
)
