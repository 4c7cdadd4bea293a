package analytics

import "errors"

var (
	// ErrAggregationUnavailable is returned when the record store cannot be
	// read; aggregation fails closed rather than returning partial data.
	ErrAggregationUnavailable = errors.New("attendance aggregation unavailable")
)
