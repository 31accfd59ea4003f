package gains

import "errors"

var (
	// ErrInvalidInvestment is returned when the invested amount is not positive.
	ErrInvalidInvestment = errors.New("investment must be greater than zero")
	// ErrInvalidRange is returned when the start date is not before the end date.
	ErrInvalidRange = errors.New("start date must be before end date")
	// ErrNoSeriesData is returned when the company has no quotes in the requested range.
	ErrNoSeriesData = errors.New("no data for the specified company and date range")
	// ErrNoQuoteAtDate is returned when the series has no quote exactly at the start or end date.
	ErrNoQuoteAtDate = errors.New("no data for the specified dates")
)
