package gains

import (
	"time"

	"github.com/tgallego/stock-gains/internal/stocks"
)

// Report summarizes the outcome of one investment over a date range.
// FinalValue is the investment scaled by the close-to-open price ratio,
// Gains is the profit or loss relative to the investment, and PercentChange
// is the relative price movement.
type Report struct {
	Company       string
	Start         time.Time
	End           time.Time
	Investment    float64
	OpenPrice     float64
	ClosePrice    float64
	FinalValue    float64
	Gains         float64
	PercentChange float64
}

// Calculator describes the behaviour required from a gains calculator.
type Calculator interface {
	Evaluate(quotes []stocks.Quote, start, end time.Time, investment float64) (Report, error)
}
