package gains

import (
	"time"

	"github.com/tgallego/stock-gains/internal/stocks"
)

type ratioCalculator struct{}

// New creates a Calculator based on the close-to-open price ratio.
func New() Calculator {
	return &ratioCalculator{}
}

// Evaluate computes the outcome of investing the given amount at the opening
// price on start and selling at the closing price on end. Both dates must be
// covered by an exact quote in the series.
func (c *ratioCalculator) Evaluate(quotes []stocks.Quote, start, end time.Time, investment float64) (Report, error) {
	if investment <= 0 {
		return Report{}, ErrInvalidInvestment
	}
	if !start.Before(end) {
		return Report{}, ErrInvalidRange
	}
	if len(quotes) == 0 {
		return Report{}, ErrNoSeriesData
	}

	var openPrice, closePrice float64
	var haveOpen, haveClose bool
	for _, q := range quotes {
		if q.Date.Equal(start) {
			openPrice = q.Open
			haveOpen = true
		}
		if q.Date.Equal(end) {
			closePrice = q.Close
			haveClose = true
		}
	}
	if !haveOpen || !haveClose {
		return Report{}, ErrNoQuoteAtDate
	}

	finalValue := investment * closePrice / openPrice
	return Report{
		Company:       quotes[0].Name,
		Start:         start,
		End:           end,
		Investment:    investment,
		OpenPrice:     openPrice,
		ClosePrice:    closePrice,
		FinalValue:    finalValue,
		Gains:         finalValue - investment,
		PercentChange: (closePrice - openPrice) / openPrice * 100,
	}, nil
}
