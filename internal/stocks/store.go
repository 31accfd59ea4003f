package stocks

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/tgallego/stock-gains/internal/dataprep"
)

// Quote is one daily price record for a company.
type Quote struct {
	Name   string
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Company summarizes one ticker present in the dataset.
type Company struct {
	Name   string
	Quotes int
	First  time.Time
	Last   time.Time
}

// Store provides access to the daily stock quotes.
type Store interface {
	Series(name string, from, to time.Time) ([]Quote, error)
	Companies() ([]Company, error)
}

// FileStore serves quotes from a CSV dataset. The file is read once, on the
// first call that needs data, and missing numeric cells are repaired per
// company with KNN imputation before any quote is served. Prices are never
// scaled here: the serving path must report them in dollars.
type FileStore struct {
	path      string
	neighbors int
	logger    *zap.Logger

	once      sync.Once
	loadErr   error
	companies map[string][]Quote
	names     []string
}

// FileStoreOption configures a FileStore.
type FileStoreOption func(*FileStore)

// WithNeighbors sets the neighbor count used for imputation.
func WithNeighbors(k int) FileStoreOption {
	return func(s *FileStore) {
		if k > 0 {
			s.neighbors = k
		}
	}
}

// WithLogger routes load-time progress to the given logger.
func WithLogger(logger *zap.Logger) FileStoreOption {
	return func(s *FileStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewFileStore creates a FileStore over the CSV dataset at path. The file is
// not touched until the first query.
func NewFileStore(path string, opts ...FileStoreOption) *FileStore {
	s := &FileStore{
		path:      path,
		neighbors: dataprep.Neighbors,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Series returns the quotes for the named company with dates in [from, to],
// both ends inclusive, ordered by date. An unknown company yields an empty
// series. The result is a defensive copy; Series is safe for concurrent use.
func (s *FileStore) Series(name string, from, to time.Time) ([]Quote, error) {
	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}

	series := make([]Quote, 0)
	for _, q := range s.companies[name] {
		if q.Date.Before(from) || q.Date.After(to) {
			continue
		}
		series = append(series, q)
	}
	return series, nil
}

// Companies returns a summary of every ticker in the dataset, sorted by name.
func (s *FileStore) Companies() ([]Company, error) {
	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}

	out := make([]Company, 0, len(s.names))
	for _, name := range s.names {
		quotes := s.companies[name]
		out = append(out, Company{
			Name:   name,
			Quotes: len(quotes),
			First:  quotes[0].Date,
			Last:   quotes[len(quotes)-1].Date,
		})
	}
	return out, nil
}

func (s *FileStore) ensureLoaded() error {
	s.once.Do(func() {
		s.loadErr = s.load()
	})
	return s.loadErr
}

// The dataset header. Column order in the file does not matter; names do.
var quoteColumns = []string{"date", "open", "high", "low", "close", "volume", "Name"}

func (s *FileStore) load() error {
	frame, err := dataprep.ReadCSV(s.path)
	if err != nil {
		return err
	}

	idx := make(map[string]int, len(quoteColumns))
	for _, col := range quoteColumns {
		j, err := frame.ColumnIndex(col)
		if err != nil {
			return fmt.Errorf("dataset %s: %w", s.path, err)
		}
		idx[col] = j
	}

	grouped := make(map[string][]Quote)
	for r, record := range frame.Records {
		raw := strings.TrimSpace(record[idx["date"]])
		date, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return fmt.Errorf("dataset %s line %d: bad date %q", s.path, r+2, raw)
		}
		name := record[idx["Name"]]
		grouped[name] = append(grouped[name], Quote{
			Name:   name,
			Date:   date,
			Open:   parsePrice(record[idx["open"]]),
			High:   parsePrice(record[idx["high"]]),
			Low:    parsePrice(record[idx["low"]]),
			Close:  parsePrice(record[idx["close"]]),
			Volume: parsePrice(record[idx["volume"]]),
		})
	}

	names := make([]string, 0, len(grouped))
	for name, quotes := range grouped {
		sort.Slice(quotes, func(i, j int) bool {
			return quotes[i].Date.Before(quotes[j].Date)
		})
		imputeQuotes(quotes, s.neighbors)
		names = append(names, name)
	}
	sort.Strings(names)

	s.companies = grouped
	s.names = names
	s.logger.Info("stock dataset loaded",
		zap.String("path", s.path),
		zap.Int("rows", len(frame.Records)),
		zap.Int("companies", len(names)),
	)
	return nil
}

// imputeQuotes repairs missing numeric cells within one company's series.
func imputeQuotes(quotes []Quote, neighbors int) {
	matrix := make([][]float64, len(quotes))
	for i, q := range quotes {
		matrix[i] = []float64{q.Open, q.High, q.Low, q.Close, q.Volume}
	}
	dataprep.ImputeKNN(matrix, neighbors)
	for i := range quotes {
		quotes[i].Open = matrix[i][0]
		quotes[i].High = matrix[i][1]
		quotes[i].Low = matrix[i][2]
		quotes[i].Close = matrix[i][3]
		quotes[i].Volume = matrix[i][4]
	}
}

func parsePrice(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "NA" || raw == "NaN" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
