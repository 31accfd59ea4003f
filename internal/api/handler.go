package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/tgallego/stock-gains/internal/gains"
	"github.com/tgallego/stock-gains/internal/stocks"
)

type contextKey string

const requestIDContextKey contextKey = "requestID"

const dateLayout = "2006-01-02"

var validate = validator.New()

func init() {
	// Report violations under the query parameter name, not the Go field name.
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		tag := strings.Split(field.Tag.Get("query"), ",")[0]
		if tag == "" || tag == "-" {
			return field.Name
		}
		return tag
	})
}

// Handler wires the stock store and gains calculator into HTTP handlers.
type Handler struct {
	store      stocks.Store
	calculator gains.Calculator
	report     *template.Template

	clock func() time.Time
}

// HandlerOption configures Handler behaviour.
type HandlerOption func(*Handler)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) HandlerOption {
	return func(h *Handler) {
		h.clock = clock
	}
}

// NewHandler constructs a Handler with the provided dependencies. The report
// template renders the HTML gains analysis.
func NewHandler(store stocks.Store, calc gains.Calculator, report *template.Template, opts ...HandlerOption) *Handler {
	h := &Handler{
		store:      store,
		calculator: calc,
		report:     report,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = r
	resp := healthResponse{
		Status:    "ok",
		Timestamp: h.clock(),
	}
	writeJSON(w, http.StatusOK, resp)
}

// gainsQuery is the validated query string of GET /api/gains.
type gainsQuery struct {
	Name         string  `query:"name" validate:"required"`
	StartingDate string  `query:"starting_date" validate:"required,datetime=2006-01-02"`
	EndDate      string  `query:"end_date" validate:"required,datetime=2006-01-02"`
	Investment   float64 `query:"investment" validate:"required,gt=0"`
}

func (h *Handler) handleGains(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	query := gainsQuery{
		Name:         strings.TrimSpace(values.Get("name")),
		StartingDate: strings.TrimSpace(values.Get("starting_date")),
		EndDate:      strings.TrimSpace(values.Get("end_date")),
	}
	if raw := strings.TrimSpace(values.Get("investment")); raw != "" {
		investment, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request", "investment must be a number")
			return
		}
		query.Investment = investment
	}

	if err := validate.Struct(query); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", validationDetails(err))
		return
	}

	// Validated against the layout above, so these cannot fail.
	start, _ := time.Parse(dateLayout, query.StartingDate)
	end, _ := time.Parse(dateLayout, query.EndDate)

	if !start.Before(end) {
		writeError(w, http.StatusBadRequest, "Invalid request", "Start date must be before end date.")
		return
	}

	series, err := h.store.Series(query.Name, start, end)
	if err != nil {
		writeInternalError(w, err)
		return
	}

	report, err := h.calculator.Evaluate(series, start, end, query.Investment)
	if err != nil {
		switch {
		case errors.Is(err, gains.ErrNoSeriesData):
			writeError(w, http.StatusNotFound, "Not found", "No data found for the specified company and date range.")
		case errors.Is(err, gains.ErrNoQuoteAtDate):
			writeError(w, http.StatusNotFound, "Not found", "No data found for the specified dates.")
		case errors.Is(err, gains.ErrInvalidRange):
			writeError(w, http.StatusBadRequest, "Invalid request", "Start date must be before end date.")
		case errors.Is(err, gains.ErrInvalidInvestment):
			writeError(w, http.StatusBadRequest, "Invalid request", err.Error())
		default:
			writeInternalError(w, err)
		}
		return
	}

	if acceptsJSON(r) {
		writeJSON(w, http.StatusOK, gainsResponse{
			Company:       report.Company,
			StartingDate:  report.Start.Format(dateLayout),
			EndDate:       report.End.Format(dateLayout),
			Investment:    report.Investment,
			OpenPrice:     report.OpenPrice,
			ClosePrice:    report.ClosePrice,
			FinalValue:    report.FinalValue,
			Gains:         report.Gains,
			PercentChange: report.PercentChange,
		})
		return
	}

	h.renderReport(w, report)
}

func (h *Handler) handleCompanies(w http.ResponseWriter, r *http.Request) {
	_ = r
	companies, err := h.store.Companies()
	if err != nil {
		writeInternalError(w, err)
		return
	}

	resp := companiesResponse{Companies: make([]companySummary, 0, len(companies))}
	for _, c := range companies {
		resp.Companies = append(resp.Companies, companySummary{
			Name:   c.Name,
			Quotes: c.Quotes,
			First:  c.First.Format(dateLayout),
			Last:   c.Last.Format(dateLayout),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// reportView carries pre-formatted values into the HTML report template.
type reportView struct {
	Company       string
	StartingDate  string
	EndDate       string
	Investment    string
	OpenPrice     string
	ClosePrice    string
	Gains         string
	GainsClass    string
	PercentChange string
	ChangeClass   string
	FinalValue    string
}

func (h *Handler) renderReport(w http.ResponseWriter, report gains.Report) {
	view := reportView{
		Company:       report.Company,
		StartingDate:  report.Start.Format(dateLayout),
		EndDate:       report.End.Format(dateLayout),
		Investment:    formatMoney(report.Investment),
		OpenPrice:     formatMoney(report.OpenPrice),
		ClosePrice:    formatMoney(report.ClosePrice),
		Gains:         formatMoney(report.Gains),
		GainsClass:    changeClass(report.Gains),
		PercentChange: fmt.Sprintf("%.2f%%", report.PercentChange),
		ChangeClass:   changeClass(report.PercentChange),
		FinalValue:    formatMoney(report.FinalValue),
	}

	var buf bytes.Buffer
	if err := h.report.Execute(&buf, view); err != nil {
		writeInternalError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func changeClass(value float64) string {
	if value < 0 {
		return "negative"
	}
	return "positive"
}

// formatMoney renders a dollar amount with thousands separators, e.g.
// "$1,234.56" or "-$0.50".
func formatMoney(value float64) string {
	sign := ""
	if value < 0 {
		sign = "-"
		value = -value
	}

	s := strconv.FormatFloat(value, 'f', 2, 64)
	intPart, fracPart, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	return fmt.Sprintf("%s$%s.%s", sign, b.String(), fracPart)
}

// validationDetails flattens validator errors into the messages the API
// contract promises.
func validationDetails(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err.Error()
	}

	parts := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		switch {
		case fieldErr.Tag() == "datetime":
			parts = append(parts, "Invalid date format. Use YYYY-MM-DD.")
		case fieldErr.Field() == "investment":
			parts = append(parts, "investment must be greater than zero")
		case fieldErr.Tag() == "required":
			parts = append(parts, fmt.Sprintf("%s is required", fieldErr.Field()))
		default:
			parts = append(parts, fmt.Sprintf("%s is invalid", fieldErr.Field()))
		}
	}
	return strings.Join(parts, "; ")
}

func acceptsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func requestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(requestIDContextKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

type gainsResponse struct {
	Company       string  `json:"company"`
	StartingDate  string  `json:"startingDate"`
	EndDate       string  `json:"endDate"`
	Investment    float64 `json:"investment"`
	OpenPrice     float64 `json:"openPrice"`
	ClosePrice    float64 `json:"closePrice"`
	FinalValue    float64 `json:"finalValue"`
	Gains         float64 `json:"gains"`
	PercentChange float64 `json:"percentChange"`
}

type companySummary struct {
	Name   string `json:"name"`
	Quotes int    `json:"quotes"`
	First  string `json:"first"`
	Last   string `json:"last"`
}

type companiesResponse struct {
	Companies []companySummary `json:"companies"`
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message, details string) {
	writeJSON(w, status, errorResponse{
		Error:   message,
		Details: details,
	})
}

func writeInternalError(w http.ResponseWriter, err error) {
	writeError(w, http.StatusInternalServerError, "Internal error", err.Error())
}
