// Package server serves the embedded calculator widget and the JSON API it
// calls on every input change.
package server

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"strings"

	"github.com/iwvelando/tax-calculator/internal/calculator"
	"github.com/iwvelando/tax-calculator/internal/config"
	"github.com/iwvelando/tax-calculator/pkg/constants"
	"github.com/iwvelando/tax-calculator/pkg/format"
	"github.com/iwvelando/tax-calculator/pkg/taxmath"
	"go.uber.org/zap"
)

//go:embed static/*
var staticFiles embed.FS

type handler struct {
	logger      *zap.Logger
	calc        *calculator.Calculator
	conf        *config.Configuration
	formatter   *format.Formatter
	metrics     *metrics
	maxBodySize int64
	version     string
}

// NewHandler constructs the HTTP handler that serves the web UI and conversion API.
func NewHandler(logger *zap.Logger, conf *config.Configuration, maxBodySize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if conf == nil {
		conf = &config.Configuration{}
		conf.ApplyDefaults()
	}

	if maxBodySize <= 0 {
		maxBodySize = constants.DefaultMaxBodySizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:      logger,
		calc:        calculator.New(logger),
		conf:        conf,
		formatter:   format.NewFormatter(conf.Output.Locale, conf.Output.CurrencySymbol),
		metrics:     newMetrics(),
		maxBodySize: maxBodySize,
		version:     trimmedVersion,
	}

	mux := http.NewServeMux()

	// Conversion API, called by the widget on every input change
	mux.HandleFunc("/api/convert", h.handleConvert)

	// Widget metadata
	mux.HandleFunc("/api/rates", h.handleRates)
	mux.HandleFunc("/api/defaults", h.handleDefaults)
	mux.HandleFunc("/api/version", h.handleVersion)

	mux.Handle("/metrics", h.metrics.handler())

	// Static assets (web UI)
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(fmt.Sprintf("failed to prepare embedded static files: %v", err))
	}
	fileServer := http.FileServer(http.FS(sub))
	mux.Handle("/", fileServer)

	return mux
}

// convertRequest accepts amount and rate as JSON strings or numbers so the
// widget can forward raw input text unchanged.
type convertRequest struct {
	Amount    textValue `json:"amount"`
	Rate      textValue `json:"rate"`
	Direction string    `json:"direction"`
	Region    string    `json:"region"`
}

type textValue string

func (v *textValue) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*v = ""
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*v = textValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", string(trimmed))
	}
	*v = textValue(n.String())
	return nil
}

type convertResponse struct {
	Direction   string          `json:"direction"`
	Description string          `json:"description"`
	Result      *taxmath.Result `json:"result"`
	Display     *displayResult  `json:"display,omitempty"`
}

type displayResult struct {
	OriginalAmount string `json:"originalAmount"`
	TaxAmount      string `json:"taxAmount"`
	FinalAmount    string `json:"finalAmount"`
	FinalLabel     string `json:"finalLabel"`
	Net            string `json:"net"`
	Gross          string `json:"gross"`
}

type defaultsResponse struct {
	Amount         string `json:"amount"`
	Rate           string `json:"rate"`
	Direction      string `json:"direction"`
	Locale         string `json:"locale"`
	CurrencySymbol string `json:"currencySymbol"`
}

func (h *handler) handleConvert(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleConvert"

	var req convertRequest
	switch r.Method {
	case http.MethodGet:
		query := r.URL.Query()
		req = convertRequest{
			Amount:    textValue(query.Get("amount")),
			Rate:      textValue(query.Get("rate")),
			Direction: query.Get("direction"),
			Region:    query.Get("region"),
		}
	case http.MethodPost:
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) {
				h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
					fmt.Sprintf("request body exceeds limit of %d bytes", h.maxBodySize), op)
				return
			}
			h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
			return
		}
	default:
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	direction := h.conf.DefaultDirection()
	if strings.TrimSpace(req.Direction) != "" {
		parsed, err := taxmath.ParseDirection(req.Direction)
		if err != nil {
			h.metrics.observe("unknown", outcomeRejected)
			h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
			return
		}
		direction = parsed
	}

	rate := string(req.Rate)
	if strings.TrimSpace(rate) == "" && strings.TrimSpace(req.Region) != "" {
		preset, ok := h.conf.PresetRate(req.Region)
		if !ok {
			h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("unknown region %q", req.Region), op)
			return
		}
		rate = fmt.Sprintf("%v", preset.Rate)
	}

	response := convertResponse{
		Direction:   string(direction),
		Description: direction.Description(),
	}

	result, ok := h.calc.Calculate(string(req.Amount), rate, direction)
	if !ok {
		h.metrics.observe(string(direction), outcomeNoResult)
		h.writeJSON(w, http.StatusOK, response)
		return
	}

	h.metrics.observe(string(direction), outcomeResult)
	response.Result = &result
	response.Display = &displayResult{
		OriginalAmount: h.formatter.Format(result.OriginalAmount),
		TaxAmount:      h.formatter.Format(result.TaxAmount),
		FinalAmount:    h.formatter.Format(result.FinalAmount),
		FinalLabel:     direction.FinalLabel(),
		Net:            h.formatter.Format(result.Net(direction)),
		Gross:          h.formatter.Format(result.Gross(direction)),
	}

	h.logger.Debug("conversion computed",
		zap.String("op", op),
		zap.String("direction", string(direction)),
		zap.Float64("original", result.OriginalAmount),
		zap.Float64("final", result.FinalAmount),
	)

	h.writeJSON(w, http.StatusOK, response)
}

func (h *handler) handleRates(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string][]config.RatePreset{
		"rates": h.conf.Rates,
	})
}

func (h *handler) handleDefaults(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, defaultsResponse{
		Amount:         h.conf.Defaults.Amount,
		Rate:           h.conf.Defaults.Rate,
		Direction:      string(h.conf.DefaultDirection()),
		Locale:         h.formatter.Locale(),
		CurrencySymbol: h.formatter.Symbol(),
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		h.logger.Error("failed to encode JSON response",
			zap.String("op", "server.writeJSON"),
			zap.Error(err),
		)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"failed to encode response"}` + "\n"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logger.Error("failed to write JSON response",
			zap.String("op", "server.writeJSON"),
			zap.Error(err),
		)
	}
}
