// Package server exposes the duplicate scanner over HTTP: a scan endpoint,
// a health probe, and Prometheus metrics, with security middleware and
// bounded scan concurrency.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/semaphore"

	"github.com/agbru/dupscan/internal/config"
	"github.com/agbru/dupscan/internal/freq"
	"github.com/agbru/dupscan/internal/freq/threshold"
	"github.com/agbru/dupscan/internal/logging"
	"github.com/agbru/dupscan/internal/orchestration"
)

// ScanConcurrency caps simultaneous scans; requests beyond it receive 503.
const ScanConcurrency = 4

// shutdownTimeout bounds the graceful drain window on shutdown.
const shutdownTimeout = 10 * time.Second

// Server is the HTTP front end for the duplicate scanner.
type Server struct {
	addr       string
	factory    freq.ScannerFactory
	metrics    *Metrics
	logger     logging.Logger
	security   SecurityConfig
	defaults   config.AppConfig
	scanSem    *semaphore.Weighted
	tracer     trace.Tracer
	thresholds *threshold.DynamicThresholdManager
}

// NewServer creates a scan server listening on cfg.Serve. The config also
// supplies the scan defaults (threshold, workers, slab size) that requests
// may override per call. The parallel threshold starts from the config and
// is refined across requests from observed scan timings.
func NewServer(cfg config.AppConfig, factory freq.ScannerFactory, logger logging.Logger) *Server {
	parallelThreshold := cfg.ParallelThreshold
	if parallelThreshold <= 0 {
		parallelThreshold = freq.DefaultParallelThreshold
	}
	return &Server{
		addr:       cfg.Serve,
		factory:    factory,
		metrics:    NewMetrics(),
		logger:     logger,
		security:   DefaultSecurityConfig(),
		defaults:   cfg,
		scanSem:    semaphore.NewWeighted(ScanConcurrency),
		tracer:     otel.Tracer("dupscan/server"),
		thresholds: threshold.NewDynamicThresholdManager(parallelThreshold),
	}
}

// Run starts the HTTP server and blocks until ctx is cancelled or the
// listener fails. Shutdown drains in-flight requests within shutdownTimeout.
func (s *Server) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", SecurityMiddleware(s.security, s.metricsMiddleware(s.handleHealthz)))
	mux.HandleFunc("/metrics", SecurityMiddleware(s.security, s.metricsMiddleware(s.handleMetrics)))
	mux.HandleFunc("/api/v1/scan", SecurityMiddleware(s.security, s.metricsMiddleware(s.handleScan)))

	srv := &http.Server{
		Addr:              s.addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("scan server listening", logging.String("addr", s.addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	s.logger.Info("scan server stopped")
	return nil
}

// statusRecorder captures the response status for the metrics middleware.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware tracks active requests and counts completed requests by
// handler and status code.
func (s *Server) metricsMiddleware(next func(http.ResponseWriter, *http.Request)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.metrics.IncrementActiveRequests()
		defer s.metrics.DecrementActiveRequests()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)

		s.metrics.CountRequest(handlerLabel(r.URL.Path), rec.status)
	}
}

// handlerLabel maps a request path to its metrics label.
func handlerLabel(path string) string {
	switch {
	case strings.HasPrefix(path, "/api/v1/scan"):
		return "scan"
	case path == "/healthz":
		return "healthz"
	case path == "/metrics":
		return "metrics"
	default:
		return "other"
	}
}

// handleHealthz reports liveness.
func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}` + "\n"))
}

// handleMetrics serves the Prometheus exposition. GET only.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.logger.Info("rejected metrics request", logging.String("method", r.Method))
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.metrics.WritePrometheus(w, r)
}

// scanResponse is the JSON body returned by the scan endpoint.
type scanResponse struct {
	InputLength int      `json:"input_length"`
	Threshold   int      `json:"threshold"`
	Strategy    string   `json:"strategy"`
	Duplicates  []string `json:"duplicates"`
	Count       int      `json:"count"`
	DurationMS  float64  `json:"duration_ms"`
}

// handleScan runs a duplicate scan over the POSTed text body.
//
// Query parameters:
//   - strategy: scan strategy name; empty or "auto" selects by input length.
//   - threshold: minimum occurrences for a symbol to count as duplicate.
func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if !s.scanSem.TryAcquire(1) {
		s.logger.Info("scan rejected: capacity exhausted")
		http.Error(w, "scan capacity exhausted, retry later", http.StatusServiceUnavailable)
		return
	}
	defer s.scanSem.Release(1)

	// UTFMax per symbol bounds the body read before rune decoding.
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, int64(s.security.MaxInputLen)*utf8.UTFMax))
	if err != nil {
		http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
		return
	}

	text := strings.TrimSpace(string(body))
	seq := freq.AcquireRunes(utf8.RuneCountInString(text))
	defer freq.ReleaseRunes(seq)
	i := 0
	for _, r := range text {
		seq[i] = r
		i++
	}
	if len(seq) == 0 {
		http.Error(w, "empty scan input", http.StatusBadRequest)
		return
	}
	if len(seq) > s.security.MaxInputLen {
		http.Error(w, fmt.Sprintf("input exceeds %d symbols", s.security.MaxInputLen), http.StatusRequestEntityTooLarge)
		return
	}

	threshold := s.defaults.Threshold
	if threshold <= 0 {
		threshold = freq.DuplicateThreshold
	}
	if v := r.URL.Query().Get("threshold"); v != "" {
		t, err := strconv.Atoi(v)
		if err != nil || t < 1 {
			http.Error(w, "invalid threshold", http.StatusBadRequest)
			return
		}
		threshold = t
	}

	strategyName := r.URL.Query().Get("strategy")
	if strategyName == "" || strategyName == "auto" {
		strategyName = orchestration.SelectStrategyName(len(seq), s.thresholds.GetParallelThreshold())
	}
	scanner, err := s.factory.Get(strategyName)
	if err != nil {
		http.Error(w, fmt.Sprintf("unknown strategy %q", strategyName), http.StatusBadRequest)
		return
	}

	ctx, span := s.tracer.Start(r.Context(), "server.scan",
		trace.WithAttributes(
			attribute.Int("scan.input_length", len(seq)),
			attribute.String("scan.strategy", strategyName),
			attribute.Int("scan.threshold", threshold),
		))
	defer span.End()

	opts := freq.Options{
		Workers:   s.defaults.Workers,
		Threshold: threshold,
		SlabSize:  s.defaults.SlabSize,
	}

	start := time.Now()
	set, err := scanner.Scan(ctx, seq, nil, 0, opts)
	duration := time.Since(start)
	if err != nil {
		span.RecordError(err)
		s.logger.Error("scan failed", err, logging.String("strategy", strategyName))
		http.Error(w, "scan failed", http.StatusInternalServerError)
		return
	}

	span.SetAttributes(attribute.Int("scan.duplicates", len(set)))
	s.metrics.ObserveScan(duration, len(seq))
	s.thresholds.RecordScan(len(seq), duration, scanner.Name() != "sequential")
	s.thresholds.ShouldAdjust()

	symbols := set.Sorted()
	duplicates := make([]string, len(symbols))
	for i, sym := range symbols {
		duplicates[i] = string(sym)
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(scanResponse{
		InputLength: len(seq),
		Threshold:   threshold,
		Strategy:    strategyName,
		Duplicates:  duplicates,
		Count:       len(duplicates),
		DurationMS:  float64(duration.Microseconds()) / 1000.0,
	})
}
