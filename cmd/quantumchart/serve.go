package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gogpu/chart"
	"github.com/gogpu/chart/internal/config"
	"github.com/gogpu/chart/internal/metrics"
	"github.com/gogpu/chart/recording"
	"github.com/gogpu/chart/source"
)

// maxDimension bounds the width and height a request may ask for.
const maxDimension = 8192

func runServe(ctx context.Context, args []string, stderr io.Writer) error {
	var configPath string
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&configPath, "config", "", "path to configuration file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, logger, err := setup(configPath, stderr)
	if err != nil {
		return err
	}
	if cfg.Upstream.BaseURL == "" {
		return errors.New("upstream baseURL is not configured")
	}
	logger.Info("starting quantumchart", slog.String("address", cfg.Server.Address))

	if err := metrics.Register(prometheus.DefaultRegisterer); err != nil {
		return err
	}

	srv, err := newServer(cfg, logger)
	if err != nil {
		return err
	}

	ctx, stop := context.WithCancel(ctx)
	defer stop()

	// Metrics share the chart listener unless a separate address is set.
	var metricsHandler http.Handler
	var metricsServer *http.Server
	if cfg.Server.MetricsAddress == "" || cfg.Server.MetricsAddress == cfg.Server.Address {
		metricsHandler = promhttp.Handler()
	} else {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		metricsServer = &http.Server{
			Addr:         cfg.Server.MetricsAddress,
			Handler:      mux,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 15 * time.Second,
		}
		go func() {
			logger.Info("metrics server listening", slog.String("address", cfg.Server.MetricsAddress))
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server exited", slog.Any("error", err))
				stop()
			}
		}()
	}

	httpServer := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      srv.routes(metricsHandler),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: cfg.Upstream.Timeout + 15*time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("chart server listening", slog.String("address", cfg.Server.Address))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.GracefulTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("chart server shutdown", slog.Any("error", err))
	}
	if metricsServer != nil {
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("metrics server shutdown", slog.Any("error", err))
		}
	}

	select {
	case err := <-serveErr:
		return err
	default:
	}
	logger.Info("quantumchart stopped")
	return nil
}

// server renders charts from the dashboard API on request.
type server struct {
	client *source.Client
	size   chart.Size
	opts   []chart.Option
	logger *slog.Logger
}

func newServer(cfg *config.Config, logger *slog.Logger) (*server, error) {
	opts, err := cfg.Chart.Options()
	if err != nil {
		return nil, err
	}
	return &server{
		client: source.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.EvolutionsPath, cfg.Upstream.BurnupPath, cfg.Upstream.Timeout),
		size:   cfg.Chart.Size(),
		opts:   opts,
		logger: logger,
	}, nil
}

func (s *server) routes(metricsHandler http.Handler) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("GET /evolution.svg", s.chartHandler(chart.KindEvolution, "svg"))
	mux.Handle("GET /evolution.png", s.chartHandler(chart.KindEvolution, "png"))
	mux.Handle("GET /burnup.svg", s.chartHandler(chart.KindBurnup, "svg"))
	mux.Handle("GET /burnup.png", s.chartHandler(chart.KindBurnup, "png"))
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = io.WriteString(w, "ok\n")
	})
	if metricsHandler != nil {
		mux.Handle("GET /metrics", metricsHandler)
	}
	return mux
}

// chartHandler serves one chart kind in one format. The width and height
// query parameters override the configured canvas; every other parameter
// is forwarded to the evolutions API.
func (s *server) chartHandler(kind chart.Kind, format string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		query := r.URL.Query()

		size, err := s.requestSize(query.Get("width"), query.Get("height"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		query.Del("width")
		query.Del("height")

		j := job{kind: kind, size: size, opts: s.opts}
		c, err := j.fetch(r.Context(), s.client, query.Encode())
		if err != nil {
			metrics.ObserveRender(kind.String(), format, time.Since(start), metrics.OutcomeError)
			if errors.Is(err, context.Canceled) {
				return
			}
			s.logger.Warn("chart unavailable",
				slog.String("chart", kind.String()),
				slog.Any("error", err))
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}

		backend, err := recording.NewWriterBackend(format)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if err := c.Render(backend); err != nil {
			metrics.ObserveRender(kind.String(), format, time.Since(start), metrics.OutcomeError)
			s.logger.Error("chart render failed", slog.String("chart", kind.String()), slog.Any("error", err))
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		var buf bytes.Buffer
		if _, err := backend.WriteTo(&buf); err != nil {
			metrics.ObserveRender(kind.String(), format, time.Since(start), metrics.OutcomeError)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		metrics.ObserveRender(kind.String(), format, time.Since(start), outcome(c))
		w.Header().Set("Content-Type", backend.ContentType())
		w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
		w.Header().Set("X-Chart-State", c.State.String())
		_, _ = buf.WriteTo(w)
	})
}

func (s *server) requestSize(width, height string) (chart.Size, error) {
	size := s.size
	for _, dim := range []struct {
		name string
		raw  string
		dst  *int
	}{
		{"width", width, &size.Width},
		{"height", height, &size.Height},
	} {
		if dim.raw == "" {
			continue
		}
		n, err := strconv.Atoi(dim.raw)
		if err != nil {
			return chart.Size{}, errors.New(dim.name + " must be an integer")
		}
		if n > maxDimension {
			return chart.Size{}, errors.New(dim.name + " exceeds " + strconv.Itoa(maxDimension))
		}
		*dim.dst = n
	}
	if err := size.Validate(); err != nil {
		return chart.Size{}, err
	}
	return size, nil
}
