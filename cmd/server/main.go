package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/Swagat404/SettleUp/internal/config"
	"github.com/Swagat404/SettleUp/internal/ingest"
	"github.com/Swagat404/SettleUp/internal/ledger"
	"github.com/Swagat404/SettleUp/internal/metrics"
	"github.com/Swagat404/SettleUp/internal/middleware"
	"github.com/Swagat404/SettleUp/internal/openai"
	"github.com/Swagat404/SettleUp/internal/service"
	"github.com/Swagat404/SettleUp/internal/storage/sqlite"
	"github.com/Swagat404/SettleUp/internal/telemetry"
	"github.com/Swagat404/SettleUp/internal/voice"
	"github.com/Swagat404/SettleUp/pkg/logging"
)

const serviceName = "settleup"

func main() {
	if err := run(); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logging.Setup(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, serviceName, cfg.OTelEndpoint)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			slog.Warn("Tracing shutdown failed", "error", err)
		}
	}()

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	var opts []ledger.Option
	if cfg.UpstreamEnabled() {
		ai := openai.New(openai.Config{
			BaseURL: cfg.OpenAIBaseURL,
			APIKey:  cfg.OpenAIKey,
			Timeout: cfg.UpstreamTimeout,
		})
		opts = append(opts,
			ledger.WithBillParser(ingest.New(ai, ingest.Config{
				ParseModel:     cfg.ParseModel,
				TranslateModel: cfg.TranslateModel,
				TargetLanguage: cfg.Language(),
			})),
			ledger.WithVoiceMatcher(voice.New(ai, voice.Config{
				Model:     cfg.TranscribeModel,
				Threshold: cfg.MatchThreshold,
			})),
		)
		slog.Info("Bill scanning and voice matching enabled", "parse_model", cfg.ParseModel)
	} else {
		slog.Warn("OPENAI_API_KEY not set; bill scanning and voice matching are disabled")
	}

	interceptors := []connect.Interceptor{middleware.LoggingInterceptor()}

	mux := http.NewServeMux()
	if cfg.MetricsEnabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		interceptors = append(interceptors, metrics.New(reg).Interceptor())
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	}
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	service.Register(mux, ledger.New(store, opts...), connect.WithInterceptors(interceptors...))

	handler := middleware.RequestLogger(middleware.CORS(cfg.CORSOrigins)(mux))

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           h2c.NewHandler(handler, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		slog.Info("Connect server starting", "address", cfg.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
