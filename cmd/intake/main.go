// cmd/intake/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"credit-intake/internal/common/auth"
	"credit-intake/internal/common/config"
	"credit-intake/internal/common/database"
	"credit-intake/internal/common/logger"
	"credit-intake/internal/common/observability"
	"credit-intake/internal/form"
	"credit-intake/internal/results"
	"credit-intake/internal/resultstore"
	"credit-intake/internal/scoring"
	"credit-intake/internal/storage"
	"credit-intake/internal/upload"
	"credit-intake/internal/wizard"
)

const (
	sampleDocFilename = "test_document.txt"
	sampleDocS3Key    = "a9c713a3-c695-4239-9f52-e46ab7ad5bff.txt"
)

func main() {
	personaName := flag.String("persona", "", "prefill the form from a named sample persona")
	useSampleDoc := flag.Bool("sample-doc", false, "attach the pre-uploaded sample document")
	metricsAddr := flag.String("metrics-addr", "", "serve Prometheus metrics on this address (e.g. :9102)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting intake session",
		zap.String("app", cfg.App.Name),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	if *metricsAddr != "" {
		go func() {
			http.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(*metricsAddr, nil); err != nil {
				zapLog.Warn("metrics server stopped", zap.Error(err))
			}
		}()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		zapLog.Info("Shutdown signal received")
		cancel()
	}()

	// --- Bearer credential source ---
	var tokens auth.TokenProvider
	if cfg.Auth.TokenURL != "" {
		tokens = auth.NewOIDCClient(cfg.Auth.TokenURL, cfg.Auth.ClientID, cfg.Auth.ClientSecret, cfg.Auth.Scope)
	} else {
		tokens = auth.NewStaticTokenProvider(os.Getenv("INTAKE_BEARER_TOKEN"))
	}

	// --- Write-credential issuer ---
	var issuer storage.CredentialIssuer
	switch cfg.Storage.Issuer {
	case "s3":
		issuer, err = storage.NewS3Issuer(ctx, cfg.Storage.Region, cfg.Storage.Bucket, time.Duration(cfg.Storage.PresignExpiry)*time.Second)
		if err != nil {
			zapLog.Fatal("s3 issuer init failed", zap.Error(err))
		}
	default:
		issuer = storage.NewGatewayIssuer(cfg.Storage.GatewayURL, tokens, log)
	}
	transfer := storage.NewTransfer(time.Duration(cfg.Storage.UploadTimeout) * time.Millisecond)

	// --- Shared result slot ---
	var slot resultstore.Slot
	if cfg.Results.Backend == "redis" {
		redisClient, err := database.NewRedis(cfg.Redis)
		if err != nil {
			zapLog.Fatal("redis init failed", zap.Error(err))
		}
		if err := redisClient.Ping(ctx); err != nil {
			zapLog.Fatal("redis ping failed", zap.Error(err))
		}
		defer redisClient.Close()
		slot = resultstore.NewRedisSlot(redisClient, time.Duration(cfg.Results.TTL)*time.Second)
		zapLog.Info("Redis result slot connected", zap.String("address", cfg.Redis.Address))
	} else {
		slot = resultstore.NewMemorySlot()
	}

	// --- Session components ---
	store := form.NewStore(log)
	manager := upload.NewManager(issuer, transfer, store, log)
	client := scoring.NewClient(cfg.Scoring.Endpoint, time.Duration(cfg.Scoring.Timeout)*time.Millisecond, log)
	orchestrator := scoring.NewOrchestrator(store, slot, tokens, client, obs, log)
	poller := results.NewPoller(slot, time.Duration(cfg.Results.PollInterval)*time.Millisecond, log)

	if *personaName != "" {
		persona, ok := form.FindPersona(*personaName)
		if !ok {
			zapLog.Fatal("unknown persona", zap.String("persona", *personaName))
		}
		store.ApplyPatch(persona.Patch)
		zapLog.Info("Persona loaded", zap.String("persona", persona.Name))
	}

	if *useSampleDoc {
		manager.RegisterUploaded(sampleDocFilename, sampleDocS3Key, "text/plain")
	}

	// --- Walk the wizard ---
	wiz := wizard.New(cancel, log)
	for {
		step := wiz.Current()
		zapLog.Info("Wizard step", zap.Int("step", step), zap.String("name", wizard.StepName(step)))

		if err := wizard.ValidateStep(step, store.Snapshot()); err != nil {
			if cfg.Wizard.Strict {
				zapLog.Fatal("step validation failed", zap.Int("step", step), zap.Error(err))
			}
			zapLog.Warn("step has validation findings", zap.Int("step", step), zap.Error(err))
		}

		if wiz.AtLastStep() {
			break
		}
		wiz.Next()
	}

	// --- Submit and await the score ---
	go func() {
		if _, err := orchestrator.Submit(ctx); err != nil {
			zapLog.Error("submission failed", zap.Error(err))
			cancel()
		}
	}()

	result, err := poller.Await(ctx)
	if err != nil {
		state := orchestrator.State()
		zapLog.Fatal("no result received",
			zap.Error(err),
			zap.String("submission_status", string(state.Status)),
			zap.String("submission_error", state.Err),
		)
	}

	renderer := results.NewRenderer(os.Stdout)
	renderer.Render(result)

	// --- Download links for the session's documents ---
	for _, f := range store.Snapshot().FileUploads {
		url, err := manager.DownloadURL(ctx, f.S3Key)
		if err != nil {
			zapLog.Warn("download URL failed", zap.String("s3_key", f.S3Key), zap.Error(err))
			continue
		}
		fmt.Printf("%s: %s\n", f.Filename, url)
	}
}
