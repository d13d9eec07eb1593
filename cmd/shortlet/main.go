package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"shortlet/internal/app/bookings"
	"shortlet/internal/app/quotes"
	domainbooking "shortlet/internal/domain/booking"
	"shortlet/internal/domain/currency"
	"shortlet/internal/domain/listings"
	"shortlet/internal/domain/pricing"
	"shortlet/internal/domain/shared/money"
	"shortlet/internal/infra/broker/kafka"
	"shortlet/internal/infra/config"
	mongodb "shortlet/internal/infra/db/mongo"
	"shortlet/internal/infra/fx"
	ginserver "shortlet/internal/infra/http/gin"
	"shortlet/internal/infra/obs"
	infraoutbox "shortlet/internal/infra/outbox"
	"shortlet/internal/infra/storage/memory"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_ = godotenv.Load()

	env := getenv("APP_ENV", "dev")
	logger := obs.NewLogger(env)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("configuration invalid", "error", err)
		os.Exit(1)
	}

	converter := currency.NewConverter(currency.DefaultTable(time.Now()))

	listingRepo := memory.NewListingRepository()
	var bookingRepo domainbooking.Repository = memory.NewBookingRepository()
	ready := func() error { return nil }
	if cfg.MongoURI != "" {
		client, err := mongodb.New(cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			logger.Error("mongo connect failed", "error", err)
			os.Exit(1)
		}
		defer func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Close(closeCtx)
		}()
		bookingRepo = mongodb.NewBookingRepository(client.DB)
		ready = func() error {
			pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return client.Ping(pingCtx)
		}
		logger.Info("booking storage: mongo", "db", cfg.MongoDB)
	} else {
		logger.Info("booking storage: memory")
	}

	outboxStore := memory.NewOutboxStore()

	var producer infraoutbox.Producer = infraoutbox.LogProducer{Logger: logger}
	if len(cfg.KafkaBrokers) > 0 {
		kafkaProducer, err := kafka.NewProducer(cfg.KafkaBrokers, nil)
		if err != nil {
			logger.Error("kafka producer init failed", "error", err)
			os.Exit(1)
		}
		defer kafkaProducer.Close()
		producer = kafkaProducer
		logger.Info("event publisher: kafka", "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("event publisher: log only")
	}

	worker := &infraoutbox.Worker{
		Store:       outboxStore,
		Producer:    producer,
		Interval:    cfg.OutboxPollInterval,
		TopicPrefix: cfg.KafkaTopicPrefix,
		Backoff:     cfg.RetryBackoff,
		Logger:      logger,
	}
	go func() {
		if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("outbox worker stopped", "error", err)
		}
	}()

	if cfg.FXFeedURL != "" {
		refresher := &fx.Refresher{
			Client: &fx.Client{
				HTTP:     &http.Client{Timeout: cfg.FXRequestTimeout},
				Endpoint: cfg.FXFeedURL,
			},
			Converter: converter,
			Interval:  cfg.FXRefreshInterval,
			Logger:    logger,
		}
		go func() {
			if err := refresher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("fx refresher stopped", "error", err)
			}
		}()
		logger.Info("fx feed enabled", "url", cfg.FXFeedURL, "interval", cfg.FXRefreshInterval)
	} else {
		logger.Info("fx feed disabled, using static rate table", "base", converter.Table().Base())
	}

	quoteSvc := &quotes.Service{
		Listings:   listingRepo,
		Calculator: pricing.NewCalculator(pricing.DefaultFeeSchedule()),
		Converter:  converter,
	}
	bookingSvc := &bookings.Service{
		Bookings: bookingRepo,
		Quotes:   quoteSvc,
		Outbox:   outboxStore,
	}

	if err := loadListingFixtures(ctx, listingRepo, cfg.ListingFixtures, logger); err != nil {
		logger.Warn("listing fixtures load failed", "error", err, "path", cfg.ListingFixtures)
	}

	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{Ready: ready}, ginserver.Handlers{
		Quote:   ginserver.QuoteHandler{Quotes: quoteSvc},
		Booking: ginserver.BookingHandler{Bookings: bookingSvc},
		Me:      ginserver.MeHandler{Bookings: bookingSvc},
		Rates:   ginserver.RatesHandler{Converter: converter},
	})

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

type listingFixture struct {
	ID          string `json:"id"`
	HostID      string `json:"host_id"`
	Title       string `json:"title"`
	City        string `json:"city"`
	NightlyRate int64  `json:"nightly_rate"`
	Currency    string `json:"currency"`
	MaxGuests   int    `json:"max_guests"`
}

// loadListingFixtures seeds the listing provider from a JSON file, falling
// back to a small demo set so quoting works out of the box.
func loadListingFixtures(ctx context.Context, repo listings.Repository, path string, logger *slog.Logger) error {
	fixtures := defaultListingFixtures()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if err := json.Unmarshal(data, &fixtures); err != nil {
			return err
		}
	}
	for _, f := range fixtures {
		rate, err := money.New(f.NightlyRate, f.Currency)
		if err != nil {
			logger.Warn("skipping fixture with bad currency", "id", f.ID, "currency", f.Currency)
			continue
		}
		listing := &listings.Listing{
			ID:          listings.ListingID(f.ID),
			HostID:      f.HostID,
			Title:       f.Title,
			City:        f.City,
			NightlyRate: rate,
			MaxGuests:   f.MaxGuests,
			Active:      true,
		}
		if err := repo.Save(ctx, listing); err != nil {
			return err
		}
	}
	logger.Info("listings seeded", "count", len(fixtures))
	return nil
}

func defaultListingFixtures() []listingFixture {
	return []listingFixture{
		{ID: "lst-lekki-2br", HostID: "host-ada", Title: "2BR apartment off Admiralty Way", City: "Lagos", NightlyRate: 20000, Currency: "NGN", MaxGuests: 4},
		{ID: "lst-vi-studio", HostID: "host-ada", Title: "Studio near Eko Hotel", City: "Lagos", NightlyRate: 35000, Currency: "NGN", MaxGuests: 2},
		{ID: "lst-abuja-loft", HostID: "host-chuka", Title: "Maitama loft with terrace", City: "Abuja", NightlyRate: 45000, Currency: "NGN", MaxGuests: 6},
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
