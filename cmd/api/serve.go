package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/fitzone/fitzone-backend/internal/config"
	"github.com/fitzone/fitzone-backend/internal/database"
	"github.com/fitzone/fitzone-backend/internal/repository"
	"github.com/fitzone/fitzone-backend/internal/server"
	"github.com/fitzone/fitzone-backend/internal/services"
	"github.com/fitzone/fitzone-backend/internal/validation"
	"github.com/fitzone/fitzone-backend/pkg/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func runServe(migrate bool) error {
	return withDatabase(func(db *gorm.DB, cfg *config.Config, log *zap.Logger) error {
		if migrate {
			if err := database.RunMigrations(db); err != nil {
				return err
			}
			log.Info("Migrations applied")
		}
		return serve(db, cfg, log)
	})
}

func serve(db *gorm.DB, cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := validation.Register(); err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get database instance: %w", err)
	}

	hub := services.NewHub(log)
	go hub.Run(ctx)

	var events services.Publisher = services.NewLocalPublisher(hub)
	if cfg.RedisURL != "" {
		client, err := services.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		defer client.Close()
		events = services.NewRedisPublisher(client)
		go services.RelayBookingEvents(ctx, client, hub, log)
		log.Info("Booking events go through Redis", zap.String("channel", services.BookingEventsChannel))
	} else {
		log.Warn("REDIS_URL not set, booking events stay in this process")
	}

	var notifier services.BookingNotifier = services.NopNotifier{}
	if cfg.SMTPConfigured() {
		mailer := utils.NewMailer(utils.MailerConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			From:     cfg.EmailFrom,
			Password: cfg.EmailPassword,
		})
		notifier = services.NewEmailNotifier(mailer, log)
	} else {
		log.Warn("SMTP not configured, booking emails are disabled")
	}

	storage, err := services.NewStorage(cfg)
	if err != nil {
		return err
	}

	users := repository.NewUserRepository(db)
	schedules := repository.NewScheduleRepository(db)
	memberships := repository.NewMembershipRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	bookings := services.NewBookingService(
		memberships,
		schedules,
		bookingRepo,
		repository.NewTransactor(db),
		events,
		notifier,
		log,
	)

	router := server.NewRouter(cfg, server.Deps{
		Users:       users,
		Trainers:    repository.NewTrainerRepository(db),
		Schedules:   schedules,
		Memberships: memberships,
		Services:    repository.NewServiceRepository(db),
		Contacts:    repository.NewContactRepository(db),
		Bookings:    bookings,
		Storage:     storage,
		Hub:         hub,
		DB:          sqlDB,
		Logger:      log,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
