package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/backoffice-backend-go/internal/config"
	appHTTP "github.com/cmlabs-hris/backoffice-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/backoffice-backend-go/internal/service/attendance"
	payRateService "github.com/cmlabs-hris/backoffice-backend-go/internal/service/payrate"
	payrollService "github.com/cmlabs-hris/backoffice-backend-go/internal/service/payroll"
	profileService "github.com/cmlabs-hris/backoffice-backend-go/internal/service/profile"
	shiftService "github.com/cmlabs-hris/backoffice-backend-go/internal/service/shift"
	unavailabilityService "github.com/cmlabs-hris/backoffice-backend-go/internal/service/unavailability"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.App.LogLevel),
	})))

	loc, err := cfg.Location()
	if err != nil {
		return fmt.Errorf("error loading business timezone: %w", err)
	}

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}
	defer db.Close()

	if err := postgresql.EnsureSchema(ctx, db); err != nil {
		return fmt.Errorf("error applying schema: %w", err)
	}

	profileRepo := postgresql.NewProfileRepository(db)
	shiftRepo := postgresql.NewShiftRepository(db)
	punchRepo := postgresql.NewPunchRepository(db)
	payRateRepo := postgresql.NewPayRateRepository(db)
	unavailabilityRepo := postgresql.NewUnavailabilityRepository(db)

	authorizer := profileService.NewAuthorizer(profileRepo)
	calculator := payrollService.NewCalculator(loc)

	profileSvc := profileService.NewProfileService(profileRepo, authorizer, cfg.Store.ID)
	attendanceSvc := attendanceService.NewAttendanceService(punchRepo, shiftRepo, authorizer, loc)
	shiftSvc := shiftService.NewShiftService(shiftRepo, profileRepo, unavailabilityRepo, authorizer, loc, cfg.Store.ID)
	unavailabilitySvc := unavailabilityService.NewUnavailabilityService(unavailabilityRepo, authorizer, loc, cfg.Store.ID)
	payRateSvc := payRateService.NewPayRateService(
		payRateRepo,
		profileRepo,
		authorizer,
		payRateService.TxRunner(postgresql.TxRunner(db)),
		cfg.Store.ID,
	)
	payrollSvc := payrollService.NewPayrollService(
		shiftRepo,
		punchRepo,
		profileRepo,
		payRateRepo,
		authorizer,
		calculator,
		cfg.Store.ID,
	)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	router := appHTTP.NewRouter(cfg.App, JWTService, appHTTP.Handlers{
		Attendance:     appHTTP.NewAttendanceHandler(attendanceSvc),
		Payroll:        appHTTP.NewPayrollHandler(payrollSvc),
		Shift:          appHTTP.NewShiftHandler(shiftSvc),
		PayRate:        appHTTP.NewPayRateHandler(payRateSvc),
		Profile:        appHTTP.NewProfileHandler(profileSvc),
		Unavailability: appHTTP.NewUnavailabilityHandler(unavailabilitySvc),
	})

	scheduler := cron.NewScheduler(ctx)
	cron.NewPunchJobs(punchRepo).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "store_id", cfg.Store.ID, "timezone", loc.String())
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func logLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
