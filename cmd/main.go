package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	grpchealth "google.golang.org/grpc/health"

	"github.com/dtroode/studentinfo-server/internal/api/grpc/health"
	grpcRouter "github.com/dtroode/studentinfo-server/internal/api/grpc/router"
	grpcServer "github.com/dtroode/studentinfo-server/internal/api/grpc/server"
	httpContext "github.com/dtroode/studentinfo-server/internal/api/http/context"
	httpRouter "github.com/dtroode/studentinfo-server/internal/api/http/router"
	httpServer "github.com/dtroode/studentinfo-server/internal/api/http/server"
	"github.com/dtroode/studentinfo-server/internal/config"
	"github.com/dtroode/studentinfo-server/internal/logger"
	"github.com/dtroode/studentinfo-server/internal/metrics"
	"github.com/dtroode/studentinfo-server/internal/model"
	"github.com/dtroode/studentinfo-server/internal/password"
	"github.com/dtroode/studentinfo-server/internal/repository/memory"
	"github.com/dtroode/studentinfo-server/internal/repository/offline"
	"github.com/dtroode/studentinfo-server/internal/repository/postgres"
	"github.com/dtroode/studentinfo-server/internal/server"
	"github.com/dtroode/studentinfo-server/internal/service"
	storage "github.com/dtroode/studentinfo-server/internal/storage/minio"
	"github.com/dtroode/studentinfo-server/internal/token"
	"github.com/dtroode/studentinfo-server/internal/validation"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

const shutdownTimeout = 10 * time.Second

type stores struct {
	users    model.UserStore
	students model.StudentStore
	pinger   health.Pinger
	close    func()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	logAppVersion()

	st := openStores(ctx, cfg.Database, logger)
	defer st.close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	tokenManager, err := token.NewJWT(cfg.JWT.Secret, cfg.JWT.Algorithm)
	if err != nil {
		logger.Fatal("failed to initialize token manager", "error", err)
	}
	validator := validation.New()

	var archive model.Storage
	if cfg.Storage.Enabled {
		archiveClient, err := storage.New(ctx, cfg.Storage)
		if err != nil {
			logger.Fatal("failed to initialize storage client", "error", err)
		}
		archive = archiveClient
	}

	authService := service.NewAuth(st.users, password.NewBcrypt(cfg.Password.Cost), tokenManager,
		cfg.JWT.AccessTokenTTL(), validator, m, logger)
	studentService := service.NewStudent(st.students, archive, validator, logger)

	if cfg.Seed.Enabled {
		if err := studentService.SeedDefaults(ctx); err != nil {
			logger.Error("failed to seed students", "error", err)
		}
	}

	apiServer := httpServer.NewHTTPServer(
		httpRouter.New(authService, studentService, httpContext.NewManager(), m, reg, cfg.HTTP.RequestTimeout, logger).Register(),
		fmt.Sprintf(":%s", cfg.HTTP.Port),
	)

	healthServer := grpchealth.NewServer()
	opsServer := grpcServer.NewGRPCServer(
		grpcRouter.New(healthServer, logger).Register(),
		fmt.Sprintf(":%s", cfg.GRPC.Port),
	)

	var sl model.SecurityLayer
	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	start := func(s model.Server, sl model.SecurityLayer) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			logger.Info("Starting server on", "address", s.Address())
			if err := s.Start(sl); err != nil {
				logger.Error("failed to start server", "error", err, "address", s.Address())
				stop()
			}
		}()
	}
	start(apiServer, sl)
	start(opsServer, server.NewPlainListener())

	monitor := health.NewMonitor(st.pinger, healthServer, m, cfg.GRPC.HealthInterval, logger)
	wg.Add(1)
	go func() {
		defer wg.Done()
		monitor.Run(ctx)
	}()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	for _, s := range []model.Server{apiServer, opsServer} {
		if err := s.Stop(shutdownCtx); err != nil {
			logger.Error("error during server shutdown", "error", err, "address", s.Address())
		}
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

// openStores picks the store backend. An unreachable database degrades to
// offline stores instead of aborting startup.
func openStores(ctx context.Context, cfg config.Database, logger *logger.Logger) stores {
	if cfg.Driver == config.DriverMemory {
		logger.Info("using in-memory stores")
		students := memory.NewStudentStore()
		return stores{
			users:    memory.NewUserStore(),
			students: students,
			pinger:   students,
			close:    func() {},
		}
	}

	db, err := postgres.NewConection(ctx, cfg.DSN)
	if err != nil {
		logger.Error("database unavailable, serving in degraded mode", "error", err)
		return stores{
			users:    offline.UserStore{},
			students: offline.StudentStore{},
			pinger:   offline.StudentStore{},
			close:    func() {},
		}
	}

	return stores{
		users:    postgres.NewUserRepository(db),
		students: postgres.NewStudentRepository(db),
		pinger:   db,
		close:    func() { _ = db.Close() },
	}
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
