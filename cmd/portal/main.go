package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"school-portal/internal/assignments"
	"school-portal/internal/attendance"
	"school-portal/internal/config"
	"school-portal/internal/files"
	"school-portal/internal/logger"
	"school-portal/internal/router"
	"school-portal/internal/session"
	"school-portal/internal/storage"
	"school-portal/internal/submissions"
	"school-portal/internal/timetable"
	"school-portal/internal/users"
)

func main() {
	cfg := config.MustLoad()

	log := logger.Setup(cfg.Env)
	slog.SetDefault(log)
	slog.Info("config loaded",
		"env", cfg.Env,
		"addr", cfg.HTTPServer.Address,
		"upload_dir", cfg.UploadDir,
	)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	pool, err := storage.NewPool(ctx, cfg.PortalDB.DSN)
	if err != nil {
		slog.Error("failed to connect to portal db", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := storage.Bootstrap(ctx, pool, cfg.SeedDemo); err != nil {
		slog.Error("schema bootstrap failed", "error", err)
		os.Exit(1)
	}

	r := router.New(router.Deps{
		Sessions:    session.NewRegistry(),
		Files:       files.NewStore(cfg.UploadDir),
		Users:       users.NewRepository(pool),
		Assignments: assignments.NewRepository(pool),
		Submissions: submissions.NewRepository(pool),
		Timetable:   timetable.NewRepository(pool),
		Attendance:  attendance.NewRepository(pool),
		CORSOrigins: cfg.CORSOrigins,
	})

	server := http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      r,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}
	go func() {
		slog.Info("starting http server", "addr", cfg.HTTPServer.Address)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("http server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down http server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server shutdown error", "error", err)
	}
}
