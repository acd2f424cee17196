package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	api "github.com/mind-engage/mindengage-speaking/internal/api/http"
	auth "github.com/mind-engage/mindengage-speaking/internal/auth/middleware"
	"github.com/mind-engage/mindengage-speaking/internal/config"
	"github.com/mind-engage/mindengage-speaking/internal/db"
	"github.com/mind-engage/mindengage-speaking/internal/grading"
	"github.com/mind-engage/mindengage-speaking/internal/lesson"
	syncx "github.com/mind-engage/mindengage-speaking/internal/sync"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("%v", err)
	}

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	defer dbh.Close()

	events := syncx.NewEventRepo(dbh, "")
	grader := grading.NewDefaultGrader(grading.WithSpellingThreshold(cfg.SpellingThreshold))
	store := lesson.NewSQLStore(dbh, grader, events)

	// --- Auth (local JWT; dev logins only offline) ---
	authSvc := auth.NewAuthService(cfg.AuthHMACSecret,
		auth.WithAdmin(cfg.AdminUser, cfg.AdminPassHash),
		auth.WithDevLogins(cfg.Mode == config.ModeOffline),
	)

	srv := &http.Server{
		Addr: cfg.HTTPAddr,
		Handler: api.NewRouter(api.Deps{
			Store:       store,
			Events:      events,
			Auth:        authSvc,
			CORSOrigins: cfg.CORSOrigins(),
			LocalLogin:  cfg.EnableLocalAuth,
			Ready:       dbh.Ping,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("listening on %s (mode=%s, db=%s, public=%s)", cfg.HTTPAddr, cfg.Mode, cfg.DBDriver, cfg.PublicURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	log.Printf("stopped")
}
