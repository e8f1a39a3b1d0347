package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/01moynul/pedidos-portal/internal/apiclient"
	"github.com/01moynul/pedidos-portal/internal/auth"
	"github.com/01moynul/pedidos-portal/internal/catalog"
	"github.com/01moynul/pedidos-portal/internal/database"
	"github.com/01moynul/pedidos-portal/internal/handlers"
	"github.com/01moynul/pedidos-portal/internal/middleware"
	"github.com/01moynul/pedidos-portal/internal/notify"
	"github.com/01moynul/pedidos-portal/internal/orders"
	"github.com/01moynul/pedidos-portal/internal/routes"
	"github.com/01moynul/pedidos-portal/internal/session"
	"github.com/01moynul/pedidos-portal/internal/web"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the web portal",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "address", Aliases: []string{"a"}, Usage: "host:port to listen on (RUN_ADDRESS)"},
			apiFlag,
			logLevelFlag,
			&cli.StringFlag{Name: "db-driver", Usage: "mysql or sqlite (DB_DRIVER)"},
			&cli.StringFlag{Name: "db-dsn", Aliases: []string{"d"}, Usage: "session database DSN (DB_DSN)"},
		},
		Action: serve,
	}
}

func serve(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	// 1. --- Session database ---
	ctx, cancel := context.WithTimeout(c.Context, 5*time.Second)
	db, err := database.OpenDB(ctx, cfg.DBDriver, cfg.DBDSN)
	cancel()
	if err != nil {
		return errors.Wrap(err, "open session database")
	}
	defer db.Close()
	store := session.NewStore(db)

	// 2. --- API client & services ---
	client := apiclient.New(cfg.APIBaseURL, apiclient.Options{
		Timeout:     cfg.HTTPTimeout,
		RPS:         cfg.RateRPS,
		Burst:       cfg.RateBurst,
		RefreshPath: cfg.RefreshPath,
	})
	guard := auth.NewGuard(client, store, cfg.RefreshSkew)
	runner := orders.NewRunner(guard)

	hub := notify.NewHub(cfg.BannerTTL)
	app := &handlers.Handlers{
		Sessions: store,
		Customer: orders.NewCustomerService(client, runner),
		Admin:    orders.NewAdminService(client, runner),
		Catalog:  catalog.NewService(client, guard),
		Hub:      hub,
		Cookie: middleware.CookieOptions{
			Name:   cfg.SessionCookie,
			Secure: cfg.CookieSecure,
			MaxAge: int(cfg.SessionMaxAge.Seconds()),
		},
		Storage: client.StorageURL,
	}

	// 3. --- Router ---
	tmpl, err := web.Templates()
	if err != nil {
		return errors.Wrap(err, "parse templates")
	}
	router := routes.SetupRouter(app, store, routes.Options{
		AllowedOrigin: cfg.AllowedOrigin,
		Templates:     tmpl,
	})

	// 4. --- Background worker: drop abandoned sessions ---
	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	go pruneSessions(workerCtx, store, hub, cfg.PruneInterval, cfg.SessionMaxAge)

	// 5. --- Start server ---
	// WriteTimeout stays zero: the notification stream is long-lived.
	srv := &http.Server{
		Addr:              cfg.Address,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.WithField("address", srv.Addr).Info("starting order portal")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// 6. --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return errors.Wrap(err, "listen")
	case <-quit:
	}
	log.Info("shutting down server")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutdown")
	}
	log.Info("server stopped gracefully")
	return nil
}

// pruneSessions deletes sessions untouched for longer than maxAge, every interval,
// and drops the notification state of sessions with no open page.
func pruneSessions(ctx context.Context, store *session.Store, hub *notify.Hub, interval, maxAge time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.WithField("interval", interval.String()).Info("session pruning worker started")
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if swept := hub.Sweep(); swept > 0 {
				log.WithField("swept", swept).Debug("dropped idle notification state")
			}
			n, err := store.Prune(ctx, maxAge)
			if err != nil {
				log.WithError(err).Warn("prune sessions")
				continue
			}
			if n > 0 {
				log.WithField("removed", n).Info("pruned stale sessions")
			}
		}
	}
}
