package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eld-trip-planner/internal/api"
	"eld-trip-planner/internal/services"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd() *cobra.Command {
	var latestOnly bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, _ []string, a *app) error {
			be := a.backend()

			plannerOpts := []services.PlannerOption{services.WithPlannerLogger(a.log)}
			if latestOnly {
				plannerOpts = append(plannerOpts, services.WithLatestOnly())
			}

			router := api.NewRouter(api.Deps{
				Geocoder:    a.geocoder(),
				Backend:     be,
				Planner:     services.NewTripPlanner(be, plannerOpts...),
				Identity:    a.identity(),
				Log:         a.log,
				CORSOrigins: a.cfg.CORSOrigins,
			})

			// Write timeout covers a cold trip plan against the backend.
			srv := &http.Server{
				Addr:              ":" + a.cfg.Port,
				Handler:           router,
				ReadHeaderTimeout: 5 * time.Second,
				ReadTimeout:       10 * time.Second,
				WriteTimeout:      2 * a.cfg.HTTPTimeout,
				IdleTimeout:       60 * time.Second,
			}

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(stop)

			errc := make(chan error, 1)
			go func() {
				a.log.Info("server listening", zap.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errc <- err
				}
				close(errc)
			}()

			select {
			case err := <-errc:
				return err
			case <-stop:
			}
			a.log.Info("shutting down server")

			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				return err
			}

			a.log.Info("server stopped")
			return nil
		}),
	}

	cmd.Flags().BoolVar(&latestOnly, "latest-only", false, "keep only the most recently submitted trip when submissions overlap")
	return cmd
}
