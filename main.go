package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mbolis/online-survey/app"
	"github.com/mbolis/online-survey/config"
	"github.com/mbolis/online-survey/database"
	"github.com/mbolis/online-survey/log"
	"github.com/mbolis/online-survey/routes"
	"github.com/mbolis/online-survey/store"
	"github.com/spf13/cobra"
)

var flags config.Flags

var rootCmd = &cobra.Command{
	Use:           "online-survey",
	Short:         "Serve the survey API and landing page",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Resolve(cmd.Flags(), flags, os.Getenv)
		if err != nil {
			return err
		}
		if cfg.Debug {
			log.SetLevel(log.DebugLevel)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return serve(ctx, cfg)
	},
}

func init() {
	flags.Register(rootCmd.Flags())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal("main:", err)
	}
}

func serve(ctx context.Context, cfg config.Config) error {
	surveys, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	app := app.App{
		Store:  surveys,
		Config: cfg,
	}

	handler := routes.Wire(app)

	err = runServer(ctx, cfg, handler)
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func openStore(cfg config.Config) (store.Store, func(), error) {
	if cfg.DBUrl == "" {
		log.Info("Keeping surveys in memory")
		return store.NewMemory(), func() {}, nil
	}

	db, err := database.Open(cfg.DBUrl)
	if err != nil {
		return nil, nil, err
	}
	log.Info("Keeping surveys in " + cfg.DBUrl)
	return store.NewSQLite(db), func() { db.Close() }, nil
}

func runServer(ctx context.Context, cfg config.Config, handler http.Handler) error {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		<-ctx.Done()
		log.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("main.server.shutdown:", err)
		}
	}()

	log.Info("OnlineSurveySystem listening on " + cfg.Url())
	err := srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		<-shutdownDone
	}
	return err
}
