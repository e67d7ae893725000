package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/eringen/seomaster"
	"github.com/eringen/seomaster/log"
)

var configFile string

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default ./seomaster.yaml)")
	rootCmd.AddCommand(serveCmd, seedCmd, versionCmd)
}

var rootCmd = &cobra.Command{
	Use:               "seomaster",
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	Short:             "SEO Master serves the SEO Master site",
	SilenceUsage:      true,
	RunE:              serve,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	RunE:  serve,
}

func serve(cmd *cobra.Command, args []string) error {
	cfg, err := seomaster.LoadConfig(configFile)
	if err != nil {
		return err
	}

	defer func() {
		_ = log.L().Sync()
	}()

	app := seomaster.New(cfg)
	defer app.Close()

	log := log.S()
	quit := make(chan os.Signal, 1)
	errc := make(chan error, 1)

	go func() {
		errc <- app.Start()
		quit <- os.Interrupt
	}()

	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	select {
	case err := <-errc:
		if err != nil {
			return err
		}
		return nil
	default:
	}

	log.Info("stopping server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return app.Shutdown(ctx)
}
