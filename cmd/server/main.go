package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/afandihd/portfolio-backend/internal/config"
	"github.com/afandihd/portfolio-backend/internal/logging"
	"github.com/afandihd/portfolio-backend/internal/server"
)

var rootCmd = &cobra.Command{
	Use:   "portfolio-backend",
	Short: "Portfolio contact-form backend",
	Long:  `Serves the contact form API of the portfolio site: rate-limited submissions, CAPTCHA and bot checks, email dispatch.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(server.Version)
	},
}

func serve() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logging.Configure(&logging.Config{
		File:       cfg.LogFile,
		MaxSize:    100,
		MaxBackups: 3,
		MaxAge:     7,
	})
	logger := logging.GetLogger()
	defer logger.Close()

	logger.Info("Starting server in %s mode", cfg.Environment)
	if !cfg.SMTP.Configured() {
		logger.Warn("SMTP is not fully configured (missing %v); submissions will follow the %q policy",
			cfg.SMTP.MissingSettings(), cfg.SMTP.OnMisconfigured)
	}
	if !cfg.TurnstileEnabled() {
		logger.Warn("Turnstile secret key not set; CAPTCHA verification disabled")
	}

	srv := server.New(cfg, logger)
	if err := srv.Start(); err != nil {
		logger.Error("Server stopped: %v", err)
		return err
	}
	return nil
}

func main() {
	rootCmd.AddCommand(serveCmd, versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
