package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/iwvelando/mortgage-calculator/internal/config"
	"github.com/iwvelando/mortgage-calculator/internal/server"
	"github.com/iwvelando/mortgage-calculator/pkg/constants"
	"github.com/iwvelando/mortgage-calculator/pkg/mortgage"
	"github.com/iwvelando/mortgage-calculator/pkg/output"
	"github.com/iwvelando/mortgage-calculator/pkg/validation"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Exit codes.
const (
	exitOK       = 0
	exitError    = 1
	exitRejected = 2
)

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	// CLI override takes precedence
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = "info"
	}

	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	var cfg zap.Config
	switch loggingConfig.Format {
	case "console":
		cfg = zap.NewDevelopmentConfig()
	case "json", "":
		cfg = zap.NewProductionConfig()
	default:
		return nil, fmt.Errorf("invalid log format: %s", loggingConfig.Format)
	}
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)

	if loggingConfig.OutputFile != "" {
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
			}
		}
		cfg.OutputPaths = []string{loggingConfig.OutputFile}
		cfg.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return cfg.Build()
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}

// run executes the command line and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("mortgage-calculator", flag.ContinueOnError)
	flags.SetOutput(stderr)
	configLocation := flags.String("config", constants.DefaultConfigFile, "path to configuration file")
	envFile := flags.String("env-file", constants.DefaultEnvFile, "optional dotenv file loaded before the configuration")
	outputFormatFlag := flags.String("output-format", "", "type of output override: pretty, csv, json")
	logLevel := flags.String("log-level", "", "log level override (debug, info, warn, error)")
	requestFile := flags.String("request", "", "YAML request file; calculate once and exit instead of serving HTTP")
	if err := flags.Parse(args); err != nil {
		return exitError
	}

	// A missing dotenv file is normal; variables already set are kept.
	if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(stderr, "{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load env file %s\", \"error\": %q}\n", *envFile, err.Error())
		return exitError
	}

	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Fprintf(stderr, "{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": %q}\n", *configLocation, err.Error())
		return exitError
	}

	logger, err := initializeLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Fprintf(stderr, "{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": %q}\n", err.Error())
		return exitError
	}
	defer func() {
		_ = logger.Sync()
	}()

	calculator := mortgage.NewCalculator(conf.Rules.RuleSet())

	if *requestFile != "" {
		// CLI override takes precedence over config
		outputFormat := conf.Output.Format
		if *outputFormatFlag != "" {
			outputFormat = *outputFormatFlag
		}
		if err := validation.ValidateOutputFormat(outputFormat); err != nil {
			logger.Error(err.Error(), zap.String("op", "main"))
			return exitError
		}
		return calculateOnce(logger, calculator, *requestFile, outputFormat, stdout, stderr)
	}

	serverConfig, err := server.NewConfig(conf.Server)
	if err != nil {
		logger.Error("invalid server configuration", zap.String("op", "main"), zap.Error(err))
		return exitError
	}
	if err := serve(ctx, logger, calculator, serverConfig); err != nil {
		logger.Error("server stopped with error", zap.String("op", "main"), zap.Error(err))
		return exitError
	}
	return exitOK
}

// calculateOnce evaluates the request in path and writes the result to stdout.
// A rejected request prints the reason to stderr and yields exitRejected.
func calculateOnce(logger *zap.Logger, calculator *mortgage.Calculator, path, outputFormat string, stdout, stderr io.Writer) int {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Error("failed to read request file", zap.String("op", "main.calculateOnce"), zap.String("path", path), zap.Error(err))
		return exitError
	}

	var payload validation.MortgagePayload
	if err := yaml.Unmarshal(data, &payload); err != nil {
		logger.Error("failed to parse request file", zap.String("op", "main.calculateOnce"), zap.String("path", path), zap.Error(err))
		return exitError
	}

	req, err := payload.ToRequest()
	if err != nil {
		fmt.Fprintln(stderr, err.Error())
		return exitError
	}

	outcome, err := calculator.Calculate(req)
	if err != nil {
		logger.Error("failed to calculate mortgage", zap.String("op", "main.calculateOnce"), zap.Error(err))
		return exitError
	}
	if !outcome.Accepted() {
		fmt.Fprintf(stderr, "request rejected (%s): %s\n", outcome.Rejection.Rule, outcome.Rejection.Reason)
		return exitRejected
	}

	if err := output.Write(stdout, outputFormat, req, *outcome.Result); err != nil {
		logger.Error("failed to write result", zap.String("op", "main.calculateOnce"), zap.Error(err))
		return exitError
	}
	return exitOK
}

// serve runs the HTTP server until ctx is cancelled, then shuts it down
// within the configured timeout.
func serve(ctx context.Context, logger *zap.Logger, calculator *mortgage.Calculator, cfg *server.Config) error {
	srv := &http.Server{
		Addr:         cfg.Address,
		Handler:      server.NewHandler(logger, calculator, cfg.BodySizeBytes(), cfg.Version),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting HTTP server",
			zap.String("op", "main.serve"),
			zap.String("address", cfg.Address),
			zap.String("version", cfg.Version),
			zap.Int64("maxBodySize", cfg.BodySizeBytes()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("failed to serve on %s: %w", cfg.Address, err)
		}
		return nil
	case <-ctx.Done():
		logger.Info("shutdown signal received", zap.String("op", "main.serve"))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return nil
}
