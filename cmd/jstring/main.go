// Package main is the entry point for the jstring command
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/AdrianWangs/go-jstring/config"
	"github.com/AdrianWangs/go-jstring/internal/server"
	"github.com/AdrianWangs/go-jstring/pkg/logger"
)

func main() {
	var (
		configFile string
		port       int
		serve      bool
		logLevel   string
	)

	flag.StringVar(&configFile, "config", "", "Path to config file (.json, .yaml or .yml)")
	flag.IntVar(&port, "port", 0, "Port to run the API server on (overrides config)")
	flag.BoolVar(&serve, "serve", false, "Start the HTTP API instead of evaluating one operation")
	flag.StringVar(&logLevel, "log", "", "Log level (debug, info, warn, error)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: jstring [flags] <op> args...\n%s\nflags:\n", usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	// Load configuration
	var cfg *config.Config
	if configFile != "" {
		var err error
		cfg, err = config.LoadFromFile(configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	} else {
		cfg = config.LoadFromEnv()
	}

	// Override with command line flags if provided
	if port != 0 {
		cfg.APIPort = port
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	if err := logger.Configure(cfg.LogLevel, cfg.LogFormat); err != nil {
		fmt.Fprintf(os.Stderr, "Error configuring logger: %v\n", err)
		os.Exit(1)
	}

	if !serve {
		if err := run(flag.Args(), os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if err := cfg.Validate(); err != nil {
		logger.Fatalf("Invalid configuration: %v", err)
	}

	srv := server.NewFromConfig(cfg)
	if err := srv.Start(); err != nil {
		logger.Fatalf("Failed to start API server: %v", err)
	}
	logger.Infof("API server running at http://%s%s", srv.Addr(), cfg.BasePath)

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	srv.Stop()
}
