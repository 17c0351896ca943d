package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/thereceipt/template-studio/internal/api"
	"github.com/thereceipt/template-studio/internal/config"
	"github.com/thereceipt/template-studio/internal/storage"
)

// Version is set during build via ldflags
var Version = "dev"

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load(configPath())
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	store, err := storage.New(cfg.StorePath)
	if err != nil {
		log.Fatalf("Failed to open template store: %v", err)
	}

	server := api.NewServer(store, log, cfg.Currency)

	serverErrChan := make(chan error, 1)
	go func() {
		log.WithFields(logrus.Fields{
			"addr":    cfg.Addr,
			"store":   cfg.StorePath,
			"version": Version,
		}).Info("template studio starting")
		if err := server.Run(cfg.Addr); err != nil {
			serverErrChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrChan:
		log.Fatalf("Server error: %v", err)
	case <-sigChan:
		log.Info("shutting down")
	}
}

func configPath() string {
	if path := os.Getenv("STUDIO_CONFIG"); path != "" {
		return path
	}

	for i, arg := range os.Args {
		if arg == "--config" && i+1 < len(os.Args) {
			return os.Args[i+1]
		}
	}

	return config.DefaultPath()
}
