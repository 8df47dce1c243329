package main

import (
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/JaimeStill/organizer/internal/api"
	"github.com/JaimeStill/organizer/internal/config"
	"github.com/JaimeStill/organizer/pkg/openapi"
)

func main() {
	specFile := flag.String("openapi", "", "Write the OpenAPI document to this file and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config load failed:", err)
	}

	if *specFile != "" {
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		spec := api.Spec(cfg, api.Groups(&api.Domain{}, logger)...)
		if err := openapi.WriteJSON(spec, *specFile); err != nil {
			log.Fatal("openapi write failed:", err)
		}
		return
	}

	srv, err := NewServer(cfg)
	if err != nil {
		log.Fatal("server init failed:", err)
	}

	if err := srv.Start(); err != nil {
		log.Fatal("server start failed:", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	if err := srv.Shutdown(cfg.ShutdownTimeoutDuration()); err != nil {
		log.Fatal("shutdown failed:", err)
	}
}
