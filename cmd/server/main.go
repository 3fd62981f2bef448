package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Vishal-1503/AI-Voice-Based-Patient-Call-System/internal/infrastructure/config"
	"github.com/Vishal-1503/AI-Voice-Based-Patient-Call-System/internal/server"
)

func main() {
	port := flag.String("port", "", "Server port (overrides PORT)")
	ollamaHost := flag.String("ollama", "", "Ollama host URL (overrides OLLAMA_HOST)")
	flag.Parse()

	cfg := config.LoadOrDefault()
	if *port != "" {
		cfg.Server.Port = *port
	}
	if *ollamaHost != "" {
		cfg.Ollama.Host = *ollamaHost
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	srv, err := server.New(ctx, cfg)
	cancel()
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		if err := srv.Run(); err != nil {
			errChan <- err
		}
	}()

	select {
	case <-sigChan:
		if err := srv.Close(); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}
	case err := <-errChan:
		log.Fatalf("Server error: %v", err)
	}
}
