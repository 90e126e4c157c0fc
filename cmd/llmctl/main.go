package main

import (
	"context"
	"log"
	"os"

	"github.com/themobileprof/llmgateway/internal/config"
)

func main() {
	logger := log.New(os.Stderr, "", log.LstdFlags)

	application := newApp(loadClient, os.Stdout)
	if err := application.Run(context.Background(), os.Args); err != nil {
		logger.Fatal(err)
	}
}

func loadClient() (chatClient, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return cfg.NewGatewayClient(), nil
}
