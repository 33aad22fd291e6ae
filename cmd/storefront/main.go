package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/MarkCnw/I-Have-Gpu-sub000/internal/app"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	a, err := app.New(ctx)
	if err != nil {
		log.Printf("failed to init app: %v\n", err)
		return
	}

	if err := a.Run(ctx); err != nil {
		log.Printf("❌ app error: %v\n", err)
		return
	}
}
