package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/EgorLis/med-vault/internal/app"
)

// @title           med-vault API
// @version         1.0
// @description     Хранилище личных медицинских документов с изоляцией по владельцу.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.Build(ctx)
	if err != nil {
		log.Fatalf("build failed: %v", err)
	}

	if err := a.Run(ctx); err != nil {
		log.Fatalf("run failed: %v", err)
	}
}
