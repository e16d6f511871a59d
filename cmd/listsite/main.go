package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	cmd "github.com/MrSnakeDoc/listsite/internal"
	"github.com/MrSnakeDoc/listsite/internal/logger"
	"github.com/MrSnakeDoc/listsite/internal/middleware"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cmd.Execute(ctx, os.Args[1:])
	stop()

	if err != nil {
		if !errors.Is(err, middleware.ErrLogged) {
			logger.New(logger.ConsoleOptions(false, os.Stderr)).LogError("%v", err)
		}
		os.Exit(1)
	}
}
