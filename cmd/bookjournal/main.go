package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gilleon/book-journal/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override config path (optional)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := app.Run(ctx, app.Options{ConfigPath: *configPath}); err != nil {
		fmt.Fprintf(os.Stderr, "bookjournal: %v\n", err)
		return 1
	}
	return 0
}
