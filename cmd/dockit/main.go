package main

import (
	"context"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"

	"github.com/tsellens/dockit/internal/cli"
)

func main() {
	if err := cli.Root().Run(context.Background(), os.Args); err != nil {
		slog.Error("dockit error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
