package main

import (
	"log/slog"
	"os"

	"github.com/marquee-cinema/marquee/internal/app"
)

func main() {
	if err := app.Run(); err != nil {
		slog.New(slog.NewTextHandler(os.Stderr, nil)).Error(err.Error())
		os.Exit(1)
	}
}
