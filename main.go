package main

import (
	"log/slog"
	"os"

	"insicon/gen"
	"insicon/parallel"

	"github.com/alecthomas/kong"
)

type cli struct {
	Workers  int        `help:"Number of themes rendered concurrently, 0 for one per CPU" default:"0"`
	LogLevel slog.Level `help:"Log level: debug, info, warn or error" default:"info"`

	Gen           gen.CLICmd    `cmd:"" default:"withargs" help:"Generate the themed gear icons"`
	ExportPalette gen.ExportCmd `cmd:"" help:"Write a built-in theme as a RIFF PAL file"`
}

func main() {
	var c cli
	kctx := kong.Parse(&c,
		kong.Name("insicon"),
		kong.Description("Renders the light and dark theme gear icons as PNG files."),
		kong.UsageOnError(),
	)

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: c.LogLevel})))

	pool := parallel.Start(c.Workers)
	slog.Debug("running", "command", kctx.Command(), "workers", pool.Workers())

	err := kctx.Run(parallel.WorkerFunc(pool.Do), parallel.WaitFunc(pool.Wait))
	pool.Wait(true)
	kctx.FatalIfErrorf(err)
}
