package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"fjacquet/subscan/cmd/classify"
	"fjacquet/subscan/cmd/extract"
	"fjacquet/subscan/cmd/patterns"
	"fjacquet/subscan/cmd/root"
	"fjacquet/subscan/cmd/scan"
	"fjacquet/subscan/internal/config"
	"fjacquet/subscan/internal/logging"
)

func init() {
	// 1. Load .env before viper reads SUBSCAN_* variables
	config.LoadEnv(logging.GetLogger())

	// 2. Initialize root command flags
	root.Init()

	// 3. Add all subcommands
	root.Cmd.AddCommand(extract.Cmd)
	root.Cmd.AddCommand(classify.Cmd)
	root.Cmd.AddCommand(scan.Cmd)
	root.Cmd.AddCommand(patterns.Cmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.Cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
