package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"go.uber.org/zap"
)

type command struct {
	usage string
	run   func(ctx context.Context, e env, args []string) error
}

// env is shared by all commands.
type env struct {
	cfg config
	log *zap.Logger
}

var commands = map[string]command{
	"build":     {"compile contracts and store them in the build directory", runBuild},
	"deploy":    {"deploy swap contract and ledgers", runDeploy},
	"balance":   {"print account balance", runBalance},
	"holders":   {"print all non-zero balances of the ledger", runHolders},
	"approve":   {"allow spender to transfer tokens of the wallet account", runApprove},
	"available": {"check that swap can be made", runAvailable},
	"swap":      {"swap tokens of two holders", runSwap},
	"watch":     {"print successful swaps as they happen", runWatch},
	"history":   {"print successful swaps from the given block range", runHistory},
}

func main() {
	configPath := flag.String("config", "", "Path to the YAML configuration file")
	rpcEndpoint := flag.String("rpc", "", "Network address of the Neo RPC server (overrides config)")

	flag.Usage = usage
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	name := flag.Arg(0)
	cmd, ok := commands[name]
	if !ok {
		log.Fatalf("unknown command %q", name)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	if *rpcEndpoint != "" {
		cfg.RPC.Endpoint = *rpcEndpoint
	}

	logger, err := newLogger(cfg.Logger.Level)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	err = cmd.run(ctx, env{cfg: cfg, log: logger}, flag.Args()[1:])
	if err != nil {
		logger.Error("command failed", zap.String("command", name), zap.Error(err))
		cancel()
		os.Exit(1)
	}
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid logger level: %w", err)
	}

	c := zap.NewProductionConfig()
	c.Level = lvl
	c.Encoding = "console"
	c.Sampling = nil
	c.DisableStacktrace = true

	return c.Build()
}

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, "Usage: %s [flags] <command> [command flags]\n\nCommands:\n", os.Args[0])

	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Fprintf(out, "  %-10s %s\n", name, commands[name].usage)
	}

	fmt.Fprintln(out, "\nFlags:")
	flag.PrintDefaults()
}
