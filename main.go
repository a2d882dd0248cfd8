package main

import (
	"fmt"
	"os"

	"charm-wallet-connect/config"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v2"
)

// -------------------- MAIN --------------------

func main() {
	app := &cli.App{
		Name:  "charm-wallet-connect",
		Usage: "Connect a wallet, check its balance and send ETH from the terminal",
		Description: `Talks to an external wallet over its JSON-RPC endpoint (Frame, geth, anvil).
Keys never leave the wallet; every transfer is approved there.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "provider-url",
				Usage: "Wallet RPC endpoint (overrides WALLET_PROVIDER_URL and the config file)",
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "Path to the config file",
			},
			&cli.BoolFlag{
				Name:  "log",
				Usage: "Show the log panel on start",
			},
			&cli.DurationFlag{
				Name:  "poll-interval",
				Usage: "How often the wallet is polled for account and chain changes",
			},
			&cli.DurationFlag{
				Name:  "notice-ttl",
				Usage: "How long status notices stay visible",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}
}

// resolveOptions merges settings: flags > environment > config file
func resolveOptions(c *cli.Context) (options, error) {
	env, err := config.FromEnv()
	if err != nil {
		return options{}, err
	}

	opts := options{
		configPath:   env.ConfigPath,
		providerURL:  env.ProviderURL,
		noticeTTL:    env.NoticeTTL,
		pollInterval: env.PollInterval,
		logEnabled:   env.Logger,
	}

	if c.IsSet("config") {
		opts.configPath = c.String("config")
	}
	if opts.configPath == "" {
		opts.configPath = config.DefaultPath()
	}
	opts.cfg = config.LoadOrCreate(opts.configPath)
	opts.logEnabled = opts.logEnabled || opts.cfg.Logger

	if c.IsSet("provider-url") {
		opts.providerURL = c.String("provider-url")
	}
	if c.IsSet("log") {
		opts.logEnabled = c.Bool("log")
	}
	if c.IsSet("poll-interval") {
		opts.pollInterval = c.Duration("poll-interval")
	}
	if c.IsSet("notice-ttl") {
		opts.noticeTTL = c.Duration("notice-ttl")
	}
	return opts, nil
}

// run starts the UI. A chain switch ends the program with reloading set;
// a fresh model then starts from scratch.
func run(c *cli.Context) error {
	for {
		opts, err := resolveOptions(c)
		if err != nil {
			return err
		}

		m := newModel(opts)
		p := tea.NewProgram(&m, tea.WithAltScreen())
		final, err := p.Run()
		if fm, ok := final.(*model); ok {
			fm.shutdown()
		}
		if err != nil {
			return err
		}
		if !m.reloading {
			return nil
		}
	}
}
