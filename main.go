package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"peermind/archive"
	"peermind/client"
	"peermind/config"
	"peermind/lighthouse"
	appmodel "peermind/model"
	"peermind/provider"
	"peermind/relay"
	"peermind/render"
	"peermind/storage"
	"peermind/ui"
)

const Version = "v0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:           "peermind",
		Short:         "Chat with an AI model and archive conversations on IPFS",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config.toml (default ~/.config/peermind/config.toml)")

	rootCmd.AddCommand(newServeCmd(&configPath), newChatCmd(&configPath))
	return rootCmd
}

func newServeCmd(configPath *string) *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the relay endpoint (POST /api/chat)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if listen != "" {
				cfg.Listen = listen
			}
			config.InitDebugLog(cfg.DataDir())

			p, providerErr := provider.InitializeProvider(cfg)
			if providerErr != nil {
				// Not fatal: every chat request answers with this error.
				config.Log.Printf("[Relay] %v", providerErr)
			}

			server := &relay.Server{Provider: p, ConfigErr: providerErr}
			if cfg.ServerArchive {
				lh := lighthouse.NewClient(cfg.LighthouseUploadURL, cfg.LighthouseGatewayURL)
				server.Archiver = archive.NewArchiver(lh, nil, cfg.LighthouseAPIKey, archive.FormatPairsJSON)
				if cfg.LighthouseAPIKey == "" {
					config.Log.Printf("[Relay] Archiving enabled but %s is not set; uploads will be skipped", config.EnvLighthouseKey)
				}
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return server.ListenAndServe(ctx, cfg.Listen)
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "address to listen on (overrides config)")
	return cmd
}

func newChatCmd(configPath *string) *cobra.Command {
	var relayURL string

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Open the terminal chat panel",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return showStartupError("Configuration Error", err)
			}
			if relayURL != "" {
				cfg.RelayURL = relayURL
			}
			config.InitDebugLog(cfg.DataDir())

			// The TUI owns the terminal; route the always-on log to the debug file.
			if config.DebugLog != nil {
				config.Log = config.DebugLog
			} else {
				config.Log.SetOutput(io.Discard)
			}

			relayClient, err := client.NewClient(cfg.RelayURL)
			if err != nil {
				return showStartupError("Configuration Error", err)
			}

			kv, err := storage.NewKVStorage(cfg.DataDir())
			if err != nil {
				return showStartupError("Storage Error", err)
			}
			defer kv.Close()

			history := archive.NewHistory(kv)
			lh := lighthouse.NewClient(cfg.LighthouseUploadURL, cfg.LighthouseGatewayURL)

			var archiver appmodel.Archiver
			if cfg.ClientArchive {
				archiver = archive.NewArchiver(lh, history, cfg.LighthouseAPIKey, archive.FormatPlainText)
			}

			dataModel := appmodel.NewModel(cfg, relayClient, archiver)
			view := ui.NewAppView(
				dataModel,
				ui.NewHistoryDialog(history, lh.GatewayURL),
				render.SystemClipboard{},
				relayClient.BaseURL(),
			)

			p := tea.NewProgram(view, tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("error running peermind: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&relayURL, "relay", "", "relay base URL (overrides config)")
	return cmd
}

// showStartupError displays err in a modal and returns it.
func showStartupError(title string, err error) error {
	p := tea.NewProgram(ui.NewErrorModal(title, err.Error()), tea.WithAltScreen())
	if _, runErr := p.Run(); runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
	}
	return err
}
