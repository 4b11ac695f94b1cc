package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jask/beamwallet/internal/async"
	"github.com/jask/beamwallet/internal/config"
	"github.com/jask/beamwallet/internal/eventbus"
	"github.com/jask/beamwallet/internal/logging"
	"github.com/jask/beamwallet/internal/tui"
	"github.com/jask/beamwallet/internal/uithread"
	"github.com/jask/beamwallet/internal/wallet"
	"github.com/jask/beamwallet/internal/wallet/simwallet"
)

// shutdownTimeout bounds how long exit waits for wallet calls still running.
const shutdownTimeout = 5 * time.Second

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "beamwallet",
		Short:         "Terminal wallet for the Beam network",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			return run(cfg)
		},
	}
	flags := cmd.PersistentFlags()
	flags.String("config", "", "config file (default "+config.DefaultPath()+")")
	flags.String("storage", "", "wallet storage directory")
	flags.Int("workers", 0, "workers for blocking wallet calls, 0 runs them inline")
	flags.String("log-level", "", "log level (debug, info, warn, error)")

	cmd.AddCommand(configCmd(), passwdCmd())
	return cmd
}

func configCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Manage the config file"}
	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write the effective configuration to the config file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			path, _ := cmd.Flags().GetString("config")
			if path == "" {
				path = config.DefaultPath()
			}
			if err := config.Save(cfg, path); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "wrote", path)
			return nil
		},
	})
	return cmd
}

func passwdCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "passwd",
		Short: "Change the wallet password",
		Long:  "Reads the current password and the new password from stdin, one per line.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			current, next, err := readPasswords(cmd.InOrStdin())
			if err != nil {
				return err
			}
			if err := changePassword(cfg, current, next); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "password changed")
			return nil
		},
	}
}

func readPasswords(r io.Reader) (current, next string, err error) {
	sc := bufio.NewScanner(r)
	lines := make([]string, 0, 2)
	for len(lines) < 2 && sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return "", "", err
	}
	if len(lines) < 2 {
		return "", "", errors.New("expected the current and the new password on separate lines")
	}
	return lines[0], lines[1], nil
}

// changePassword opens the wallet without a UI and replaces its password.
func changePassword(cfg config.Config, current, next string) (err error) {
	log, logCloser, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	session := new(wallet.Session)
	defer func() {
		if closeErr := session.Close(); closeErr != nil {
			err = multierror.Append(err, fmt.Errorf("close wallet: %w", closeErr)).ErrorOrNil()
		}
	}()

	gateway := wallet.NewGateway(simwallet.New(engineConfig(cfg.Engine), nil, nil, log), session, cfg.Wallet.StoragePath, log)
	if err := gateway.Open(current); err != nil {
		return err
	}
	return gateway.ChangePassword(next)
}

func engineConfig(cfg config.EngineConfig) simwallet.Config {
	return simwallet.Config{
		SyncSteps:    cfg.SyncSteps,
		SyncInterval: cfg.SyncInterval,
		DemoData:     cfg.DemoData,
		PasswordCost: cfg.PasswordCost,
	}
}

func run(cfg config.Config) (err error) {
	log, logCloser, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer logCloser.Close()
	log.Info().Str("storage", cfg.Wallet.StoragePath).Int("workers", cfg.Bridge.Workers).Msg("starting")

	bus := eventbus.New(log)

	var program *tea.Program
	loop := uithread.NewProgramLoop(log, func(msg tea.Msg) { program.Send(msg) })
	bridge := async.New(loop, cfg.Bridge.Workers, log)

	engine := simwallet.New(engineConfig(cfg.Engine), eventbus.NewNativeListener(bus, loop), nil, log)

	session := new(wallet.Session)
	gateway := wallet.NewGateway(engine, session, cfg.Wallet.StoragePath, log)

	host, err := tui.New(tui.Deps{
		Bridge:  bridge,
		Bus:     bus,
		Wallets: gateway,
		UI:      cfg.UI,
		Log:     log,
	})
	if err != nil {
		return err
	}

	program = tea.NewProgram(host, tea.WithAltScreen())
	loop.Start()

	defer func() {
		if shutdownErr := shutdown(log, host, bridge, session, loop); shutdownErr != nil {
			err = multierror.Append(err, shutdownErr).ErrorOrNil()
		}
	}()

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}

// shutdown runs after the program has exited, so main is the only goroutine
// still touching screens.
func shutdown(log zerolog.Logger, host *tui.Host, bridge *async.Bridge, session *wallet.Session, loop *uithread.Loop) error {
	host.Close()

	var result *multierror.Error
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := bridge.Stop(ctx); err != nil {
		result = multierror.Append(result, fmt.Errorf("stop bridge: %w", err))
	}
	if err := session.Close(); err != nil {
		result = multierror.Append(result, fmt.Errorf("close wallet: %w", err))
	}
	loop.Close()

	if err := result.ErrorOrNil(); err != nil {
		log.Error().Err(err).Msg("shutdown")
		return err
	}
	log.Info().Msg("stopped")
	return nil
}
