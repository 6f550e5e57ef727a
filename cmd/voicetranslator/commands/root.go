// Package commands implements the voicetranslator CLI commands.
package commands

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/pricofy/voice-translator/internal/config"
	"github.com/pricofy/voice-translator/internal/conversation"
	"github.com/pricofy/voice-translator/internal/kv"
)

var (
	// Global flags
	envFile      string
	logLevel     string
	storeBackend string
	storeDSN     string

	// Loaded in PersistentPreRunE
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "voicetranslator",
	Short: "Voice translation proxy and chat",
	Long: `voicetranslator - speak English, read Chinese.

Commands:
  serve    Run the translation proxy (POST /translate on :3001)
  chat     Capture utterances from the terminal and keep a conversation
  history  Print the stored conversation
  clear    Delete the stored conversation

The DeepL key is read from DEEPL_AUTH_KEY (or a .env file passed with
--env-file) and never leaves the proxy.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "load environment variables from this file first")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&storeBackend, "store", "", "conversation store backend (memory, badger, bolt, sqlite, redis)")
	rootCmd.PersistentFlags().StringVar(&storeDSN, "store-dsn", "", "conversation store location (directory, file or redis address)")
}

func setup(cmd *cobra.Command, _ []string) error {
	c, err := config.Load(envFile)
	if err != nil {
		return err
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
	if storeBackend != "" {
		c.StoreBackend = storeBackend
	}
	if storeDSN != "" {
		c.StoreDSN = storeDSN
	}
	cfg = c

	lvl, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return errors.Wrapf(err, "invalid log level %q", cfg.LogLevel)
	}
	zerolog.SetGlobalLevel(lvl)

	if isatty.IsTerminal(os.Stderr.Fd()) {
		log.Logger = zerolog.New(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
			w.Out = os.Stderr
		})).With().Timestamp().Logger()
	} else {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
	log.Logger = log.Logger.With().Str("environment", cfg.Environment).Logger()
	return nil
}

// openConversation opens the configured conversation store. The caller
// closes the returned kv.Store.
func openConversation() (*conversation.Store, kv.Store, error) {
	store, err := kv.Open(cfg.StoreBackend, cfg.StoreDSN)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "open %s store", cfg.StoreBackend)
	}
	log.Debug().Str("backend", cfg.StoreBackend).Str("dsn", cfg.StoreDSN).Msg("opened conversation store")
	return conversation.NewStore(store), store, nil
}
