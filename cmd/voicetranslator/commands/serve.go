package commands

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/pricofy/voice-translator/internal/handler"
	"github.com/pricofy/voice-translator/internal/translator"
)

var listenAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the translation proxy",
	RunE: func(cmd *cobra.Command, args []string) error {
		if listenAddr != "" {
			cfg.ListenAddr = listenAddr
		}

		tr, err := translator.New(cfg, translator.WithLogger(log.Logger))
		if err != nil {
			return err
		}

		srv := &http.Server{
			Addr:              cfg.ListenAddr,
			Handler:           handler.New(tr, log.Logger).Routes(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			log.Info().Str("addr", cfg.ListenAddr).Msg("translation proxy listening")
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-ctx.Done():
		}

		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&listenAddr, "addr", "", "listen address (default from LISTEN_ADDR or :3001)")
	rootCmd.AddCommand(serveCmd)
}
