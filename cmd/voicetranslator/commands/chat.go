package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/pricofy/voice-translator/internal/capture"
	"github.com/pricofy/voice-translator/internal/proxyclient"
	"github.com/pricofy/voice-translator/internal/render"
)

var (
	proxyURL  string
	chatWidth int
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Capture utterances and keep a translated conversation",
	Long: `Each line typed on stdin is one recognized utterance. Chinese text is
stored as spoken; anything else is translated to Chinese through the proxy.
The conversation is redrawn after every turn. Ctrl-D ends the session.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if proxyURL != "" {
			cfg.ProxyURL = proxyURL
		}

		conv, store, err := openConversation()
		if err != nil {
			return err
		}
		defer store.Close()

		out := cmd.OutOrStdout()
		flow, err := capture.NewFlow(
			capture.NewLineRecognizer(cmd.InOrStdin()),
			proxyclient.New(cfg.ProxyURL, nil),
			conv,
			capture.WithView(render.NewTerminal(out, conv, chatWidth)),
			capture.WithNotifier(capture.WriterNotifier(cmd.ErrOrStderr())),
			capture.WithLogger(log.Logger),
		)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		fmt.Fprintln(out, "Speak (type) an utterance and press Enter. Ctrl-D to quit.")
		for ctx.Err() == nil {
			_, err := flow.Capture(ctx)
			var re *capture.RecognitionError
			if errors.As(err, &re) && re.Code == "aborted" {
				return nil
			}
		}
		return nil
	},
}

func init() {
	chatCmd.Flags().StringVar(&proxyURL, "proxy", "", "translation proxy base URL (default from PROXY_URL)")
	chatCmd.Flags().IntVar(&chatWidth, "width", 80, "chat width in columns")
	rootCmd.AddCommand(chatCmd)
}
