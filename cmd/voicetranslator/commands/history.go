package commands

import (
	"github.com/spf13/cobra"

	"github.com/pricofy/voice-translator/internal/render"
)

var (
	historyHTML  bool
	historyWidth int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Print the stored conversation",
	RunE: func(cmd *cobra.Command, args []string) error {
		conv, store, err := openConversation()
		if err != nil {
			return err
		}
		defer store.Close()

		if historyHTML {
			log, err := conv.Read(cmd.Context())
			if err != nil {
				return err
			}
			return render.HTML(cmd.OutOrStdout(), log)
		}
		return render.NewTerminal(cmd.OutOrStdout(), conv, historyWidth).Refresh(cmd.Context())
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the stored conversation",
	RunE: func(cmd *cobra.Command, args []string) error {
		conv, store, err := openConversation()
		if err != nil {
			return err
		}
		defer store.Close()

		if err := conv.Clear(cmd.Context()); err != nil {
			return err
		}
		return render.NewTerminal(cmd.OutOrStdout(), conv, historyWidth).Refresh(cmd.Context())
	},
}

func init() {
	historyCmd.Flags().BoolVar(&historyHTML, "html", false, "print the chat container markup instead of terminal bubbles")
	historyCmd.Flags().IntVar(&historyWidth, "width", 80, "chat width in columns")
	clearCmd.Flags().IntVar(&historyWidth, "width", 80, "chat width in columns")
	rootCmd.AddCommand(historyCmd, clearCmd)
}
