package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/graceguide/grace/internal/service/share"
	"github.com/spf13/cobra"
)

var (
	shareTarget string
	shareOut    string
)

var shareCmd = &cobra.Command{
	Use:   "share [n]",
	Short: "Share history entry n (default 1, the latest)",
	Long: `Share renders a 1080x1920 image card for download, or opens a
prefilled X post or email. Targets: download, x, email, clipboard.`,
	Example: `  grace share
  grace share 3 --target x
  grace share --out ~/Pictures/card.png`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n := 1
		if len(args) == 1 {
			var err error
			if n, err = parseIndex(args[0]); err != nil {
				return err
			}
		}

		target, err := share.ParseTarget(shareTarget)
		if err != nil {
			return err
		}
		if target == share.TargetTelegram {
			return fmt.Errorf("target %q is only available from the bot", target)
		}

		return withApp(cmd.Context(), func(ctx context.Context, a *app) error {
			res, err := a.session.Share(ctx, n, target, shareOut)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch {
			case res.Path != "":
				fmt.Fprintf(out, "Saved %s\n", res.Path)
			case res.Copied && res.URL != "":
				fmt.Fprintf(out, "Could not open a browser; copied the text instead.\n%s\n", res.URL)
			case res.Copied:
				fmt.Fprintln(out, "Copied to clipboard.")
			case res.URL != "":
				fmt.Fprintf(out, "Opened %s\n", res.URL)
			}
			return nil
		})
	},
}

func init() {
	shareCmd.Flags().StringVarP(&shareTarget, "target", "t", "download", "download, x, email or clipboard")
	shareCmd.Flags().StringVarP(&shareOut, "out", "o", "", "file to write the image to (download only)")
	rootCmd.AddCommand(shareCmd)
}

func parseIndex(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid entry number %q", s)
	}
	return n, nil
}
