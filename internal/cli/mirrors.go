package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hmajid/pkgtop/pkg/contents"
)

// mirrorsCommand creates the "mirrors" subcommand, which prints the
// candidate Contents URLs for an architecture without fetching anything.
// Useful for checking what a non-standard mirror layout resolves to.
func mirrorsCommand(opts *rootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "mirrors <arch>",
		Short: "Print the candidate Contents URLs for an architecture",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gzURL, xzURL := contents.BuildURLs(args[0], opts.mirror, opts.suite, opts.component)
			fmt.Fprintln(cmd.OutOrStdout(), gzURL)
			fmt.Fprintln(cmd.OutOrStdout(), xzURL)
			return nil
		},
	}
}
