package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/hmajid/pkgtop/pkg/contents"
	"github.com/hmajid/pkgtop/pkg/errors"
	"github.com/hmajid/pkgtop/pkg/stats"
)

// runStats is the main run: open the Contents stream, fold every line
// into the tally, select the top-N rows, and render the table to stdout.
// The table is only printed on full success; any failure propagates up
// without partial output.
func runStats(cmd *cobra.Command, opts *rootOpts, arch string) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	fetcher := contents.NewFetcher(logger)

	spin := newSpinner(ctx, fmt.Sprintf("Fetching Contents-%s...", arch))
	spin.Start()
	stream, err := fetcher.Open(ctx, contents.Options{
		Arch:      arch,
		Mirror:    opts.mirror,
		Suite:     opts.suite,
		Component: opts.component,
	})
	spin.Stop()
	if err != nil {
		return err
	}
	defer stream.Close()

	logger.Info("reading contents index", "url", stream.URL())

	tally, err := tallyStream(stream, logger)
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), renderTable(tally.Top(opts.top)))
	return nil
}

// tallyStream consumes the line stream and accumulates per-package file
// counts. Malformed lines are skipped and only surfaced at debug level;
// a read error mid-stream is fatal.
func tallyStream(stream *contents.Stream, logger *log.Logger) (stats.Tally, error) {
	prog := newProgress(logger)
	tally := stats.New()
	files := 0

	for stream.Next() {
		line := stream.Line()
		names := contents.ParsePackages(line)
		if names == nil {
			// Blank and comment lines are expected; anything else that
			// fails to parse is worth seeing under -vv.
			if trimmed := strings.TrimSpace(line); trimmed != "" && !strings.HasPrefix(trimmed, "#") {
				logger.Debug("skipping unstructured line", "line", line)
			}
			continue
		}
		tally.Add(names...)
		files++
	}
	if err := stream.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeDecode, err, "reading %s", stream.URL())
	}

	prog.done(fmt.Sprintf("Tallied %d files across %d packages", files, tally.Len()))
	return tally, nil
}
