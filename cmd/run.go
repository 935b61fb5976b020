package cmd

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"resize/internal/codec"
	"resize/internal/config"
	"resize/internal/discover"
	"resize/internal/logger"
	"resize/internal/processor"
	"resize/internal/progress"
	"resize/internal/tui"
)

// run executes one batch. Per-file failures only show up in the results
// table and the verbose log; the returned error is reserved for problems
// that stop the whole batch.
func run(cmd *cobra.Command, fs afero.Fs, cfg config.Config, warnings, inputs []string) error {
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()

	log := logger.WithRun(logger.New(stderr, cfg.Verbose))
	for _, w := range warnings {
		log.Warn().Msg(w)
	}

	if cfg.Summary {
		fmt.Fprintln(stdout, tui.RenderConfig(cfg, inputs))
	}

	files, err := discover.Files(fs, inputs, cfg.Extensions, cfg.Recursive, log)
	if err != nil {
		return err
	}

	var tracker *progress.Tracker
	if cfg.ProgressEnabled() && len(files) > 0 {
		var sink progress.Sink
		if cfg.TUI {
			sink = tui.StartDashboard(stderr)
		} else {
			sink = progress.NewLineSink(stderr)
		}
		tracker = progress.NewTracker(len(files), sink)
	}

	proc := &processor.Processor{
		Config:  cfg,
		Codec:   codec.New(fs, cfg.AutoOrient),
		Fs:      fs,
		Log:     log,
		Tracker: tracker,
	}
	if cfg.DryRun {
		proc.Reporter = tui.NewReport(stdout)
	}

	summary, err := proc.Run(files)
	tracker.Close()
	if err != nil {
		return err
	}

	fmt.Fprintln(stdout, tui.RenderSummary(tui.ResultRows(summary)))
	return nil
}
