package cmd

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"resize/internal/config"
)

var rootCmd = newRootCmd(afero.NewOsFs())

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// flags holds the raw command-line values before they become a Config.
type flags struct {
	keep, progress, recursive, verbose bool
	deleteFails, dryRun, summary, tui  bool
	autoOrient                         bool

	width, height, minWidth, minHeight int
	scale                              float64

	down, up     string
	quality      int
	threads      int
	extensions   string
	outputFormat string
	suffix       string
}

func newRootCmd(fs afero.Fs) *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "resize [flags] <file|dir>...",
		Short: "resize - batch resize images",
		Long: "resize scales, fits, or bounds every image found in the given files and directories,\n" +
			"spreading the work over a pool of workers.",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, warnings, err := f.config(cmd.Flags())
			if err != nil {
				return err
			}
			return run(cmd, fs, cfg, warnings, args)
		},
	}
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetGlobalNormalizationFunc(normalizeFlag)
	f.register(cmd.Flags())

	return cmd
}

// normalizeFlag accepts --down_interpolation as well as --down-interpolation.
func normalizeFlag(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}

func (f *flags) register(fl *pflag.FlagSet) {
	defaults := config.Default()

	fl.BoolVarP(&f.keep, "keep", "k", false, "keep original images and write resized copies next to them")
	fl.BoolVar(&f.progress, "progress", defaults.Progress, "show a progress bar")
	fl.BoolVarP(&f.recursive, "recursive", "r", false, "descend into subdirectories")
	fl.BoolVarP(&f.verbose, "verbose", "v", false, "log every per-file decision (disables the progress bar)")
	fl.BoolVar(&f.deleteFails, "delete-fails", defaults.DeleteOnFailure, "delete images that fail to process")
	fl.BoolVarP(&f.dryRun, "dry-run", "n", false, "report what would be done without touching any file")
	fl.BoolVarP(&f.summary, "summary", "s", false, "print the effective options before starting")
	fl.BoolVar(&f.tui, "tui", false, "show a full-screen progress dashboard instead of the progress line")
	fl.BoolVar(&f.autoOrient, "auto-orient", defaults.AutoOrient, "apply EXIF orientation before resizing")

	fl.IntVarP(&f.width, "width", "W", 0, "target width in pixels")
	fl.IntVarP(&f.height, "height", "H", 0, "target height in pixels")
	fl.Float64VarP(&f.scale, "scale", "S", 0, "scale factor, overrides width and height")
	fl.IntVar(&f.minWidth, "min-width", 0, "minimal width, used with --min-height")
	fl.IntVar(&f.minHeight, "min-height", 0, "minimal height, used with --min-width")

	fl.StringVar(&f.down, "down-interpolation", string(defaults.DownInterpolation), "downscale interpolation: nearest, linear, area, cubic, lanczos")
	fl.StringVar(&f.up, "up-interpolation", string(defaults.UpInterpolation), "upscale interpolation: nearest, linear, area, cubic, lanczos")
	fl.IntVarP(&f.quality, "jpeg-quality", "q", defaults.JPEGQuality, "JPEG quality (0-100)")
	fl.IntVarP(&f.threads, "threads", "t", runtime.NumCPU(), "number of worker threads")
	fl.StringVarP(&f.extensions, "extensions", "e", strings.Join(defaults.Extensions, " "), "extensions to process, space or comma separated")
	fl.StringVarP(&f.outputFormat, "output-format", "o", "", "output format: jpg, jpeg, png (default same as input)")
	fl.StringVar(&f.suffix, "suffix", defaults.Suffix, "suffix added to resized copies when --keep is set")
}

// config turns parsed flags into a validated Config. Sizing flags are read
// through Changed so that an explicit zero still selects its method.
func (f *flags) config(fl *pflag.FlagSet) (config.Config, []string, error) {
	cfg := config.Default()
	cfg.KeepOriginals = f.keep
	cfg.Progress = f.progress
	cfg.Recursive = f.recursive
	cfg.Verbose = f.verbose
	cfg.DeleteOnFailure = f.deleteFails
	cfg.DryRun = f.dryRun
	cfg.Summary = f.summary
	cfg.TUI = f.tui
	cfg.AutoOrient = f.autoOrient
	cfg.DownInterpolation = config.Interpolation(f.down)
	cfg.UpInterpolation = config.Interpolation(f.up)
	cfg.JPEGQuality = f.quality
	cfg.Threads = f.threads
	cfg.OutputFormat = f.outputFormat
	cfg.Suffix = f.suffix
	cfg.Extensions = splitList(f.extensions)

	err := cfg.ApplySize(config.SizeOptions{
		Scale:        f.scale,
		Width:        f.width,
		Height:       f.height,
		MinWidth:     f.minWidth,
		MinHeight:    f.minHeight,
		HasScale:     fl.Changed("scale"),
		HasWidth:     fl.Changed("width"),
		HasHeight:    fl.Changed("height"),
		HasMinWidth:  fl.Changed("min-width"),
		HasMinHeight: fl.Changed("min-height"),
	})
	if err != nil {
		return cfg, nil, err
	}

	warnings, err := cfg.Validate()
	return cfg, warnings, err
}

func splitList(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
}
