package processor

import (
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"resize/internal/codec"
	"resize/internal/config"
	"resize/internal/naming"
	"resize/internal/progress"
	"resize/internal/sizing"
)

// Processor runs the per-file pipeline and the batch around it. Config is
// read-only once the Processor is built and is shared by every worker.
type Processor struct {
	Config   config.Config
	Codec    codec.Codec
	Fs       afero.Fs          // Used to delete failed sources.
	Log      zerolog.Logger    // Diagnostic stream.
	Reporter Reporter          // Dry-run report stream. Nil discards reports.
	Tracker  *progress.Tracker // Nil disables progress.
}

// ProcessFile runs one file through decode, resolve, resize, and encode and
// records exactly one completion with the tracker whatever the outcome.
func (p *Processor) ProcessFile(path string) Result {
	res := p.process(path)
	p.Tracker.RecordCompletion()
	return res
}

func (p *Processor) process(path string) Result {
	res := Result{Path: path}
	cfg := p.Config

	img, err := p.Codec.Decode(path)
	if err != nil {
		if cfg.DryRun {
			p.reporter().Unreadable(path, err, cfg.DeleteOnFailure)
		}
		return p.fail(res, OutcomeDecodeFailed, "decode", err)
	}

	bounds := img.Bounds()
	res.Width, res.Height = bounds.Dx(), bounds.Dy()
	res.Decision = sizing.Resolve(res.Width, res.Height, cfg)

	if res.Decision.NoOp() {
		if cfg.DryRun {
			p.reporter().NoOp(path, res.Width, res.Height, res.Decision)
		} else {
			p.Log.Debug().Str("path", path).Str("reason", res.Decision.Kind.String()).Msg("skipping")
		}
		res.Outcome = OutcomeSkipped
		return res
	}

	res.Dest = naming.OutputPath(path, cfg)
	if cfg.DryRun {
		p.reporter().Planned(path, res.Dest, res.Width, res.Height, res.Decision)
		res.Outcome = OutcomeDryRun
		return res
	}

	interp := cfg.DownInterpolation
	if res.Decision.Upscale(res.Width, res.Height) {
		interp = cfg.UpInterpolation
	}

	resized, err := p.Codec.Resize(img, res.Decision.Width, res.Decision.Height, interp)
	if err != nil {
		return p.fail(res, OutcomeTransformFailed, "resize", err)
	}

	if err := p.Codec.Encode(resized, res.Dest, outputFormat(res.Dest, cfg), cfg.JPEGQuality); err != nil {
		return p.fail(res, OutcomeWriteFailed, "write", err)
	}

	p.Log.Debug().
		Str("path", path).
		Str("dest", res.Dest).
		Str("from", sizing.Decision{Width: res.Width, Height: res.Height}.String()).
		Str("to", res.Decision.String()).
		Str("interpolation", string(interp)).
		Msg("resized")
	res.Outcome = OutcomeWritten
	return res
}

// fail finalizes a per-file error. The source is deleted when configured,
// except during a dry run.
func (p *Processor) fail(res Result, outcome Outcome, stage string, err error) Result {
	res.Outcome = outcome
	res.Err = err

	if p.Config.DeleteOnFailure && !p.Config.DryRun {
		if rmErr := p.Fs.Remove(res.Path); rmErr != nil {
			p.Log.Debug().Str("path", res.Path).Err(rmErr).Msg("could not delete failed file")
		} else {
			res.Deleted = true
		}
	}

	p.Log.Debug().
		Str("path", res.Path).
		Str("stage", stage).
		Bool("deleted", res.Deleted).
		Err(err).
		Msg("failed")
	return res
}

func (p *Processor) reporter() Reporter {
	if p.Reporter == nil {
		return nopReporter{}
	}
	return p.Reporter
}

func outputFormat(dest string, cfg config.Config) string {
	if cfg.OutputFormat != "" {
		return cfg.OutputFormat
	}
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(dest), "."))
}
