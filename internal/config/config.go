// Package config holds the batch-run parameters: defaults, sizing method
// selection, and validation. A Config is validated once and then passed by
// value to every component, so workers never share a mutable copy.
package config

import (
	"fmt"
	"math"
	"runtime"
	"strings"
)

// Method selects the size policy applied to every image of a run.
type Method string

const (
	MethodScale         Method = "scale"   // Multiply both sides by ScaleFactor.
	MethodFixed         Method = "fixed"   // Exact TargetWidth x TargetHeight (may distort).
	MethodDynamicAspect Method = "dynamic" // One side given, the other follows the aspect ratio.
	MethodMinBound      Method = "min"     // Smallest size covering MinWidth x MinHeight.
)

// Label is the human-readable method name used in the summary listing.
func (m Method) Label() string {
	switch m {
	case MethodScale:
		return "Scale"
	case MethodFixed:
		return "Fixed Height/Width"
	case MethodDynamicAspect:
		return "Dynamic Height/Width (keep aspect ratio)"
	case MethodMinBound:
		return "Minimum Height/Width (keep aspect ratio)"
	default:
		return "Unknown"
	}
}

// Interpolation names a resampling algorithm.
type Interpolation string

const (
	InterpNearest Interpolation = "nearest"
	InterpLinear  Interpolation = "linear"
	InterpArea    Interpolation = "area"
	InterpCubic   Interpolation = "cubic"
	InterpLanczos Interpolation = "lanczos"
)

var interpolations = []Interpolation{InterpNearest, InterpLinear, InterpArea, InterpCubic, InterpLanczos}

// ParseInterpolation resolves a case-insensitive interpolation name.
func ParseInterpolation(name string) (Interpolation, error) {
	candidate := Interpolation(strings.ToLower(strings.TrimSpace(name)))
	for _, interp := range interpolations {
		if candidate == interp {
			return interp, nil
		}
	}
	return "", fmt.Errorf("invalid interpolation %q, possible values are: nearest, linear, area, cubic, lanczos", name)
}

var (
	outputFormats   = map[string]bool{"jpg": true, "jpeg": true, "png": true}
	inputExtensions = map[string]bool{"jpg": true, "jpeg": true, "png": true, "webp": true, "avif": true}
	// Extensions the codec can read but not write back.
	decodeOnly = map[string]bool{"webp": true, "avif": true}
)

// DefaultExtensions is the extension filter used when none is given.
var DefaultExtensions = []string{"jpg", "jpeg", "png"}

// Config holds all settings of one batch run.
type Config struct {
	// Sizing. Exactly one Method governs resolution; the other fields are
	// read only by the method they belong to.
	Method       Method
	ScaleFactor  float64 // SCALE only.
	TargetWidth  int     // FIXED and DYNAMIC_ASPECT.
	TargetHeight int     // FIXED and DYNAMIC_ASPECT.
	MinWidth     int     // MIN_BOUND only.
	MinHeight    int     // MIN_BOUND only.

	// Resampling and encoding.
	DownInterpolation Interpolation // Default: area.
	UpInterpolation   Interpolation // Default: linear.
	JPEGQuality       int           // Default: 95.
	OutputFormat      string        // Empty keeps the source container.
	AutoOrient        bool          // Default: true. Apply EXIF orientation on decode.

	// Output naming.
	KeepOriginals bool
	Suffix        string // Default: "_resized". Appended to the stem when KeepOriginals.

	// Behavior.
	DeleteOnFailure bool // Default: true.
	DryRun          bool
	Threads         int // Default: runtime.NumCPU().
	Recursive       bool
	Extensions      []string // Default: jpg, jpeg, png.

	// Display.
	Verbose  bool
	Progress bool // Default: true. Suppressed by Verbose and DryRun.
	Summary  bool
	TUI      bool
}

// Default returns a Config carrying every default. The sizing method is left
// unset; [Config.ApplySize] chooses it.
func Default() Config {
	return Config{
		DownInterpolation: InterpArea,
		UpInterpolation:   InterpLinear,
		JPEGQuality:       95,
		AutoOrient:        true,
		Suffix:            "_resized",
		DeleteOnFailure:   true,
		Threads:           runtime.NumCPU(),
		Extensions:        append([]string(nil), DefaultExtensions...),
		Progress:          true,
	}
}

// ProgressEnabled reports whether the progress display should run.
func (c Config) ProgressEnabled() bool {
	return c.Progress && !c.Verbose && !c.DryRun
}

// SizeOptions records which sizing flags were given on the command line.
type SizeOptions struct {
	Scale     float64
	Width     int
	Height    int
	MinWidth  int
	MinHeight int

	HasScale     bool
	HasWidth     bool
	HasHeight    bool
	HasMinWidth  bool
	HasMinHeight bool
}

// ApplySize picks the sizing method from the given options. Scale wins over
// width/height, which win over the minimum bounds. Both minimums are needed
// for MIN_BOUND.
func (c *Config) ApplySize(o SizeOptions) error {
	c.TargetWidth, c.TargetHeight = o.Width, o.Height
	c.MinWidth, c.MinHeight = o.MinWidth, o.MinHeight

	switch {
	case o.HasScale:
		c.Method = MethodScale
		c.ScaleFactor = o.Scale
	case o.HasWidth && o.HasHeight:
		c.Method = MethodFixed
	case o.HasWidth || o.HasHeight:
		c.Method = MethodDynamicAspect
	case o.HasMinWidth && o.HasMinHeight:
		c.Method = MethodMinBound
	default:
		return &ConfigurationError{Problems: []string{
			"either scale, height, width, or both min-height and min-width must be specified",
		}}
	}
	return nil
}

// Validate normalizes the extension and format fields and checks every
// option. All problems are collected into a single *ConfigurationError.
// Non-fatal observations are returned as warnings.
func (c *Config) Validate() (warnings []string, err error) {
	var problems []string
	fail := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	switch c.Method {
	case MethodFixed:
		if c.TargetHeight <= 0 {
			fail("height must be a positive number")
		}
		if c.TargetWidth <= 0 {
			fail("width must be a positive number")
		}
	case MethodDynamicAspect:
		if c.TargetHeight < 0 || c.TargetWidth < 0 {
			fail("height and width must not be negative")
		}
		if c.TargetHeight == 0 && c.TargetWidth == 0 {
			fail("height and width can't both be 0")
		}
		if c.TargetHeight > 0 && c.TargetWidth > 0 {
			fail("only one of height and width may be set to keep the aspect ratio")
		}
	case MethodMinBound:
		if c.MinHeight <= 0 || c.MinWidth <= 0 {
			fail("min-height and min-width must be positive numbers")
		}
	case MethodScale:
		if !(c.ScaleFactor > 0) || math.IsInf(c.ScaleFactor, 0) {
			fail("scale must be a positive number")
		}
		if c.TargetWidth != 0 || c.TargetHeight != 0 {
			warnings = append(warnings, "height and width will be ignored when scale is set")
		}
	default:
		fail("invalid resize method %q", c.Method)
	}

	if c.JPEGQuality < 0 || c.JPEGQuality > 100 {
		fail("JPEG quality must be between 0 and 100")
	}

	if c.Threads <= 0 {
		fail("number of threads must be a positive number")
	} else if c.Threads > runtime.NumCPU() {
		warnings = append(warnings, fmt.Sprintf("number of threads (%d) is greater than the number of cores (%d)", c.Threads, runtime.NumCPU()))
	}

	for _, interp := range []*Interpolation{&c.DownInterpolation, &c.UpInterpolation} {
		parsed, perr := ParseInterpolation(string(*interp))
		if perr != nil {
			fail("%v", perr)
			continue
		}
		*interp = parsed
	}

	c.OutputFormat = normalizeExt(c.OutputFormat)
	if c.OutputFormat != "" && !outputFormats[c.OutputFormat] {
		fail("invalid output format %q, possible values are: jpg, jpeg, png", c.OutputFormat)
	}

	if c.KeepOriginals && c.Suffix == "" {
		fail("suffix must not be empty when originals are kept")
	}

	exts := make([]string, 0, len(c.Extensions))
	seen := make(map[string]bool, len(c.Extensions))
	for _, raw := range c.Extensions {
		ext := normalizeExt(raw)
		if ext == "" || seen[ext] {
			continue
		}
		seen[ext] = true
		if !inputExtensions[ext] {
			fail("invalid extension: %s", raw)
			continue
		}
		if decodeOnly[ext] && c.OutputFormat == "" {
			fail("extension %s requires an output format (jpg, jpeg, png)", ext)
		}
		exts = append(exts, ext)
	}
	if len(exts) == 0 && len(problems) == 0 {
		warnings = append(warnings, "no extension specified, defaulting to jpg, jpeg and png")
		exts = append(exts, DefaultExtensions...)
	}
	c.Extensions = exts

	if len(problems) > 0 {
		return warnings, &ConfigurationError{Problems: problems}
	}
	return warnings, nil
}

func normalizeExt(raw string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(raw), "."))
}

// ConfigurationError reports options that prevent any processing from
// starting.
type ConfigurationError struct {
	Problems []string
}

func (e *ConfigurationError) Error() string {
	if len(e.Problems) == 1 {
		return "invalid options: " + e.Problems[0]
	}
	return "invalid options:\n  - " + strings.Join(e.Problems, "\n  - ")
}
