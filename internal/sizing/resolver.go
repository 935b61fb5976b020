// Package sizing turns an image's current dimensions and the configured
// method into a target size.
package sizing

import (
	"fmt"
	"math"

	"resize/internal/config"
)

// Kind classifies a resolution.
type Kind int

const (
	KindTarget   Kind = iota // Resize to Width x Height.
	KindSameSize             // Target equals the current size.
	KindTooSmall             // MIN_BOUND: both sides already below the floor.
)

func (k Kind) String() string {
	switch k {
	case KindTarget:
		return "target"
	case KindSameSize:
		return "same size"
	case KindTooSmall:
		return "too small"
	default:
		return "unknown"
	}
}

// Decision is the outcome of [Resolve]. Width and Height are always set: for
// no-op kinds they hold the current dimensions.
type Decision struct {
	Kind   Kind
	Width  int
	Height int
}

// NoOp reports whether the image should be left untouched.
func (d Decision) NoOp() bool { return d.Kind != KindTarget }

// Upscale reports whether the target area is at least the source area. An
// equal area with different sides counts as upscaling.
func (d Decision) Upscale(w, h int) bool {
	return int64(d.Width)*int64(d.Height) >= int64(w)*int64(h)
}

func (d Decision) String() string {
	if d.NoOp() {
		return d.Kind.String()
	}
	return fmt.Sprintf("%dx%d", d.Width, d.Height)
}

// Resolve computes the target size for a w x h image. w and h must be
// positive. The result depends only on its inputs.
func Resolve(w, h int, cfg config.Config) Decision {
	var tw, th int

	switch cfg.Method {
	case config.MethodScale:
		tw = atLeastOne(math.Floor(float64(w) * cfg.ScaleFactor))
		th = atLeastOne(math.Floor(float64(h) * cfg.ScaleFactor))
	case config.MethodFixed:
		tw, th = cfg.TargetWidth, cfg.TargetHeight
	case config.MethodDynamicAspect:
		tw, th = dynamicAspect(w, h, cfg.TargetWidth, cfg.TargetHeight)
	case config.MethodMinBound:
		if w < cfg.MinWidth && h < cfg.MinHeight {
			return Decision{Kind: KindTooSmall, Width: w, Height: h}
		}
		tw, th = minBound(w, h, cfg.MinWidth, cfg.MinHeight)
	default:
		tw, th = w, h
	}

	if tw == w && th == h {
		return Decision{Kind: KindSameSize, Width: w, Height: h}
	}
	return Decision{Kind: KindTarget, Width: tw, Height: th}
}

func dynamicAspect(w, h, targetW, targetH int) (int, int) {
	ratio := float64(w) / float64(h)
	if targetW > 0 {
		return targetW, atLeastOne(math.Round(float64(targetW) / ratio))
	}
	return atLeastOne(math.Round(float64(targetH) * ratio)), targetH
}

// minBound keeps the aspect ratio and floors the derived side. The
// comparison runs on integers so that floor never drops below the minimum:
// minW/ratio > minH is minW*h > minH*w.
func minBound(w, h, minW, minH int) (int, int) {
	w64, h64 := int64(w), int64(h)
	mw, mh := int64(minW), int64(minH)
	if mw*h64 > mh*w64 {
		return minW, int(mw * h64 / w64)
	}
	return int(mh * w64 / h64), minH
}

func atLeastOne(v float64) int {
	if v < 1 {
		return 1
	}
	return int(v)
}
