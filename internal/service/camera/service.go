package camera

import (
	"context"
	"image"
)

// Service classifies camera frames for cat presence.
type Service interface {
	// ContainsCat reports whether the frame shows a cat with at least the
	// given confidence. Threshold calibration is the implementation's
	// concern; the caller only forwards its configured value.
	ContainsCat(ctx context.Context, frame image.Image, confidenceThreshold float32) (bool, error)
}
