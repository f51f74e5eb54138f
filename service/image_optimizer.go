package service

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"
)

const (
	// Defaults used when the optimizer is built with zero values
	defaultMaxDimension = 1024
	defaultJPEGQuality  = 85
)

// ImageOptimizer normalises source images before they are sent for scene generation:
// any decodable format becomes a JPEG no larger than maxDim on either side.
type ImageOptimizer struct {
	maxDim  int
	quality int
	logger  *zap.Logger
}

// NewImageOptimizer creates an optimizer; non-positive values fall back to the defaults
func NewImageOptimizer(maxDim, quality int, logger *zap.Logger) *ImageOptimizer {
	if maxDim <= 0 {
		maxDim = defaultMaxDimension
	}
	if quality <= 0 || quality > 100 {
		quality = defaultJPEGQuality
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImageOptimizer{maxDim: maxDim, quality: quality, logger: logger}
}

// Optimize decodes imageData (PNG, JPEG, GIF, BMP, TIFF), downsizes it to fit the bounding
// box keeping the aspect ratio, and re-encodes it as JPEG
func (o *ImageOptimizer) Optimize(imageData []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(imageData), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > o.maxDim || bounds.Dy() > o.maxDim {
		img = imaging.Fit(img, o.maxDim, o.maxDim, imaging.Lanczos)
		o.logger.Debug("image resized",
			zap.Int("from_width", bounds.Dx()),
			zap.Int("from_height", bounds.Dy()),
			zap.Int("to_width", img.Bounds().Dx()),
			zap.Int("to_height", img.Bounds().Dy()),
		)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(o.quality)); err != nil {
		return nil, fmt.Errorf("failed to encode to JPEG: %w", err)
	}
	return buf.Bytes(), nil
}
