package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const maxSourceImageBytes = 20 << 20

// SourceImage is a product image ready to be sent inline to the model
type SourceImage struct {
	Data     []byte
	MimeType string
}

// ImageSource resolves a product image reference to normalised bytes
type ImageSource interface {
	Fetch(ctx context.Context, ref string) (SourceImage, error)
}

// ImageFetcher loads product images over HTTP(S) or from Google Drive and normalises them
// to JPEG. drive is optional; drive:// references fail when it is nil.
type ImageFetcher struct {
	httpClient *http.Client
	drive      DriveServiceInterface
	optimizer  *ImageOptimizer
	logger     *zap.Logger
}

// NewImageFetcher creates an image source
func NewImageFetcher(timeout time.Duration, drive DriveServiceInterface, optimizer *ImageOptimizer, logger *zap.Logger) *ImageFetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	if optimizer == nil {
		optimizer = NewImageOptimizer(0, 0, logger)
	}
	return &ImageFetcher{
		httpClient: &http.Client{Timeout: timeout},
		drive:      drive,
		optimizer:  optimizer,
		logger:     logger,
	}
}

// Fetch downloads the image behind ref and converts it to JPEG
func (f *ImageFetcher) Fetch(ctx context.Context, ref string) (SourceImage, error) {
	raw, err := f.download(ctx, ref)
	if err != nil {
		return SourceImage{}, err
	}

	data, err := f.optimizer.Optimize(raw)
	if err != nil {
		return SourceImage{}, fmt.Errorf("normalise %s: %w", ref, err)
	}

	f.logger.Debug("source image ready",
		zap.String("ref", ref),
		zap.Int("raw_bytes", len(raw)),
		zap.Int("jpeg_bytes", len(data)),
	)
	return SourceImage{Data: data, MimeType: "image/jpeg"}, nil
}

func (f *ImageFetcher) download(ctx context.Context, ref string) ([]byte, error) {
	if fileID, ok := DriveFileID(ref); ok {
		if f.drive == nil {
			return nil, fmt.Errorf("drive image %s: drive is not configured", fileID)
		}
		return f.drive.DownloadImage(ctx, fileID)
	}

	if !strings.HasPrefix(ref, "http://") && !strings.HasPrefix(ref, "https://") {
		return nil, fmt.Errorf("unsupported image reference %q", ref)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return nil, fmt.Errorf("build image request: %w", err)
	}
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch image %s: %w", ref, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch image %s: unexpected status %d", ref, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxSourceImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read image %s: %w", ref, err)
	}
	if len(data) > maxSourceImageBytes {
		return nil, fmt.Errorf("image %s exceeds %d bytes", ref, maxSourceImageBytes)
	}
	return data, nil
}
