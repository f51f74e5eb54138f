package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// DriveImagePrefix marks product image references stored in Google Drive, e.g. drive://1AbC
const DriveImagePrefix = "drive://"

const maxDriveImageBytes = 20 << 20

// DriveService downloads product images stored in Google Drive
type DriveService struct {
	client *drive.Service
	logger *zap.Logger
}

// NewDriveService creates a new DriveService instance.
// Service account credentials are read from credentialsJSON when set, otherwise from the
// credentialsPath file.
func NewDriveService(ctx context.Context, credentialsPath, credentialsJSON string, logger *zap.Logger, opts ...option.ClientOption) (*DriveService, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	clientOpts := []option.ClientOption{option.WithScopes(drive.DriveReadonlyScope)}
	switch {
	case credentialsJSON != "":
		clientOpts = append(clientOpts, option.WithCredentialsJSON([]byte(credentialsJSON)))
	case credentialsPath != "":
		clientOpts = append(clientOpts, option.WithCredentialsFile(credentialsPath))
	}
	clientOpts = append(clientOpts, opts...)

	driveService, err := drive.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	return &DriveService{
		client: driveService,
		logger: logger,
	}, nil
}

// DownloadImage returns the raw bytes of a Drive file
func (ds *DriveService) DownloadImage(ctx context.Context, fileID string) ([]byte, error) {
	fileID = strings.TrimSpace(fileID)
	if fileID == "" {
		return nil, fmt.Errorf("drive: empty file id")
	}

	resp, err := ds.client.Files.Get(fileID).SupportsAllDrives(true).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("failed to download drive file %s: %w", fileID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("drive file %s: unexpected status %d", fileID, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDriveImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read drive file %s: %w", fileID, err)
	}
	if len(data) > maxDriveImageBytes {
		return nil, fmt.Errorf("drive file %s exceeds %d bytes", fileID, maxDriveImageBytes)
	}

	ds.logger.Debug("drive image downloaded", zap.String("file_id", fileID), zap.Int("bytes", len(data)))
	return data, nil
}

// DriveFileID extracts the file id from a drive:// reference
func DriveFileID(ref string) (string, bool) {
	if !strings.HasPrefix(ref, DriveImagePrefix) {
		return "", false
	}
	id := strings.TrimPrefix(ref, DriveImagePrefix)
	return id, id != ""
}
