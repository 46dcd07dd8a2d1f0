// Package snapshot exports the content dataset and uploads snapshots of it.
package snapshot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-api/internal/application/service"
	"github.com/khoahotran/portfolio-api/internal/domain/content"
	"github.com/khoahotran/portfolio-api/pkg/apperror"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

type Format string

const (
	// FormatJSON is the bare dataset.
	FormatJSON Format = "json"
	// FormatBundle wraps the dataset with its schema version so it can be
	// committed back as the bundled defaults.
	FormatBundle Format = "bundle"
)

func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatBundle:
		return FormatBundle, nil
	}
	return "", apperror.NewInvalidInput(fmt.Sprintf("unknown export format %q", s), nil)
}

// DatasetSource is anything that can produce a consistent copy of the
// content, normally the content store.
type DatasetSource interface {
	Snapshot() content.Dataset
}

type Bundle struct {
	Version    string          `json:"version"`
	ExportedAt int64           `json:"exportedAt"`
	Data       content.Dataset `json:"data"`
}

type SnapshotUseCase struct {
	source   DatasetSource
	uploader service.Uploader
	folder   string
	logger   logger.Logger
	now      func() time.Time
}

// NewSnapshotUseCase wires the export and upload flows. uploader may be nil,
// in which case only Export works.
func NewSnapshotUseCase(source DatasetSource, uploader service.Uploader, folder string, log logger.Logger) *SnapshotUseCase {
	return &SnapshotUseCase{
		source:   source,
		uploader: uploader,
		folder:   folder,
		logger:   log,
		now:      time.Now,
	}
}

type ExportOutput struct {
	Filename string
	Body     []byte
}

func (uc *SnapshotUseCase) Export(ctx context.Context, format Format) (*ExportOutput, error) {
	now := uc.now().UTC()
	data := uc.source.Snapshot()

	var payload any = data
	if format == FormatBundle {
		payload = Bundle{
			Version:    content.CurrentVersion,
			ExportedAt: now.UnixMilli(),
			Data:       data,
		}
	}

	body, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, apperror.NewInternal("failed to encode content export", err)
	}

	return &ExportOutput{
		Filename: fmt.Sprintf("portfolio-%s-%s.json", format, now.Format("2006-01-02_15-04-05")),
		Body:     body,
	}, nil
}

type UploadInput struct {
	// Reason ends up in the log line only, e.g. the event that triggered it.
	Reason string
}

type UploadOutput struct {
	URL      string
	PublicID string
}

// Upload exports a bundle and stores it with the uploader.
func (uc *SnapshotUseCase) Upload(ctx context.Context, in UploadInput) (*UploadOutput, error) {
	if uc.uploader == nil {
		return nil, apperror.NewUnavailable("snapshot uploads are not configured", nil)
	}

	uc.logger.Info("Starting content snapshot...", zap.String("reason", in.Reason))

	export, err := uc.Export(ctx, FormatBundle)
	if err != nil {
		return nil, err
	}

	publicID := fmt.Sprintf("%s/%s", uc.folder, export.Filename)
	url, err := uc.uploader.Upload(ctx, bytes.NewReader(export.Body), uc.folder, export.Filename)
	if err != nil {
		uc.logger.Error("Failed to upload content snapshot", err, zap.String("public_id", publicID))
		return nil, apperror.NewUnavailable("failed to upload snapshot", err)
	}

	uc.logger.Info("Content snapshot uploaded successfully",
		zap.String("url", url),
		zap.String("public_id", publicID),
	)
	return &UploadOutput{URL: url, PublicID: publicID}, nil
}
