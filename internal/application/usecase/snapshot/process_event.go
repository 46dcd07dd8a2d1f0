package snapshot

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-api/internal/application/service"
	"github.com/khoahotran/portfolio-api/internal/domain/content"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

// Loader returns a freshly loaded view of the content storage. The worker
// does not share memory with the API process, so it reloads per event.
type Loader func(ctx context.Context) DatasetSource

type ProcessEventUseCase struct {
	load     Loader
	uploader service.Uploader
	folder   string
	logger   logger.Logger
}

func NewProcessEventUseCase(load Loader, uploader service.Uploader, folder string, log logger.Logger) *ProcessEventUseCase {
	return &ProcessEventUseCase{
		load:     load,
		uploader: uploader,
		folder:   folder,
		logger:   log,
	}
}

// Execute uploads a snapshot of the content as it is after evt.
func (uc *ProcessEventUseCase) Execute(ctx context.Context, evt content.Event) (*UploadOutput, error) {
	uc.logger.Info("Processing content event",
		zap.String("event_type", string(evt.Type)),
		zap.String("collection", evt.Collection),
		zap.String("entity_id", evt.EntityID),
	)

	snap := NewSnapshotUseCase(uc.load(ctx), uc.uploader, uc.folder, uc.logger)
	return snap.Upload(ctx, UploadInput{
		Reason: fmt.Sprintf("%s %s", evt.Collection, evt.Type),
	})
}
