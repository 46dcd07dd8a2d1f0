package service

import (
	"context"

	"github.com/khoahotran/portfolio-api/internal/domain/content"
)

type EventPublisher interface {
	PublishContentEvent(ctx context.Context, evt content.Event) error
}
