package event

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/portfolio-api/internal/domain/content"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

type captureWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *captureWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *captureWriter) Close() error {
	w.closed = true
	return nil
}

func TestPublishContentEvent(t *testing.T) {
	w := &captureWriter{}
	p := NewProducerWithWriter(w, logger.NewNopLogger())

	evt := content.Event{Type: content.EventUpdated, Collection: content.CollectionProjects, EntityID: "project-1", OccurredAt: 42}
	require.NoError(t, p.PublishContentEvent(context.Background(), evt))

	require.Len(t, w.msgs, 1)
	assert.Equal(t, "projects", string(w.msgs[0].Key))
	assert.JSONEq(t, `{"event_type":"updated","collection":"projects","entity_id":"project-1","occurred_at":42}`, string(w.msgs[0].Value))

	var decoded content.Event
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &decoded))
	assert.Equal(t, evt, decoded)

	p.Close()
	assert.True(t, w.closed)
}

func TestPublishContentEvent_WriterError(t *testing.T) {
	p := NewProducerWithWriter(&captureWriter{err: errors.New("broker down")}, logger.NewNopLogger())

	err := p.PublishContentEvent(context.Background(), content.Event{Type: content.EventReset, Collection: content.CollectionAll})
	assert.ErrorContains(t, err, "broker down")
}
