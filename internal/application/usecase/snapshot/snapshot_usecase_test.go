package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/portfolio-api/internal/application/service"
	"github.com/khoahotran/portfolio-api/internal/domain/content"
	"github.com/khoahotran/portfolio-api/pkg/apperror"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

type staticSource struct {
	data content.Dataset
}

func (s staticSource) Snapshot() content.Dataset { return s.data.Clone() }

type fakeUploader struct {
	body     []byte
	folder   string
	publicID string
	err      error
}

func (f *fakeUploader) Upload(_ context.Context, file io.Reader, folder, publicID string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	b, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	f.body, f.folder, f.publicID = b, folder, publicID
	return "https://cdn.example.com/" + publicID, nil
}

func (f *fakeUploader) Delete(context.Context, string) error { return nil }

var exportedAt = time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)

func newUseCase(up service.Uploader) *SnapshotUseCase {
	uc := NewSnapshotUseCase(staticSource{data: content.Defaults(1)}, up, "portfolio/snapshots", logger.NewNopLogger())
	uc.now = func() time.Time { return exportedAt }
	return uc
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	f, err = ParseFormat("bundle")
	require.NoError(t, err)
	assert.Equal(t, FormatBundle, f)

	_, err = ParseFormat("xml")
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestExport_JSON(t *testing.T) {
	out, err := newUseCase(nil).Export(context.Background(), FormatJSON)
	require.NoError(t, err)

	assert.Equal(t, "portfolio-json-2026-03-01_10-30-00.json", out.Filename)
	var got content.Dataset
	require.NoError(t, json.Unmarshal(out.Body, &got))
	assert.Equal(t, content.Defaults(1), got)
}

func TestExport_BundleMigratesBackToSameDataset(t *testing.T) {
	out, err := newUseCase(nil).Export(context.Background(), FormatBundle)
	require.NoError(t, err)

	var b struct {
		Version    string          `json:"version"`
		ExportedAt int64           `json:"exportedAt"`
		Data       json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(out.Body, &b))
	assert.Equal(t, content.CurrentVersion, b.Version)
	assert.Equal(t, exportedAt.UnixMilli(), b.ExportedAt)

	var raw struct {
		Projects json.RawMessage `json:"projects"`
	}
	require.NoError(t, json.Unmarshal(b.Data, &raw))
	projects, err := content.ProjectMigration.Run(raw.Projects, 99)
	require.NoError(t, err)
	assert.Equal(t, content.DefaultProjects(1), projects)
}

func TestUpload(t *testing.T) {
	up := &fakeUploader{}

	out, err := newUseCase(up).Upload(context.Background(), UploadInput{Reason: "test"})
	require.NoError(t, err)

	assert.Equal(t, "portfolio/snapshots", up.folder)
	assert.True(t, strings.HasPrefix(out.PublicID, "portfolio/snapshots/portfolio-bundle-"))
	assert.Equal(t, "https://cdn.example.com/"+out.PublicID, out.URL)
	assert.Contains(t, string(up.body), `"version": "`+content.CurrentVersion+`"`)
}

func TestUpload_Failures(t *testing.T) {
	_, err := newUseCase(nil).Upload(context.Background(), UploadInput{})
	assert.ErrorIs(t, err, apperror.ErrUnavailable)

	_, err = newUseCase(&fakeUploader{err: errors.New("quota")}).Upload(context.Background(), UploadInput{})
	assert.ErrorIs(t, err, apperror.ErrUnavailable)
}

func TestProcessEventUseCase_ReloadsPerEvent(t *testing.T) {
	loads := 0
	up := &fakeUploader{}
	uc := NewProcessEventUseCase(func(context.Context) DatasetSource {
		loads++
		return staticSource{data: content.Defaults(1)}
	}, up, "portfolio/snapshots", logger.NewNopLogger())

	evt := content.Event{Type: content.EventCreated, Collection: content.CollectionProjects, EntityID: "p"}
	_, err := uc.Execute(context.Background(), evt)
	require.NoError(t, err)
	_, err = uc.Execute(context.Background(), evt)
	require.NoError(t, err)

	assert.Equal(t, 2, loads)
	assert.NotEmpty(t, up.body)
}
