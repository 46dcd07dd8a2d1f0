package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khoahotran/portfolio-api/internal/application/usecase/snapshot"
	"github.com/khoahotran/portfolio-api/pkg/apperror"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

type SnapshotHandler struct {
	snapshotUseCase *snapshot.SnapshotUseCase
	logger          logger.Logger
}

func NewSnapshotHandler(uc *snapshot.SnapshotUseCase, log logger.Logger) *SnapshotHandler {
	return &SnapshotHandler{
		snapshotUseCase: uc,
		logger:          log,
	}
}

// Export downloads the dataset as a JSON attachment. ?format=bundle adds the
// schema version so the file can replace the bundled defaults.
func (h *SnapshotHandler) Export(c *gin.Context) {
	format, err := snapshot.ParseFormat(c.Query("format"))
	if err != nil {
		c.Error(err)
		return
	}

	out, err := h.snapshotUseCase.Export(c.Request.Context(), format)
	if err != nil {
		c.Error(err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, out.Filename))
	c.Data(http.StatusOK, "application/json; charset=utf-8", out.Body)
}

func (h *SnapshotHandler) CreateSnapshot(c *gin.Context) {
	out, err := h.snapshotUseCase.Upload(c.Request.Context(), snapshot.UploadInput{Reason: "admin request"})
	if err != nil {
		c.Error(err)
		return
	}
	if out == nil {
		c.Error(apperror.NewInternal("snapshot upload returned no result", nil))
		return
	}
	c.JSON(http.StatusCreated, gin.H{"url": out.URL, "public_id": out.PublicID})
}
