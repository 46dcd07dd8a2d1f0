package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	contentUC "github.com/khoahotran/portfolio-api/internal/application/usecase/content"
	"github.com/khoahotran/portfolio-api/internal/domain/achievement"
	"github.com/khoahotran/portfolio-api/internal/domain/experience"
	"github.com/khoahotran/portfolio-api/internal/domain/profile"
	"github.com/khoahotran/portfolio-api/internal/domain/project"
	"github.com/khoahotran/portfolio-api/pkg/apperror"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

// ContentHandler exposes the content store. Reads are public; mutations are
// mounted behind SessionMiddleware.
type ContentHandler struct {
	store  *contentUC.Store
	logger logger.Logger
}

func NewContentHandler(store *contentUC.Store, log logger.Logger) *ContentHandler {
	return &ContentHandler{
		store:  store,
		logger: log,
	}
}

func (h *ContentHandler) GetContent(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Snapshot())
}

func (h *ContentHandler) ListProjects(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Projects())
}

func (h *ContentHandler) GetProject(c *gin.Context) {
	p, ok := h.store.Project(c.Param("id"))
	if !ok {
		c.Error(apperror.NewNotFound("project", c.Param("id")))
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ContentHandler) ListExperience(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Experience())
}

func (h *ContentHandler) ListAchievements(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Achievements())
}

func (h *ContentHandler) GetSkills(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Skills())
}

func (h *ContentHandler) GetHero(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Hero())
}

func (h *ContentHandler) GetSocialLinks(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.SocialLinks())
}

func (h *ContentHandler) GetAboutStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.AboutStats())
}

func (h *ContentHandler) CreateProject(c *gin.Context) {
	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}

	p, err := h.store.AddProject(c.Request.Context(), req.ToFields())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// UpdateProject answers 404 for an unknown id. The store itself treats that
// case as a silent no-op; the status only tells the client nothing changed.
func (h *ContentHandler) UpdateProject(c *gin.Context) {
	var patch project.Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}

	p, found, err := h.store.UpdateProject(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		c.Error(err)
		return
	}
	if !found {
		c.Error(apperror.NewNotFound("project", c.Param("id")))
		return
	}
	c.JSON(http.StatusOK, p)
}

// DeleteProject is idempotent: deleting an unknown id also answers 204.
func (h *ContentHandler) DeleteProject(c *gin.Context) {
	h.store.DeleteProject(c.Request.Context(), c.Param("id"))
	c.Status(http.StatusNoContent)
}

func (h *ContentHandler) CreateExperience(c *gin.Context) {
	var req CreateExperienceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}

	e, err := h.store.AddExperience(c.Request.Context(), req.ToFields())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, e)
}

func (h *ContentHandler) UpdateExperience(c *gin.Context) {
	var patch experience.Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}

	e, found, err := h.store.UpdateExperience(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		c.Error(err)
		return
	}
	if !found {
		c.Error(apperror.NewNotFound("experience", c.Param("id")))
		return
	}
	c.JSON(http.StatusOK, e)
}

func (h *ContentHandler) DeleteExperience(c *gin.Context) {
	h.store.DeleteExperience(c.Request.Context(), c.Param("id"))
	c.Status(http.StatusNoContent)
}

func (h *ContentHandler) CreateAchievement(c *gin.Context) {
	var req CreateAchievementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}

	a, err := h.store.AddAchievement(c.Request.Context(), req.ToFields())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

func (h *ContentHandler) UpdateAchievement(c *gin.Context) {
	var patch achievement.Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}

	a, found, err := h.store.UpdateAchievement(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		c.Error(err)
		return
	}
	if !found {
		c.Error(apperror.NewNotFound("achievement", c.Param("id")))
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *ContentHandler) DeleteAchievement(c *gin.Context) {
	h.store.DeleteAchievement(c.Request.Context(), c.Param("id"))
	c.Status(http.StatusNoContent)
}

func (h *ContentHandler) UpdateHero(c *gin.Context) {
	var patch profile.HeroPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}
	c.JSON(http.StatusOK, h.store.UpdateHero(c.Request.Context(), patch))
}

func (h *ContentHandler) UpdateSocialLinks(c *gin.Context) {
	var patch profile.SocialLinksPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}
	c.JSON(http.StatusOK, h.store.UpdateSocialLinks(c.Request.Context(), patch))
}

func (h *ContentHandler) UpdateSkills(c *gin.Context) {
	var patch profile.SkillsPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}
	c.JSON(http.StatusOK, h.store.UpdateSkills(c.Request.Context(), patch))
}

func (h *ContentHandler) UpdateAboutStats(c *gin.Context) {
	var stats []profile.AboutStat
	if err := c.ShouldBindJSON(&stats); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}
	c.JSON(http.StatusOK, h.store.UpdateAboutStats(c.Request.Context(), stats))
}

func (h *ContentHandler) ResetToDefaults(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.ResetToDefaults(c.Request.Context()))
}
