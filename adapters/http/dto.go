package http

import (
	"github.com/khoahotran/portfolio-api/internal/domain/achievement"
	"github.com/khoahotran/portfolio-api/internal/domain/experience"
	"github.com/khoahotran/portfolio-api/internal/domain/project"
)

// Auth DTOs
type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

type SessionStatusResponse struct {
	Elevated  bool   `json:"elevated"`
	SessionID string `json:"session_id"`
}

// Project DTOs
type CreateProjectRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tech        []string `json:"tech"`
	Category    string   `json:"category"`
	Github      string   `json:"github"`
	Demo        string   `json:"demo"`
	Image       string   `json:"image"`
	Featured    bool     `json:"featured"`
}

func (req CreateProjectRequest) ToFields() project.Fields {
	return project.Fields{
		Title:       req.Title,
		Description: req.Description,
		Tech:        req.Tech,
		Category:    req.Category,
		Github:      req.Github,
		Demo:        req.Demo,
		Image:       req.Image,
		Featured:    req.Featured,
	}
}

// Experience DTOs
type CreateExperienceRequest struct {
	Company     string          `json:"company"`
	Role        string          `json:"role"`
	Duration    string          `json:"duration"`
	Description string          `json:"description"`
	Type        experience.Type `json:"type"`
}

// ToFields defaults a missing type the same way legacy records are
// classified.
func (req CreateExperienceRequest) ToFields() experience.Fields {
	t := req.Type
	if t == "" {
		t = experience.InferType(req.Role)
	}
	return experience.Fields{
		Company:     req.Company,
		Role:        req.Role,
		Duration:    req.Duration,
		Description: req.Description,
		Type:        t,
	}
}

// Achievement DTOs
type CreateAchievementRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

func (req CreateAchievementRequest) ToFields() achievement.Fields {
	return achievement.Fields{
		Title:       req.Title,
		Description: req.Description,
		Icon:        req.Icon,
	}
}
