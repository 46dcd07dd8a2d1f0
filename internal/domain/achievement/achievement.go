package achievement

import (
	"errors"
	"strings"
)

const IDPrefix = "ach"

type Achievement struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon,omitempty"`
	CreatedAt   int64  `json:"createdAt"`
	UpdatedAt   int64  `json:"updatedAt"`
}

type Fields struct {
	Title       string
	Description string
	Icon        string
}

type Patch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Icon        *string `json:"icon"`
}

var ErrEmptyTitle = errors.New("achievement title is required")

func New(id string, f Fields, now int64) Achievement {
	return Achievement{
		ID:          id,
		Title:       f.Title,
		Description: f.Description,
		Icon:        f.Icon,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (a *Achievement) Validate() error {
	if strings.TrimSpace(a.Title) == "" {
		return ErrEmptyTitle
	}
	return nil
}

func (a Achievement) Clone() Achievement {
	return a
}

func (patch Patch) Apply(a *Achievement) {
	if patch.Title != nil {
		a.Title = *patch.Title
	}
	if patch.Description != nil {
		a.Description = *patch.Description
	}
	if patch.Icon != nil {
		a.Icon = *patch.Icon
	}
}
