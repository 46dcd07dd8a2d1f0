package project

import (
	"errors"
	"strings"
)

const IDPrefix = "project"

// DefaultCategory is given to records stored before category existed.
const DefaultCategory = "AI/ML"

type Project struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tech        []string `json:"tech"`
	Category    string   `json:"category"`
	Github      string   `json:"github"`
	Demo        string   `json:"demo"`
	Image       string   `json:"image,omitempty"`
	Featured    bool     `json:"featured,omitempty"`
	CreatedAt   int64    `json:"createdAt"`
	UpdatedAt   int64    `json:"updatedAt"`
}

// Fields is everything a caller supplies when adding a project.
type Fields struct {
	Title       string
	Description string
	Tech        []string
	Category    string
	Github      string
	Demo        string
	Image       string
	Featured    bool
}

// Patch carries the fields of a partial update; nil means "leave as is".
type Patch struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Tech        *[]string `json:"tech"`
	Category    *string   `json:"category"`
	Github      *string   `json:"github"`
	Demo        *string   `json:"demo"`
	Image       *string   `json:"image"`
	Featured    *bool     `json:"featured"`
}

var (
	ErrEmptyTitle       = errors.New("project title is required")
	ErrEmptyDescription = errors.New("project description is required")
)

func New(id string, f Fields, now int64) Project {
	tech := f.Tech
	if tech == nil {
		tech = []string{}
	}
	return Project{
		ID:          id,
		Title:       f.Title,
		Description: f.Description,
		Tech:        append([]string{}, tech...),
		Category:    f.Category,
		Github:      f.Github,
		Demo:        f.Demo,
		Image:       f.Image,
		Featured:    f.Featured,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (p *Project) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return ErrEmptyTitle
	}
	if strings.TrimSpace(p.Description) == "" {
		return ErrEmptyDescription
	}
	return nil
}

func (p Project) Clone() Project {
	p.Tech = append([]string{}, p.Tech...)
	return p
}

// Apply merges the set fields of patch into p. Timestamps are the caller's job.
func (patch Patch) Apply(p *Project) {
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Tech != nil {
		p.Tech = append([]string{}, (*patch.Tech)...)
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Github != nil {
		p.Github = *patch.Github
	}
	if patch.Demo != nil {
		p.Demo = *patch.Demo
	}
	if patch.Image != nil {
		p.Image = *patch.Image
	}
	if patch.Featured != nil {
		p.Featured = *patch.Featured
	}
}
