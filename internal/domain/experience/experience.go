package experience

import (
	"errors"
	"strings"
)

const IDPrefix = "exp"

type Type string

const (
	TypeWork      Type = "work"
	TypeEducation Type = "education"
)

func (t Type) Valid() bool {
	return t == TypeWork || t == TypeEducation
}

type Experience struct {
	ID          string `json:"id"`
	Company     string `json:"company"`
	Role        string `json:"role"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
	Type        Type   `json:"type"`
	CreatedAt   int64  `json:"createdAt"`
	UpdatedAt   int64  `json:"updatedAt"`
}

type Fields struct {
	Company     string
	Role        string
	Duration    string
	Description string
	Type        Type
}

type Patch struct {
	Company     *string `json:"company"`
	Role        *string `json:"role"`
	Duration    *string `json:"duration"`
	Description *string `json:"description"`
	Type        *Type   `json:"type"`
}

var (
	ErrEmptyCompany = errors.New("experience company is required")
	ErrEmptyRole    = errors.New("experience role is required")
	ErrInvalidType  = errors.New("experience type must be 'work' or 'education'")
)

func New(id string, f Fields, now int64) Experience {
	return Experience{
		ID:          id,
		Company:     f.Company,
		Role:        f.Role,
		Duration:    f.Duration,
		Description: f.Description,
		Type:        f.Type,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (e *Experience) Validate() error {
	if strings.TrimSpace(e.Company) == "" {
		return ErrEmptyCompany
	}
	if strings.TrimSpace(e.Role) == "" {
		return ErrEmptyRole
	}
	if !e.Type.Valid() {
		return ErrInvalidType
	}
	return nil
}

func (e Experience) Clone() Experience {
	return e
}

// InferType classifies records written before the type tag existed.
func InferType(role string) Type {
	if strings.Contains(role, "Student") {
		return TypeEducation
	}
	return TypeWork
}

func (patch Patch) Apply(e *Experience) {
	if patch.Company != nil {
		e.Company = *patch.Company
	}
	if patch.Role != nil {
		e.Role = *patch.Role
	}
	if patch.Duration != nil {
		e.Duration = *patch.Duration
	}
	if patch.Description != nil {
		e.Description = *patch.Description
	}
	if patch.Type != nil {
		e.Type = *patch.Type
	}
}
