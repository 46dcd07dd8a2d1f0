package content

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/khoahotran/portfolio-api/internal/domain/achievement"
	"github.com/khoahotran/portfolio-api/internal/domain/experience"
	"github.com/khoahotran/portfolio-api/internal/domain/profile"
	"github.com/khoahotran/portfolio-api/internal/domain/project"
)

var (
	ErrEmptyCollection   = errors.New("stored collection is empty")
	ErrIncompatibleShape = errors.New("stored value has an incompatible shape")
)

// StepEnv is what a migration step may depend on besides the record itself.
type StepEnv struct {
	Index  int
	Now    int64
	Prefix string
}

// RecordStep upgrades records of one historical shape. Steps must leave
// records that are already in a newer shape untouched, so a chain can run over
// data of any age.
type RecordStep struct {
	Name  string
	Apply func(rec map[string]any, env StepEnv)
}

// Migration is the ordered chain of steps bringing stored records of one list
// entity into the current shape.
type Migration[T any] struct {
	Prefix string
	Steps  []RecordStep
}

// Run decodes raw as a JSON array of records, applies every step to every
// record and decodes the result into T. An empty array yields
// ErrEmptyCollection; anything that is not an array of objects, or that
// does not fit T afterwards, is reported as a decode error.
func (m Migration[T]) Run(raw []byte, now int64) ([]T, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var records []map[string]any
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrEmptyCollection
	}

	for i, rec := range records {
		if rec == nil {
			return nil, fmt.Errorf("record %d is null: %w", i, ErrIncompatibleShape)
		}
		env := StepEnv{Index: i, Now: now, Prefix: m.Prefix}
		for _, step := range m.Steps {
			step.Apply(rec, env)
		}
	}

	normalized, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("encode migrated records: %w", err)
	}
	var out []T
	if err := json.Unmarshal(normalized, &out); err != nil {
		return nil, fmt.Errorf("decode migrated records: %w", err)
	}
	return out, nil
}

// StepNames is handy for logging which chain ran.
func (m Migration[T]) StepNames() []string {
	names := make([]string, len(m.Steps))
	for i, s := range m.Steps {
		names[i] = s.Name
	}
	return names
}

var (
	// The first bundled datasets used integer ids.
	StepNumericID = RecordStep{
		Name: "numeric-id",
		Apply: func(rec map[string]any, _ StepEnv) {
			if n, ok := rec["id"].(json.Number); ok {
				rec["id"] = n.String()
			}
		},
	}

	StepMissingID = RecordStep{
		Name: "missing-id",
		Apply: func(rec map[string]any, env StepEnv) {
			if isBlank(rec["id"]) {
				rec["id"] = fmt.Sprintf("%s-%d-%d", env.Prefix, env.Now, env.Index)
			}
		},
	}

	StepTimestamps = RecordStep{
		Name: "timestamps",
		Apply: func(rec map[string]any, env StepEnv) {
			for _, key := range []string{"createdAt", "updatedAt"} {
				if isZeroNumber(rec[key]) {
					rec[key] = env.Now
				}
			}
		},
	}

	StepProjectOptionalFields = RecordStep{
		Name: "project-optional-fields",
		Apply: func(rec map[string]any, _ StepEnv) {
			if rec["tech"] == nil {
				rec["tech"] = []any{}
			}
			if isBlank(rec["category"]) {
				rec["category"] = project.DefaultCategory
			}
			for _, key := range []string{"github", "demo", "image"} {
				if rec[key] == nil {
					rec[key] = ""
				}
			}
		},
	}

	// Experience records predating the type tag are classified by role text.
	StepExperienceType = RecordStep{
		Name: "experience-type",
		Apply: func(rec map[string]any, _ StepEnv) {
			t, _ := rec["type"].(string)
			if experience.Type(t).Valid() {
				return
			}
			role, _ := rec["role"].(string)
			rec["type"] = string(experience.InferType(role))
		},
	}
)

var (
	ProjectMigration = Migration[project.Project]{
		Prefix: project.IDPrefix,
		Steps:  []RecordStep{StepNumericID, StepMissingID, StepProjectOptionalFields, StepTimestamps},
	}
	ExperienceMigration = Migration[experience.Experience]{
		Prefix: experience.IDPrefix,
		Steps:  []RecordStep{StepNumericID, StepMissingID, StepExperienceType, StepTimestamps},
	}
	AchievementMigration = Migration[achievement.Achievement]{
		Prefix: achievement.IDPrefix,
		Steps:  []RecordStep{StepNumericID, StepMissingID, StepTimestamps},
	}
)

// MigrateSkills accepts only the current shape, where every language entry is
// a plain string. Earlier releases stored structured entries ({name, level});
// those cannot be mapped back and are reported as ErrIncompatibleShape so the
// caller falls back to defaults. Lists missing from raw are taken from base.
func MigrateSkills(raw []byte, base profile.Skills) (profile.Skills, error) {
	var shape struct {
		Languages []json.RawMessage `json:"languages"`
	}
	if err := json.Unmarshal(raw, &shape); err != nil {
		return profile.Skills{}, fmt.Errorf("decode skills: %w", err)
	}
	if shape.Languages == nil {
		return profile.Skills{}, fmt.Errorf("skills languages missing: %w", ErrIncompatibleShape)
	}
	for _, entry := range shape.Languages {
		trimmed := bytes.TrimSpace(entry)
		if len(trimmed) == 0 || trimmed[0] != '"' {
			return profile.Skills{}, fmt.Errorf("skills language entry %s: %w", trimmed, ErrIncompatibleShape)
		}
	}

	out := base.Clone()
	if err := json.Unmarshal(raw, &out); err != nil {
		return profile.Skills{}, fmt.Errorf("decode skills: %w", err)
	}
	return out.Clone(), nil
}

// DecodeOver decodes raw on top of base, so fields added after raw was
// written keep their base value. base must not share memory with anything
// the caller still uses.
func DecodeOver[T any](raw []byte, base T) (T, error) {
	if err := json.Unmarshal(raw, &base); err != nil {
		var zero T
		return zero, err
	}
	return base, nil
}

func isBlank(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	}
	return false
}

func isZeroNumber(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case json.Number:
		return t.String() == "0"
	}
	return false
}
