package content

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/portfolio-api/internal/domain/experience"
	"github.com/khoahotran/portfolio-api/internal/domain/profile"
	"github.com/khoahotran/portfolio-api/internal/domain/project"
)

const now = int64(1_700_000_000_000)

func applyStep(t *testing.T, step RecordStep, raw string, env StepEnv) map[string]any {
	t.Helper()
	var rec map[string]any
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	require.NoError(t, dec.Decode(&rec))
	step.Apply(rec, env)
	return rec
}

func TestStepNumericID(t *testing.T) {
	rec := applyStep(t, StepNumericID, `{"id": 7}`, StepEnv{})
	assert.Equal(t, "7", rec["id"])

	rec = applyStep(t, StepNumericID, `{"id": "project-1-a"}`, StepEnv{})
	assert.Equal(t, "project-1-a", rec["id"])
}

func TestStepMissingID(t *testing.T) {
	rec := applyStep(t, StepMissingID, `{"title": "x"}`, StepEnv{Index: 2, Now: now, Prefix: "ach"})
	assert.Equal(t, "ach-1700000000000-2", rec["id"])

	rec = applyStep(t, StepMissingID, `{"id": ""}`, StepEnv{Index: 0, Now: now, Prefix: "exp"})
	assert.Equal(t, "exp-1700000000000-0", rec["id"])
}

func TestStepTimestamps(t *testing.T) {
	rec := applyStep(t, StepTimestamps, `{"createdAt": 5, "updatedAt": 0}`, StepEnv{Now: now})
	assert.Equal(t, json.Number("5"), rec["createdAt"])
	assert.Equal(t, now, rec["updatedAt"])
}

func TestStepExperienceType(t *testing.T) {
	rec := applyStep(t, StepExperienceType, `{"role": "B.Tech Student"}`, StepEnv{})
	assert.Equal(t, string(experience.TypeEducation), rec["type"])

	rec = applyStep(t, StepExperienceType, `{"role": "Engineer"}`, StepEnv{})
	assert.Equal(t, string(experience.TypeWork), rec["type"])

	rec = applyStep(t, StepExperienceType, `{"role": "Student Mentor", "type": "work"}`, StepEnv{})
	assert.Equal(t, string(experience.TypeWork), rec["type"])
}

func TestProjectMigration_LegacyRecords(t *testing.T) {
	raw := `[{"id": 1, "title": "Old", "description": "legacy"},
	         {"title": "No id", "description": "d", "tech": ["Go"], "category": "Web", "createdAt": 10, "updatedAt": 20}]`

	got, err := ProjectMigration.Run([]byte(raw), now)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, project.Project{
		ID: "1", Title: "Old", Description: "legacy", Tech: []string{},
		Category: project.DefaultCategory, CreatedAt: now, UpdatedAt: now,
	}, got[0])
	assert.Equal(t, "project-1700000000000-1", got[1].ID)
	assert.Equal(t, "Web", got[1].Category)
	assert.Equal(t, int64(10), got[1].CreatedAt)
	assert.Equal(t, int64(20), got[1].UpdatedAt)
}

func TestMigrationRun_Errors(t *testing.T) {
	_, err := ProjectMigration.Run([]byte(`[]`), now)
	assert.ErrorIs(t, err, ErrEmptyCollection)

	_, err = ProjectMigration.Run([]byte(`{"id": 1}`), now)
	assert.Error(t, err)

	_, err = AchievementMigration.Run([]byte(`[null]`), now)
	assert.ErrorIs(t, err, ErrIncompatibleShape)

	_, err = ExperienceMigration.Run([]byte(`not json`), now)
	assert.Error(t, err)
}

func TestMigrationStepNames(t *testing.T) {
	assert.Equal(t, []string{"numeric-id", "missing-id", "experience-type", "timestamps"}, ExperienceMigration.StepNames())
}

func TestMigrateSkills(t *testing.T) {
	base := DefaultSkills()

	got, err := MigrateSkills([]byte(`{"languages": ["Go"], "tools": []}`), base)
	require.NoError(t, err)
	assert.Equal(t, []string{"Go"}, got.Languages)
	assert.Empty(t, got.Tools)
	assert.Equal(t, base.Frameworks, got.Frameworks)

	got, err = MigrateSkills([]byte(`{"languages": []}`), base)
	require.NoError(t, err)
	assert.Empty(t, got.Languages)

	_, err = MigrateSkills([]byte(`{"languages": [{"name": "Go", "level": 90}]}`), base)
	assert.ErrorIs(t, err, ErrIncompatibleShape)

	_, err = MigrateSkills([]byte(`{"frameworks": ["Gin"]}`), base)
	assert.ErrorIs(t, err, ErrIncompatibleShape)
}

func TestDecodeOver_KeepsBaseForMissingFields(t *testing.T) {
	base := profile.SocialLinks{Email: "a@example.com", Github: "gh", Website: "https://site"}
	got, err := DecodeOver([]byte(`{"email": "b@example.com"}`), base)
	require.NoError(t, err)
	assert.Equal(t, "b@example.com", got.Email)
	assert.Equal(t, "https://site", got.Website)
}

func TestDefaults_FreshCopies(t *testing.T) {
	a := Defaults(now)
	b := Defaults(now)
	require.NotEmpty(t, a.Projects)
	assert.Equal(t, "1", a.Projects[0].ID)

	a.Projects[0].Tech[0] = "mutated"
	a.Hero.Roles[0] = "mutated"
	assert.NotEqual(t, "mutated", b.Projects[0].Tech[0])
	assert.NotEqual(t, "mutated", Defaults(now).Hero.Roles[0])
}

func TestNewID(t *testing.T) {
	id := NewID(project.IDPrefix, now)
	assert.Regexp(t, `^project-1700000000000-[0-9a-f]{12}$`, id)
	assert.NotEqual(t, id, NewID(project.IDPrefix, now))
}
