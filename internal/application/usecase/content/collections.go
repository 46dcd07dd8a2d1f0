package content

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	domain "github.com/khoahotran/portfolio-api/internal/domain/content"
	"github.com/khoahotran/portfolio-api/internal/domain/achievement"
	"github.com/khoahotran/portfolio-api/internal/domain/experience"
	"github.com/khoahotran/portfolio-api/internal/domain/project"
	"github.com/khoahotran/portfolio-api/pkg/apperror"
)

func projectID(p *project.Project) string             { return p.ID }
func experienceID(e *experience.Experience) string    { return e.ID }
func achievementID(a *achievement.Achievement) string { return a.ID }

func (s *Store) Projects() []project.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.Clone().Projects
}

// Project returns the project with id, if any.
func (s *Store) Project(id string) (project.Project, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexByID(s.data.Projects, id, projectID)
	if i < 0 {
		return project.Project{}, false
	}
	return s.data.Projects[i].Clone(), true
}

// AddProject inserts a new project at the head of the collection.
func (s *Store) AddProject(ctx context.Context, f project.Fields) (project.Project, error) {
	ctx, span := tracer.Start(ctx, "AddProject")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.nowMillis()
	p := project.New(uniqueID(s.data.Projects, project.IDPrefix, now, projectID), f, now)
	if err := p.Validate(); err != nil {
		return project.Project{}, apperror.NewInvalidInput(err.Error(), err)
	}

	s.data.Projects = prepend(p, s.data.Projects)
	s.persist(ctx, domain.KeyProjects, s.data.Projects)
	s.committed(domain.EventCreated, domain.CollectionProjects, p.ID, now)

	span.SetAttributes(attribute.String("project.id", p.ID))
	return p.Clone(), nil
}

// UpdateProject merges patch into the project with id. An unknown id is a
// no-op reported through found.
func (s *Store) UpdateProject(ctx context.Context, id string, patch project.Patch) (updated project.Project, found bool, err error) {
	ctx, span := tracer.Start(ctx, "UpdateProject", trace.WithAttributes(attribute.String("project.id", id)))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexByID(s.data.Projects, id, projectID)
	if i < 0 {
		return project.Project{}, false, nil
	}

	p := s.data.Projects[i].Clone()
	patch.Apply(&p)
	if err := p.Validate(); err != nil {
		return project.Project{}, true, apperror.NewInvalidInput(err.Error(), err)
	}
	p.UpdatedAt = s.nextStamp(p.UpdatedAt)

	s.data.Projects[i] = p
	s.persist(ctx, domain.KeyProjects, s.data.Projects)
	s.committed(domain.EventUpdated, domain.CollectionProjects, id, p.UpdatedAt)
	return p.Clone(), true, nil
}

// DeleteProject removes the project with id and reports whether it existed.
func (s *Store) DeleteProject(ctx context.Context, id string) bool {
	ctx, span := tracer.Start(ctx, "DeleteProject", trace.WithAttributes(attribute.String("project.id", id)))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexByID(s.data.Projects, id, projectID)
	if i < 0 {
		return false
	}
	s.data.Projects = removeAt(s.data.Projects, i)
	s.persist(ctx, domain.KeyProjects, s.data.Projects)
	s.committed(domain.EventDeleted, domain.CollectionProjects, id, s.nowMillis())
	return true
}

func (s *Store) Experience() []experience.Experience {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.Clone().Experience
}

func (s *Store) AddExperience(ctx context.Context, f experience.Fields) (experience.Experience, error) {
	ctx, span := tracer.Start(ctx, "AddExperience")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.nowMillis()
	e := experience.New(uniqueID(s.data.Experience, experience.IDPrefix, now, experienceID), f, now)
	if err := e.Validate(); err != nil {
		return experience.Experience{}, apperror.NewInvalidInput(err.Error(), err)
	}

	s.data.Experience = prepend(e, s.data.Experience)
	s.persist(ctx, domain.KeyExperience, s.data.Experience)
	s.committed(domain.EventCreated, domain.CollectionExperience, e.ID, now)
	return e, nil
}

func (s *Store) UpdateExperience(ctx context.Context, id string, patch experience.Patch) (experience.Experience, bool, error) {
	ctx, span := tracer.Start(ctx, "UpdateExperience", trace.WithAttributes(attribute.String("experience.id", id)))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexByID(s.data.Experience, id, experienceID)
	if i < 0 {
		return experience.Experience{}, false, nil
	}

	e := s.data.Experience[i].Clone()
	patch.Apply(&e)
	if err := e.Validate(); err != nil {
		return experience.Experience{}, true, apperror.NewInvalidInput(err.Error(), err)
	}
	e.UpdatedAt = s.nextStamp(e.UpdatedAt)

	s.data.Experience[i] = e
	s.persist(ctx, domain.KeyExperience, s.data.Experience)
	s.committed(domain.EventUpdated, domain.CollectionExperience, id, e.UpdatedAt)
	return e, true, nil
}

func (s *Store) DeleteExperience(ctx context.Context, id string) bool {
	ctx, span := tracer.Start(ctx, "DeleteExperience", trace.WithAttributes(attribute.String("experience.id", id)))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexByID(s.data.Experience, id, experienceID)
	if i < 0 {
		return false
	}
	s.data.Experience = removeAt(s.data.Experience, i)
	s.persist(ctx, domain.KeyExperience, s.data.Experience)
	s.committed(domain.EventDeleted, domain.CollectionExperience, id, s.nowMillis())
	return true
}

func (s *Store) Achievements() []achievement.Achievement {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.Clone().Achievements
}

func (s *Store) AddAchievement(ctx context.Context, f achievement.Fields) (achievement.Achievement, error) {
	ctx, span := tracer.Start(ctx, "AddAchievement")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.nowMillis()
	a := achievement.New(uniqueID(s.data.Achievements, achievement.IDPrefix, now, achievementID), f, now)
	if err := a.Validate(); err != nil {
		return achievement.Achievement{}, apperror.NewInvalidInput(err.Error(), err)
	}

	s.data.Achievements = prepend(a, s.data.Achievements)
	s.persist(ctx, domain.KeyAchievements, s.data.Achievements)
	s.committed(domain.EventCreated, domain.CollectionAchievements, a.ID, now)
	return a, nil
}

func (s *Store) UpdateAchievement(ctx context.Context, id string, patch achievement.Patch) (achievement.Achievement, bool, error) {
	ctx, span := tracer.Start(ctx, "UpdateAchievement", trace.WithAttributes(attribute.String("achievement.id", id)))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexByID(s.data.Achievements, id, achievementID)
	if i < 0 {
		return achievement.Achievement{}, false, nil
	}

	a := s.data.Achievements[i].Clone()
	patch.Apply(&a)
	if err := a.Validate(); err != nil {
		return achievement.Achievement{}, true, apperror.NewInvalidInput(err.Error(), err)
	}
	a.UpdatedAt = s.nextStamp(a.UpdatedAt)

	s.data.Achievements[i] = a
	s.persist(ctx, domain.KeyAchievements, s.data.Achievements)
	s.committed(domain.EventUpdated, domain.CollectionAchievements, id, a.UpdatedAt)
	return a, true, nil
}

func (s *Store) DeleteAchievement(ctx context.Context, id string) bool {
	ctx, span := tracer.Start(ctx, "DeleteAchievement", trace.WithAttributes(attribute.String("achievement.id", id)))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexByID(s.data.Achievements, id, achievementID)
	if i < 0 {
		return false
	}
	s.data.Achievements = removeAt(s.data.Achievements, i)
	s.persist(ctx, domain.KeyAchievements, s.data.Achievements)
	s.committed(domain.EventDeleted, domain.CollectionAchievements, id, s.nowMillis())
	return true
}
