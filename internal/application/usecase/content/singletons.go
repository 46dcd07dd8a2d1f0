package content

import (
	"context"

	domain "github.com/khoahotran/portfolio-api/internal/domain/content"
	"github.com/khoahotran/portfolio-api/internal/domain/profile"
)

func (s *Store) Hero() profile.HeroContent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.Hero.Clone()
}

func (s *Store) UpdateHero(ctx context.Context, patch profile.HeroPatch) profile.HeroContent {
	ctx, span := tracer.Start(ctx, "UpdateHero")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	hero := s.data.Hero.Clone()
	patch.Apply(&hero)
	s.data.Hero = hero
	s.persist(ctx, domain.KeyHero, s.data.Hero)
	s.committed(domain.EventReplaced, domain.CollectionHero, "", s.nowMillis())
	return hero.Clone()
}

func (s *Store) SocialLinks() profile.SocialLinks {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.SocialLinks
}

func (s *Store) UpdateSocialLinks(ctx context.Context, patch profile.SocialLinksPatch) profile.SocialLinks {
	ctx, span := tracer.Start(ctx, "UpdateSocialLinks")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	patch.Apply(&s.data.SocialLinks)
	s.persist(ctx, domain.KeySocialLinks, s.data.SocialLinks)
	s.committed(domain.EventReplaced, domain.CollectionSocialLinks, "", s.nowMillis())
	return s.data.SocialLinks
}

func (s *Store) Skills() profile.Skills {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.Skills.Clone()
}

// UpdateSkills replaces each list set in patch. Lists are never merged
// element-wise.
func (s *Store) UpdateSkills(ctx context.Context, patch profile.SkillsPatch) profile.Skills {
	ctx, span := tracer.Start(ctx, "UpdateSkills")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	skills := s.data.Skills.Clone()
	patch.Apply(&skills)
	s.data.Skills = skills
	s.persist(ctx, domain.KeySkills, s.data.Skills)
	s.committed(domain.EventReplaced, domain.CollectionSkills, "", s.nowMillis())
	return skills.Clone()
}

func (s *Store) AboutStats() []profile.AboutStat {
	s.mu.Lock()
	defer s.mu.Unlock()
	return profile.CloneAboutStats(s.data.AboutStats)
}

// UpdateAboutStats replaces the whole sequence; stats carry no identity to
// merge on.
func (s *Store) UpdateAboutStats(ctx context.Context, stats []profile.AboutStat) []profile.AboutStat {
	ctx, span := tracer.Start(ctx, "UpdateAboutStats")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.data.AboutStats = profile.CloneAboutStats(stats)
	s.persist(ctx, domain.KeyAboutStats, s.data.AboutStats)
	s.committed(domain.EventReplaced, domain.CollectionAboutStats, "", s.nowMillis())
	return profile.CloneAboutStats(s.data.AboutStats)
}
