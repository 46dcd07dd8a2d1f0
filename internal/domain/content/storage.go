package content

import (
	"context"
	"errors"
)

// Storage keys. The layout is one JSON value per collection or singleton plus
// the schema-version marker.
const (
	KeyProjects     = "portfolio_projects"
	KeyHero         = "portfolio_hero"
	KeySkills       = "portfolio_skills"
	KeyExperience   = "portfolio_experience"
	KeyAchievements = "portfolio_achievements"
	KeySocialLinks  = "portfolio_social"
	KeyAboutStats   = "portfolio_about_stats"
	KeyVersion      = "portfolio_version"
)

// DataKeys lists every key except the version marker.
func DataKeys() []string {
	return []string{
		KeyProjects,
		KeyHero,
		KeySkills,
		KeyExperience,
		KeyAchievements,
		KeySocialLinks,
		KeyAboutStats,
	}
}

var ErrKeyNotFound = errors.New("content key not found")

// Storage is the durable backing copy of the content store: a flat string
// key/value space. Get returns ErrKeyNotFound for absent keys.
type Storage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Collection names used in events and metrics.
const (
	CollectionProjects     = "projects"
	CollectionExperience   = "experience"
	CollectionAchievements = "achievements"
	CollectionHero         = "hero"
	CollectionSocialLinks  = "social_links"
	CollectionSkills       = "skills"
	CollectionAboutStats   = "about_stats"
	CollectionAll          = "all"
)
