package content

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/khoahotran/portfolio-api/internal/domain/achievement"
	"github.com/khoahotran/portfolio-api/internal/domain/experience"
	"github.com/khoahotran/portfolio-api/internal/domain/profile"
	"github.com/khoahotran/portfolio-api/internal/domain/project"
)

// CurrentVersion must be bumped whenever defaults.json changes in a way that
// should replace what visitors' stores already hold.
const CurrentVersion = "1.2.3"

//go:embed defaults.json
var defaultsJSON []byte

// bundle is defaults.json as written: list entities stay raw because they go
// through the same migration chain as stored data.
type bundle struct {
	Projects     json.RawMessage     `json:"projects"`
	Hero         profile.HeroContent `json:"heroContent"`
	SocialLinks  profile.SocialLinks `json:"socialLinks"`
	AboutStats   []profile.AboutStat `json:"aboutStats"`
	Skills       profile.Skills      `json:"skills"`
	Experience   json.RawMessage     `json:"experience"`
	Achievements json.RawMessage     `json:"achievements"`
}

var (
	parsedOnce    sync.Once
	parsedBundle  bundle
	parsedBundleE error
)

func loadBundle() (bundle, error) {
	parsedOnce.Do(func() {
		parsedBundleE = json.Unmarshal(defaultsJSON, &parsedBundle)
	})
	return parsedBundle, parsedBundleE
}

// Defaults is the bundled dataset with list entities converted as if freshly
// created at now. Every call returns fresh copies.
func Defaults(now int64) Dataset {
	b, err := loadBundle()
	if err != nil {
		panic(fmt.Sprintf("content: bundled defaults are invalid: %v", err))
	}
	return Dataset{
		Projects:     DefaultProjects(now),
		Hero:         b.Hero.Clone(),
		SocialLinks:  b.SocialLinks,
		AboutStats:   profile.CloneAboutStats(b.AboutStats),
		Skills:       b.Skills.Clone(),
		Experience:   DefaultExperience(now),
		Achievements: DefaultAchievements(now),
	}
}

func DefaultProjects(now int64) []project.Project {
	b, _ := loadBundle()
	return mustMigrate(ProjectMigration, b.Projects, now)
}

func DefaultExperience(now int64) []experience.Experience {
	b, _ := loadBundle()
	return mustMigrate(ExperienceMigration, b.Experience, now)
}

func DefaultAchievements(now int64) []achievement.Achievement {
	b, _ := loadBundle()
	return mustMigrate(AchievementMigration, b.Achievements, now)
}

func DefaultHero() profile.HeroContent {
	b, _ := loadBundle()
	return b.Hero.Clone()
}

func DefaultSocialLinks() profile.SocialLinks {
	b, _ := loadBundle()
	return b.SocialLinks
}

func DefaultSkills() profile.Skills {
	b, _ := loadBundle()
	return b.Skills.Clone()
}

func DefaultAboutStats() []profile.AboutStat {
	b, _ := loadBundle()
	return profile.CloneAboutStats(b.AboutStats)
}

func mustMigrate[T any](m Migration[T], raw json.RawMessage, now int64) []T {
	out, err := m.Run(raw, now)
	if err != nil {
		panic(fmt.Sprintf("content: bundled defaults do not migrate: %v", err))
	}
	return out
}
