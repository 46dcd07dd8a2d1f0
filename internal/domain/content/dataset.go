package content

import (
	"github.com/khoahotran/portfolio-api/internal/domain/achievement"
	"github.com/khoahotran/portfolio-api/internal/domain/experience"
	"github.com/khoahotran/portfolio-api/internal/domain/profile"
	"github.com/khoahotran/portfolio-api/internal/domain/project"
)

// Dataset is every piece of site content at one point in time. Its JSON form
// is also the format of the bundled defaults, so an export can be committed
// back as new defaults.
type Dataset struct {
	Projects     []project.Project         `json:"projects"`
	Hero         profile.HeroContent       `json:"heroContent"`
	SocialLinks  profile.SocialLinks       `json:"socialLinks"`
	AboutStats   []profile.AboutStat       `json:"aboutStats"`
	Skills       profile.Skills            `json:"skills"`
	Experience   []experience.Experience   `json:"experience"`
	Achievements []achievement.Achievement `json:"achievements"`
}

func (d Dataset) Clone() Dataset {
	out := Dataset{
		Projects:     make([]project.Project, len(d.Projects)),
		Hero:         d.Hero.Clone(),
		SocialLinks:  d.SocialLinks,
		AboutStats:   profile.CloneAboutStats(d.AboutStats),
		Skills:       d.Skills.Clone(),
		Experience:   make([]experience.Experience, len(d.Experience)),
		Achievements: make([]achievement.Achievement, len(d.Achievements)),
	}
	for i, p := range d.Projects {
		out.Projects[i] = p.Clone()
	}
	copy(out.Experience, d.Experience)
	copy(out.Achievements, d.Achievements)
	return out
}
