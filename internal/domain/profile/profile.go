// Package profile holds the singleton content of the site: hero text, social
// links, skills and the about-section statistics. None of these carry an id.
package profile

type HeroContent struct {
	Name        string   `json:"name"`
	Roles       []string `json:"roles"`
	Description string   `json:"description"`
}

type HeroPatch struct {
	Name        *string   `json:"name"`
	Roles       *[]string `json:"roles"`
	Description *string   `json:"description"`
}

func (h HeroContent) Clone() HeroContent {
	h.Roles = cloneStrings(h.Roles)
	return h
}

func (patch HeroPatch) Apply(h *HeroContent) {
	if patch.Name != nil {
		h.Name = *patch.Name
	}
	if patch.Roles != nil {
		h.Roles = cloneStrings(*patch.Roles)
	}
	if patch.Description != nil {
		h.Description = *patch.Description
	}
}

type SocialLinks struct {
	Github   string `json:"github"`
	Linkedin string `json:"linkedin"`
	Email    string `json:"email"`
	Twitter  string `json:"twitter,omitempty"`
	Website  string `json:"website,omitempty"`
}

type SocialLinksPatch struct {
	Github   *string `json:"github"`
	Linkedin *string `json:"linkedin"`
	Email    *string `json:"email"`
	Twitter  *string `json:"twitter"`
	Website  *string `json:"website"`
}

func (patch SocialLinksPatch) Apply(s *SocialLinks) {
	if patch.Github != nil {
		s.Github = *patch.Github
	}
	if patch.Linkedin != nil {
		s.Linkedin = *patch.Linkedin
	}
	if patch.Email != nil {
		s.Email = *patch.Email
	}
	if patch.Twitter != nil {
		s.Twitter = *patch.Twitter
	}
	if patch.Website != nil {
		s.Website = *patch.Website
	}
}

type Skills struct {
	Languages  []string `json:"languages"`
	Frameworks []string `json:"frameworks"`
	Tools      []string `json:"tools"`
	Concepts   []string `json:"concepts"`
}

type SkillsPatch struct {
	Languages  *[]string `json:"languages"`
	Frameworks *[]string `json:"frameworks"`
	Tools      *[]string `json:"tools"`
	Concepts   *[]string `json:"concepts"`
}

func (s Skills) Clone() Skills {
	return Skills{
		Languages:  cloneStrings(s.Languages),
		Frameworks: cloneStrings(s.Frameworks),
		Tools:      cloneStrings(s.Tools),
		Concepts:   cloneStrings(s.Concepts),
	}
}

func (patch SkillsPatch) Apply(s *Skills) {
	if patch.Languages != nil {
		s.Languages = cloneStrings(*patch.Languages)
	}
	if patch.Frameworks != nil {
		s.Frameworks = cloneStrings(*patch.Frameworks)
	}
	if patch.Tools != nil {
		s.Tools = cloneStrings(*patch.Tools)
	}
	if patch.Concepts != nil {
		s.Concepts = cloneStrings(*patch.Concepts)
	}
}

type AboutStat struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

func CloneAboutStats(stats []AboutStat) []AboutStat {
	if stats == nil {
		return []AboutStat{}
	}
	return append([]AboutStat{}, stats...)
}

func cloneStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	return append([]string{}, in...)
}
