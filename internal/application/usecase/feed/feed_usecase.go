package feed

import (
	"context"
	"strings"
	"time"

	"github.com/gorilla/feeds"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-api/internal/domain/project"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

type ProjectSource interface {
	Projects() []project.Project
}

type Site struct {
	Title   string
	BaseURL string
	Author  string
}

type FeedUseCase struct {
	projects ProjectSource
	site     Site
	logger   logger.Logger
}

func NewFeedUseCase(projects ProjectSource, site Site, log logger.Logger) *FeedUseCase {
	return &FeedUseCase{
		projects: projects,
		site:     site,
		logger:   log,
	}
}

// Execute builds a feed of all projects in display order.
func (uc *FeedUseCase) Execute(ctx context.Context) (*feeds.Feed, error) {
	base := strings.TrimRight(uc.site.BaseURL, "/")
	feed := &feeds.Feed{
		Title:       uc.site.Title,
		Link:        &feeds.Link{Href: base},
		Description: "Projects by " + uc.site.Author,
		Author:      &feeds.Author{Name: uc.site.Author},
	}

	projects := uc.projects.Projects()
	var latest int64
	feedItems := make([]*feeds.Item, 0, len(projects))
	for _, p := range projects {
		feedItems = append(feedItems, &feeds.Item{
			Id:          p.ID,
			Title:       p.Title,
			Link:        &feeds.Link{Href: projectLink(p, base)},
			Description: p.Description,
			Created:     time.UnixMilli(p.CreatedAt).UTC(),
			Updated:     time.UnixMilli(p.UpdatedAt).UTC(),
		})
		if p.UpdatedAt > latest {
			latest = p.UpdatedAt
		}
	}
	feed.Items = feedItems
	feed.Created = time.UnixMilli(latest).UTC()

	uc.logger.Debug("Project feed generated", zap.Int("item_count", len(feed.Items)))
	return feed, nil
}

// projectLink prefers the live demo, then the repository, then the site's
// projects section.
func projectLink(p project.Project, base string) string {
	switch {
	case p.Demo != "":
		return p.Demo
	case p.Github != "":
		return p.Github
	}
	return base + "/#projects"
}
