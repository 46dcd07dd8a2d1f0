package feed

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/portfolio-api/internal/domain/project"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

type staticProjects []project.Project

func (s staticProjects) Projects() []project.Project { return s }

func TestFeedUseCase_Execute(t *testing.T) {
	projects := staticProjects{
		{ID: "p1", Title: "Demo", Description: "has demo", Demo: "https://demo.example.com", Github: "https://github.com/x/demo", CreatedAt: 1000, UpdatedAt: 5000},
		{ID: "p2", Title: "Repo", Description: "repo only", Github: "https://github.com/x/repo", CreatedAt: 1000, UpdatedAt: 2000},
		{ID: "p3", Title: "Bare", Description: "no links", CreatedAt: 1000, UpdatedAt: 1000},
	}
	uc := NewFeedUseCase(projects, Site{Title: "Portfolio", BaseURL: "https://me.example.com/", Author: "Me"}, logger.NewNopLogger())

	feed, err := uc.Execute(context.Background())
	require.NoError(t, err)

	require.Len(t, feed.Items, 3)
	assert.Equal(t, "https://demo.example.com", feed.Items[0].Link.Href)
	assert.Equal(t, "https://github.com/x/repo", feed.Items[1].Link.Href)
	assert.Equal(t, "https://me.example.com/#projects", feed.Items[2].Link.Href)
	assert.Equal(t, int64(5000), feed.Created.UnixMilli())

	rss, err := feed.ToRss()
	require.NoError(t, err)
	assert.True(t, strings.Contains(rss, "<title>Demo</title>"))
}

func TestFeedUseCase_Empty(t *testing.T) {
	uc := NewFeedUseCase(staticProjects{}, Site{Title: "Portfolio"}, logger.NewNopLogger())

	feed, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Empty(t, feed.Items)
}
