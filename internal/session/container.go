package session

import (
	"context"

	"github.com/saulo-duarte/quizzy/internal/catalog"
	"github.com/saulo-duarte/quizzy/internal/timer"
)

type SessionContainer struct {
	Repo     catalog.CatalogRepository
	Settings Settings
}

func NewSessionContainer(repo catalog.CatalogRepository, settings Settings) *SessionContainer {
	return &SessionContainer{
		Repo:     repo,
		Settings: settings,
	}
}

func (c *SessionContainer) Open(ctx context.Context, scheduler timer.Scheduler, opts ...Option) Session {
	return NewSession(ctx, c.Repo, scheduler, c.Settings, opts...)
}
