package container

import (
	"context"
	"fmt"
	"os"

	"github.com/saulo-duarte/quizzy/internal/catalog"
	"github.com/saulo-duarte/quizzy/internal/config"
	"github.com/saulo-duarte/quizzy/internal/preference"
	"github.com/saulo-duarte/quizzy/internal/session"
	util "github.com/saulo-duarte/quizzy/internal/utils"
	"gorm.io/gorm"
)

type Container struct {
	Settings            *config.Settings
	CatalogContainer    *catalog.CatalogContainer
	PreferenceContainer *preference.PreferenceContainer
	SessionContainer    *session.SessionContainer
}

// New wires every feature container. The database is only touched when a
// DSN is configured; otherwise preferences live in a local file.
func New(ctx context.Context, settings *config.Settings) (*Container, error) {
	config.InitWith(settings.LogLevel, settings.LogFormat, os.Stderr)
	log := config.WithContext(ctx)

	if err := util.SetLocation(settings.Timezone); err != nil {
		log.WithError(err).Warnf("Fuso horário %q inválido, usando horário local", settings.Timezone)
	}

	catalogContainer, err := catalog.NewCatalogContainer(settings.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	var db *gorm.DB
	if settings.DatabaseDSN != "" {
		if err := config.Connect(ctx, settings.DatabaseDSN); err != nil {
			return nil, err
		}
		db = config.DB
	}

	preferenceContainer, err := preference.NewPreferenceContainer(db, settings.PreferencesPath)
	if err != nil {
		return nil, fmt.Errorf("init preferences: %w", err)
	}

	sessionContainer := session.NewSessionContainer(catalogContainer.Repo, session.Settings{
		DarkMode:    preferenceContainer.Service.DarkMode(ctx),
		RevealDelay: settings.RevealDelay,
	})

	log.WithField("quizzes", catalogContainer.Repo.Count()).Debug("Container inicializado")

	return &Container{
		Settings:            settings,
		CatalogContainer:    catalogContainer,
		PreferenceContainer: preferenceContainer,
		SessionContainer:    sessionContainer,
	}, nil
}
