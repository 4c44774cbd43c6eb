package preference

import (
	"context"
	"encoding/json"

	"github.com/saulo-duarte/quizzy/internal/config"
)

const DarkModeKey = "quizzy-dark-mode"

type PreferenceService interface {
	DarkMode(ctx context.Context) bool
	SetDarkMode(ctx context.Context, dark bool) error
	ToggleDarkMode(ctx context.Context) (bool, error)
}

type preferenceService struct {
	store Store
}

func NewService(store Store) PreferenceService {
	return &preferenceService{store: store}
}

// DarkMode never fails: anything unreadable degrades to light mode.
func (s *preferenceService) DarkMode(ctx context.Context) bool {
	log := config.WithContext(ctx).WithField("key", DarkModeKey)

	raw, found, err := s.store.Get(ctx, DarkModeKey)
	if err != nil {
		log.WithError(err).Warn("Falha ao ler preferência, usando padrão")
		return false
	}
	if !found {
		return false
	}

	var dark bool
	if err := json.Unmarshal(raw, &dark); err != nil {
		log.WithError(err).Warn("Preferência com valor inválido, usando padrão")
		return false
	}
	return dark
}

func (s *preferenceService) SetDarkMode(ctx context.Context, dark bool) error {
	raw, err := json.Marshal(dark)
	if err != nil {
		return err
	}
	if err := s.store.Set(ctx, DarkModeKey, raw); err != nil {
		config.WithContext(ctx).WithError(err).Error("Falha ao gravar preferência")
		return err
	}
	return nil
}

func (s *preferenceService) ToggleDarkMode(ctx context.Context) (bool, error) {
	next := !s.DarkMode(ctx)
	if err := s.SetDarkMode(ctx, next); err != nil {
		return !next, err
	}
	return next, nil
}
