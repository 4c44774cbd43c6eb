package preference

import (
	"gorm.io/gorm"
)

type PreferenceContainer struct {
	Store   Store
	Service PreferenceService
}

// NewPreferenceContainer uses the database when db is non-nil and the JSON
// file at path otherwise.
func NewPreferenceContainer(db *gorm.DB, path string) (*PreferenceContainer, error) {
	var store Store
	if db != nil {
		s, err := NewGormStore(db)
		if err != nil {
			return nil, err
		}
		store = s
	} else {
		store = NewFileStore(path)
	}

	return &PreferenceContainer{
		Store:   store,
		Service: NewService(store),
	}, nil
}
