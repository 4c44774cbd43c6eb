package catalog

type CatalogContainer struct {
	Repo CatalogRepository
}

// NewCatalogContainer loads the embedded catalog when path is empty.
func NewCatalogContainer(path string) (*CatalogContainer, error) {
	var (
		repo CatalogRepository
		err  error
	)
	if path == "" {
		repo, err = LoadDefault()
	} else {
		repo, err = LoadFile(path)
	}
	if err != nil {
		return nil, err
	}

	return &CatalogContainer{
		Repo: repo,
	}, nil
}
