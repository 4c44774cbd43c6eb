package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"go.yaml.in/yaml/v3"
)

//go:embed data/quizzes.yaml
var defaultCatalog []byte

func Decode(r io.Reader) ([]Quiz, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %w", ErrMalformedCatalog, ErrEmptyCatalog)
		}
		return nil, fmt.Errorf("%w: decode yaml: %w", ErrMalformedCatalog, err)
	}
	return doc.Quizzes, nil
}

func Load(r io.Reader) (CatalogRepository, error) {
	quizzes, err := Decode(r)
	if err != nil {
		return nil, err
	}
	return NewRepository(quizzes)
}

func LoadFile(path string) (CatalogRepository, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog %s: %w", path, err)
	}
	defer f.Close()
	return Load(f)
}

func LoadDefault() (CatalogRepository, error) {
	return Load(bytes.NewReader(defaultCatalog))
}
