package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/olehluchkiv/goextdefs/internal/catalogue"
)

// ReadCatalogue reads an external catalogue file. JSON is accepted as a
// subset of YAML.
func ReadCatalogue(path string) (catalogue.Catalogue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading catalogue: %w", ErrInvalid, err)
	}
	var c catalogue.Catalogue
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("%w: parsing catalogue %s: %w", ErrInvalid, path, err)
	}
	for module, defs := range c {
		for _, d := range defs {
			if d.Name == "" {
				return nil, fmt.Errorf("%w: catalogue %s: module %s: definition without a name", ErrInvalid, path, module)
			}
			for _, e := range d.Extensions {
				if !e.Kind.Valid() {
					return nil, fmt.Errorf("%w: catalogue %s: %s: unknown kind %q", ErrInvalid, path, d.Name, e.Kind)
				}
			}
		}
	}
	return c, nil
}
