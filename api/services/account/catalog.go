package accountservice

import (
	"context"
	"fmt"
	"os"
	"strings"

	"tourneyhub/pkg/database/models"

	"gopkg.in/yaml.v3"
)

// CatalogGame is a game entry of the catalog file.
type CatalogGame struct {
	Name         string  `yaml:"name"`
	APIAvailable bool    `yaml:"apiAvailable"`
	APIEndpoint  *string `yaml:"apiEndpoint"`
}

// Catalog is the games catalog file.
type Catalog struct {
	Games []CatalogGame `yaml:"games"`
}

// LoadCatalog reads a games catalog file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("couldn't read the games catalog: %w", err)
	}

	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("couldn't parse the games catalog %s: %w", path, err)
	}

	for i, game := range catalog.Games {
		if strings.TrimSpace(game.Name) == "" {
			return nil, fmt.Errorf("games catalog entry %d has no name", i)
		}
	}

	return &catalog, nil
}

// SeedGames makes sure every catalog game exists with its integration values.
// Games created by users are left untouched.
func (as *AccountService) SeedGames(ctx context.Context, catalog *Catalog) error {
	for _, entry := range catalog.Games {
		game := &models.Game{
			Name:         strings.TrimSpace(entry.Name),
			APIAvailable: entry.APIAvailable,
			APIEndpoint:  entry.APIEndpoint,
		}

		if err := as.GameRepository.UpsertGameByName(ctx, game); err != nil {
			return err
		}
	}

	as.logger.Infof("games catalog seeded with %d games", len(catalog.Games))
	return nil
}
