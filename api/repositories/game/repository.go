package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tourneyhub/pkg/apperrors"
	"tourneyhub/pkg/database/models"

	"gorm.io/gorm"
)

// GameRepository is the public interface for accessing the game catalog.
type GameRepository interface {
	ListGames(ctx context.Context) ([]models.Game, error)
	GetGameById(ctx context.Context, gameId uint) (*models.Game, error)
	CreateGame(ctx context.Context, game *models.Game) error
	DeleteGame(ctx context.Context, gameId uint) error
	UpsertGameByName(ctx context.Context, game *models.Game) error
}

// gameRepository repository structure.
type gameRepository struct {
	db *gorm.DB
}

// NewGameRepository creates a game repository.
func NewGameRepository(db *gorm.DB) GameRepository {
	return &gameRepository{db: db}
}

// ListGames returns every game ordered by name.
func (gr *gameRepository) ListGames(ctx context.Context) ([]models.Game, error) {
	var games []models.Game
	if err := gr.db.WithContext(ctx).Order("name").Find(&games).Error; err != nil {
		return nil, fmt.Errorf("couldn't list the games: %w", err)
	}
	return games, nil
}

// GetGameById returns a game or apperrors.ErrNotFound.
func (gr *gameRepository) GetGameById(ctx context.Context, gameId uint) (*models.Game, error) {
	var game models.Game
	err := gr.db.WithContext(ctx).First(&game, gameId).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: game %d", apperrors.ErrNotFound, gameId)
	}
	if err != nil {
		return nil, fmt.Errorf("couldn't get game %d: %w", gameId, err)
	}
	return &game, nil
}

// CreateGame inserts a game, names are unique ignoring case.
func (gr *gameRepository) CreateGame(ctx context.Context, game *models.Game) error {
	err := gr.db.WithContext(ctx).Create(game).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %s", apperrors.ErrGameExists, game.Name)
	}
	if err != nil {
		return fmt.Errorf("couldn't create game %s: %w", game.Name, err)
	}
	return nil
}

// DeleteGame removes a game without linked accounts.
func (gr *gameRepository) DeleteGame(ctx context.Context, gameId uint) error {
	return gr.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var linked int64
		if err := tx.Model(&models.LinkedAccount{}).Where("game_id = ?", gameId).Count(&linked).Error; err != nil {
			return fmt.Errorf("couldn't count the accounts of game %d: %w", gameId, err)
		}

		if linked > 0 {
			return fmt.Errorf("%w: %d accounts", apperrors.ErrGameInUse, linked)
		}

		result := tx.Delete(&models.Game{}, gameId)
		if result.Error != nil {
			return fmt.Errorf("couldn't delete game %d: %w", gameId, result.Error)
		}

		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: game %d", apperrors.ErrNotFound, gameId)
		}

		return nil
	})
}

// UpsertGameByName creates the game or updates its integration values.
func (gr *gameRepository) UpsertGameByName(ctx context.Context, game *models.Game) error {
	var existing models.Game
	err := gr.db.WithContext(ctx).Where("LOWER(name) = ?", strings.ToLower(game.Name)).First(&existing).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return gr.CreateGame(ctx, game)
	}
	if err != nil {
		return fmt.Errorf("couldn't get game %s: %w", game.Name, err)
	}

	err = gr.db.WithContext(ctx).Model(&existing).Updates(map[string]any{
		"api_available": game.APIAvailable,
		"api_endpoint":  game.APIEndpoint,
	}).Error
	if err != nil {
		return fmt.Errorf("couldn't update game %s: %w", game.Name, err)
	}

	existing.APIAvailable = game.APIAvailable
	existing.APIEndpoint = game.APIEndpoint
	*game = existing
	return nil
}
