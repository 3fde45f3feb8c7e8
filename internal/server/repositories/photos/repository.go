package photos

import (
	"context"

	"github.com/dmitrijs2005/photodrop/internal/server/models"
)

type Repository interface {
	Insert(ctx context.Context, photo *models.Photo) error
	ListByUser(ctx context.Context, userID string) ([]*models.Photo, error)
}
