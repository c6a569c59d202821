package repository

import (
	"context"

	"github.com/bagdasarian/staff-portal/internal/domain"
)

type GalleryRepository interface {
	CreateEvent(ctx context.Context, event *domain.GalleryEvent) error
	GetEvent(ctx context.Context, id string) (*domain.GalleryEvent, error)
	ListEvents(ctx context.Context) ([]*domain.GalleryEvent, error)
	AddPhoto(ctx context.Context, photo *domain.Photo) error
}
