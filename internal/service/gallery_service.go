package service

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/bagdasarian/staff-portal/internal/domain"
	"github.com/bagdasarian/staff-portal/internal/events"
	"github.com/bagdasarian/staff-portal/internal/repository"
	"github.com/google/uuid"
)

const entityGallery = "gallery_event"

type GalleryService interface {
	CreateEvent(ctx context.Context, event *domain.GalleryEvent) (*domain.GalleryEvent, error)
	ListEvents(ctx context.Context) ([]*domain.GalleryEvent, error)
	AddPhoto(ctx context.Context, photo *domain.Photo) (*domain.Photo, error)
}

type galleryService struct {
	galleryRepo repository.GalleryRepository
	publisher   events.Publisher
}

func NewGalleryService(galleryRepo repository.GalleryRepository, publisher events.Publisher) GalleryService {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &galleryService{galleryRepo: galleryRepo, publisher: publisher}
}

func (s *galleryService) CreateEvent(ctx context.Context, event *domain.GalleryEvent) (*domain.GalleryEvent, error) {
	event.Title = strings.TrimSpace(event.Title)
	if event.Title == "" {
		return nil, domain.NewBadRequestError("event title is required")
	}
	if event.EventDate.IsZero() {
		return nil, domain.NewBadRequestError("event_date is required")
	}

	event.ID = uuid.NewString()
	event.CreatedAt = time.Now()
	event.Photos = []domain.Photo{}

	if err := s.galleryRepo.CreateEvent(ctx, event); err != nil {
		return nil, err
	}

	s.publisher.Publish(events.Event{Kind: events.KindCreated, Entity: entityGallery, ID: event.ID})
	return event, nil
}

func (s *galleryService) ListEvents(ctx context.Context) ([]*domain.GalleryEvent, error) {
	return s.galleryRepo.ListEvents(ctx)
}

// AddPhoto принимает только абсолютные http(s) ссылки
func (s *galleryService) AddPhoto(ctx context.Context, photo *domain.Photo) (*domain.Photo, error) {
	u, err := url.Parse(photo.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, domain.NewBadRequestError("invalid photo url %q", photo.URL)
	}

	if _, err := s.galleryRepo.GetEvent(ctx, photo.EventID); err != nil {
		return nil, mapNotFound(err, "gallery event with id "+photo.EventID)
	}

	photo.ID = uuid.NewString()
	photo.CreatedAt = time.Now()

	if err := s.galleryRepo.AddPhoto(ctx, photo); err != nil {
		return nil, err
	}

	s.publisher.Publish(events.Event{Kind: events.KindUpdated, Entity: entityGallery, ID: photo.EventID})
	return photo, nil
}
