package postgres

import (
	"context"
	"database/sql"

	"github.com/bagdasarian/staff-portal/internal/domain"
)

type galleryRepository struct {
	executor DBExecutor
}

func NewGalleryRepository(db *sql.DB) *galleryRepository {
	return &galleryRepository{executor: db}
}

func (r *galleryRepository) CreateEvent(ctx context.Context, event *domain.GalleryEvent) error {
	query := `
		INSERT INTO gallery_events (id, title, description, event_date, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`
	err := r.executor.QueryRowContext(ctx, query,
		event.ID, event.Title, event.Description, event.EventDate, event.CreatedAt,
	).Scan(&event.CreatedAt)
	return mapError(err)
}

func (r *galleryRepository) GetEvent(ctx context.Context, id string) (*domain.GalleryEvent, error) {
	query := `
		SELECT id, title, description, event_date, created_at
		FROM gallery_events
		WHERE id = $1
	`
	event := &domain.GalleryEvent{}
	err := r.executor.QueryRowContext(ctx, query, id).Scan(
		&event.ID, &event.Title, &event.Description, &event.EventDate, &event.CreatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}

	photos, err := r.photos(ctx, `WHERE event_id = $1`, id)
	if err != nil {
		return nil, err
	}
	event.Photos = photos[id]
	if event.Photos == nil {
		event.Photos = []domain.Photo{}
	}
	return event, nil
}

func (r *galleryRepository) ListEvents(ctx context.Context) ([]*domain.GalleryEvent, error) {
	query := `
		SELECT id, title, description, event_date, created_at
		FROM gallery_events
		ORDER BY event_date DESC
	`
	rows, err := r.executor.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*domain.GalleryEvent, 0)
	for rows.Next() {
		event := &domain.GalleryEvent{}
		if err := rows.Scan(&event.ID, &event.Title, &event.Description, &event.EventDate, &event.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	photos, err := r.photos(ctx, ``)
	if err != nil {
		return nil, err
	}
	for _, event := range events {
		event.Photos = photos[event.ID]
		if event.Photos == nil {
			event.Photos = []domain.Photo{}
		}
	}

	return events, nil
}

func (r *galleryRepository) AddPhoto(ctx context.Context, photo *domain.Photo) error {
	query := `
		INSERT INTO gallery_photos (id, event_id, url, caption, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`
	err := r.executor.QueryRowContext(ctx, query,
		photo.ID, photo.EventID, photo.URL, photo.Caption, photo.CreatedAt,
	).Scan(&photo.CreatedAt)
	return mapError(err)
}

func (r *galleryRepository) photos(ctx context.Context, where string, args ...any) (map[string][]domain.Photo, error) {
	query := `SELECT id, event_id, url, caption, created_at FROM gallery_photos ` + where + ` ORDER BY created_at`

	rows, err := r.executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byEvent := make(map[string][]domain.Photo)
	for rows.Next() {
		var p domain.Photo
		if err := rows.Scan(&p.ID, &p.EventID, &p.URL, &p.Caption, &p.CreatedAt); err != nil {
			return nil, err
		}
		byEvent[p.EventID] = append(byEvent[p.EventID], p)
	}

	return byEvent, rows.Err()
}
