package domain

import "time"

type GalleryEvent struct {
	ID          string
	Title       string
	Description string
	EventDate   time.Time
	Photos      []Photo
	CreatedAt   time.Time
}

type Photo struct {
	ID        string
	EventID   string
	URL       string
	Caption   string
	CreatedAt time.Time
}
