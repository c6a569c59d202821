package service

import (
	"errors"

	"github.com/bagdasarian/staff-portal/internal/domain"
	"github.com/bagdasarian/staff-portal/internal/repository"
)

// mapNotFound переводит ErrNotFound репозитория в доменную ошибку NOT_FOUND.
func mapNotFound(err error, resource string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return domain.NewNotFoundError(resource)
	}
	return err
}
