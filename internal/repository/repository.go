package repository

import "errors"

// ErrNotFound возвращается репозиториями, когда запись отсутствует.
var ErrNotFound = errors.New("record not found")

// ErrConflict нарушение уникальности.
var ErrConflict = errors.New("record already exists")
