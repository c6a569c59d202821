package domain

import "fmt"

type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// Это позволяет использовать errors.Is()
func (e *DomainError) Is(target error) bool {
	if t, ok := target.(*DomainError); ok {
		return e.Code == t.Code
	}
	return false
}

const (
	CodeNotFound           = "NOT_FOUND"
	CodeBadRequest         = "BAD_REQUEST"
	CodeTicketClosed       = "TICKET_CLOSED"
	CodeNotAssigned        = "NOT_ASSIGNED"
	CodeNoCandidate        = "NO_CANDIDATE"
	CodeDivisionExists     = "DIVISION_EXISTS"
	CodeStaffExists        = "STAFF_EXISTS"
	CodeInvalidLane        = "INVALID_LANE"
	CodeInvalidTransition  = "INVALID_TRANSITION"
	CodeStorageUnavailable = "STORAGE_UNAVAILABLE"
	CodeUnitExists         = "UNIT_EXISTS"
)

var (
	// ErrDivisionExists - подразделение уже существует
	ErrDivisionExists = &DomainError{
		Code:    CodeDivisionExists,
		Message: "division name already exists",
	}

	// ErrStaffExists - сотрудник с таким email уже есть
	ErrStaffExists = &DomainError{
		Code:    CodeStaffExists,
		Message: "staff member with this email already exists",
	}

	// ErrTicketClosed - закрытую заявку нельзя менять
	ErrTicketClosed = &DomainError{
		Code:    CodeTicketClosed,
		Message: "cannot modify a closed ticket",
	}

	// ErrNotAssigned - у заявки нет исполнителя
	ErrNotAssigned = &DomainError{
		Code:    CodeNotAssigned,
		Message: "ticket has no assignee",
	}

	// ErrNoCandidate - нет доступных кандидатов для замены
	ErrNoCandidate = &DomainError{
		Code:    CodeNoCandidate,
		Message: "no active replacement candidate in division",
	}

	ErrInvalidLane = &DomainError{
		Code:    CodeInvalidLane,
		Message: "unknown lane",
	}

	ErrInvalidTransition = &DomainError{
		Code:    CodeInvalidTransition,
		Message: "status transition is not allowed",
	}

	ErrStorageUnavailable = &DomainError{
		Code:    CodeStorageUnavailable,
		Message: "unit storage is unavailable",
	}

	ErrUnitExists = &DomainError{
		Code:    CodeUnitExists,
		Message: "unit with this name already exists",
	}

	// ErrNotFound - ресурс не найден
	ErrNotFound = &DomainError{
		Code:    CodeNotFound,
		Message: "resource not found",
	}

	ErrBadRequest = &DomainError{
		Code:    CodeBadRequest,
		Message: "bad request",
	}
)

// NewNotFoundError создает ошибку NOT_FOUND с дополнительным контекстом
func NewNotFoundError(resource string) *DomainError {
	return &DomainError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

// NewBadRequestError создает ошибку BAD_REQUEST с пояснением
func NewBadRequestError(format string, args ...any) *DomainError {
	return &DomainError{
		Code:    CodeBadRequest,
		Message: fmt.Sprintf(format, args...),
	}
}
