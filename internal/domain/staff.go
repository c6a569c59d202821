package domain

import "time"

type StaffMember struct {
	ID        string
	FullName  string
	Email     string
	Phone     string
	Position  string
	IsActive  bool
	Divisions []string
	CreatedAt time.Time
	UpdatedAt *time.Time
}

type Division struct {
	ID        string
	Name      string
	Members   []DivisionMember
	CreatedAt time.Time
	UpdatedAt *time.Time
}

type DivisionMember struct {
	StaffID  string
	FullName string
	Email    string
	Role     string
	IsActive bool
}

type StaffFilter struct {
	Search     string
	ActiveOnly bool
}
