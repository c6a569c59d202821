package domain

import "time"

type StorageMode string

const (
	StorageCloud StorageMode = "cloud"
	StorageLocal StorageMode = "local"
)

// Unit подразделение, прошедшее мастер настройки. Цели, KRA и KPI живут в CSV-таблицах папки юнита.
type Unit struct {
	ID          string
	Name        string
	FolderID    string
	StorageMode StorageMode
	Objectives  []Objective
	Tables      []string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

type Objective struct {
	ID    string
	Title string
	KRAs  []KRA
}

// KRA - Key Result Area
type KRA struct {
	ID    string
	Title string
	KPIs  []KPI
}

// KPI - Key Performance Indicator
type KPI struct {
	ID     string
	Title  string
	Target string
	Unit   string
}
