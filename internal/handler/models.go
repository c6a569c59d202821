package handler

import "time"

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CreateTicketRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Priority    string `json:"priority"`
	ReporterID  string `json:"reporter_id"`
	DivisionID  string `json:"division_id"`
}

type TicketResponse struct {
	TicketID    string  `json:"ticket_id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Priority    string  `json:"priority"`
	Status      string  `json:"status"`
	Lane        string  `json:"lane"`
	ReporterID  string  `json:"reporter_id"`
	AssigneeID  *string `json:"assignee_id"`
	DivisionID  *string `json:"division_id"`
	CreatedAt   *string `json:"createdAt,omitempty"`
	UpdatedAt   *string `json:"updatedAt,omitempty"`
	ResolvedAt  *string `json:"resolvedAt,omitempty"`
}

type TicketEnvelope struct {
	Ticket TicketResponse `json:"ticket"`
}

type TicketListResponse struct {
	Tickets []TicketResponse `json:"tickets"`
}

type TicketLaneResponse struct {
	Name    string           `json:"name"`
	Tickets []TicketResponse `json:"tickets"`
}

type TicketBoardResponse struct {
	Lanes []TicketLaneResponse `json:"lanes"`
}

type ChangeStatusRequest struct {
	Status string `json:"status"`
}

type AssignTicketRequest struct {
	AssigneeID string `json:"assignee_id"`
}

type ReassignTicketResponse struct {
	Ticket     TicketResponse `json:"ticket"`
	ReplacedBy string         `json:"replaced_by"`
}

type StaffRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Position string `json:"position"`
	IsActive *bool  `json:"is_active"`
}

type StaffResponse struct {
	StaffID   string   `json:"staff_id"`
	FullName  string   `json:"full_name"`
	Email     string   `json:"email"`
	Phone     string   `json:"phone"`
	Position  string   `json:"position"`
	IsActive  bool     `json:"is_active"`
	Divisions []string `json:"divisions"`
}

type StaffEnvelope struct {
	Staff StaffResponse `json:"staff"`
}

type StaffListResponse struct {
	Staff []StaffResponse `json:"staff"`
}

type SetIsActiveRequest struct {
	IsActive bool `json:"is_active"`
}

type DivisionMemberRequest struct {
	StaffID string `json:"staff_id"`
	Role    string `json:"role"`
}

type DivisionRequest struct {
	DivisionName string                  `json:"division_name"`
	Members      []DivisionMemberRequest `json:"members"`
}

type DivisionMemberResponse struct {
	StaffID  string `json:"staff_id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}

type DivisionResponse struct {
	DivisionID   string                   `json:"division_id"`
	DivisionName string                   `json:"division_name"`
	Members      []DivisionMemberResponse `json:"members"`
}

type CreateDivisionResponse struct {
	Division DivisionResponse `json:"division"`
}

type ProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	OwnerID     string `json:"owner_id"`
	Status      string `json:"status"`
}

type ProjectResponse struct {
	ProjectID   string  `json:"project_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	OwnerID     string  `json:"owner_id"`
	Status      string  `json:"status"`
	CreatedAt   *string `json:"createdAt,omitempty"`
}

type ProjectEnvelope struct {
	Project ProjectResponse `json:"project"`
}

type ProjectListResponse struct {
	Projects []ProjectResponse `json:"projects"`
}

type CreateTaskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Lane        string     `json:"lane"`
	AssigneeIDs []string   `json:"assignee_ids"`
	DueAt       *time.Time `json:"due_at"`
}

type UpdateTaskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	AssigneeIDs []string   `json:"assignee_ids"`
	DueAt       *time.Time `json:"due_at"`
}

type MoveTaskRequest struct {
	Lane     string `json:"lane"`
	Position int    `json:"position"`
}

type TaskResponse struct {
	TaskID      string   `json:"task_id"`
	ProjectID   string   `json:"project_id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Lane        string   `json:"lane"`
	Position    int      `json:"position"`
	AssigneeIDs []string `json:"assignee_ids"`
	DueAt       *string  `json:"dueAt,omitempty"`
	CreatedAt   *string  `json:"createdAt,omitempty"`
	UpdatedAt   *string  `json:"updatedAt,omitempty"`
}

type TaskEnvelope struct {
	Task TaskResponse `json:"task"`
}

type BoardLaneResponse struct {
	Name  string         `json:"name"`
	Tasks []TaskResponse `json:"tasks"`
}

type BoardResponse struct {
	ProjectID string              `json:"project_id"`
	Lanes     []BoardLaneResponse `json:"lanes"`
}

type GalleryEventRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	EventDate   string `json:"event_date"`
}

type PhotoRequest struct {
	URL     string `json:"url"`
	Caption string `json:"caption"`
}

type PhotoResponse struct {
	PhotoID string `json:"photo_id"`
	EventID string `json:"event_id"`
	URL     string `json:"url"`
	Caption string `json:"caption"`
}

type GalleryEventResponse struct {
	EventID     string          `json:"event_id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	EventDate   string          `json:"event_date"`
	Photos      []PhotoResponse `json:"photos"`
}

type GalleryEventEnvelope struct {
	Event GalleryEventResponse `json:"event"`
}

type GalleryEventListResponse struct {
	Events []GalleryEventResponse `json:"events"`
}

type PhotoEnvelope struct {
	Photo PhotoResponse `json:"photo"`
}

type KPIRequest struct {
	Title  string `json:"title"`
	Target string `json:"target"`
	Unit   string `json:"unit"`
}

type KRARequest struct {
	Title string       `json:"title"`
	KPIs  []KPIRequest `json:"kpis"`
}

type ObjectiveRequest struct {
	Title string       `json:"title"`
	KRAs  []KRARequest `json:"kras"`
}

type UnitRequest struct {
	UnitName   string             `json:"unit_name"`
	Objectives []ObjectiveRequest `json:"objectives"`
}

type KPIResponse struct {
	KPIID  string `json:"kpi_id"`
	Title  string `json:"title"`
	Target string `json:"target"`
	Unit   string `json:"unit"`
}

type KRAResponse struct {
	KRAID string        `json:"kra_id"`
	Title string        `json:"title"`
	KPIs  []KPIResponse `json:"kpis"`
}

type ObjectiveResponse struct {
	ObjectiveID string        `json:"objective_id"`
	Title       string        `json:"title"`
	KRAs        []KRAResponse `json:"kras"`
}

type UnitResponse struct {
	UnitID      string              `json:"unit_id"`
	UnitName    string              `json:"unit_name"`
	FolderID    string              `json:"folder_id,omitempty"`
	StorageMode string              `json:"storage_mode"`
	Tables      []string            `json:"tables"`
	Objectives  []ObjectiveResponse `json:"objectives"`
	CreatedAt   *string             `json:"createdAt,omitempty"`
}

type UnitEnvelope struct {
	Unit UnitResponse `json:"unit"`
}

type UnitListResponse struct {
	Units []UnitResponse `json:"units"`
}

type AppendRowsRequest struct {
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
}

type TableResponse struct {
	Name   string     `json:"name"`
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
}

type AssigneeLoadResponse struct {
	StaffID     string `json:"staff_id"`
	FullName    string `json:"full_name"`
	OpenTickets int    `json:"open_tickets"`
}

type TicketStatusStatResponse struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type StatsResponse struct {
	AssigneeLoad []AssigneeLoadResponse     `json:"assignee_load"`
	TicketStats  []TicketStatusStatResponse `json:"ticket_stats"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Storage  string `json:"storage,omitempty"`
}
