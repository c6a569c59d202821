package handler

import (
	"time"

	"github.com/bagdasarian/staff-portal/internal/csvstore"
	"github.com/bagdasarian/staff-portal/internal/domain"
)

const dateLayout = "2006-01-02"

func formatTime(t time.Time) *string {
	if t.IsZero() {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}

// parseDate принимает дату YYYY-MM-DD или полный RFC3339.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, value); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, domain.NewBadRequestError("invalid date %q", value)
	}
	return t, nil
}

func domainTicketToHTTP(ticket *domain.Ticket) TicketResponse {
	return TicketResponse{
		TicketID:    ticket.ID,
		Title:       ticket.Title,
		Description: ticket.Description,
		Category:    ticket.Category,
		Priority:    string(ticket.Priority),
		Status:      string(ticket.Status),
		Lane:        ticket.Lane(),
		ReporterID:  ticket.ReporterID,
		AssigneeID:  ticket.AssigneeID,
		DivisionID:  ticket.DivisionID,
		CreatedAt:   formatTime(ticket.CreatedAt),
		UpdatedAt:   formatTimePtr(ticket.UpdatedAt),
		ResolvedAt:  formatTimePtr(ticket.ResolvedAt),
	}
}

func domainTicketsToHTTP(tickets []*domain.Ticket) []TicketResponse {
	result := make([]TicketResponse, 0, len(tickets))
	for _, t := range tickets {
		result = append(result, domainTicketToHTTP(t))
	}
	return result
}

func domainTicketBoardToHTTP(board *domain.TicketBoard) TicketBoardResponse {
	lanes := make([]TicketLaneResponse, 0, len(board.Lanes))
	for _, lane := range board.Lanes {
		lanes = append(lanes, TicketLaneResponse{
			Name:    lane.Name,
			Tickets: domainTicketsToHTTP(lane.Tickets),
		})
	}
	return TicketBoardResponse{Lanes: lanes}
}

func httpStaffToDomain(req StaffRequest) *domain.StaffMember {
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	return &domain.StaffMember{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Position: req.Position,
		IsActive: isActive,
	}
}

func domainStaffToHTTP(member *domain.StaffMember) StaffResponse {
	divisions := member.Divisions
	if divisions == nil {
		divisions = []string{}
	}
	return StaffResponse{
		StaffID:   member.ID,
		FullName:  member.FullName,
		Email:     member.Email,
		Phone:     member.Phone,
		Position:  member.Position,
		IsActive:  member.IsActive,
		Divisions: divisions,
	}
}

func httpDivisionToDomain(req DivisionRequest) *domain.Division {
	members := make([]domain.DivisionMember, 0, len(req.Members))
	for _, member := range req.Members {
		members = append(members, domain.DivisionMember{
			StaffID: member.StaffID,
			Role:    member.Role,
		})
	}

	return &domain.Division{
		Name:    req.DivisionName,
		Members: members,
	}
}

func domainDivisionToHTTP(division *domain.Division) DivisionResponse {
	members := make([]DivisionMemberResponse, 0, len(division.Members))
	for _, member := range division.Members {
		members = append(members, DivisionMemberResponse{
			StaffID:  member.StaffID,
			FullName: member.FullName,
			Email:    member.Email,
			Role:     member.Role,
			IsActive: member.IsActive,
		})
	}

	return DivisionResponse{
		DivisionID:   division.ID,
		DivisionName: division.Name,
		Members:      members,
	}
}

func domainProjectToHTTP(project *domain.Project) ProjectResponse {
	return ProjectResponse{
		ProjectID:   project.ID,
		Name:        project.Name,
		Description: project.Description,
		OwnerID:     project.OwnerID,
		Status:      project.Status,
		CreatedAt:   formatTime(project.CreatedAt),
	}
}

func domainTaskToHTTP(task *domain.Task) TaskResponse {
	assignees := task.AssigneeIDs
	if assignees == nil {
		assignees = []string{}
	}
	return TaskResponse{
		TaskID:      task.ID,
		ProjectID:   task.ProjectID,
		Title:       task.Title,
		Description: task.Description,
		Lane:        string(task.Lane),
		Position:    task.Position,
		AssigneeIDs: assignees,
		DueAt:       formatTimePtr(task.DueAt),
		CreatedAt:   formatTime(task.CreatedAt),
		UpdatedAt:   formatTimePtr(task.UpdatedAt),
	}
}

func domainBoardToHTTP(projectID string, board *domain.Board) BoardResponse {
	lanes := make([]BoardLaneResponse, 0, len(board.Lanes))
	for _, lane := range board.Lanes {
		tasks := make([]TaskResponse, 0, len(lane.Tasks))
		for _, task := range lane.Tasks {
			tasks = append(tasks, domainTaskToHTTP(task))
		}
		lanes = append(lanes, BoardLaneResponse{Name: lane.Name, Tasks: tasks})
	}
	return BoardResponse{ProjectID: projectID, Lanes: lanes}
}

func domainPhotoToHTTP(photo *domain.Photo) PhotoResponse {
	return PhotoResponse{
		PhotoID: photo.ID,
		EventID: photo.EventID,
		URL:     photo.URL,
		Caption: photo.Caption,
	}
}

func domainGalleryEventToHTTP(event *domain.GalleryEvent) GalleryEventResponse {
	photos := make([]PhotoResponse, 0, len(event.Photos))
	for i := range event.Photos {
		photos = append(photos, domainPhotoToHTTP(&event.Photos[i]))
	}
	return GalleryEventResponse{
		EventID:     event.ID,
		Title:       event.Title,
		Description: event.Description,
		EventDate:   event.EventDate.Format(dateLayout),
		Photos:      photos,
	}
}

func httpObjectivesToDomain(req []ObjectiveRequest) []domain.Objective {
	objectives := make([]domain.Objective, 0, len(req))
	for _, o := range req {
		kras := make([]domain.KRA, 0, len(o.KRAs))
		for _, kra := range o.KRAs {
			kpis := make([]domain.KPI, 0, len(kra.KPIs))
			for _, kpi := range kra.KPIs {
				kpis = append(kpis, domain.KPI{Title: kpi.Title, Target: kpi.Target, Unit: kpi.Unit})
			}
			kras = append(kras, domain.KRA{Title: kra.Title, KPIs: kpis})
		}
		objectives = append(objectives, domain.Objective{Title: o.Title, KRAs: kras})
	}
	return objectives
}

func domainUnitToHTTP(unit *domain.Unit) UnitResponse {
	objectives := make([]ObjectiveResponse, 0, len(unit.Objectives))
	for _, o := range unit.Objectives {
		kras := make([]KRAResponse, 0, len(o.KRAs))
		for _, kra := range o.KRAs {
			kpis := make([]KPIResponse, 0, len(kra.KPIs))
			for _, kpi := range kra.KPIs {
				kpis = append(kpis, KPIResponse{KPIID: kpi.ID, Title: kpi.Title, Target: kpi.Target, Unit: kpi.Unit})
			}
			kras = append(kras, KRAResponse{KRAID: kra.ID, Title: kra.Title, KPIs: kpis})
		}
		objectives = append(objectives, ObjectiveResponse{ObjectiveID: o.ID, Title: o.Title, KRAs: kras})
	}

	tables := unit.Tables
	if tables == nil {
		tables = []string{}
	}
	return UnitResponse{
		UnitID:      unit.ID,
		UnitName:    unit.Name,
		FolderID:    unit.FolderID,
		StorageMode: string(unit.StorageMode),
		Tables:      tables,
		Objectives:  objectives,
		CreatedAt:   formatTime(unit.CreatedAt),
	}
}

func tableToHTTP(table *csvstore.Table) TableResponse {
	rows := table.Rows
	if rows == nil {
		rows = [][]string{}
	}
	return TableResponse{Name: table.Name, Header: table.Header, Rows: rows}
}
