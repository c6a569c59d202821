package domain

type AssigneeLoad struct {
	StaffID     string
	FullName    string
	OpenTickets int
}

type TicketStatusStat struct {
	Status string
	Count  int
}
