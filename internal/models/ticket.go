package models

import "time"

type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMed      Priority = "med"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMed, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

type Status string

const (
	StatusOpen     Status = "open"
	StatusPending  Status = "pending"
	StatusResolved Status = "resolved"
	StatusClosed   Status = "closed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusPending, StatusResolved, StatusClosed:
		return true
	}
	return false
}

const (
	MaxDescriptionLen  = 200
	MaxAdminCommentLen = 500
)

// Ticket is a support request owned by exactly one employee. Owner* fields
// are populated from the users join on reads and are not stored on the row.
type Ticket struct {
	ID           string    `json:"id"`
	EmployeeID   string    `json:"employeeId"`
	IssueType    string    `json:"issueType"`
	SubIssue     string    `json:"subIssue,omitempty"`
	Priority     Priority  `json:"priority"`
	Description  string    `json:"description"`
	Status       Status    `json:"status"`
	AdminComment string    `json:"adminComment,omitempty"`
	Attachment   string    `json:"attachment,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	OwnerName        string `json:"ownerName,omitempty"`
	OwnerEmail       string `json:"ownerEmail,omitempty"`
	OwnerDept        string `json:"ownerDept,omitempty"`
	OwnerDesignation string `json:"ownerDesignation,omitempty"`
}
