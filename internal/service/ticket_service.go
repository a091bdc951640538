package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/mhagyesh07/ITCC-System/internal/errs"
	"github.com/mhagyesh07/ITCC-System/internal/models"
	"github.com/mhagyesh07/ITCC-System/internal/repository"
)

// Identity is the authenticated caller, as decoded by the access guard and
// passed explicitly into every operation that needs authorization.
type Identity struct {
	UserID string
	Role   models.Role
}

func (id Identity) IsAdmin() bool { return id.Role == models.RoleAdmin }

// CanAccessTicket is the single ownership predicate: admins may touch any
// ticket, employees only their own.
func CanAccessTicket(caller Identity, t *models.Ticket) bool {
	return caller.IsAdmin() || (caller.UserID != "" && caller.UserID == t.EmployeeID)
}

type TicketService struct {
	tickets repository.TicketRepository
}

func NewTicketService(tickets repository.TicketRepository) *TicketService {
	return &TicketService{tickets: tickets}
}

type CreateTicketInput struct {
	IssueType   string `json:"issueType"`
	SubIssue    string `json:"subIssue"`
	Priority    string `json:"priority"`
	Description string `json:"description"`
	Attachment  string `json:"-"`
}

// Create opens a ticket owned by the caller. The owner is always the
// authenticated identity; any employee id supplied by the client is ignored.
func (s *TicketService) Create(ctx context.Context, caller Identity, in CreateTicketInput) (*models.Ticket, error) {
	t := &models.Ticket{
		EmployeeID:  caller.UserID,
		IssueType:   strings.TrimSpace(in.IssueType),
		SubIssue:    strings.TrimSpace(in.SubIssue),
		Priority:    models.Priority(strings.ToLower(strings.TrimSpace(in.Priority))),
		Description: strings.TrimSpace(in.Description),
		Status:      models.StatusOpen,
		Attachment:  in.Attachment,
	}

	switch {
	case t.IssueType == "":
		return nil, errs.Validation("issueType is required")
	case t.Description == "":
		return nil, errs.Validation("description is required")
	case utf8.RuneCountInString(t.Description) > models.MaxDescriptionLen:
		return nil, errs.Validation("description exceeds %d characters", models.MaxDescriptionLen)
	case !t.Priority.Valid():
		return nil, errs.Validation("priority must be one of low, med, high, critical")
	}

	if err := s.tickets.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// maxPageSize bounds a single page of results. Pagination math and the
// store's LIMIT both use the clamped value, so the envelope stays honest.
const maxPageSize = 200

type ListQuery struct {
	Status   string
	Priority string
	Limit    int
	Page     int
	Sort     string // API column name, e.g. createdAt
	Order    string // asc|desc
}

type ListResult struct {
	Tickets      []models.Ticket `json:"tickets"`
	CurrentPage  int             `json:"currentPage"`
	TotalPages   int             `json:"totalPages"`
	TotalTickets int             `json:"totalTickets"`
}

// sortColumn maps API sort names onto store columns. Anything else is left
// to the table sorter at the presentation edge.
func sortColumn(apiName string) (string, bool) {
	switch apiName {
	case "createdAt", "":
		return "created_at", true
	case "updatedAt":
		return "updated_at", true
	case "priority":
		return "priority", true
	}
	return "", false
}

// DBSortable reports whether the store can order by the given API column.
func DBSortable(apiName string) bool {
	_, ok := sortColumn(apiName)
	return ok
}

// List returns a page of tickets. Admins see every ticket; employees are
// always scoped to their own, regardless of what the query asks for.
func (s *TicketService) List(ctx context.Context, caller Identity, q ListQuery) (ListResult, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = 10
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	page := q.Page
	if page < 1 {
		page = 1
	}

	f := repository.TicketFilter{
		Status:   q.Status,
		Priority: q.Priority,
		Limit:    limit,
		Offset:   (page - 1) * limit,
		Order:    q.Order,
	}
	if col, ok := sortColumn(q.Sort); ok {
		f.Sort = col
	}
	if !caller.IsAdmin() {
		f.EmployeeID = caller.UserID
	}

	items, err := s.tickets.List(ctx, f)
	if err != nil {
		return ListResult{}, err
	}
	total, err := s.tickets.Count(ctx, f)
	if err != nil {
		return ListResult{}, err
	}

	totalPages := total / limit
	if total%limit != 0 {
		totalPages++
	}
	if items == nil {
		items = []models.Ticket{}
	}
	return ListResult{Tickets: items, CurrentPage: page, TotalPages: totalPages, TotalTickets: total}, nil
}

// Get returns one ticket, restricted to admins and the owner.
func (s *TicketService) Get(ctx context.Context, caller Identity, id string) (*models.Ticket, error) {
	t, err := s.tickets.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanAccessTicket(caller, t) {
		return nil, errs.ErrForbidden
	}
	return t, nil
}

// ListByEmployee returns the employee's full ticket history, newest first.
// Route guards restrict callers to admins or the employee themselves. The
// store bounds a single read, so long histories are fetched in batches.
func (s *TicketService) ListByEmployee(ctx context.Context, employeeID string) ([]models.Ticket, error) {
	out := []models.Ticket{}
	for offset := 0; ; offset += maxPageSize {
		batch, err := s.tickets.List(ctx, repository.TicketFilter{
			EmployeeID: employeeID,
			Limit:      maxPageSize,
			Offset:     offset,
			Sort:       "created_at",
			Order:      "desc",
		})
		if err != nil {
			return nil, err
		}
		out = append(out, batch...)
		if len(batch) < maxPageSize {
			return out, nil
		}
	}
}

// SetAdminComment overwrites the admin annotation. Status is untouched.
// Concurrent comment writes are last-writer-wins; no version is kept.
func (s *TicketService) SetAdminComment(ctx context.Context, id, comment string) (*models.Ticket, error) {
	comment = strings.TrimSpace(comment)
	if utf8.RuneCountInString(comment) > models.MaxAdminCommentLen {
		return nil, errs.Validation("adminComment exceeds %d characters", models.MaxAdminCommentLen)
	}
	return s.tickets.SetAdminComment(ctx, id, comment)
}

// Close transitions the ticket to closed from any state; closing an already
// closed ticket succeeds as a no-op. There is no reopen.
func (s *TicketService) Close(ctx context.Context, caller Identity, id string) (*models.Ticket, error) {
	t, err := s.tickets.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanAccessTicket(caller, t) {
		return nil, errs.ErrForbidden
	}
	if t.Status == models.StatusClosed {
		return t, nil
	}
	return s.tickets.SetStatus(ctx, id, models.StatusClosed)
}
