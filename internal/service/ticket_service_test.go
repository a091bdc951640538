package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/mhagyesh07/ITCC-System/internal/errs"
	"github.com/mhagyesh07/ITCC-System/internal/models"
	"github.com/mhagyesh07/ITCC-System/internal/repository"
)

// memTicketRepo is an in-memory TicketRepository for service tests.
type memTicketRepo struct {
	seq        int
	tickets    map[string]*models.Ticket
	lastFilter repository.TicketFilter
}

func newMemTicketRepo() *memTicketRepo {
	return &memTicketRepo{tickets: map[string]*models.Ticket{}}
}

func (m *memTicketRepo) Create(_ context.Context, t *models.Ticket) error {
	m.seq++
	t.ID = fmt.Sprintf("ticket-%d", m.seq)
	now := time.Now().Add(time.Duration(m.seq) * time.Millisecond)
	t.CreatedAt = now
	t.UpdatedAt = now
	cp := *t
	m.tickets[t.ID] = &cp
	return nil
}

func (m *memTicketRepo) Get(_ context.Context, id string) (*models.Ticket, error) {
	t, ok := m.tickets[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (m *memTicketRepo) List(_ context.Context, f repository.TicketFilter) ([]models.Ticket, error) {
	m.lastFilter = f
	var out []models.Ticket
	for _, t := range m.tickets {
		if f.EmployeeID != "" && t.EmployeeID != f.EmployeeID {
			continue
		}
		if f.Status != "" && string(t.Status) != f.Status {
			continue
		}
		if f.Priority != "" && string(t.Priority) != f.Priority {
			continue
		}
		out = append(out, *t)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if strings.EqualFold(f.Order, "asc") {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if f.Offset > 0 && f.Offset < len(out) {
		out = out[f.Offset:]
	} else if f.Offset >= len(out) {
		out = nil
	}
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (m *memTicketRepo) Count(_ context.Context, f repository.TicketFilter) (int, error) {
	n := 0
	for _, t := range m.tickets {
		if f.EmployeeID != "" && t.EmployeeID != f.EmployeeID {
			continue
		}
		if f.Status != "" && string(t.Status) != f.Status {
			continue
		}
		if f.Priority != "" && string(t.Priority) != f.Priority {
			continue
		}
		n++
	}
	return n, nil
}

func (m *memTicketRepo) SetAdminComment(_ context.Context, id, comment string) (*models.Ticket, error) {
	t, ok := m.tickets[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	t.AdminComment = comment
	t.UpdatedAt = time.Now()
	cp := *t
	return &cp, nil
}

func (m *memTicketRepo) SetStatus(_ context.Context, id string, status models.Status) (*models.Ticket, error) {
	t, ok := m.tickets[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	t.Status = status
	t.UpdatedAt = time.Now()
	cp := *t
	return &cp, nil
}

var (
	employeeA = Identity{UserID: "emp-a", Role: models.RoleEmployee}
	employeeB = Identity{UserID: "emp-b", Role: models.RoleEmployee}
	admin     = Identity{UserID: "adm-1", Role: models.RoleAdmin}
)

func validInput() CreateTicketInput {
	return CreateTicketInput{
		IssueType:   "Hardware",
		SubIssue:    "Laptop Keyboard",
		Priority:    "high",
		Description: "printer jam",
	}
}

func TestCreateForcesOwnerToCaller(t *testing.T) {
	svc := NewTicketService(newMemTicketRepo())

	got, err := svc.Create(context.Background(), employeeA, validInput())
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	if got.EmployeeID != employeeA.UserID {
		t.Fatalf("owner must equal the caller, got %q", got.EmployeeID)
	}
	if got.Status != models.StatusOpen {
		t.Fatalf("new tickets must open as open, got %q", got.Status)
	}
	if got.CreatedAt.IsZero() || got.UpdatedAt.IsZero() {
		t.Fatalf("timestamps must be set")
	}
}

func TestCreateValidation(t *testing.T) {
	svc := NewTicketService(newMemTicketRepo())

	cases := map[string]CreateTicketInput{
		"bad priority": func() CreateTicketInput {
			in := validInput()
			in.Priority = "urgent"
			return in
		}(),
		"missing issue type": func() CreateTicketInput {
			in := validInput()
			in.IssueType = "  "
			return in
		}(),
		"missing description": func() CreateTicketInput {
			in := validInput()
			in.Description = ""
			return in
		}(),
		"oversized description": func() CreateTicketInput {
			in := validInput()
			in.Description = strings.Repeat("x", models.MaxDescriptionLen+1)
			return in
		}(),
	}
	for name, in := range cases {
		if _, err := svc.Create(context.Background(), employeeA, in); !errors.Is(err, errs.ErrValidation) {
			t.Fatalf("%s: expected validation error, got %v", name, err)
		}
	}
}

func TestDescriptionLimitCountsRunes(t *testing.T) {
	svc := NewTicketService(newMemTicketRepo())

	in := validInput()
	in.Description = strings.Repeat("é", models.MaxDescriptionLen)
	if _, err := svc.Create(context.Background(), employeeA, in); err != nil {
		t.Fatalf("multibyte description at the limit must pass: %v", err)
	}

	in.Description = strings.Repeat("é", models.MaxDescriptionLen+1)
	if _, err := svc.Create(context.Background(), employeeA, in); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("expected validation error past the limit, got %v", err)
	}
}

func TestCreateNormalizesPriorityCase(t *testing.T) {
	svc := NewTicketService(newMemTicketRepo())
	in := validInput()
	in.Priority = "  HIGH "
	got, err := svc.Create(context.Background(), employeeA, in)
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	if got.Priority != models.PriorityHigh {
		t.Fatalf("expected normalized priority, got %q", got.Priority)
	}
}

func TestGetEnforcesOwnership(t *testing.T) {
	repo := newMemTicketRepo()
	svc := NewTicketService(repo)
	created, err := svc.Create(context.Background(), employeeA, validInput())
	if err != nil {
		t.Fatalf("create error: %v", err)
	}

	if _, err := svc.Get(context.Background(), employeeA, created.ID); err != nil {
		t.Fatalf("owner should read own ticket: %v", err)
	}
	if _, err := svc.Get(context.Background(), admin, created.ID); err != nil {
		t.Fatalf("admin should read any ticket: %v", err)
	}
	if _, err := svc.Get(context.Background(), employeeB, created.ID); !errors.Is(err, errs.ErrForbidden) {
		t.Fatalf("non-owner must be forbidden, got %v", err)
	}
	if _, err := svc.Get(context.Background(), admin, "missing"); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListScopesEmployeesToOwnTickets(t *testing.T) {
	repo := newMemTicketRepo()
	svc := NewTicketService(repo)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := svc.Create(ctx, employeeA, validInput()); err != nil {
			t.Fatalf("create error: %v", err)
		}
	}
	if _, err := svc.Create(ctx, employeeB, validInput()); err != nil {
		t.Fatalf("create error: %v", err)
	}

	res, err := svc.List(ctx, employeeA, ListQuery{})
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if res.TotalTickets != 3 {
		t.Fatalf("employee A should see 3 tickets, got %d", res.TotalTickets)
	}
	for _, tk := range res.Tickets {
		if tk.EmployeeID != employeeA.UserID {
			t.Fatalf("employee list leaked foreign ticket %q", tk.ID)
		}
	}

	res, err = svc.List(ctx, admin, ListQuery{})
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if res.TotalTickets != 4 {
		t.Fatalf("admin should see all 4 tickets, got %d", res.TotalTickets)
	}
}

func TestListPagination(t *testing.T) {
	repo := newMemTicketRepo()
	svc := NewTicketService(repo)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		if _, err := svc.Create(ctx, employeeA, validInput()); err != nil {
			t.Fatalf("create error: %v", err)
		}
	}

	res, err := svc.List(ctx, admin, ListQuery{Limit: 2, Page: 3})
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if res.TotalTickets != 5 || res.TotalPages != 3 || res.CurrentPage != 3 {
		t.Fatalf("pagination wrong: %+v", res)
	}
	if len(res.Tickets) != 1 {
		t.Fatalf("last page should hold 1 ticket, got %d", len(res.Tickets))
	}
}

func TestListClampsOversizedLimit(t *testing.T) {
	repo := newMemTicketRepo()
	svc := NewTicketService(repo)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if _, err := svc.Create(ctx, employeeA, validInput()); err != nil {
			t.Fatalf("create error: %v", err)
		}
	}

	res, err := svc.List(ctx, admin, ListQuery{Limit: 500, Page: 2})
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if repo.lastFilter.Limit != maxPageSize {
		t.Fatalf("store must see the clamped limit, got %d", repo.lastFilter.Limit)
	}
	if repo.lastFilter.Offset != maxPageSize {
		t.Fatalf("offset must be computed from the clamped limit, got %d", repo.lastFilter.Offset)
	}
	if res.TotalTickets != 3 || res.TotalPages != 1 {
		t.Fatalf("pagination wrong: %+v", res)
	}
}

func TestListByEmployeeReturnsFullHistory(t *testing.T) {
	repo := newMemTicketRepo()
	svc := NewTicketService(repo)
	ctx := context.Background()

	n := maxPageSize + 5
	for i := 0; i < n; i++ {
		if _, err := svc.Create(ctx, employeeA, validInput()); err != nil {
			t.Fatalf("create error: %v", err)
		}
	}
	if _, err := svc.Create(ctx, employeeB, validInput()); err != nil {
		t.Fatalf("create error: %v", err)
	}

	got, err := svc.ListByEmployee(ctx, employeeA.UserID)
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if len(got) != n {
		t.Fatalf("expected %d tickets, got %d", n, len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].CreatedAt.After(got[i-1].CreatedAt) {
			t.Fatalf("history must stay newest first across batches")
		}
	}
}

func TestSetAdminCommentBounds(t *testing.T) {
	repo := newMemTicketRepo()
	svc := NewTicketService(repo)
	created, err := svc.Create(context.Background(), employeeA, validInput())
	if err != nil {
		t.Fatalf("create error: %v", err)
	}

	got, err := svc.SetAdminComment(context.Background(), created.ID, "dispatched technician")
	if err != nil {
		t.Fatalf("comment error: %v", err)
	}
	if got.AdminComment != "dispatched technician" {
		t.Fatalf("comment not stored: %q", got.AdminComment)
	}
	if got.Status != models.StatusOpen {
		t.Fatalf("commenting must not alter status, got %q", got.Status)
	}

	long := strings.Repeat("y", models.MaxAdminCommentLen+1)
	if _, err := svc.SetAdminComment(context.Background(), created.ID, long); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("expected validation error for long comment, got %v", err)
	}
	if _, err := svc.SetAdminComment(context.Background(), "missing", "hi"); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCloseTransitions(t *testing.T) {
	repo := newMemTicketRepo()
	svc := NewTicketService(repo)
	ctx := context.Background()
	created, err := svc.Create(ctx, employeeA, validInput())
	if err != nil {
		t.Fatalf("create error: %v", err)
	}

	if _, err := svc.Close(ctx, employeeB, created.ID); !errors.Is(err, errs.ErrForbidden) {
		t.Fatalf("non-owner close must be forbidden, got %v", err)
	}

	got, err := svc.Close(ctx, employeeA, created.ID)
	if err != nil {
		t.Fatalf("owner close error: %v", err)
	}
	if got.Status != models.StatusClosed {
		t.Fatalf("expected closed, got %q", got.Status)
	}

	// Closing an already closed ticket is a successful no-op.
	again, err := svc.Close(ctx, admin, created.ID)
	if err != nil {
		t.Fatalf("re-close error: %v", err)
	}
	if again.Status != models.StatusClosed {
		t.Fatalf("expected closed, got %q", again.Status)
	}

	if _, err := svc.Close(ctx, admin, "missing"); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCanAccessTicket(t *testing.T) {
	tk := &models.Ticket{EmployeeID: employeeA.UserID}
	if !CanAccessTicket(admin, tk) {
		t.Fatalf("admin must access any ticket")
	}
	if !CanAccessTicket(employeeA, tk) {
		t.Fatalf("owner must access own ticket")
	}
	if CanAccessTicket(employeeB, tk) {
		t.Fatalf("stranger must not access ticket")
	}
	if CanAccessTicket(Identity{}, tk) {
		t.Fatalf("empty identity must not access ticket")
	}
}
