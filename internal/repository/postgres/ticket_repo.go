package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mhagyesh07/ITCC-System/internal/errs"
	"github.com/mhagyesh07/ITCC-System/internal/models"
	"github.com/mhagyesh07/ITCC-System/internal/repository"
)

type TicketRepo struct{ db *pgxpool.Pool }

func NewTicketRepo(db *pgxpool.Pool) repository.TicketRepository { return &TicketRepo{db: db} }

const ticketCols = `
	t.id, t.employee_id, t.issue_type, t.sub_issue, t.priority, t.description,
	t.status, t.admin_comment, t.attachment, t.created_at, t.updated_at,
	COALESCE(u.name, ''), COALESCE(u.email, ''), COALESCE(u.dept, ''), COALESCE(u.designation, '')`

func scanTicket(row pgx.Row, t *models.Ticket) error {
	return row.Scan(
		&t.ID, &t.EmployeeID, &t.IssueType, &t.SubIssue, &t.Priority, &t.Description,
		&t.Status, &t.AdminComment, &t.Attachment, &t.CreatedAt, &t.UpdatedAt,
		&t.OwnerName, &t.OwnerEmail, &t.OwnerDept, &t.OwnerDesignation,
	)
}

func (r *TicketRepo) Create(ctx context.Context, t *models.Ticket) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO tickets (employee_id, issue_type, sub_issue, priority, description, status, attachment)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING id, created_at, updated_at
	`,
		t.EmployeeID, t.IssueType, t.SubIssue, t.Priority, t.Description, models.StatusOpen, t.Attachment,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

func (r *TicketRepo) Get(ctx context.Context, id string) (*models.Ticket, error) {
	var t models.Ticket
	err := scanTicket(r.db.QueryRow(ctx, `
		SELECT `+ticketCols+`
		FROM tickets t
		JOIN users u ON u.id = t.employee_id
		WHERE t.id = $1
	`, id), &t)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// List returns a page of tickets ordered per the filter; reads join the
// owner so callers get the employee's profile fields alongside each row.
func (r *TicketRepo) List(ctx context.Context, f repository.TicketFilter) ([]models.Ticket, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}

	whereSQL, args := buildTicketWhere(f)
	orderSQL := orderClause(f.Sort, f.Order)

	sql := fmt.Sprintf(`
		SELECT %s
		FROM tickets t
		JOIN users u ON u.id = t.employee_id
		%s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, ticketCols, whereSQL, orderSQL, len(args)+1, len(args)+2)

	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Ticket
	for rows.Next() {
		var t models.Ticket
		if err := scanTicket(rows, &t); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Count returns the total for the same filter set (for pagination).
func (r *TicketRepo) Count(ctx context.Context, f repository.TicketFilter) (int, error) {
	whereSQL, args := buildTicketWhere(f)
	sql := `SELECT COUNT(*) FROM tickets t ` + whereSQL

	var n int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *TicketRepo) SetAdminComment(ctx context.Context, id, comment string) (*models.Ticket, error) {
	ct, err := r.db.Exec(ctx, `
		UPDATE tickets SET admin_comment = $1, updated_at = now() WHERE id = $2
	`, comment, id)
	if err != nil {
		return nil, err
	}
	if ct.RowsAffected() == 0 {
		return nil, errs.ErrNotFound
	}
	return r.Get(ctx, id)
}

func (r *TicketRepo) SetStatus(ctx context.Context, id string, status models.Status) (*models.Ticket, error) {
	ct, err := r.db.Exec(ctx, `
		UPDATE tickets SET status = $1, updated_at = now() WHERE id = $2
	`, status, id)
	if err != nil {
		return nil, err
	}
	if ct.RowsAffected() == 0 {
		return nil, errs.ErrNotFound
	}
	return r.Get(ctx, id)
}

// buildTicketWhere composes the WHERE clause and args for list/count.
func buildTicketWhere(f repository.TicketFilter) (string, []any) {
	clauses := []string{"1=1"}
	args := []any{}

	if e := strings.TrimSpace(f.EmployeeID); e != "" {
		args = append(args, e)
		clauses = append(clauses, "t.employee_id = $"+itoa(len(args)))
	}
	if s := strings.TrimSpace(f.Status); s != "" {
		args = append(args, s)
		clauses = append(clauses, "t.status = $"+itoa(len(args)))
	}
	if p := strings.TrimSpace(f.Priority); p != "" {
		args = append(args, p)
		clauses = append(clauses, "t.priority = $"+itoa(len(args)))
	}

	return "WHERE " + strings.Join(clauses, " AND "), args
}

// orderClause sanitizes sort input; only known columns pass through.
// Priority orders by severity rank, not lexically.
func orderClause(sort, order string) string {
	ord := "DESC"
	if strings.EqualFold(strings.TrimSpace(order), "asc") {
		ord = "ASC"
	}
	switch strings.ToLower(strings.TrimSpace(sort)) {
	case "updated_at":
		return "t.updated_at " + ord
	case "priority":
		return `CASE t.priority
			WHEN 'low' THEN 1 WHEN 'med' THEN 2 WHEN 'high' THEN 3 WHEN 'critical' THEN 4
			END ` + ord
	default:
		return "t.created_at " + ord
	}
}

func itoa(i int) string { return strconv.Itoa(i) }
