// Package tablesort reorders already-fetched ticket pages for display. It
// mirrors the dashboard table behavior: clicking a column cycles ascending,
// descending, then back to the default view (creation time descending).
package tablesort

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/mhagyesh07/ITCC-System/internal/models"
)

type Direction string

const (
	Asc     Direction = "asc"
	Desc    Direction = "desc"
	Default Direction = "default"
)

// State is the current sort selection: which column, which direction.
type State struct {
	Column    string
	Direction Direction
}

// Next is the pure transition function for repeated column clicks: the same
// column cycles asc -> desc -> default -> asc; a new column resets to asc.
func (s State) Next(column string) State {
	if s.Column == column {
		switch s.Direction {
		case Asc:
			return State{Column: column, Direction: Desc}
		case Desc:
			return State{Column: column, Direction: Default}
		default:
			return State{Column: column, Direction: Asc}
		}
	}
	return State{Column: column, Direction: Asc}
}

// priorityRank orders priorities by severity, not lexically. "medium" is
// accepted as an alias seen in older rows.
var priorityRank = map[string]int{
	"low":      1,
	"med":      2,
	"medium":   2,
	"high":     3,
	"critical": 4,
}

// Sorted returns a new, stably sorted copy of rows. Direction Default
// always reproduces the creation-time-descending baseline regardless of the
// incoming order, so re-applying it is idempotent.
func Sorted(rows []models.Ticket, column string, dir Direction, log zerolog.Logger) []models.Ticket {
	out := make([]models.Ticket, len(rows))
	copy(out, rows)

	if dir == Default || dir == "" {
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
		return out
	}

	coll := collate.New(language.English)
	sort.SliceStable(out, func(i, j int) bool {
		c := compare(coll, out[i], out[j], column, log)
		if dir == Desc {
			return c > 0
		}
		return c < 0
	})
	return out
}

func compare(coll *collate.Collator, a, b models.Ticket, column string, log zerolog.Logger) int {
	va := value(a, column)
	vb := value(b, column)

	switch x := va.(type) {
	case time.Time:
		y, ok := vb.(time.Time)
		if !ok {
			y = parseInstant(vb, log)
		}
		return x.Compare(y)
	case int:
		if y, ok := vb.(int); ok {
			return x - y
		}
	case string:
		if y, ok := vb.(string); ok {
			// Numeric coercion first; fall back to collation.
			na, errA := strconv.ParseFloat(x, 64)
			nb, errB := strconv.ParseFloat(y, 64)
			if errA == nil && errB == nil {
				switch {
				case na < nb:
					return -1
				case na > nb:
					return 1
				}
				return 0
			}
			return coll.CompareString(x, y)
		}
	}
	return coll.CompareString(asString(va), asString(vb))
}

// value extracts the sortable key for a column. Dotted paths reach into the
// joined owner; unknown columns and absent values compare as empty strings.
func value(t models.Ticket, column string) any {
	switch column {
	case "createdAt":
		return t.CreatedAt
	case "updatedAt":
		return t.UpdatedAt
	case "priority":
		if r, ok := priorityRank[strings.ToLower(string(t.Priority))]; ok {
			return r
		}
		return 0
	case "status":
		return string(t.Status)
	case "issueType":
		return t.IssueType
	case "subIssue":
		return t.SubIssue
	case "description":
		return t.Description
	case "adminComment":
		return t.AdminComment
	case "employeeId.name", "ownerName":
		return t.OwnerName
	case "employeeId.email", "ownerEmail":
		return t.OwnerEmail
	case "employeeId.dept", "ownerDept":
		return t.OwnerDept
	case "employeeId.designation", "ownerDesignation":
		return t.OwnerDesignation
	default:
		return ""
	}
}

// parseInstant coerces a non-time value being compared against a date
// column. Unparseable input sorts as the epoch rather than failing.
func parseInstant(v any, log zerolog.Logger) time.Time {
	s := asString(v)
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts
	}
	log.Warn().Str("value", s).Msg("unparseable date in sort, treating as epoch")
	return time.Unix(0, 0)
}

func asString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case time.Time:
		return x.Format(time.RFC3339)
	default:
		return ""
	}
}
