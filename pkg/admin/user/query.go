package user

import (
	"strings"

	"habit-tracker-be/internal/dto"
	"habit-tracker-be/internal/repository/specification"
)

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

var sortColumns = map[string]string{
	"createdAt": "users.created_at",
	"name":      "users.name",
	"email":     "users.email",
}

// ListQuery is the filter and sort descriptor for the admin user listing
type ListQuery struct {
	Search           string
	SortColumn       string
	SortByHabitCount bool
	Desc             bool
	Page             int
	Limit            int
	Offset           int
}

// BuildListQuery normalizes raw listing params. Unknown sort fields fall back to createdAt.
func BuildListQuery(p dto.UserListParams) ListQuery {
	q := ListQuery{
		Search: strings.TrimSpace(p.Search),
		Page:   p.Page,
		Limit:  p.Limit,
		Desc:   !strings.EqualFold(p.SortOrder, "asc"),
	}

	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = DefaultPageLimit
	}
	if q.Limit > MaxPageLimit {
		q.Limit = MaxPageLimit
	}
	q.Offset = (q.Page - 1) * q.Limit

	switch p.SortBy {
	case "habitCount":
		q.SortByHabitCount = true
	default:
		column, ok := sortColumns[p.SortBy]
		if !ok {
			column = sortColumns["createdAt"]
		}
		q.SortColumn = column
	}
	return q
}

// Filters returns the where clauses shared by the page query and the count.
func (q ListQuery) Filters() []specification.Specification {
	var specs []specification.Specification
	if q.Search != "" {
		specs = append(specs, specification.UserSearch{Query: q.Search})
	}
	return specs
}

// Specifications returns filters, ordering and paging for the page query.
func (q ListQuery) Specifications() []specification.Specification {
	specs := q.Filters()
	if q.SortByHabitCount {
		specs = append(specs, specification.OrderByHabitCount{Desc: q.Desc})
	} else {
		specs = append(specs, specification.OrderBy{Field: q.SortColumn, Desc: q.Desc})
	}
	specs = append(specs,
		specification.OrderBy{Field: "users.id"},
		specification.Pagination{Limit: q.Limit, Offset: q.Offset},
	)
	return specs
}
