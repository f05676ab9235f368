package services

import (
	"strings"

	"gorm.io/gorm"
)

// ListQuery carries the common list parameters: pagination, free-text search
// and whitelisted ordering ("-field" for descending).
type ListQuery struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Search   string `form:"search"`
	Ordering string `form:"ordering"`
}

func (q *ListQuery) normalize() {
	if q.Page == 0 {
		q.Page = 1
	}
	if q.PageSize == 0 {
		q.PageSize = 10
	}
}

func (q *ListQuery) offset() int {
	return (q.Page - 1) * q.PageSize
}

// applySearch ORs a LIKE condition over the given columns.
func (q *ListQuery) applySearch(db *gorm.DB, columns ...string) *gorm.DB {
	if q.Search == "" || len(columns) == 0 {
		return db
	}
	pattern := "%" + q.Search + "%"
	clause := make([]string, len(columns))
	args := make([]interface{}, len(columns))
	for i, col := range columns {
		clause[i] = col + " LIKE ?"
		args[i] = pattern
	}
	return db.Where(strings.Join(clause, " OR "), args...)
}

// applyOrdering maps the requested field through the whitelist; unknown
// fields fall back to defaultOrder.
func (q *ListQuery) applyOrdering(db *gorm.DB, orderable map[string]string, defaultOrder string) *gorm.DB {
	field := q.Ordering
	desc := false
	if strings.HasPrefix(field, "-") {
		field = field[1:]
		desc = true
	}
	col, ok := orderable[field]
	if field == "" || !ok {
		return db.Order(defaultOrder)
	}
	if desc {
		return db.Order(col + " DESC")
	}
	return db.Order(col + " ASC")
}

// ListResponse is the paginated list envelope shared by the resource services.
type ListResponse struct {
	Total    int64       `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
	Items    interface{} `json:"items"`
}
