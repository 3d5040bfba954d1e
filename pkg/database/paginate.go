package database

import (
	"context"
	"slices"
	"strings"

	"github.com/Payphone-Digital/dashboard/internal/constants"
	"github.com/Payphone-Digital/dashboard/internal/listview"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ListSpec describes how one table is searched and sorted.
type ListSpec struct {
	// SearchColumns are matched with a case-insensitive substring test.
	SearchColumns []string
	// SortColumns maps the orderBy value a client sends to a table column.
	SortColumns map[string]string
}

// Sortable returns the accepted orderBy values in lexical order.
func (s ListSpec) Sortable() []string {
	out := make([]string, 0, len(s.SortColumns))
	for name := range s.SortColumns {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Search filters rows whose search columns contain q. An empty q is a no-op.
func Search(columns []string, q string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if q == "" || len(columns) == 0 {
			return db
		}
		pattern := "%" + likeEscaper.Replace(strings.ToLower(q)) + "%"
		conds := make([]string, len(columns))
		args := make([]interface{}, len(columns))
		for i, col := range columns {
			conds[i] = "LOWER(" + col + ") LIKE ?"
			args[i] = pattern
		}
		return db.Where("("+strings.Join(conds, " OR ")+")", args...)
	}
}

// Order sorts by the requested column when it is whitelisted, else by id descending.
func Order(sortColumns map[string]string, params listview.RequestParams) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		orderBy, dir := params.Order()
		column, ok := sortColumns[orderBy]
		if !ok || dir == listview.OrderSortNone {
			return db.Order(clause.OrderByColumn{
				Column: clause.Column{Name: constants.DefaultOrderColumn},
				Desc:   true,
			})
		}
		db = db.Order(clause.OrderByColumn{
			Column: clause.Column{Name: column},
			Desc:   dir == listview.OrderSortDescending,
		})
		if column != constants.DefaultOrderColumn {
			// Secondary key keeps page boundaries deterministic.
			db = db.Order(clause.OrderByColumn{Column: clause.Column{Name: constants.DefaultOrderColumn}, Desc: true})
		}
		return db
	}
}

// pageWindow returns the offset and limit of the requested page. ok is false
// when the page starts past MaxListOffset; such pages are served empty.
func pageWindow(params listview.RequestParams) (offset, limit int, ok bool) {
	limit = params.PageSize
	if limit <= 0 {
		limit = listview.DefaultPageSizeOptions[0]
	}
	page := params.Page
	if page < 1 {
		page = 1
	}
	// Compare before multiplying so huge pages cannot wrap around.
	if page-1 > constants.MaxListOffset/limit {
		return 0, limit, false
	}
	return (page - 1) * limit, limit, true
}

// Paginate applies limit and offset for the requested page. A page past the
// offset ceiling matches no rows.
func Paginate(params listview.RequestParams) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		offset, limit, ok := pageWindow(params)
		if !ok {
			return db.Where("1 = 0")
		}
		return db.Offset(offset).Limit(limit)
	}
}

// FindPage counts the rows matching the search and loads the requested page of them.
func FindPage[T any](ctx context.Context, db *gorm.DB, spec ListSpec, params listview.RequestParams) ([]T, int64, error) {
	base := func() *gorm.DB {
		return db.WithContext(ctx).Model(new(T)).Scopes(Search(spec.SearchColumns, params.Search()))
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	items := make([]T, 0, params.PageSize)
	if total == 0 {
		return items, 0, nil
	}
	if _, _, ok := pageWindow(params); !ok {
		return items, total, nil
	}
	if err := base().Scopes(Order(spec.SortColumns, params), Paginate(params)).Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
