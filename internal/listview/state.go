package listview

import (
	"math"
	"slices"
	"strconv"
	"strings"
)

// Query string keys
const (
	KeyPage      = "page"
	KeyPageSize  = "pageSize"
	KeyQuery     = "q"
	KeyOrderBy   = "orderBy"
	KeyOrderSort = "orderSort"
)

// Sort direction tokens as they appear in the address bar
const (
	TokenAscend  = "ascend"
	TokenDescend = "descend"
)

const DefaultPage = 1

// DefaultPageSizeOptions is the allowed page-size set; the first entry is the default.
var DefaultPageSizeOptions = []int{20, 50, 100, 200}

// OrderSort is the sort direction of a list view.
type OrderSort int

const (
	OrderSortNone OrderSort = iota
	OrderSortAscending
	OrderSortDescending
)

// ParseOrderSort normalizes an external sort token. Unknown tokens yield OrderSortNone.
func ParseOrderSort(raw string) OrderSort {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case TokenAscend, "asc":
		return OrderSortAscending
	case TokenDescend, "desc":
		return OrderSortDescending
	default:
		return OrderSortNone
	}
}

// Token returns the address-bar token, or "" for OrderSortNone.
func (o OrderSort) Token() string {
	switch o {
	case OrderSortAscending:
		return TokenAscend
	case OrderSortDescending:
		return TokenDescend
	default:
		return ""
	}
}

// SQL returns the direction keyword used in ORDER BY clauses.
func (o OrderSort) SQL() string {
	if o == OrderSortDescending {
		return "DESC"
	}
	return "ASC"
}

func (o OrderSort) String() string {
	switch o {
	case OrderSortAscending:
		return "ASCENDING"
	case OrderSortDescending:
		return "DESCENDING"
	default:
		return "NONE"
	}
}

// MarshalText encodes the direction as its address-bar token.
func (o OrderSort) MarshalText() ([]byte, error) {
	return []byte(o.Token()), nil
}

// UnmarshalText never fails; unknown tokens decode to OrderSortNone.
func (o *OrderSort) UnmarshalText(text []byte) error {
	*o = ParseOrderSort(string(text))
	return nil
}

// RowKey identifies a table row. Rows are keyed either by integer ids or by strings.
type RowKey struct {
	str   string
	num   int64
	isNum bool
}

func IntKey(id int64) RowKey { return RowKey{num: id, isNum: true} }
func StringKey(id string) RowKey { return RowKey{str: id} }

// ParseRowKey keys numeric identifiers as integers and everything else as strings.
func ParseRowKey(raw string) RowKey {
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return IntKey(n)
	}
	return StringKey(raw)
}

func (k RowKey) IsInt() bool { return k.isNum }

func (k RowKey) Int() (int64, bool) { return k.num, k.isNum }

func (k RowKey) String() string {
	if k.isNum {
		return strconv.FormatInt(k.num, 10)
	}
	return k.str
}

// State is the visible state of one list page.
type State struct {
	Page            int
	PageSize        int
	Query           string
	OrderBy         string
	OrderSort       OrderSort
	SelectedRowKeys []RowKey
}

// HasQuery reports whether a search filter is active.
func (s State) HasQuery() bool { return s.Query != "" }

// HasOrder reports whether a sort column is active.
func (s State) HasOrder() bool { return s.OrderBy != "" && s.OrderSort != OrderSortNone }

// WithSelection returns a copy of s with the given row selection.
func (s State) WithSelection(keys ...RowKey) State {
	s.SelectedRowKeys = slices.Clone(keys)
	if s.SelectedRowKeys == nil {
		s.SelectedRowKeys = []RowKey{}
	}
	return s
}

// Equal compares every serialized field. Row selection is ignored.
func (s State) Equal(other State) bool {
	return s.Page == other.Page &&
		s.PageSize == other.PageSize &&
		s.Query == other.Query &&
		s.OrderBy == other.OrderBy &&
		s.OrderSort == other.OrderSort
}

// TableChange is a partial update coming from a table's pagination or sort control.
// Nil fields are left untouched.
type TableChange struct {
	Page         *int
	PageSize     *int
	OrderBy      *string
	OrderSortRaw *string
}

// RequestParams are the arguments of a paged-list query. Absent fields are nil.
type RequestParams struct {
	Page      int        `json:"page"`
	PageSize  int        `json:"pageSize"`
	Q         *string    `json:"q,omitempty"`
	OrderBy   *string    `json:"orderBy,omitempty"`
	OrderSort *OrderSort `json:"orderSort,omitempty"`
}

// Offset is the number of rows preceding the requested page. It saturates at
// math.MaxInt instead of wrapping.
func (p RequestParams) Offset() int {
	if p.Page <= 1 || p.PageSize <= 0 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.PageSize {
		return math.MaxInt
	}
	return (p.Page - 1) * p.PageSize
}

// Search returns the filter text or "".
func (p RequestParams) Search() string {
	if p.Q == nil {
		return ""
	}
	return *p.Q
}

// Order returns the sort column and direction, or ("", OrderSortNone).
func (p RequestParams) Order() (string, OrderSort) {
	if p.OrderBy == nil || p.OrderSort == nil {
		return "", OrderSortNone
	}
	return *p.OrderBy, *p.OrderSort
}

// Equal compares two parameter sets by value.
func (p RequestParams) Equal(other RequestParams) bool {
	return p.Page == other.Page &&
		p.PageSize == other.PageSize &&
		eqPtr(p.Q, other.Q) &&
		eqPtr(p.OrderBy, other.OrderBy) &&
		eqPtr(p.OrderSort, other.OrderSort)
}

func eqPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
