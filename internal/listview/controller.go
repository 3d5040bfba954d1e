package listview

import (
	"net/url"
	"slices"
	"strconv"
	"strings"
)

// Options configures the allowed values of a list view.
type Options struct {
	// PageSizeOptions is the allowed page-size set. The first entry is the default.
	PageSizeOptions []int
	// SortableColumns restricts orderBy. Empty accepts any column name.
	SortableColumns []string
}

// DefaultOptions returns the dashboard-wide defaults with no column restriction.
func DefaultOptions() Options {
	return Options{PageSizeOptions: slices.Clone(DefaultPageSizeOptions)}
}

// Controller keeps a list view's state, its query string and its request
// parameters consistent. It never returns an error: malformed input degrades
// to defaults.
type Controller struct {
	pageSizes []int
	sortable  map[string]struct{}
}

// NewController builds a controller. Non-positive page sizes are dropped and an
// empty set falls back to DefaultPageSizeOptions.
func NewController(opts Options) *Controller {
	sizes := make([]int, 0, len(opts.PageSizeOptions))
	for _, size := range opts.PageSizeOptions {
		if size > 0 && !slices.Contains(sizes, size) {
			sizes = append(sizes, size)
		}
	}
	if len(sizes) == 0 {
		sizes = slices.Clone(DefaultPageSizeOptions)
	}

	var sortable map[string]struct{}
	if len(opts.SortableColumns) > 0 {
		sortable = make(map[string]struct{}, len(opts.SortableColumns))
		for _, col := range opts.SortableColumns {
			sortable[col] = struct{}{}
		}
	}

	return &Controller{pageSizes: sizes, sortable: sortable}
}

// DefaultPageSize is the first allowed page size.
func (c *Controller) DefaultPageSize() int { return c.pageSizes[0] }

// PageSizeOptions returns a copy of the allowed page sizes.
func (c *Controller) PageSizeOptions() []int { return slices.Clone(c.pageSizes) }

// Reset returns the default state.
func (c *Controller) Reset() State {
	return State{
		Page:            DefaultPage,
		PageSize:        c.DefaultPageSize(),
		SelectedRowKeys: []RowKey{},
	}
}

// InitFromLocation parses the query-string portion of the current URL.
func (c *Controller) InitFromLocation(rawQuery string) State {
	state := c.Reset()

	values := parseQuery(rawQuery)
	if len(values) == 0 {
		return state
	}

	if page, ok := c.parsePage(first(values, KeyPage)); ok {
		state.Page = page
	}
	if size, ok := c.parsePageSize(first(values, KeyPageSize)); ok {
		state.PageSize = size
	}
	state.Query = first(values, KeyQuery)

	orderBy := first(values, KeyOrderBy)
	orderSort := ParseOrderSort(first(values, KeyOrderSort))
	state.OrderBy, state.OrderSort = c.normalizeOrder(orderBy, orderSort)

	return state
}

// OnSearch applies a new filter text. The page returns to 1 and the selection is cleared.
func (c *Controller) OnSearch(s State, text string) State {
	next := c.normalize(s)
	next.Query = text
	next.Page = DefaultPage
	next.SelectedRowKeys = []RowKey{}
	return next
}

// OnSortOrPageChange applies the fields present in change, re-checks the
// orderBy/orderSort pairing and clears the selection.
func (c *Controller) OnSortOrPageChange(s State, change TableChange) State {
	next := c.normalize(s)

	if change.Page != nil && *change.Page >= DefaultPage {
		next.Page = *change.Page
	}
	if change.PageSize != nil && c.allowedPageSize(*change.PageSize) {
		next.PageSize = *change.PageSize
	}

	orderBy, orderSort := next.OrderBy, next.OrderSort
	if change.OrderBy != nil {
		orderBy = *change.OrderBy
	}
	if change.OrderSortRaw != nil {
		orderSort = ParseOrderSort(*change.OrderSortRaw)
	}
	next.OrderBy, next.OrderSort = c.normalizeOrder(orderBy, orderSort)

	next.SelectedRowKeys = []RowKey{}
	return next
}

// ToRequestParams projects s onto the paged-list query arguments.
func (c *Controller) ToRequestParams(s State) RequestParams {
	s = c.normalize(s)

	params := RequestParams{Page: s.Page, PageSize: s.PageSize}
	if s.Query != "" {
		q := s.Query
		params.Q = &q
	}
	if s.HasOrder() {
		orderBy, orderSort := s.OrderBy, s.OrderSort
		params.OrderBy = &orderBy
		params.OrderSort = &orderSort
	}
	return params
}

// ToQueryString serializes s. page and pageSize are omitted at their defaults.
// Keys are written in a fixed order: page, pageSize, q, orderBy, orderSort.
func (c *Controller) ToQueryString(s State) string {
	s = c.normalize(s)

	var b strings.Builder
	write := func(key, value string) {
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(key)
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(value))
	}

	if s.Page != DefaultPage {
		write(KeyPage, strconv.Itoa(s.Page))
	}
	if s.PageSize != c.DefaultPageSize() {
		write(KeyPageSize, strconv.Itoa(s.PageSize))
	}
	if s.Query != "" {
		write(KeyQuery, s.Query)
	}
	if s.HasOrder() {
		write(KeyOrderBy, s.OrderBy)
		write(KeyOrderSort, s.OrderSort.Token())
	}
	return b.String()
}

// MergeQueryString rewrites the list keys of rawCurrent from s and keeps every
// other key, in its original position.
func (c *Controller) MergeQueryString(rawCurrent string, s State) string {
	own := c.ToQueryString(s)

	var kept []string
	for _, pair := range strings.Split(strings.TrimPrefix(rawCurrent, "?"), "&") {
		if pair == "" {
			continue
		}
		key, _, _ := strings.Cut(pair, "=")
		if decoded, err := url.QueryUnescape(key); err == nil {
			key = decoded
		}
		if isListKey(key) {
			continue
		}
		kept = append(kept, pair)
	}

	if own != "" {
		kept = append(kept, own)
	}
	return strings.Join(kept, "&")
}

// SortOrderFor returns the direction a column header should display.
func (c *Controller) SortOrderFor(s State, column string) OrderSort {
	if s.HasOrder() && s.OrderBy == column {
		return s.OrderSort
	}
	return OrderSortNone
}

// normalize repairs any invariant violation of a caller-built state.
func (c *Controller) normalize(s State) State {
	if s.Page < DefaultPage {
		s.Page = DefaultPage
	}
	if !c.allowedPageSize(s.PageSize) {
		s.PageSize = c.DefaultPageSize()
	}
	s.OrderBy, s.OrderSort = c.normalizeOrder(s.OrderBy, s.OrderSort)
	if s.SelectedRowKeys == nil {
		s.SelectedRowKeys = []RowKey{}
	}
	return s
}

// normalizeOrder enforces: direction present iff a sortable column is present.
func (c *Controller) normalizeOrder(orderBy string, orderSort OrderSort) (string, OrderSort) {
	if orderBy == "" || orderSort == OrderSortNone || !c.sortableColumn(orderBy) {
		return "", OrderSortNone
	}
	return orderBy, orderSort
}

func (c *Controller) sortableColumn(col string) bool {
	if c.sortable == nil {
		return true
	}
	_, ok := c.sortable[col]
	return ok
}

func (c *Controller) allowedPageSize(size int) bool {
	return slices.Contains(c.pageSizes, size)
}

func (c *Controller) parsePage(raw string) (int, bool) {
	page, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || page < DefaultPage {
		return 0, false
	}
	return page, true
}

func (c *Controller) parsePageSize(raw string) (int, bool) {
	size, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || !c.allowedPageSize(size) {
		return 0, false
	}
	return size, true
}

// parseQuery decodes what it can. Undecodable pairs are dropped.
func parseQuery(raw string) url.Values {
	values, _ := url.ParseQuery(strings.TrimPrefix(raw, "?"))
	return values
}

func first(values url.Values, key string) string {
	if vs := values[key]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}

func isListKey(key string) bool {
	switch key {
	case KeyPage, KeyPageSize, KeyQuery, KeyOrderBy, KeyOrderSort:
		return true
	}
	return false
}
