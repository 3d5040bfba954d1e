package listview

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
)

const MsgDeletedSuccessfully = "Deleted successfully"

// ErrViewClosed is returned by mutations on a closed view.
var ErrViewClosed = errors.New("list view is closed")

// Page is one page of a paged-list query.
type Page[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
}

// Fetcher runs the paged-list query.
type Fetcher[T any] interface {
	Fetch(ctx context.Context, params RequestParams) (Page[T], error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc[T any] func(ctx context.Context, params RequestParams) (Page[T], error)

func (f FetcherFunc[T]) Fetch(ctx context.Context, params RequestParams) (Page[T], error) {
	return f(ctx, params)
}

// Deleter runs the row-delete mutation.
type Deleter interface {
	Delete(ctx context.Context, key RowKey) error
}

// DeleterFunc adapts a function to Deleter.
type DeleterFunc func(ctx context.Context, key RowKey) error

func (f DeleterFunc) Delete(ctx context.Context, key RowKey) error { return f(ctx, key) }

// Notifier shows transient messages.
type Notifier interface {
	Success(message string)
	Error(message string)
}

type nopNotifier struct{}

func (nopNotifier) Success(string) {}
func (nopNotifier) Error(string)   {}

// Snapshot is what the view renders at one instant.
type Snapshot[T any] struct {
	State State
	// Params are the request parameters of the current state.
	Params RequestParams
	// Data is the last applied result; it stays visible while a refetch is loading.
	Data *Page[T]
	// DataParams are the parameters Data was fetched with.
	DataParams RequestParams
	Loading    bool
	Deleting   bool
	// Err replaces the list content when the latest applied fetch failed.
	Err error
}

// ViewConfig wires a ListView's collaborators. Deleter, Notifier and Logger are optional.
type ViewConfig[T any] struct {
	Controller *Controller
	Location   Location
	Fetcher    Fetcher[T]
	Deleter    Deleter
	Notifier   Notifier
	Logger     *zap.Logger
}

// ListView owns the state of one list page. Every mutation replaces the
// location and issues a fetch; responses whose parameters no longer match the
// current state are dropped.
type ListView[T any] struct {
	mu       sync.Mutex
	wg       sync.WaitGroup
	ctrl     *Controller
	loc      Location
	fetcher  Fetcher[T]
	deleter  Deleter
	notifier Notifier
	log      *zap.Logger

	state      State
	data       *Page[T]
	dataParams RequestParams
	err        error
	deleting   bool
	closed     bool

	issued  uint64
	applied uint64
}

// NewListView builds a view. Call Activate to read the location and fetch.
func NewListView[T any](cfg ViewConfig[T]) *ListView[T] {
	ctrl := cfg.Controller
	if ctrl == nil {
		ctrl = NewController(DefaultOptions())
	}
	notifier := cfg.Notifier
	if notifier == nil {
		notifier = nopNotifier{}
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &ListView[T]{
		ctrl:     ctrl,
		loc:      cfg.Location,
		fetcher:  cfg.Fetcher,
		deleter:  cfg.Deleter,
		notifier: notifier,
		log:      log,
		state:    ctrl.Reset(),
	}
}

// Activate builds the state from the location, canonicalizes the location and fetches.
func (v *ListView[T]) Activate(ctx context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return ErrViewClosed
	}

	v.state = v.ctrl.InitFromLocation(v.loc.Query())
	v.log.Debug("List view activated",
		zap.String("query", v.loc.Query()),
		zap.Int("page", v.state.Page),
		zap.Int("page_size", v.state.PageSize),
	)
	v.commitLocked(ctx)
	return nil
}

// Search applies a new filter text.
func (v *ListView[T]) Search(ctx context.Context, text string) error {
	return v.mutate(ctx, func(s State) State { return v.ctrl.OnSearch(s, text) })
}

// Change applies a table pagination or sort event.
func (v *ListView[T]) Change(ctx context.Context, change TableChange) error {
	return v.mutate(ctx, func(s State) State { return v.ctrl.OnSortOrPageChange(s, change) })
}

// Select replaces the row selection. It neither touches the location nor fetches.
func (v *ListView[T]) Select(keys ...RowKey) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state = v.state.WithSelection(keys...)
}

// Refetch re-issues the query for the current state.
func (v *ListView[T]) Refetch(ctx context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return ErrViewClosed
	}
	v.fetchLocked(ctx)
	return nil
}

// DeleteRow runs the delete mutation. On success the current query is refetched;
// on failure the message is shown and nothing else changes.
func (v *ListView[T]) DeleteRow(ctx context.Context, key RowKey) error {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return ErrViewClosed
	}
	if v.deleter == nil {
		v.mu.Unlock()
		return errors.New("list view has no deleter")
	}
	v.deleting = true
	v.mu.Unlock()

	err := v.deleter.Delete(ctx, key)

	v.mu.Lock()
	defer v.mu.Unlock()
	v.deleting = false

	if err != nil {
		v.log.Warn("Row delete failed", zap.String("row_key", key.String()), zap.Error(err))
		v.notifier.Error(err.Error())
		return err
	}

	v.log.Debug("Row deleted", zap.String("row_key", key.String()))
	v.notifier.Success(MsgDeletedSuccessfully)
	if !v.closed {
		v.fetchLocked(ctx)
	}
	return nil
}

// Snapshot returns the current render state.
func (v *ListView[T]) Snapshot() Snapshot[T] {
	v.mu.Lock()
	defer v.mu.Unlock()
	return Snapshot[T]{
		State:      v.state.WithSelection(v.state.SelectedRowKeys...),
		Params:     v.ctrl.ToRequestParams(v.state),
		Data:       v.data,
		DataParams: v.dataParams,
		Loading:    v.issued > v.applied,
		Deleting:   v.deleting,
		Err:        v.err,
	}
}

// State returns the current state.
func (v *ListView[T]) State() State {
	return v.Snapshot().State
}

// Wait blocks until every issued fetch has resolved.
func (v *ListView[T]) Wait() {
	v.wg.Wait()
}

// Closed reports whether Close has been called.
func (v *ListView[T]) Closed() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.closed
}

// Close tears the view down. Results still in flight are discarded.
func (v *ListView[T]) Close() {
	v.mu.Lock()
	v.closed = true
	v.mu.Unlock()
	v.wg.Wait()
}

func (v *ListView[T]) mutate(ctx context.Context, apply func(State) State) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return ErrViewClosed
	}
	v.state = apply(v.state)
	v.commitLocked(ctx)
	return nil
}

func (v *ListView[T]) commitLocked(ctx context.Context) {
	v.loc.Replace(v.ctrl.MergeQueryString(v.loc.Query(), v.state))
	v.fetchLocked(ctx)
}

func (v *ListView[T]) fetchLocked(ctx context.Context) {
	v.issued++
	gen := v.issued
	params := v.ctrl.ToRequestParams(v.state)

	v.wg.Add(1)
	go func() {
		defer v.wg.Done()
		page, err := v.fetcher.Fetch(ctx, params)
		v.resolve(gen, params, page, err)
	}()
}

func (v *ListView[T]) resolve(gen uint64, params RequestParams, page Page[T], err error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		return
	}
	if gen <= v.applied || !params.Equal(v.ctrl.ToRequestParams(v.state)) {
		v.log.Debug("Dropping stale list response",
			zap.Uint64("generation", gen),
			zap.Uint64("applied", v.applied),
			zap.Int("page", params.Page),
		)
		return
	}

	v.applied = gen
	v.dataParams = params
	if err != nil {
		v.log.Warn("List fetch failed", zap.Int("page", params.Page), zap.Error(err))
		v.data = nil
		v.err = err
		return
	}
	v.data = &page
	v.err = nil
}
