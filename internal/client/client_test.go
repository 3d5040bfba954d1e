package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Payphone-Digital/dashboard/internal/listview"
	"github.com/Payphone-Digital/dashboard/pkg/circuit"
	"github.com/google/go-cmp/cmp"
)

func newTestClient(t *testing.T, h http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := New(Config{
		BaseURL:   srv.URL,
		Token:     "tok",
		Transport: DefaultTransportConfig(),
		Breaker:   circuit.Config{Threshold: 2, Timeout: time.Hour},
	}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func TestNew_RejectsBadURL(t *testing.T) {
	for _, raw := range []string{"localhost:8080", "ftp://host", "://"} {
		if _, err := New(Config{BaseURL: raw}, nil); err == nil {
			t.Errorf("Expected an error for %q", raw)
		}
	}
}

func TestEncodeParams(t *testing.T) {
	q, col, dir := "al ice", "email", listview.OrderSortDescending
	tests := []struct {
		name   string
		params listview.RequestParams
		want   url.Values
	}{
		{
			name:   "page only",
			params: listview.RequestParams{Page: 1, PageSize: 20},
			want:   url.Values{"page": {"1"}, "pageSize": {"20"}},
		},
		{
			name:   "everything",
			params: listview.RequestParams{Page: 2, PageSize: 50, Q: &q, OrderBy: &col, OrderSort: &dir},
			want: url.Values{
				"page": {"2"}, "pageSize": {"50"}, "q": {"al ice"},
				"orderBy": {"email"}, "orderSort": {"descend"},
			},
		},
		{
			name:   "column without direction is dropped",
			params: listview.RequestParams{Page: 1, PageSize: 20, OrderBy: &col},
			want:   url.Values{"page": {"1"}, "pageSize": {"20"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := url.ParseQuery(EncodeParams(tt.params))
			if err != nil {
				t.Fatalf("ParseQuery: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Query mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResource_Fetch(t *testing.T) {
	var gotPath, gotQuery, gotAuth string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotQuery, gotAuth = r.URL.Path, r.URL.RawQuery, r.Header.Get("Authorization")
		writeJSON(w, http.StatusOK, map[string]any{
			"items": []map[string]any{{"id": 1, "email": "a@example.com"}},
			"total": 21,
			"query": "page=2",
		})
	}))

	page, err := NewResource[Row](c, "users").Fetch(context.Background(), listview.RequestParams{Page: 2, PageSize: 20})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if gotPath != "/api/v1/users" || gotQuery != "page=2&pageSize=20" {
		t.Errorf("Unexpected request %s?%s", gotPath, gotQuery)
	}
	if gotAuth != "Bearer tok" {
		t.Errorf("Expected bearer token, got %q", gotAuth)
	}
	if page.Total != 21 || len(page.Items) != 1 || page.Items[0]["email"] != "a@example.com" {
		t.Errorf("Unexpected page %+v", page)
	}
}

func TestResource_FetchCollapsesIdenticalCalls(t *testing.T) {
	var hits atomic.Int32
	release := make(chan struct{})
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		<-release
		writeJSON(w, http.StatusOK, map[string]any{"items": []any{}, "total": 0})
	}))
	res := NewResource[Row](c, "coupons")
	params := listview.RequestParams{Page: 1, PageSize: 20}

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := res.Fetch(context.Background(), params); err != nil {
				t.Errorf("Fetch: %v", err)
			}
		}()
	}
	// Give the callers time to join the in-flight request.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	if n := hits.Load(); n != 1 {
		t.Errorf("Expected 1 request, got %d", n)
	}
}

func TestResource_FetchAfterDeleteSkipsOlderRequest(t *testing.T) {
	var gets atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			writeJSON(w, http.StatusOK, map[string]string{"message": listview.MsgDeletedSuccessfully})
			return
		}
		if gets.Add(1) == 1 {
			close(started)
			<-release
			writeJSON(w, http.StatusOK, map[string]any{"items": []any{map[string]any{"id": 1}, map[string]any{"id": 2}}, "total": 2})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": []any{map[string]any{"id": 1}}, "total": 1})
	}))
	res := NewResource[Row](c, "users")
	params := listview.RequestParams{Page: 1, PageSize: 20}

	done := make(chan struct{})
	go func() {
		defer close(done)
		if _, err := res.Fetch(context.Background(), params); err != nil {
			t.Errorf("Fetch: %v", err)
		}
	}()
	<-started

	if err := res.Delete(context.Background(), listview.IntKey(2)); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	page, err := res.Fetch(context.Background(), params)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	close(release)
	<-done

	if page.Total != 1 || len(page.Items) != 1 {
		t.Errorf("Expected the post-delete page, got %+v", page)
	}
}

func TestResource_Delete(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       any
		wantErr    string
		wantNotFnd bool
	}{
		{"ok", http.StatusOK, map[string]string{"message": listview.MsgDeletedSuccessfully}, "", false},
		{"missing", http.StatusNotFound, map[string]string{"message": "user not found"}, "user not found", true},
		{"forbidden", http.StatusForbidden, map[string]string{"message": "users cannot delete themselves"}, "users cannot delete themselves", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotMethod, gotPath string
			c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotMethod, gotPath = r.Method, r.URL.Path
				writeJSON(w, tt.status, tt.body)
			}))

			err := NewResource[Row](c, "users").Delete(context.Background(), listview.IntKey(7))
			if gotMethod != http.MethodDelete || gotPath != "/api/v1/users/7" {
				t.Errorf("Unexpected request %s %s", gotMethod, gotPath)
			}
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Unexpected error: %v", err)
				}
				return
			}
			if err == nil || err.Error() != tt.wantErr {
				t.Fatalf("Expected %q, got %v", tt.wantErr, err)
			}
			if IsNotFound(err) != tt.wantNotFnd {
				t.Errorf("IsNotFound = %v, want %v", IsNotFound(err), tt.wantNotFnd)
			}
		})
	}
}

func TestClient_BreakerOpensOnServerErrors(t *testing.T) {
	var hits atomic.Int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "internal server error"})
	}))
	res := NewResource[Row](c, "articles")

	for i := 0; i < 2; i++ {
		_, err := res.Fetch(context.Background(), listview.RequestParams{Page: i + 1, PageSize: 20})
		var apiErr *APIError
		if !errors.As(err, &apiErr) || apiErr.Status != http.StatusInternalServerError {
			t.Fatalf("Expected a 500 APIError, got %v", err)
		}
	}

	_, err := res.Fetch(context.Background(), listview.RequestParams{Page: 9, PageSize: 20})
	if !errors.Is(err, circuit.ErrCircuitOpen) {
		t.Fatalf("Expected ErrCircuitOpen, got %v", err)
	}
	if n := hits.Load(); n != 2 {
		t.Errorf("Open circuit must not reach the server, got %d hits", n)
	}
}

func TestClient_ClientErrorsKeepCircuitClosed(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "coupon not found"})
	}))
	res := NewResource[Row](c, "coupons")

	for i := 0; i < 5; i++ {
		_ = res.Delete(context.Background(), listview.IntKey(int64(i+1)))
	}
	if s := c.Breaker().State(); s != circuit.StateClosed {
		t.Errorf("Expected CLOSED, got %s", s)
	}
}

func TestClient_Login(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/auth/login" {
			writeJSON(w, http.StatusOK, map[string]any{"items": []any{}, "total": 0})
			return
		}
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["password"] != "secret" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "invalid credentials"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"token": "fresh", "expires_in": 3600})
	}))
	c.SetToken("")

	if _, err := c.Login(context.Background(), "admin@example.com", "wrong"); err == nil || err.Error() != "invalid credentials" {
		t.Fatalf("Expected invalid credentials, got %v", err)
	}
	token, err := c.Login(context.Background(), "admin@example.com", "secret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token != "fresh" || c.Token() != "fresh" {
		t.Errorf("Expected token to be kept, got %q / %q", token, c.Token())
	}
}

func TestResource_DrivesListView(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"items": []map[string]any{{"id": 3}},
			"total": 1,
		})
	}))
	res := NewResource[Row](c, "addresses")
	loc := listview.NewMemoryLocation("/addresses?pageSize=50&orderBy=city&orderSort=ascend")

	view := listview.NewListView(listview.ViewConfig[Row]{
		Controller: listview.NewController(listview.DefaultOptions()),
		Location:   loc,
		Fetcher:    res,
		Deleter:    res,
	})
	defer view.Close()

	if err := view.Activate(context.Background()); err != nil {
		t.Fatalf("Activate: %v", err)
	}
	view.Wait()

	snap := view.Snapshot()
	if snap.Err != nil || snap.Data == nil || snap.Data.Total != 1 {
		t.Fatalf("Unexpected snapshot %+v", snap)
	}
	if loc.HistoryLen() != 1 {
		t.Errorf("Activation must replace, not push; history=%d", loc.HistoryLen())
	}
}
