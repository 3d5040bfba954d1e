package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Payphone-Digital/dashboard/internal/dto"
	apperrors "github.com/Payphone-Digital/dashboard/internal/errors"
	"github.com/Payphone-Digital/dashboard/internal/listview"
	"github.com/Payphone-Digital/dashboard/internal/model"
	"github.com/google/go-cmp/cmp"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello World", "hello-world"},
		{"  Go 1.22: What's new?  ", "go-1-22-what-s-new"},
		{"already-a-slug", "already-a-slug"},
		{"Café Olé", "café-olé"},
		{"!!!", ""},
	}

	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestArticleService_Create(t *testing.T) {
	existing := model.Article{Title: "Hello World", Slug: "hello-world"}
	existing.ID = 1
	store := newFakeArticleStore(existing)
	svc := NewArticleService(store, nil)

	t.Run("derived slug gets a suffix when taken", func(t *testing.T) {
		res, err := svc.Create(context.Background(), 7, &dto.CreateArticleRequest{Title: "Hello, World"})
		if err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
		if !strings.HasPrefix(res.Slug, "hello-world-") || len(res.Slug) != len("hello-world-")+8 {
			t.Errorf("Unexpected slug %q", res.Slug)
		}
		if res.UserID != 7 {
			t.Errorf("Expected author 7, got %d", res.UserID)
		}
	})

	t.Run("explicit slug conflicts", func(t *testing.T) {
		_, err := svc.Create(context.Background(), 7, &dto.CreateArticleRequest{Title: "Other", Slug: "Hello World"})
		if !errors.Is(err, apperrors.ErrSlugExists) {
			t.Errorf("Expected ErrSlugExists, got %v", err)
		}
	})

	t.Run("tags round trip through JSON", func(t *testing.T) {
		res, err := svc.Create(context.Background(), 7, &dto.CreateArticleRequest{Title: "Tagged", Tags: []string{"go", "gin"}})
		if err != nil {
			t.Fatal(err)
		}
		got, err := svc.GetByID(context.Background(), res.ID)
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff([]string{"go", "gin"}, got.Tags); diff != "" {
			t.Errorf("Tags mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestArticleService_UpdateKeepsOwnSlug(t *testing.T) {
	a := model.Article{Title: "First", Slug: "first"}
	a.ID = 1
	svc := NewArticleService(newFakeArticleStore(a), nil)

	res, err := svc.Update(context.Background(), 1, &dto.UpdateArticleRequest{Slug: "first", Title: "First again"})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if res.Slug != "first" || res.Title != "First again" {
		t.Errorf("Unexpected article %+v", res)
	}

	if _, err := svc.Update(context.Background(), 2, &dto.UpdateArticleRequest{Title: "x"}); !errors.Is(err, apperrors.ErrArticleNotFound) {
		t.Errorf("Expected ErrArticleNotFound, got %v", err)
	}
}

func TestArticleService_ListOmitsContent(t *testing.T) {
	a := model.Article{Title: "Long read", Slug: "long-read", Content: "body"}
	a.ID = 1
	svc := NewArticleService(newFakeArticleStore(a), nil)

	page, err := svc.List(context.Background(), listview.RequestParams{Page: 1, PageSize: 20})
	if err != nil {
		t.Fatal(err)
	}
	if page.Total != 1 || len(page.Items) != 1 {
		t.Fatalf("Unexpected page %+v", page)
	}
	if page.Items[0].Content != "" {
		t.Errorf("Expected list rows without content, got %q", page.Items[0].Content)
	}
	if diff := cmp.Diff([]string{}, page.Items[0].Tags); diff != "" {
		t.Errorf("Expected empty tags (-want +got):\n%s", diff)
	}
}
