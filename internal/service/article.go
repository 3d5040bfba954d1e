package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"unicode"

	"github.com/Payphone-Digital/dashboard/internal/constants"
	"github.com/Payphone-Digital/dashboard/internal/dto"
	apperrors "github.com/Payphone-Digital/dashboard/internal/errors"
	"github.com/Payphone-Digital/dashboard/internal/listview"
	"github.com/Payphone-Digital/dashboard/internal/model"
	ctxutil "github.com/Payphone-Digital/dashboard/pkg/context"
	"github.com/Payphone-Digital/dashboard/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ArticleStore is the persistence ArticleService needs.
type ArticleStore interface {
	List(ctx context.Context, params listview.RequestParams) ([]model.Article, int64, error)
	GetByID(ctx context.Context, id uint) (*model.Article, error)
	Create(ctx context.Context, article *model.Article) error
	Updates(ctx context.Context, id uint, updates map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
	SlugTaken(ctx context.Context, slug string, excludeID uint) (bool, error)
}

type ArticleService struct {
	repo  ArticleStore
	cache *ListCache
}

func NewArticleService(repo ArticleStore, cache *ListCache) *ArticleService {
	return &ArticleService{repo: repo, cache: cache}
}

func toArticleResponse(a *model.Article) dto.ArticleResponse {
	tags := []string{}
	if len(a.Tags) > 0 {
		_ = json.Unmarshal(a.Tags, &tags)
	}
	return dto.ArticleResponse{
		ID:          a.ID,
		Title:       a.Title,
		Slug:        a.Slug,
		CategoryID:  a.CategoryID,
		UserID:      a.UserID,
		Status:      a.Status,
		Description: a.Description,
		Content:     a.Content,
		Tags:        tags,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

// Slugify lowercases title and joins its letter and digit runs with dashes.
func Slugify(title string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
			continue
		}
		dash = true
	}
	return b.String()
}

func encodeTags(tags []string) datatypes.JSON {
	if tags == nil {
		tags = []string{}
	}
	raw, _ := json.Marshal(tags)
	return datatypes.JSON(raw)
}

// List returns one page of articles; list rows omit the content body.
func (s *ArticleService) List(ctx context.Context, params listview.RequestParams) (listview.Page[dto.ArticleResponse], error) {
	ctx = ctxutil.WithFunction(ctx, constants.ModuleArticle, "List")

	page, err := cachedList(ctx, s.cache, constants.CacheKeyArticle, params, func(ctx context.Context) (listview.Page[dto.ArticleResponse], error) {
		rows, total, err := s.repo.List(ctx, params)
		if err != nil {
			return listview.Page[dto.ArticleResponse]{}, err
		}
		items := make([]dto.ArticleResponse, len(rows))
		for i := range rows {
			items[i] = toArticleResponse(&rows[i])
			items[i].Content = ""
		}
		return listview.Page[dto.ArticleResponse]{Items: items, Total: total}, nil
	})
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to list articles").
			Int("page", params.Page).
			Err(err).
			Log()
		return listview.Page[dto.ArticleResponse]{}, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return page, nil
}

func (s *ArticleService) GetByID(ctx context.Context, id uint) (*dto.ArticleResponse, error) {
	ctx = ctxutil.WithFunction(ctx, constants.ModuleArticle, "GetByID")

	article, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, apperrors.ErrArticleNotFound)
	}
	res := toArticleResponse(article)
	return &res, nil
}

// Create stores a new article. Without an explicit slug one is derived from the title.
func (s *ArticleService) Create(ctx context.Context, authorID uint, req *dto.CreateArticleRequest) (*dto.ArticleResponse, error) {
	ctx = ctxutil.WithFunction(ctx, constants.ModuleArticle, "Create")

	slug, err := s.resolveSlug(ctx, req.Slug, req.Title, 0)
	if err != nil {
		return nil, err
	}

	article := &model.Article{
		Title:       strings.TrimSpace(req.Title),
		Slug:        slug,
		CategoryID:  req.CategoryID,
		UserID:      authorID,
		Description: req.Description,
		Content:     req.Content,
		Tags:        encodeTags(req.Tags),
	}
	if req.Status != nil {
		article.Status = *req.Status
	}

	if err := s.repo.Create(ctx, article); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	s.cache.Invalidate(ctx, constants.CacheKeyArticle)

	logger.InfoWithContext(ctx, "Article created").
		Uint("article_id", article.ID).
		String("slug", article.Slug).
		Log()

	res := toArticleResponse(article)
	return &res, nil
}

func (s *ArticleService) Update(ctx context.Context, id uint, req *dto.UpdateArticleRequest) (*dto.ArticleResponse, error) {
	ctx = ctxutil.WithFunction(ctx, constants.ModuleArticle, "Update")

	updates := make(map[string]interface{})
	if title := strings.TrimSpace(req.Title); title != "" {
		updates["title"] = title
	}
	if req.Slug != "" {
		slug, err := s.resolveSlug(ctx, req.Slug, "", id)
		if err != nil {
			return nil, err
		}
		updates["slug"] = slug
	}
	if req.CategoryID != nil {
		updates["category_id"] = *req.CategoryID
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Content != nil {
		updates["content"] = *req.Content
	}
	if req.Tags != nil {
		updates["tags"] = encodeTags(req.Tags)
	}

	if err := s.repo.Updates(ctx, id, updates); err != nil {
		return nil, mapNotFound(err, apperrors.ErrArticleNotFound)
	}
	s.cache.Invalidate(ctx, constants.CacheKeyArticle)

	return s.GetByID(ctx, id)
}

func (s *ArticleService) Delete(ctx context.Context, id uint) error {
	ctx = ctxutil.WithFunction(ctx, constants.ModuleArticle, "Delete")

	if err := s.repo.Delete(ctx, id); err != nil {
		return mapNotFound(err, apperrors.ErrArticleNotFound)
	}
	s.cache.Invalidate(ctx, constants.CacheKeyArticle)

	logger.InfoWithContext(ctx, "Article deleted").
		Uint("article_id", id).
		Log()
	return nil
}

// resolveSlug validates an explicit slug, or derives a free one from title.
func (s *ArticleService) resolveSlug(ctx context.Context, explicit, title string, excludeID uint) (string, error) {
	if explicit != "" {
		slug := Slugify(explicit)
		if slug == "" {
			return "", apperrors.ErrInvalidInput
		}
		taken, err := s.repo.SlugTaken(ctx, slug, excludeID)
		if err != nil {
			return "", apperrors.WrapError(apperrors.ErrInternal, err)
		}
		if taken {
			return "", apperrors.ErrSlugExists
		}
		return slug, nil
	}

	slug := Slugify(title)
	if slug == "" {
		return uuid.NewString(), nil
	}
	taken, err := s.repo.SlugTaken(ctx, slug, excludeID)
	if err != nil {
		return "", apperrors.WrapError(apperrors.ErrInternal, err)
	}
	if taken {
		slug += "-" + uuid.NewString()[:8]
	}
	return slug, nil
}

// mapNotFound turns gorm.ErrRecordNotFound into notFound and anything else into ErrInternal.
func mapNotFound(err error, notFound *apperrors.DomainError) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return apperrors.WrapError(apperrors.ErrInternal, err)
}
