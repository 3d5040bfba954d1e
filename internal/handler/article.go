package handler

import (
	"context"
	"net/http"

	"github.com/Payphone-Digital/dashboard/internal/constants"
	"github.com/Payphone-Digital/dashboard/internal/dto"
	apperrors "github.com/Payphone-Digital/dashboard/internal/errors"
	"github.com/Payphone-Digital/dashboard/internal/listview"
	"github.com/gin-gonic/gin"
)

type Articles interface {
	List(ctx context.Context, params listview.RequestParams) (listview.Page[dto.ArticleResponse], error)
	GetByID(ctx context.Context, id uint) (*dto.ArticleResponse, error)
	Create(ctx context.Context, authorID uint, req *dto.CreateArticleRequest) (*dto.ArticleResponse, error)
	Update(ctx context.Context, id uint, req *dto.UpdateArticleRequest) (*dto.ArticleResponse, error)
	Delete(ctx context.Context, id uint) error
}

type ArticleHandler struct {
	articles Articles
	list     *listview.Controller
}

func NewArticleHandler(articles Articles, list *listview.Controller) *ArticleHandler {
	return &ArticleHandler{articles: articles, list: list}
}

func (h *ArticleHandler) GetAll(c *gin.Context) {
	serveList(c, h.list, "articles", h.articles.List)
}

func (h *ArticleHandler) GetByID(c *gin.Context) {
	ctx := handlerContext(c, "GetArticleByID")

	id, ok := parseID(ctx, c)
	if !ok {
		return
	}
	article, err := h.articles.GetByID(ctx, id)
	if err != nil {
		respondError(ctx, c, "Failed to fetch article", err)
		return
	}
	c.JSON(http.StatusOK, constants.BuildDataResponse(article))
}

// Create stores an article authored by the authenticated user.
func (h *ArticleHandler) Create(c *gin.Context) {
	ctx := handlerContext(c, "CreateArticle")

	var req dto.CreateArticleRequest
	if !bindJSON(ctx, c, &req) {
		return
	}
	authorID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse(apperrors.ErrUnauthorized.Message, nil))
		return
	}

	article, err := h.articles.Create(ctx, authorID, &req)
	if err != nil {
		respondError(ctx, c, "Failed to create article", err)
		return
	}
	c.JSON(http.StatusCreated, constants.BuildDataResponse(article))
}

func (h *ArticleHandler) Update(c *gin.Context) {
	ctx := handlerContext(c, "UpdateArticle")

	id, ok := parseID(ctx, c)
	if !ok {
		return
	}
	var req dto.UpdateArticleRequest
	if !bindJSON(ctx, c, &req) {
		return
	}

	article, err := h.articles.Update(ctx, id, &req)
	if err != nil {
		respondError(ctx, c, "Failed to update article", err)
		return
	}
	c.JSON(http.StatusOK, constants.BuildDataResponse(article))
}

func (h *ArticleHandler) Delete(c *gin.Context) {
	ctx := handlerContext(c, "DeleteArticle")

	id, ok := parseID(ctx, c)
	if !ok {
		return
	}
	if err := h.articles.Delete(ctx, id); err != nil {
		respondError(ctx, c, "Failed to delete article", err)
		return
	}
	c.JSON(http.StatusOK, constants.BuildSuccessResponse(listview.MsgDeletedSuccessfully))
}
