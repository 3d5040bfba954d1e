package repository

import (
	"context"

	"github.com/Payphone-Digital/dashboard/internal/model"
	"github.com/Payphone-Digital/dashboard/pkg/database"
	"gorm.io/gorm"
)

// ArticleListSpec is how the articles list is searched and sorted.
var ArticleListSpec = database.ListSpec{
	SearchColumns: []string{"title", "slug", "description"},
	SortColumns: map[string]string{
		"id":          "id",
		"title":       "title",
		"slug":        "slug",
		"status":      "status",
		"category_id": "category_id",
		"created_at":  "created_at",
		"updated_at":  "updated_at",
	},
}

type ArticleRepository struct {
	crudRepository[model.Article]
}

func NewArticleRepository(db *gorm.DB) *ArticleRepository {
	return &ArticleRepository{crudRepository[model.Article]{db: db, table: "articles", lister: ArticleListSpec}}
}

// SlugTaken reports whether another article already uses slug.
func (r *ArticleRepository) SlugTaken(ctx context.Context, slug string, excludeID uint) (bool, error) {
	ctx = r.ctx(ctx, "SlugTaken")

	var count int64
	query := r.db.WithContext(ctx).Model(&model.Article{}).Where("slug = ?", slug)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
