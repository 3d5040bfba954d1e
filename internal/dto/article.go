package dto

import "time"

type CreateArticleRequest struct {
	Title       string   `json:"title" binding:"required,min=1,max=200"`
	Slug        string   `json:"slug" binding:"omitempty,max=220"`
	CategoryID  *uint    `json:"category_id"`
	Status      *int     `json:"status" binding:"omitempty,oneof=0 1"`
	Description string   `json:"description" binding:"omitempty,max=500"`
	Content     string   `json:"content"`
	Tags        []string `json:"tags" binding:"omitempty,dive,min=1,max=50"`
}

type UpdateArticleRequest struct {
	Title       string   `json:"title" binding:"omitempty,min=1,max=200"`
	Slug        string   `json:"slug" binding:"omitempty,max=220"`
	CategoryID  *uint    `json:"category_id"`
	Status      *int     `json:"status" binding:"omitempty,oneof=0 1"`
	Description *string  `json:"description" binding:"omitempty,max=500"`
	Content     *string  `json:"content"`
	Tags        []string `json:"tags" binding:"omitempty,dive,min=1,max=50"`
}

type ArticleResponse struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	CategoryID  *uint     `json:"category_id,omitempty"`
	UserID      uint      `json:"user_id"`
	Status      int       `json:"status"`
	Description string    `json:"description"`
	Content     string    `json:"content,omitempty"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
