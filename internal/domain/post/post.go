package post

import (
	"errors"
	"time"
)

type Post struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Published   bool      `json:"published"`
	PublishedAt time.Time `json:"publishedAt"`
	AuthorID    string    `json:"authorId"`
}

var ErrNotFound = errors.New("post not found")

// Author is the only author detail the read endpoints expose.
type Author struct {
	Name string `json:"name"`
}

// View is the fixed projection returned by the read endpoints: never the
// author id or email.
type View struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	PublishedAt time.Time `json:"publishedAt"`
	Author      Author    `json:"author"`
}

type CreateBlogRequest struct {
	Title   string `json:"title" binding:"required,min=1"`
	Content string `json:"content" binding:"required,min=1"`
}

// with pointers if optional, it will be nil and the store keeps the old value
type UpdateBlogRequest struct {
	ID      string  `json:"id" binding:"required"`
	Title   *string `json:"title" binding:"omitempty,min=1"`
	Content *string `json:"content" binding:"omitempty,min=1"`
}
