// Package domain defines the entities and error vocabulary of the news service.
package domain

import "time"

// Topic is a subject area articles are filed under. The slug is the key.
type Topic struct {
	Slug        string `json:"slug"`
	Description string `json:"description"`
	ImgURL      string `json:"img_url"`
}

// User is an author identified by a globally unique username.
// LikedArticles is an ordered sequence of article IDs; duplicates are
// permitted and preserved.
type User struct {
	Username      string  `json:"username"`
	Name          string  `json:"name"`
	AvatarURL     string  `json:"avatar_url"`
	LikedArticles []int64 `json:"liked_articles"`
}

// UserPatch carries a partial update for a user. Nil pointer fields are left
// untouched; LikedArticles replaces the whole stored sequence when
// SetLikedArticles is true.
type UserPatch struct {
	Name             *string
	AvatarURL        *string
	LikedArticles    []int64
	SetLikedArticles bool
}

// IsEmpty reports whether the patch would touch no fields.
func (p UserPatch) IsEmpty() bool {
	return p.Name == nil && p.AvatarURL == nil && !p.SetLikedArticles
}

// Article is a full article row.
type Article struct {
	ArticleID     int64     `json:"article_id"`
	Title         string    `json:"title"`
	Topic         string    `json:"topic"`
	Author        string    `json:"author"`
	Body          string    `json:"body"`
	CreatedAt     time.Time `json:"created_at"`
	Votes         int       `json:"votes"`
	ArticleImgURL string    `json:"article_img_url"`
}

// ArticleSummary is an article listing row: no body, with the derived
// comment count aggregated over the comments table.
type ArticleSummary struct {
	ArticleID     int64     `json:"article_id"`
	Title         string    `json:"title"`
	Topic         string    `json:"topic"`
	Author        string    `json:"author"`
	CreatedAt     time.Time `json:"created_at"`
	Votes         int       `json:"votes"`
	ArticleImgURL string    `json:"article_img_url"`
	CommentCount  int       `json:"comment_count"`
}

// NewArticle is the payload for article creation. ArticleImgURL defaults to
// the empty string when the client omits it.
type NewArticle struct {
	Title         string
	Topic         string
	Author        string
	Body          string
	ArticleImgURL string
}

// Comment is a comment row attached to an article.
type Comment struct {
	CommentID int64     `json:"comment_id"`
	ArticleID int64     `json:"article_id"`
	Body      string    `json:"body"`
	Votes     int       `json:"votes"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
}
