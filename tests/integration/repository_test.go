//go:build integration

package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pressroom/news-service/internal/domain"
	"github.com/pressroom/news-service/internal/repository"
)

// seedTopic inserts a topic row directly.
func seedTopic(t *testing.T, slug, description string) {
	t.Helper()
	_, err := testPool.Exec(context.Background(),
		"INSERT INTO topics (slug, description, img_url) VALUES ($1, $2, '')", slug, description)
	require.NoError(t, err)
}

// seedUser inserts a user row directly.
func seedUser(t *testing.T, username, name string) {
	t.Helper()
	_, err := testPool.Exec(context.Background(),
		"INSERT INTO users (username, name, avatar_url) VALUES ($1, $2, '')", username, name)
	require.NoError(t, err)
}

// seedArticle inserts an article with an explicit creation time so listing
// order is deterministic, and returns its id.
func seedArticle(t *testing.T, title, topic, author string, votes int, createdAt time.Time) int64 {
	t.Helper()
	var id int64
	err := testPool.QueryRow(context.Background(),
		`INSERT INTO articles (title, topic, author, body, created_at, votes, article_img_url)
		 VALUES ($1, $2, $3, 'body', $4, $5, '') RETURNING article_id`,
		title, topic, author, createdAt, votes).Scan(&id)
	require.NoError(t, err)
	return id
}

// seedComment inserts a comment with an explicit creation time and returns its id.
func seedComment(t *testing.T, articleID int64, author, body string, createdAt time.Time) int64 {
	t.Helper()
	var id int64
	err := testPool.QueryRow(context.Background(),
		`INSERT INTO comments (article_id, author, body, created_at)
		 VALUES ($1, $2, $3, $4) RETURNING comment_id`,
		articleID, author, body, createdAt).Scan(&id)
	require.NoError(t, err)
	return id
}

func TestPgArticleRepository_Listing(t *testing.T) {
	cleanTables(t, "comments", "articles", "users", "topics")
	repo := repository.NewPgArticleRepository(testPool)
	ctx := context.Background()

	seedTopic(t, "coding", "hot takes on syntax")
	seedTopic(t, "knitting", "one row at a time")
	seedUser(t, "dave", "Dave")

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	ids := make([]int64, 0, 12)
	for i := 0; i < 12; i++ {
		id := seedArticle(t, fmt.Sprintf("article %02d", i), "coding", "dave", i*10, base.Add(time.Duration(i)*time.Hour))
		ids = append(ids, id)
	}

	t.Run("defaults return every row newest first", func(t *testing.T) {
		articles, err := repo.List(ctx, repository.ArticleListParams{})
		require.NoError(t, err)
		require.Len(t, articles, 12)
		assert.Equal(t, "article 11", articles[0].Title)
		assert.Equal(t, "article 00", articles[11].Title)
	})

	t.Run("second page slices rows six to ten", func(t *testing.T) {
		articles, err := repo.List(ctx, repository.ArticleListParams{Limit: "5", Page: "2"})
		require.NoError(t, err)
		require.Len(t, articles, 5)
		// Newest first: page 2 of 5 covers articles 06 down to 02.
		assert.Equal(t, "article 06", articles[0].Title)
		assert.Equal(t, "article 02", articles[4].Title)
	})

	t.Run("sort by votes ascending", func(t *testing.T) {
		articles, err := repo.List(ctx, repository.ArticleListParams{SortBy: "votes", Order: "asc"})
		require.NoError(t, err)
		require.Len(t, articles, 12)
		assert.Equal(t, 0, articles[0].Votes)
		assert.Equal(t, 110, articles[11].Votes)
	})

	t.Run("topic with no articles lists empty", func(t *testing.T) {
		articles, err := repo.List(ctx, repository.ArticleListParams{Topic: "knitting"})
		require.NoError(t, err)
		assert.NotNil(t, articles)
		assert.Empty(t, articles)
	})

	t.Run("comment count is aggregated", func(t *testing.T) {
		seedComment(t, ids[0], "dave", "first", base)
		seedComment(t, ids[0], "dave", "second", base.Add(time.Minute))

		articles, err := repo.List(ctx, repository.ArticleListParams{SortBy: "comment_count", Order: "desc"})
		require.NoError(t, err)
		require.NotEmpty(t, articles)
		assert.Equal(t, ids[0], articles[0].ArticleID)
		assert.Equal(t, 2, articles[0].CommentCount)
		assert.Equal(t, 0, articles[1].CommentCount)
	})
}

func TestPgArticleRepository_Votes(t *testing.T) {
	cleanTables(t, "comments", "articles", "users", "topics")
	repo := repository.NewPgArticleRepository(testPool)
	ctx := context.Background()

	seedTopic(t, "coding", "")
	seedUser(t, "dave", "Dave")
	id := seedArticle(t, "votable", "coding", "dave", 0, time.Now().UTC())
	idStr := fmt.Sprintf("%d", id)

	article, err := repo.IncrementVotes(ctx, idStr, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, article.Votes)

	article, err = repo.IncrementVotes(ctx, idStr, -10)
	require.NoError(t, err)
	assert.Equal(t, -5, article.Votes, "votes may go negative")

	got, err := repo.GetByID(ctx, idStr)
	require.NoError(t, err)
	assert.Equal(t, -5, got.Votes)

	_, err = repo.IncrementVotes(ctx, "999999", 1)
	require.Error(t, err)
	assert.EqualError(t, err, "article id is not found")
}

func TestPgUserRepository_ConflictAndPatch(t *testing.T) {
	cleanTables(t, "comments", "articles", "users", "topics")
	repo := repository.NewPgUserRepository(testPool)
	ctx := context.Background()

	created, err := repo.Create(ctx, &domain.User{Username: "dave", Name: "Dave", AvatarURL: ""})
	require.NoError(t, err)
	assert.NotNil(t, created.LikedArticles)
	assert.Empty(t, created.LikedArticles)

	t.Run("duplicate username surfaces unique violation", func(t *testing.T) {
		_, err := repo.Create(ctx, &domain.User{Username: "dave", Name: "Other Dave"})
		require.Error(t, err)
		assert.True(t, repository.IsUniqueViolation(err))
	})

	t.Run("partial patch touches only supplied fields", func(t *testing.T) {
		name := "David"
		user, err := repo.Update(ctx, "dave", &domain.UserPatch{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, "David", user.Name)
		assert.Equal(t, "", user.AvatarURL)
	})

	t.Run("liked articles replaced wholesale with duplicates kept", func(t *testing.T) {
		user, err := repo.Update(ctx, "dave", &domain.UserPatch{
			LikedArticles:    []int64{3, 1, 3},
			SetLikedArticles: true,
		})
		require.NoError(t, err)
		assert.Equal(t, []int64{3, 1, 3}, user.LikedArticles)

		user, err = repo.Update(ctx, "dave", &domain.UserPatch{
			LikedArticles:    []int64{},
			SetLikedArticles: true,
		})
		require.NoError(t, err)
		assert.Empty(t, user.LikedArticles)
	})

	t.Run("patching an absent user is not found", func(t *testing.T) {
		name := "Ghost"
		_, err := repo.Update(ctx, "nobody", &domain.UserPatch{Name: &name})
		require.Error(t, err)
		assert.EqualError(t, err, "user is not found")
	})
}

func TestPgCommentRepository_Lifecycle(t *testing.T) {
	cleanTables(t, "comments", "articles", "users", "topics")
	repo := repository.NewPgCommentRepository(testPool)
	ctx := context.Background()

	seedTopic(t, "coding", "")
	seedUser(t, "dave", "Dave")
	articleID := seedArticle(t, "commented", "coding", "dave", 0, time.Now().UTC())
	articleIDStr := fmt.Sprintf("%d", articleID)

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		seedComment(t, articleID, "dave", fmt.Sprintf("comment %d", i), base.Add(time.Duration(i)*time.Minute))
	}

	t.Run("listing is newest first and paginates", func(t *testing.T) {
		comments, err := repo.ListByArticle(ctx, articleIDStr, repository.PageParams{})
		require.NoError(t, err)
		require.Len(t, comments, 7)
		assert.Equal(t, "comment 6", comments[0].Body)

		comments, err = repo.ListByArticle(ctx, articleIDStr, repository.PageParams{Limit: "3", Page: "2"})
		require.NoError(t, err)
		require.Len(t, comments, 3)
		assert.Equal(t, "comment 3", comments[0].Body)
	})

	t.Run("create returns stored defaults", func(t *testing.T) {
		comment, err := repo.Create(ctx, articleIDStr, "dave", "fresh take")
		require.NoError(t, err)
		assert.Equal(t, articleID, comment.ArticleID)
		assert.Equal(t, 0, comment.Votes)
		assert.Equal(t, "dave", comment.Author)
	})

	t.Run("vote increment is atomic and relative", func(t *testing.T) {
		comment, err := repo.Create(ctx, articleIDStr, "dave", "votable comment")
		require.NoError(t, err)
		idStr := fmt.Sprintf("%d", comment.CommentID)

		updated, err := repo.IncrementVotes(ctx, idStr, 3)
		require.NoError(t, err)
		assert.Equal(t, 3, updated.Votes)

		updated, err = repo.IncrementVotes(ctx, idStr, -4)
		require.NoError(t, err)
		assert.Equal(t, -1, updated.Votes)
	})

	t.Run("delete removes the row", func(t *testing.T) {
		comment, err := repo.Create(ctx, articleIDStr, "dave", "doomed")
		require.NoError(t, err)
		idStr := fmt.Sprintf("%d", comment.CommentID)

		require.NoError(t, repo.CheckExists(ctx, idStr))
		require.NoError(t, repo.Delete(ctx, idStr))

		err = repo.CheckExists(ctx, idStr)
		require.Error(t, err)
		assert.EqualError(t, err, "comment id is not found")
	})
}

func TestPgTopicRepository_Gate(t *testing.T) {
	cleanTables(t, "comments", "articles", "users", "topics")
	repo := repository.NewPgTopicRepository(testPool)
	ctx := context.Background()

	created, err := repo.Create(ctx, &domain.Topic{Slug: "gardening", Description: "growing things"})
	require.NoError(t, err)
	assert.Equal(t, "gardening", created.Slug)

	require.NoError(t, repo.CheckExists(ctx, "gardening"))

	err = repo.CheckExists(ctx, "bricklaying")
	require.Error(t, err)
	assert.EqualError(t, err, "topic is not found")
}
