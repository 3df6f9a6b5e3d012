package repository

import (
	"context"
	"net/http"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pressroom/news-service/internal/domain"
)

func TestPgTopicRepository_List(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	rows := pgxmock.NewRows([]string{"slug", "description", "img_url"}).
		AddRow("mitch", "The man, the Mitch, the legend", "").
		AddRow("cats", "Not dogs", "")

	mock.ExpectQuery("SELECT slug, description, img_url FROM topics").
		WillReturnRows(rows)

	repo := NewPgTopicRepository(mock)
	topics, err := repo.List(context.Background())
	require.NoError(t, err)

	require.Len(t, topics, 2)
	assert.Equal(t, "cats", topics[1].Slug)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgTopicRepository_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	rows := pgxmock.NewRows([]string{"slug", "description", "img_url"}).
		AddRow("gardening", "Growing things", "https://example.com/g.png")

	mock.ExpectQuery("INSERT INTO topics \\(slug, description, img_url\\) VALUES \\(\\$1, \\$2, \\$3\\) RETURNING").
		WithArgs("gardening", "Growing things", "https://example.com/g.png").
		WillReturnRows(rows)

	repo := NewPgTopicRepository(mock)
	topic, err := repo.Create(context.Background(), &domain.Topic{
		Slug:        "gardening",
		Description: "Growing things",
		ImgURL:      "https://example.com/g.png",
	})
	require.NoError(t, err)

	assert.Equal(t, "gardening", topic.Slug)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgTopicRepository_CheckExists(t *testing.T) {
	t.Run("exists", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT 1 FROM topics WHERE slug = \\$1").
			WithArgs("mitch").
			WillReturnRows(pgxmock.NewRows([]string{"?column?"}).AddRow(1))

		repo := NewPgTopicRepository(mock)
		assert.NoError(t, repo.CheckExists(context.Background(), "mitch"))
	})

	t.Run("absent yields classified 404", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT 1 FROM topics WHERE slug = \\$1").
			WithArgs("dogs").
			WillReturnRows(pgxmock.NewRows([]string{"?column?"}))

		repo := NewPgTopicRepository(mock)
		err = repo.CheckExists(context.Background(), "dogs")

		ce := classified(t, err)
		assert.Equal(t, http.StatusNotFound, ce.Status)
		assert.Equal(t, "topic is not found", ce.Msg)
	})
}
