package httpserver

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pressroom/news-service/internal/domain"
	"github.com/pressroom/news-service/internal/gather"
	"github.com/pressroom/news-service/internal/repository"
	"github.com/pressroom/news-service/internal/validate"
)

// getArticles handles GET /api/articles.
// Listing parameters travel raw; the query builder owns their validation.
func (s *Server) getArticles(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := repository.ArticleListParams{
		SortBy: q.Get("sort_by"),
		Order:  q.Get("order"),
		Topic:  q.Get("topic"),
		Limit:  q.Get("limit"),
		Page:   q.Get("p"),
	}

	var articles []*domain.ArticleSummary
	err := gather.All(
		func() error {
			if params.Topic == "" {
				return nil
			}
			return s.topicRepo.CheckExists(r.Context(), params.Topic)
		},
		func() error {
			var listErr error
			articles, listErr = s.articleRepo.List(r.Context(), params)
			return listErr
		},
	)
	if err != nil {
		writeRequestError(w, s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"articles": articles})
}

// getArticleByID handles GET /api/articles/{article_id}.
func (s *Server) getArticleByID(w http.ResponseWriter, r *http.Request) {
	articleID := chi.URLParam(r, "article_id")

	article, err := s.articleRepo.GetByID(r.Context(), articleID)
	if err != nil {
		writeRequestError(w, s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"article": article})
}

// postArticle handles POST /api/articles.
// The topic and author gates run concurrently with the insert; a gate
// failure takes precedence over the insert's outcome.
func (s *Server) postArticle(w http.ResponseWriter, r *http.Request) {
	body, err := decodeBody(r)
	if err != nil {
		writeRequestError(w, s.logger, err)
		return
	}

	if key, missing := validate.FirstMissingKey(body, "title", "topic", "author", "body"); missing {
		writeRequestError(w, s.logger, missingKeyError(key))
		return
	}

	title, titleOK := body["title"].(string)
	topic, topicOK := body["topic"].(string)
	author, authorOK := body["author"].(string)
	articleBody, bodyOK := body["body"].(string)
	imgURL, _ := body["article_img_url"].(string)
	if !titleOK || !topicOK || !authorOK || !bodyOK {
		writeRequestError(w, s.logger, domain.NewValidationError("Bad Request"))
		return
	}

	var created *domain.Article
	err = gather.All(
		func() error { return s.topicRepo.CheckExists(r.Context(), topic) },
		func() error { return s.userRepo.CheckExists(r.Context(), author) },
		func() error {
			var createErr error
			created, createErr = s.articleRepo.Create(r.Context(), &domain.NewArticle{
				Title:         title,
				Topic:         topic,
				Author:        author,
				Body:          articleBody,
				ArticleImgURL: imgURL,
			})
			return createErr
		},
	)
	if err != nil {
		writeRequestError(w, s.logger, err)
		return
	}

	if s.metrics != nil {
		s.metrics.RecordArticleCreated()
	}
	s.publish(r.Context(), "article", "created", strconv.FormatInt(created.ArticleID, 10))

	writeJSON(w, http.StatusCreated, map[string]any{"article": created})
}

// patchArticle handles PATCH /api/articles/{article_id}.
func (s *Server) patchArticle(w http.ResponseWriter, r *http.Request) {
	articleID := chi.URLParam(r, "article_id")

	body, err := decodeBody(r)
	if err != nil {
		writeRequestError(w, s.logger, err)
		return
	}

	delta, err := voteDelta(body)
	if err != nil {
		writeRequestError(w, s.logger, err)
		return
	}

	var article *domain.Article
	err = gather.All(
		func() error { return s.articleRepo.CheckExists(r.Context(), articleID) },
		func() error {
			var updateErr error
			article, updateErr = s.articleRepo.IncrementVotes(r.Context(), articleID, delta)
			return updateErr
		},
	)
	if err != nil {
		writeRequestError(w, s.logger, err)
		return
	}

	if s.metrics != nil {
		s.metrics.RecordVoteApplied("article")
	}

	writeJSON(w, http.StatusOK, map[string]any{"article": article})
}
