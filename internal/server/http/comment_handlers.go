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

// getCommentsByArticle handles GET /api/articles/{article_id}/comments.
// The article gate runs concurrently with the listing so a missing article
// answers 404 even though the listing itself would return an empty page.
func (s *Server) getCommentsByArticle(w http.ResponseWriter, r *http.Request) {
	articleID := chi.URLParam(r, "article_id")
	q := r.URL.Query()
	params := repository.PageParams{
		Limit: q.Get("limit"),
		Page:  q.Get("p"),
	}

	var comments []*domain.Comment
	err := gather.All(
		func() error { return s.articleRepo.CheckExists(r.Context(), articleID) },
		func() error {
			var listErr error
			comments, listErr = s.commentRepo.ListByArticle(r.Context(), articleID, params)
			return listErr
		},
	)
	if err != nil {
		writeRequestError(w, s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"comments": comments})
}

// postCommentForArticle handles POST /api/articles/{article_id}/comments.
// Article and author gates run concurrently with the insert.
func (s *Server) postCommentForArticle(w http.ResponseWriter, r *http.Request) {
	articleID := chi.URLParam(r, "article_id")

	body, err := decodeBody(r)
	if err != nil {
		writeRequestError(w, s.logger, err)
		return
	}

	if key, missing := validate.FirstMissingKey(body, "username", "body"); missing {
		writeRequestError(w, s.logger, missingKeyError(key))
		return
	}

	username, usernameOK := body["username"].(string)
	commentBody, bodyOK := body["body"].(string)
	if !usernameOK || !bodyOK {
		writeRequestError(w, s.logger, domain.NewValidationError("Bad Request"))
		return
	}

	var created *domain.Comment
	err = gather.All(
		func() error { return s.articleRepo.CheckExists(r.Context(), articleID) },
		func() error { return s.userRepo.CheckExists(r.Context(), username) },
		func() error {
			var createErr error
			created, createErr = s.commentRepo.Create(r.Context(), articleID, username, commentBody)
			return createErr
		},
	)
	if err != nil {
		writeRequestError(w, s.logger, err)
		return
	}

	if s.metrics != nil {
		s.metrics.RecordCommentCreated()
	}
	s.publish(r.Context(), "comment", "created", strconv.FormatInt(created.CommentID, 10))

	writeJSON(w, http.StatusCreated, map[string]any{"comment": created})
}

// patchComment handles PATCH /api/comments/{comment_id}.
func (s *Server) patchComment(w http.ResponseWriter, r *http.Request) {
	commentID := chi.URLParam(r, "comment_id")

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

	var comment *domain.Comment
	err = gather.All(
		func() error { return s.commentRepo.CheckExists(r.Context(), commentID) },
		func() error {
			var updateErr error
			comment, updateErr = s.commentRepo.IncrementVotes(r.Context(), commentID, delta)
			return updateErr
		},
	)
	if err != nil {
		writeRequestError(w, s.logger, err)
		return
	}

	if s.metrics != nil {
		s.metrics.RecordVoteApplied("comment")
	}

	writeJSON(w, http.StatusOK, map[string]any{"comment": comment})
}

// deleteComment handles DELETE /api/comments/{comment_id}.
// The existence gate runs concurrently with the delete; deleting an absent
// comment answers 404 from the gate alone.
func (s *Server) deleteComment(w http.ResponseWriter, r *http.Request) {
	commentID := chi.URLParam(r, "comment_id")

	err := gather.All(
		func() error { return s.commentRepo.CheckExists(r.Context(), commentID) },
		func() error { return s.commentRepo.Delete(r.Context(), commentID) },
	)
	if err != nil {
		writeRequestError(w, s.logger, err)
		return
	}

	if s.metrics != nil {
		s.metrics.RecordCommentDeleted()
	}
	s.publish(r.Context(), "comment", "deleted", commentID)

	w.WriteHeader(http.StatusNoContent)
}
