package httpserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pressroom/news-service/internal/domain"
	"github.com/pressroom/news-service/internal/repository"
)

func TestGetCommentsByArticle_Success(t *testing.T) {
	var capturedID string
	var capturedParams repository.PageParams
	commentRepo := &mockCommentRepo{
		listFn: func(_ context.Context, articleID string, params repository.PageParams) ([]*domain.Comment, error) {
			capturedID = articleID
			capturedParams = params
			return []*domain.Comment{
				{CommentID: 5, ArticleID: 1, Body: "I hate streaming noses", Author: "icellusedkars"},
			}, nil
		},
	}
	srv := newTestServer(&mockTopicRepo{}, &mockArticleRepo{}, commentRepo, &mockUserRepo{})

	rr := serveHTTP(srv, httptest.NewRequest(http.MethodGet, "/api/articles/1/comments?limit=5&p=2", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if capturedID != "1" {
		t.Errorf("expected article id 1, got %s", capturedID)
	}
	if capturedParams != (repository.PageParams{Limit: "5", Page: "2"}) {
		t.Errorf("unexpected pagination params: %+v", capturedParams)
	}

	var resp struct {
		Comments []*domain.Comment `json:"comments"`
	}
	decodeJSON(t, rr, &resp)
	if len(resp.Comments) != 1 || resp.Comments[0].CommentID != 5 {
		t.Errorf("unexpected comments payload: %+v", resp.Comments)
	}
}

func TestGetCommentsByArticle_ArticleGate(t *testing.T) {
	// The listing returns an empty page for an absent article; the gate
	// must still answer 404.
	articleRepo := &mockArticleRepo{
		checkFn: func(_ context.Context, _ string) error {
			return domain.NewNotFoundError("article id")
		},
	}
	srv := newTestServer(&mockTopicRepo{}, articleRepo, &mockCommentRepo{}, &mockUserRepo{})

	rr := serveHTTP(srv, httptest.NewRequest(http.MethodGet, "/api/articles/9999/comments", nil))
	assertFailure(t, rr, http.StatusNotFound, "article id is not found")
}

func TestPostCommentForArticle_Success(t *testing.T) {
	var capturedArticleID, capturedUsername, capturedBody string
	commentRepo := &mockCommentRepo{
		createFn: func(_ context.Context, articleID, username, body string) (*domain.Comment, error) {
			capturedArticleID = articleID
			capturedUsername = username
			capturedBody = body
			return &domain.Comment{CommentID: 19, ArticleID: 1, Author: username, Body: body}, nil
		},
	}
	srv := newTestServer(&mockTopicRepo{}, &mockArticleRepo{}, commentRepo, &mockUserRepo{})
	pub := &recordingPublisher{}
	srv.publisher = pub

	rr := serveHTTP(srv, jsonRequest(http.MethodPost, "/api/articles/1/comments",
		`{"username":"icellusedkars","body":"superficially charming"}`))

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rr.Code, rr.Body.String())
	}
	if capturedArticleID != "1" || capturedUsername != "icellusedkars" || capturedBody != "superficially charming" {
		t.Errorf("unexpected create args: %s / %s / %s", capturedArticleID, capturedUsername, capturedBody)
	}

	published := pub.published()
	if len(published) != 1 || published[0].Type() != "comment.created" || published[0].Key != "19" {
		t.Errorf("expected one comment.created event with key 19, got %+v", published)
	}
}

func TestPostCommentForArticle_MissingKey(t *testing.T) {
	srv := newTestServer(&mockTopicRepo{}, &mockArticleRepo{}, &mockCommentRepo{}, &mockUserRepo{})

	rr := serveHTTP(srv, jsonRequest(http.MethodPost, "/api/articles/1/comments", `{"body":"no author"}`))
	assertFailure(t, rr, http.StatusBadRequest, "Missing key 'username'")

	rr = serveHTTP(srv, jsonRequest(http.MethodPost, "/api/articles/1/comments", `{"username":"dave"}`))
	assertFailure(t, rr, http.StatusBadRequest, "Missing key 'body'")
}

func TestPostCommentForArticle_UserGateOverridesInsert(t *testing.T) {
	// The insert fails on the author foreign key, but the user gate's 404
	// takes precedence because gates are declared first.
	userRepo := &mockUserRepo{
		checkFn: func(_ context.Context, _ string) error {
			return domain.NewNotFoundError("user")
		},
	}
	commentRepo := &mockCommentRepo{
		createFn: func(_ context.Context, _, _, _ string) (*domain.Comment, error) {
			return nil, context.DeadlineExceeded
		},
	}
	srv := newTestServer(&mockTopicRepo{}, &mockArticleRepo{}, commentRepo, userRepo)

	rr := serveHTTP(srv, jsonRequest(http.MethodPost, "/api/articles/1/comments",
		`{"username":"nobody","body":"hello"}`))
	assertFailure(t, rr, http.StatusNotFound, "user is not found")
}

func TestPatchComment_Success(t *testing.T) {
	var capturedDelta int64
	commentRepo := &mockCommentRepo{
		incFn: func(_ context.Context, commentID string, delta int64) (*domain.Comment, error) {
			capturedDelta = delta
			return &domain.Comment{CommentID: 2, Votes: 15}, nil
		},
	}
	srv := newTestServer(&mockTopicRepo{}, &mockArticleRepo{}, commentRepo, &mockUserRepo{})

	rr := serveHTTP(srv, jsonRequest(http.MethodPatch, "/api/comments/2", `{"inc_votes":1}`))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if capturedDelta != 1 {
		t.Errorf("expected delta 1, got %d", capturedDelta)
	}

	var resp struct {
		Comment *domain.Comment `json:"comment"`
	}
	decodeJSON(t, rr, &resp)
	if resp.Comment.Votes != 15 {
		t.Errorf("expected 15 votes, got %d", resp.Comment.Votes)
	}
}

func TestPatchComment_IncVotesShape(t *testing.T) {
	srv := newTestServer(&mockTopicRepo{}, &mockArticleRepo{}, &mockCommentRepo{}, &mockUserRepo{})

	rr := serveHTTP(srv, jsonRequest(http.MethodPatch, "/api/comments/2", `{"inc_votes":"many"}`))
	assertFailure(t, rr, http.StatusBadRequest, "inc_votes should be a number")
}

func TestPatchComment_GateNotFound(t *testing.T) {
	commentRepo := &mockCommentRepo{
		checkFn: func(_ context.Context, _ string) error {
			return domain.NewNotFoundError("comment id")
		},
	}
	srv := newTestServer(&mockTopicRepo{}, &mockArticleRepo{}, commentRepo, &mockUserRepo{})

	rr := serveHTTP(srv, jsonRequest(http.MethodPatch, "/api/comments/9999", `{"inc_votes":1}`))
	assertFailure(t, rr, http.StatusNotFound, "comment id is not found")
}

func TestDeleteComment_Success(t *testing.T) {
	deleted := false
	commentRepo := &mockCommentRepo{
		deleteFn: func(_ context.Context, commentID string) error {
			if commentID != "4" {
				t.Errorf("expected comment id 4, got %s", commentID)
			}
			deleted = true
			return nil
		},
	}
	srv := newTestServer(&mockTopicRepo{}, &mockArticleRepo{}, commentRepo, &mockUserRepo{})
	pub := &recordingPublisher{}
	srv.publisher = pub

	rr := serveHTTP(srv, httptest.NewRequest(http.MethodDelete, "/api/comments/4", nil))

	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d: %s", rr.Code, rr.Body.String())
	}
	if rr.Body.Len() != 0 {
		t.Errorf("expected empty body, got %s", rr.Body.String())
	}
	if !deleted {
		t.Error("expected deleteFn to be called")
	}

	published := pub.published()
	if len(published) != 1 || published[0].Type() != "comment.deleted" || published[0].Key != "4" {
		t.Errorf("expected one comment.deleted event with key 4, got %+v", published)
	}
}

func TestDeleteComment_GateNotFound(t *testing.T) {
	commentRepo := &mockCommentRepo{
		checkFn: func(_ context.Context, _ string) error {
			return domain.NewNotFoundError("comment id")
		},
	}
	srv := newTestServer(&mockTopicRepo{}, &mockArticleRepo{}, commentRepo, &mockUserRepo{})

	rr := serveHTTP(srv, httptest.NewRequest(http.MethodDelete, "/api/comments/9999", nil))
	assertFailure(t, rr, http.StatusNotFound, "comment id is not found")
}
