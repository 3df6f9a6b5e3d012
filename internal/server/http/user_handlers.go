package httpserver

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/pressroom/news-service/internal/domain"
	"github.com/pressroom/news-service/internal/gather"
	"github.com/pressroom/news-service/internal/validate"
)

// createUserRequest is the validated shape of a POST /api/users body.
// All three fields must be non-blank strings.
type createUserRequest struct {
	Username  string `validate:"notblank"`
	Name      string `validate:"notblank"`
	AvatarURL string `validate:"notblank"`
}

// getUsers handles GET /api/users.
func (s *Server) getUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.userRepo.List(r.Context())
	if err != nil {
		writeRequestError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"users": users})
}

// getUserByUsername handles GET /api/users/{username}.
func (s *Server) getUserByUsername(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	user, err := s.userRepo.GetByUsername(r.Context(), username)
	if err != nil {
		writeRequestError(w, s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

// postUser handles POST /api/users. Any shape failure, including an absent
// field, answers 400 "Bad Request"; a duplicate username surfaces as the
// storage unique violation and classifies to 409.
func (s *Server) postUser(w http.ResponseWriter, r *http.Request) {
	body, err := decodeBody(r)
	if err != nil {
		writeRequestError(w, s.logger, err)
		return
	}

	username, usernameOK := body["username"].(string)
	name, nameOK := body["name"].(string)
	avatarURL, avatarOK := body["avatar_url"].(string)
	if !usernameOK || !nameOK || !avatarOK {
		writeRequestError(w, s.logger, domain.NewValidationError("Bad Request"))
		return
	}

	req := createUserRequest{Username: username, Name: name, AvatarURL: avatarURL}
	if err := s.validate.Struct(req); err != nil {
		writeRequestError(w, s.logger, domain.NewValidationError("Bad Request"))
		return
	}

	user, err := s.userRepo.Create(r.Context(), &domain.User{
		Username:  req.Username,
		Name:      req.Name,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		writeRequestError(w, s.logger, err)
		return
	}

	if s.metrics != nil {
		s.metrics.RecordUserCreated()
	}
	s.publish(r.Context(), "user", "created", user.Username)

	writeJSON(w, http.StatusCreated, map[string]any{"user": user})
}

// patchUser handles PATCH /api/users/{username}. Only supplied fields are
// touched; liked_articles replaces the stored sequence wholesale.
func (s *Server) patchUser(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	body, err := decodeBody(r)
	if err != nil {
		writeRequestError(w, s.logger, err)
		return
	}

	patch, err := userPatchFromBody(body)
	if err != nil {
		writeRequestError(w, s.logger, err)
		return
	}

	var user *domain.User
	err = gather.All(
		func() error { return s.userRepo.CheckExists(r.Context(), username) },
		func() error {
			var updateErr error
			user, updateErr = s.userRepo.Update(r.Context(), username, patch)
			return updateErr
		},
	)
	if err != nil {
		writeRequestError(w, s.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

// userPatchFromBody validates a PATCH /api/users body and builds the patch.
// An empty body, a blank name or avatar_url, or a non-string value fails
// with 400 "Bad Request"; a liked_articles value that is not an array of
// integers fails with its own message.
func userPatchFromBody(body map[string]any) (*domain.UserPatch, error) {
	if len(body) == 0 {
		return nil, domain.NewValidationError("Bad Request")
	}

	patch := &domain.UserPatch{}

	if v, ok := body["name"]; ok {
		name, isString := v.(string)
		if !isString || strings.TrimSpace(name) == "" {
			return nil, domain.NewValidationError("Bad Request")
		}
		patch.Name = &name
	}

	if v, ok := body["avatar_url"]; ok {
		avatarURL, isString := v.(string)
		if !isString || strings.TrimSpace(avatarURL) == "" {
			return nil, domain.NewValidationError("Bad Request")
		}
		patch.AvatarURL = &avatarURL
	}

	if v, ok := body["liked_articles"]; ok {
		if _, isArray := v.([]any); !isArray {
			return nil, domain.NewValidationError("Bad Request")
		}
		liked, isIntArray := validate.AsIntegerArray(v)
		if !isIntArray {
			return nil, domain.NewValidationError("liked_articles must be an array of integers")
		}
		patch.LikedArticles = liked
		patch.SetLikedArticles = true
	}

	if patch.IsEmpty() {
		return nil, domain.NewValidationError("Bad Request")
	}

	return patch, nil
}
