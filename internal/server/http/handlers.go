package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/pressroom/news-service/internal/domain"
	"github.com/pressroom/news-service/internal/validate"
)

// maxRequestBodySize caps request bodies at 1 MB.
const maxRequestBodySize = 1 << 20

// decodeBody decodes a JSON request body into a map, keeping numbers as
// json.Number so integer shape can be checked without float rounding.
// An empty body decodes to an empty map so missing-key checks produce
// their own messages.
func decodeBody(r *http.Request) (map[string]any, error) {
	defer r.Body.Close()

	dec := json.NewDecoder(io.LimitReader(r.Body, maxRequestBodySize))
	dec.UseNumber()

	var body map[string]any
	if err := dec.Decode(&body); err != nil {
		if errors.Is(err, io.EOF) {
			return map[string]any{}, nil
		}
		return nil, domain.NewValidationError("Bad request")
	}
	if body == nil {
		body = map[string]any{}
	}
	return body, nil
}

// missingKeyError builds the 400 failure naming the first absent body key.
func missingKeyError(key string) error {
	return domain.NewValidationError("Missing key '" + key + "'")
}

// voteDelta extracts the inc_votes increment from a request body.
func voteDelta(body map[string]any) (int64, error) {
	if key, missing := validate.FirstMissingKey(body, "inc_votes"); missing {
		return 0, missingKeyError(key)
	}
	delta, ok := validate.IntegerValue(body["inc_votes"])
	if !ok {
		return 0, domain.NewValidationError("inc_votes should be a number")
	}
	return delta, nil
}

// endpointsDoc describes the API surface returned by GET /api.
var endpointsDoc = map[string]any{
	"GET /api":                                map[string]string{"description": "serves up a json representation of all the available endpoints of the api"},
	"GET /api/topics":                         map[string]string{"description": "serves an array of all topics"},
	"POST /api/topics":                        map[string]string{"description": "adds a new topic and serves the created topic"},
	"GET /api/articles":                       map[string]string{"description": "serves an array of all articles, filterable by topic and sortable via sort_by, order, limit and p"},
	"POST /api/articles":                      map[string]string{"description": "adds a new article and serves the created article"},
	"GET /api/articles/:article_id":           map[string]string{"description": "serves a single article by its id"},
	"PATCH /api/articles/:article_id":         map[string]string{"description": "adjusts an article's votes by inc_votes and serves the updated article"},
	"GET /api/articles/:article_id/comments":  map[string]string{"description": "serves the comments on an article, newest first"},
	"POST /api/articles/:article_id/comments": map[string]string{"description": "adds a comment to an article and serves the created comment"},
	"PATCH /api/comments/:comment_id":         map[string]string{"description": "adjusts a comment's votes by inc_votes and serves the updated comment"},
	"DELETE /api/comments/:comment_id":        map[string]string{"description": "deletes a comment by its id"},
	"GET /api/users":                          map[string]string{"description": "serves an array of all users"},
	"POST /api/users":                         map[string]string{"description": "registers a new user and serves the created user"},
	"GET /api/users/:username":                map[string]string{"description": "serves a single user by username"},
	"PATCH /api/users/:username":              map[string]string{"description": "updates a user's name, avatar_url or liked_articles and serves the updated user"},
}

// getEndpoints handles GET /api.
func (s *Server) getEndpoints(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"endpoints": endpointsDoc})
}

// createTopicRequest is the validated shape of a POST /api/topics body.
type createTopicRequest struct {
	Slug        string `validate:"notblank"`
	Description string `validate:"notblank"`
	ImgURL      string
}

// getTopics handles GET /api/topics.
func (s *Server) getTopics(w http.ResponseWriter, r *http.Request) {
	topics, err := s.topicRepo.List(r.Context())
	if err != nil {
		writeRequestError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"topics": topics})
}

// postTopic handles POST /api/topics.
func (s *Server) postTopic(w http.ResponseWriter, r *http.Request) {
	body, err := decodeBody(r)
	if err != nil {
		writeRequestError(w, s.logger, err)
		return
	}

	if key, missing := validate.FirstMissingKey(body, "slug", "description"); missing {
		writeRequestError(w, s.logger, missingKeyError(key))
		return
	}

	slug, slugOK := body["slug"].(string)
	description, descOK := body["description"].(string)
	imgURL, _ := body["img_url"].(string)
	if !slugOK || !descOK {
		writeRequestError(w, s.logger, domain.NewValidationError("Bad Request"))
		return
	}

	req := createTopicRequest{Slug: slug, Description: description, ImgURL: imgURL}
	if err := s.validate.Struct(req); err != nil {
		writeRequestError(w, s.logger, domain.NewValidationError("Bad Request"))
		return
	}

	topic, err := s.topicRepo.Create(r.Context(), &domain.Topic{
		Slug:        req.Slug,
		Description: req.Description,
		ImgURL:      req.ImgURL,
	})
	if err != nil {
		writeRequestError(w, s.logger, err)
		return
	}

	if s.metrics != nil {
		s.metrics.RecordTopicCreated()
	}
	s.publish(r.Context(), "topic", "created", topic.Slug)

	writeJSON(w, http.StatusCreated, map[string]any{"topic": topic})
}
