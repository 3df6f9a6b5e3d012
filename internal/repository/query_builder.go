package repository

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/pressroom/news-service/internal/domain"
	"github.com/pressroom/news-service/internal/validate"
)

// articleSortColumns is the fixed whitelist of client-selectable sort columns
// for article listings, mapped to the expression used in query text. Only
// these values are ever concatenated into SQL; everything else is bound.
var articleSortColumns = map[string]string{
	"article_id":      "articles.article_id",
	"title":           "articles.title",
	"topic":           "articles.topic",
	"author":          "articles.author",
	"created_at":      "articles.created_at",
	"votes":           "articles.votes",
	"article_img_url": "articles.article_img_url",
	"comment_count":   "comment_count",
}

// parsePagination validates raw limit/p values and resolves them to a
// LIMIT/OFFSET pair. The values must be integer strings, limit must not be
// negative, and p must be at least 1. When neither is supplied no
// pagination clause is applied; when only one is supplied the other takes
// its default (limit 10, page 1).
func parsePagination(rawLimit, rawPage string) (limit, offset int, paginate bool, err error) {
	if rawLimit != "" && !validate.IsIntegerString(rawLimit) {
		return 0, 0, false, &domain.ClassifiedError{Status: http.StatusBadRequest, Msg: "Invalid query for limit"}
	}
	if rawPage != "" && !validate.IsIntegerString(rawPage) {
		return 0, 0, false, &domain.ClassifiedError{Status: http.StatusBadRequest, Msg: "Invalid query for p"}
	}
	if rawLimit == "" && rawPage == "" {
		return 0, 0, false, nil
	}

	limit = defaultPageSize
	page := defaultPage
	if rawLimit != "" {
		limit, _ = strconv.Atoi(rawLimit)
		if limit < 0 {
			return 0, 0, false, &domain.ClassifiedError{Status: http.StatusBadRequest, Msg: "Invalid query for limit"}
		}
	}
	if rawPage != "" {
		page, _ = strconv.Atoi(rawPage)
		if page < 1 {
			return 0, 0, false, &domain.ClassifiedError{Status: http.StatusBadRequest, Msg: "Invalid query for p"}
		}
	}

	return limit, (page - 1) * limit, true, nil
}

// buildArticleListQuery composes the article listing statement from raw
// client parameters. Comment counts are aggregated with a left join so
// articles without comments appear with comment_count = 0.
//
// Validation order is fixed: pagination shape, then the sort_by whitelist,
// then the order direction. The topic filter is bound as a parameter; its
// existence is checked out-of-band by the caller.
func buildArticleListQuery(p ArticleListParams) (string, []interface{}, error) {
	limit, offset, paginate, err := parsePagination(p.Limit, p.Page)
	if err != nil {
		return "", nil, err
	}

	sortBy := p.SortBy
	if sortBy == "" {
		sortBy = "created_at"
	}
	column, ok := articleSortColumns[sortBy]
	if !ok {
		return "", nil, &domain.ClassifiedError{Status: http.StatusNotFound, Msg: "Invalid query for sorting"}
	}

	order := p.Order
	if order == "" {
		order = "desc"
	}
	direction := strings.ToUpper(order)
	if direction != "ASC" && direction != "DESC" {
		return "", nil, &domain.ClassifiedError{Status: http.StatusNotFound, Msg: "Invalid query for order"}
	}

	var sb strings.Builder
	var args []interface{}
	argIndex := 1

	sb.WriteString(`SELECT articles.article_id, articles.title, articles.topic, articles.author,
		articles.created_at, articles.votes, articles.article_img_url,
		COUNT(comments.comment_id)::int AS comment_count
	FROM articles
	LEFT JOIN comments ON comments.article_id = articles.article_id`)

	if p.Topic != "" {
		sb.WriteString(fmt.Sprintf("\n\tWHERE articles.topic = $%d", argIndex))
		args = append(args, p.Topic)
		argIndex++
	}

	sb.WriteString("\n\tGROUP BY articles.article_id")
	sb.WriteString(fmt.Sprintf("\n\tORDER BY %s %s", column, direction))

	if paginate {
		sb.WriteString(fmt.Sprintf("\n\tLIMIT $%d OFFSET $%d", argIndex, argIndex+1))
		args = append(args, limit, offset)
	}

	return sb.String(), args, nil
}

// buildCommentListQuery composes the nested comment listing for an article.
// Ordering is fixed at created_at descending; only pagination is
// client-controlled. The article identifier is bound as given so a malformed
// value surfaces as a storage-level type error.
func buildCommentListQuery(articleID string, p PageParams) (string, []interface{}, error) {
	limit, offset, paginate, err := parsePagination(p.Limit, p.Page)
	if err != nil {
		return "", nil, err
	}

	var sb strings.Builder
	args := []interface{}{articleID}

	sb.WriteString(`SELECT comment_id, article_id, body, votes, author, created_at
	FROM comments
	WHERE article_id = $1
	ORDER BY created_at DESC`)

	if paginate {
		sb.WriteString("\n\tLIMIT $2 OFFSET $3")
		args = append(args, limit, offset)
	}

	return sb.String(), args, nil
}

// buildUserPatchQuery composes a partial update touching only the supplied
// fields. The caller must have rejected an empty patch already.
func buildUserPatchQuery(username string, patch *domain.UserPatch) (string, []interface{}) {
	var sets []string
	var args []interface{}
	argIndex := 1

	if patch.Name != nil {
		sets = append(sets, fmt.Sprintf("name = $%d", argIndex))
		args = append(args, *patch.Name)
		argIndex++
	}
	if patch.AvatarURL != nil {
		sets = append(sets, fmt.Sprintf("avatar_url = $%d", argIndex))
		args = append(args, *patch.AvatarURL)
		argIndex++
	}
	if patch.SetLikedArticles {
		sets = append(sets, fmt.Sprintf("liked_articles = $%d", argIndex))
		args = append(args, patch.LikedArticles)
		argIndex++
	}

	query := fmt.Sprintf(`UPDATE users SET %s WHERE username = $%d
	RETURNING username, name, avatar_url, liked_articles`,
		strings.Join(sets, ", "), argIndex)
	args = append(args, username)

	return query, args
}
