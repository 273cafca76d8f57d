// Package pagination implements page-number pagination with the
// count/next/previous/results envelope used by all list endpoints.
package pagination

import (
	"net/http"
	"net/url"
	"strconv"
)

// MaxLimit caps the page size a client may request.
const MaxLimit = 100

// Params holds parsed pagination query parameters.
type Params struct {
	Page  int
	Limit int
}

// ParseParams extracts page/limit from the query string.
// Invalid or missing values fall back to page 1 and defaultLimit.
func ParseParams(query url.Values, defaultLimit int) Params {
	params := Params{Page: 1, Limit: defaultLimit}

	if p := query.Get("page"); p != "" {
		if parsed, err := strconv.Atoi(p); err == nil && parsed > 0 {
			params.Page = parsed
		}
	}

	if l := query.Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= MaxLimit {
			params.Limit = parsed
		}
	}

	return params
}

// Offset returns the row offset for the current page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// InvalidPage reports whether the requested page lies past the last one.
// The first page is always valid, even for an empty result set.
func (p Params) InvalidPage(count int64) bool {
	if p.Page <= 1 {
		return false
	}
	lastPage := (count + int64(p.Limit) - 1) / int64(p.Limit)
	if lastPage < 1 {
		lastPage = 1
	}
	return int64(p.Page) > lastPage
}

// Response is the standard paginated envelope.
type Response struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  any     `json:"results"`
}

// NewResponse builds the envelope for a page of results.
// Next/previous are absolute URLs preserving all other query parameters;
// previous for page 2 drops the page parameter entirely.
func NewResponse(r *http.Request, baseURL string, count int64, params Params, results any) *Response {
	resp := &Response{
		Count:   count,
		Results: results,
	}

	lastPage := int((count + int64(params.Limit) - 1) / int64(params.Limit))

	if params.Page < lastPage {
		next := pageURL(r, baseURL, params.Page+1)
		resp.Next = &next
	}

	if params.Page > 1 {
		prev := pageURL(r, baseURL, params.Page-1)
		resp.Previous = &prev
	}

	return resp
}

// pageURL rebuilds the request URL against baseURL with the given page.
func pageURL(r *http.Request, baseURL string, page int) string {
	query := r.URL.Query()
	if page <= 1 {
		query.Del("page")
	} else {
		query.Set("page", strconv.Itoa(page))
	}

	u := url.URL{
		Path:     r.URL.Path,
		RawQuery: query.Encode(),
	}
	return baseURL + u.String()
}
