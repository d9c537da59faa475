package handlers

import (
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// pagination holds the list query parameters shared by every entity.
type pagination struct {
	Page      int
	PageSize  int
	Search    string
	SortBy    string
	SortOrder string
}

func parsePagination(q url.Values) pagination {
	p := pagination{
		Search:    q.Get("search"),
		SortBy:    q.Get("sortBy"),
		SortOrder: q.Get("sortOrder"),
	}
	if v, err := strconv.Atoi(q.Get("page")); err == nil {
		p.Page = v
	}
	if v, err := strconv.Atoi(q.Get("pageSize")); err == nil {
		p.PageSize = v
	}
	return p
}

// parseBoolParam returns nil when the parameter is absent or malformed.
func parseBoolParam(q url.Values, key string) *bool {
	if s := q.Get(key); s != "" {
		if v, err := strconv.ParseBool(s); err == nil {
			return &v
		}
	}
	return nil
}

// parseTimeParam accepts RFC 3339 timestamps; nil when absent or malformed.
func parseTimeParam(q url.Values, key string) *time.Time {
	if s := q.Get(key); s != "" {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return &t
		}
	}
	return nil
}

// decodeJSON enforces a sane body limit before decoding.
const maxBodyBytes = 1 << 20

func limitBody(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
}
