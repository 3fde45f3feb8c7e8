// Package location reads parameters out of a page address the way the
// upload and sync pages receive them: in the query string or in a
// query-string encoded fragment.
package location

import (
	"fmt"
	"net/url"
	"strings"
)

// Parse accepts an absolute URL or a bare "?query#fragment" tail.
func Parse(raw string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("invalid page url: %w", err)
	}
	return u, nil
}

// Fragment decodes the fragment of u as a query string. A malformed
// fragment yields whatever pairs could be decoded.
func Fragment(u *url.URL) url.Values {
	if u == nil {
		return url.Values{}
	}
	values, _ := url.ParseQuery(u.EscapedFragment())
	return values
}

// Param returns the first non-empty value of key, looking at the query
// before the fragment.
func Param(u *url.URL, key string) (string, bool) {
	if u == nil {
		return "", false
	}
	if v := u.Query().Get(key); v != "" {
		return v, true
	}
	if v := Fragment(u).Get(key); v != "" {
		return v, true
	}
	return "", false
}
