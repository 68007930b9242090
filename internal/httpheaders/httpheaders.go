// Package httpheaders merges header maps with case-insensitive names, the way
// HTTP treats them, and copies the result onto outgoing requests.
package httpheaders

import (
	"cmp"
	"net/http"
	"slices"
	"strings"
)

// Set stores value under name. An entry whose name differs only in case is
// replaced.
func Set(headers map[string]string, name, value string) map[string]string {
	name = strings.TrimSpace(name)
	if name == "" {
		return headers
	}
	if headers == nil {
		headers = make(map[string]string, 1)
	}
	if existing, ok := lookupFold(headers, name); ok && existing != name {
		delete(headers, existing)
	}
	headers[name] = value
	return headers
}

// Merge copies src into dst. With overwrite unset, names already present in
// dst in any casing keep their value.
func Merge(dst, src map[string]string, overwrite bool) map[string]string {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string]string, len(src))
	}
	for _, key := range sortedNames(src) {
		name := strings.TrimSpace(key)
		if name == "" {
			continue
		}
		if existing, ok := lookupFold(dst, name); ok {
			if !overwrite {
				continue
			}
			delete(dst, existing)
		}
		dst[name] = src[key]
	}
	return dst
}

// Apply sets every entry of headers on h, replacing existing values.
func Apply(h http.Header, headers map[string]string) {
	for _, name := range sortedNames(headers) {
		if n := strings.TrimSpace(name); n != "" {
			h.Set(n, headers[name])
		}
	}
}

func sortedNames(headers map[string]string) []string {
	names := make([]string, 0, len(headers))
	for name := range headers {
		names = append(names, name)
	}
	slices.SortFunc(names, func(a, b string) int {
		la := strings.ToLower(strings.TrimSpace(a))
		lb := strings.ToLower(strings.TrimSpace(b))
		if la != lb {
			return cmp.Compare(la, lb)
		}
		return cmp.Compare(a, b)
	})
	return names
}

func lookupFold(headers map[string]string, name string) (string, bool) {
	for key := range headers {
		if strings.EqualFold(strings.TrimSpace(key), name) {
			return key, true
		}
	}
	return "", false
}
