package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/muhammadali233755/blogging-app/blog/domain"
)

const maxBodyBytes = 1 << 20 // 1 MiB is plenty for any payload here

var errBadBody = errors.New("malformed request body")

// decodeJSON reads one JSON object into dst, rejecting trailing garbage
// and oversized bodies.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errBadBody
	}
	if dec.More() {
		return errBadBody
	}
	_, _ = io.Copy(io.Discard, r.Body)
	return nil
}

// pathID parses the {name} path value as a positive integer.
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.Invalid(name, "must be a positive integer")
	}
	return id, nil
}

// pageFrom reads skip/limit query params; bad values fall back to the
// defaults instead of failing the request.
func pageFrom(r *http.Request) domain.Page {
	q := r.URL.Query()
	page := domain.Page{}
	if v, err := strconv.Atoi(q.Get("skip")); err == nil {
		page.Skip = v
	}
	if v, err := strconv.Atoi(q.Get("limit")); err == nil {
		page.Limit = v
	}
	return page.Normalized()
}

// clientIP resolves the caller's address, preferring the first entry of
// X-Forwarded-For when trustXFF is on.
func clientIP(r *http.Request, trustXFF bool) string {
	if trustXFF {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			parts := strings.Split(xff, ",")
			if ip := strings.TrimSpace(parts[0]); ip != "" {
				return ip
			}
		}
	}
	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err == nil && host != "" {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}
	return "unknown"
}
