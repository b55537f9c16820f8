package http

import (
	"mime"
	"net/http"
)

const (
	// MaxPathLength caps the URL path.
	MaxPathLength = 2048

	// MaxBodyBytes caps submission bodies. A manual update is a few KB at most.
	MaxBodyBytes = 64 << 10

	// MaxQueryValues caps repeated query parameters such as ?company=.
	MaxQueryValues = 100
)

// bodyMediaTypes are the request bodies the dashboard accepts: JSON for
// the API and urlencoded posts from the submission form.
var bodyMediaTypes = map[string]struct{}{
	"application/json":                  {},
	"application/x-www-form-urlencoded": {},
}

// InputValidation returns middleware that rejects oversized paths and query
// strings, rejects POST/PUT/PATCH bodies that are neither JSON nor a
// urlencoded form, and limits request bodies to MaxBodyBytes.
func InputValidation() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(r.URL.Path) > MaxPathLength {
				writeJSONError(w, http.StatusRequestURITooLong, "URI too long")
				return
			}

			n := 0
			for _, vs := range r.URL.Query() {
				n += len(vs)
			}
			if n > MaxQueryValues {
				writeJSONError(w, http.StatusBadRequest, "too many query parameters")
				return
			}

			if hasBody(r.Method) && !acceptedMediaType(r.Header.Get("Content-Type")) {
				writeJSONError(w, http.StatusUnsupportedMediaType, "unsupported content type")
				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
			next.ServeHTTP(w, r)
		})
	}
}

func hasBody(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	}
	return false
}

func acceptedMediaType(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	_, ok := bodyMediaTypes[mt]
	return ok
}

func writeJSONError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write([]byte(`{"error":"` + msg + `"}`))
}
