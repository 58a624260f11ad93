package server

import (
	"bytes"
	"crypto/md5"
	"fmt"
	"net/http"
)

// ETag buffers the response and answers 304 when the client already holds
// the same body.
func ETag(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := NewWrapperResponseWriter(w)
		next.ServeHTTP(ww, r)
		_, _ = ww.Flush(r.Header.Get("If-None-Match"))
	})
}

type wrapperResponseWriter struct {
	http.ResponseWriter
	buf        *bytes.Buffer
	statusCode int
}

func NewWrapperResponseWriter(w http.ResponseWriter) *wrapperResponseWriter {
	return &wrapperResponseWriter{w, new(bytes.Buffer), http.StatusOK}
}

func (w *wrapperResponseWriter) Write(b []byte) (int, error) {
	return w.buf.Write(b)
}

// WriteHeader is held back until Flush so a 304 can replace it.
func (w *wrapperResponseWriter) WriteHeader(code int) {
	w.statusCode = code
}

func (w *wrapperResponseWriter) Flush(ifNoneMatch string) (int64, error) {
	if 200 <= w.statusCode && w.statusCode < 300 {
		etag := fmt.Sprintf("\"%x\"", md5.Sum(w.buf.Bytes()))
		w.Header().Set("ETag", etag)
		// feeds and favorites change with every mutation
		w.Header().Set("Cache-Control", "no-cache")
		if ifNoneMatch == etag {
			w.ResponseWriter.WriteHeader(http.StatusNotModified)
			return 0, nil
		}
	}

	w.ResponseWriter.WriteHeader(w.statusCode)
	return w.buf.WriteTo(w.ResponseWriter)
}
