package apperr_test

import (
	"net/http"
	"strings"
	"testing"

	"wallcraft/internal/apperr"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
)

func TestError_Message(t *testing.T) {
	err := apperr.RemoteFetchError("pexels.Curated", 429, "rate limit exceeded", nil)
	assert.Equal(t, "pexels.Curated: remote_fetch: status 429: rate limit exceeded", err.Error())
}

func TestWrap_CauseAppearsOnce(t *testing.T) {
	err := apperr.DownloadError("gallery.Download", errors.New("connection reset"))

	assert.Equal(t, "gallery.Download: download: connection reset", err.Error())
	assert.Equal(t, 1, strings.Count(err.Error(), "connection reset"))
	assert.Equal(t, "connection reset", err.Text())
}

func TestError_TextPrefersMessage(t *testing.T) {
	err := apperr.RemoteFetchError("pexels.Search", 502, "bad gateway", errors.New("read: eof"))

	assert.Equal(t, "pexels.Search: remote_fetch: status 502: bad gateway: read: eof", err.Error())
	assert.Equal(t, "bad gateway", err.Text())
}

func TestKindOf_Wrapped(t *testing.T) {
	cause := errors.New("disk full")
	err := errors.Wrap(apperr.PersistenceError("favorites.save", cause), "flush")

	assert.Equal(t, apperr.Persistence, apperr.KindOf(err))
	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, &apperr.Error{Kind: apperr.Persistence})
	assert.NotErrorIs(t, err, &apperr.Error{Kind: apperr.Download})
}

func TestKindOf_Plain(t *testing.T) {
	assert.Equal(t, apperr.Unknown, apperr.KindOf(errors.New("boom")))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{apperr.New(apperr.Invalid, "op", "bad"), http.StatusBadRequest},
		{apperr.New(apperr.NotFound, "op", "missing"), http.StatusNotFound},
		{apperr.PermissionDeniedError("op", "denied"), http.StatusForbidden},
		{apperr.RemoteFetchError("op", 500, "upstream", nil), http.StatusBadGateway},
		{apperr.DownloadError("op", errors.New("eof")), http.StatusBadGateway},
		{errors.New("other"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, apperr.HTTPStatus(tt.err), tt.err.Error())
	}
}

func TestWrap_Nil(t *testing.T) {
	assert.Nil(t, apperr.Wrap(apperr.Share, "op", nil))
}
