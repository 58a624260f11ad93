// Package apperr defines the failure kinds surfaced by wallcraft's external
// call sites. Every wrapper around the network, local storage, the gallery or
// the share sheet returns an *Error so that the decision to log and degrade is
// made once, by whoever owns the boundary.
package apperr

import (
	"fmt"
	"net/http"

	"github.com/go-faster/errors"
)

type Kind int

const (
	Unknown Kind = iota
	RemoteFetch
	Persistence
	PermissionDenied
	Download
	Share
	Invalid
	NotFound
)

func (k Kind) String() string {
	switch k {
	case RemoteFetch:
		return "remote_fetch"
	case Persistence:
		return "persistence"
	case PermissionDenied:
		return "permission_denied"
	case Download:
		return "download"
	case Share:
		return "share"
	case Invalid:
		return "invalid"
	case NotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// ErrNotSearchable is returned when a query is issued to a curated feed.
var ErrNotSearchable = New(Invalid, "feed.NewQuery", "feed does not accept search queries")

type Error struct {
	Kind    Kind
	Op      string
	Status  int // upstream status for RemoteFetch, 0 when the request never completed
	Message string
	Err     error
}

func (e *Error) Error() string {
	s := e.Op + ": " + e.Kind.String()
	if e.Status != 0 {
		s += fmt.Sprintf(": status %d", e.Status)
	}
	if e.Message != "" {
		s += ": " + e.Message
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

// Text is the message shown to API clients: Message when set, otherwise the
// wrapped cause.
func (e *Error) Text() string {
	if e.Message == "" && e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports a match against another *Error of the same kind, so callers can
// test with errors.Is(err, &apperr.Error{Kind: apperr.Persistence}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Op == "" || t.Op == e.Op)
}

func New(kind Kind, op, message string) *Error {
	return &Error{Kind: kind, Op: op, Message: message}
}

func Wrap(kind Kind, op string, err error) *Error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

func RemoteFetchError(op string, status int, message string, err error) *Error {
	return &Error{Kind: RemoteFetch, Op: op, Status: status, Message: message, Err: err}
}

func PersistenceError(op string, err error) *Error {
	return Wrap(Persistence, op, err)
}

func PermissionDeniedError(op, message string) *Error {
	return New(PermissionDenied, op, message)
}

func DownloadError(op string, err error) *Error {
	return Wrap(Download, op, err)
}

func ShareError(op string, err error) *Error {
	return Wrap(Share, op, err)
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}

// HTTPStatus maps err to the status code the server answers with.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case Invalid:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case PermissionDenied:
		return http.StatusForbidden
	case RemoteFetch, Download:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
