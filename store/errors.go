// Package store holds the single error type surfaced by the store adapters
// and the rules that turn driver errors into it.
package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/lib/pq"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/x/mongo/driver/topology"
)

type Kind int

const (
	KindInternal Kind = iota
	KindUnavailable
	KindInvalidInput
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindUnavailable:
		return "unavailable"
	case KindInvalidInput:
		return "invalid_input"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

var (
	ErrNotConnected = errors.New("database connection not established")
	ErrInvalidID    = errors.New("malformed identifier")
)

// Error is returned by every store adapter operation that fails.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Classify wraps err into an *Error for operation op. Nil stays nil and
// already classified errors are returned unchanged.
func Classify(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *Error
	if errors.As(err, &se) {
		return se
	}
	return &Error{Kind: kindOf(err), Op: op, Err: err}
}

// KindOf reports the kind of a classified error, or KindInternal otherwise.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindInternal
}

func kindOf(err error) Kind {
	switch {
	case errors.Is(err, ErrNotConnected),
		errors.Is(err, mongo.ErrClientDisconnected),
		errors.Is(err, topology.ErrServerSelectionTimeout),
		errors.Is(err, driver.ErrBadConn),
		errors.Is(err, sql.ErrConnDone),
		errors.Is(err, context.DeadlineExceeded),
		mongo.IsNetworkError(err),
		mongo.IsTimeout(err):
		return KindUnavailable
	case errors.Is(err, ErrInvalidID),
		errors.Is(err, primitive.ErrInvalidHex):
		return KindInvalidInput
	case mongo.IsDuplicateKeyError(err):
		return KindConflict
	}

	var selErr topology.ServerSelectionError
	if errors.As(err, &selErr) {
		return KindUnavailable
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return KindUnavailable
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code.Class() {
		case "08", "57":
			return KindUnavailable
		case "22":
			return KindInvalidInput
		case "23":
			return KindConflict
		}
	}
	return KindInternal
}

// HTTPStatus maps a kind to the response status. Every store failure is
// reported as 400 Bad Request.
func HTTPStatus(Kind) int {
	return http.StatusBadRequest
}

// PublicMessage is the text placed in the error field of a failed response.
func PublicMessage(k Kind) string {
	switch k {
	case KindUnavailable:
		return "database unavailable"
	case KindInvalidInput:
		return "invalid input"
	case KindConflict:
		return "constraint violation"
	default:
		return "database error"
	}
}
