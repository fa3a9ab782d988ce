// Package result holds the outcome taxonomy shared by every BunnyCDN client.
//
// Each operation declares the closed set of HTTP status codes it recognizes
// in a Table. A response whose code is not in the table is Undefined; the
// raw code is still kept on the Result for diagnostics.
package result

import (
	"net/http"
	"strconv"
)

type Status int

const (
	Undefined           Status = 0
	OK                  Status = http.StatusOK
	Created             Status = http.StatusCreated
	BadRequest          Status = http.StatusBadRequest
	Unauthorized        Status = http.StatusUnauthorized
	NotFound            Status = http.StatusNotFound
	ContentTooLarge     Status = http.StatusRequestEntityTooLarge
	InternalServerError Status = http.StatusInternalServerError
)

func (s Status) String() string {
	switch s {
	case Undefined:
		return "UNDEFINED"
	case OK:
		return "OK"
	case Created:
		return "CREATED"
	case BadRequest:
		return "BAD_REQUEST"
	case Unauthorized:
		return "UNAUTHORIZED"
	case NotFound:
		return "NOT_FOUND"
	case ContentTooLarge:
		return "CONTENT_TOO_LARGE"
	case InternalServerError:
		return "INTERNAL_SERVER_ERROR"
	}
	return "Status(" + strconv.Itoa(int(s)) + ")"
}

// Success reports whether s is one of the success tags.
func (s Status) Success() bool {
	return s == OK || s == Created
}

// Outcome maps one HTTP status code to a Status.
type Outcome struct {
	Code   int
	Status Status
}

// Table is the ordered list of codes an operation recognizes.
type Table []Outcome

// Recognize builds a table where each status maps from its own code.
func Recognize(statuses ...Status) Table {
	t := make(Table, 0, len(statuses))
	for _, s := range statuses {
		t = append(t, Outcome{Code: int(s), Status: s})
	}
	return t
}

// Alias adds code as another spelling of s, e.g. 204 answered where 200 is
// documented.
func (t Table) Alias(code int, s Status) Table {
	out := make(Table, len(t), len(t)+1)
	copy(out, t)
	return append(out, Outcome{Code: code, Status: s})
}

// Classify returns the Status registered for code, or Undefined.
func (t Table) Classify(code int) Status {
	for _, o := range t {
		if o.Code == code {
			return o.Status
		}
	}
	return Undefined
}

// Result is the tagged outcome of one API call. Data is only populated when
// Status is a success tag.
type Result[T any] struct {
	Status  Status
	Code    int
	Data    T
	Message string
}

func (r Result[T]) Succeeded() bool {
	return r.Status.Success()
}

// Failure builds a data-less result.
func Failure[T any](status Status, code int, message string) Result[T] {
	return Result[T]{Status: status, Code: code, Message: message}
}

// Success builds a result carrying data.
func Success[T any](status Status, code int, data T) Result[T] {
	return Result[T]{Status: status, Code: code, Data: data}
}
