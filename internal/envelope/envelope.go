// Package envelope defines the uniform result shape returned by every
// backend API wrapper, together with the single extraction rule used to
// locate the payload inside a backend response body.
package envelope

import (
	"encoding/json"
	"strings"
)

// ErrorKind classifies a failed backend call.
type ErrorKind int

const (
	ErrNone ErrorKind = iota
	ErrTransport
	ErrServer
	ErrNotFound
	ErrValidation
)

func (k ErrorKind) String() string {
	switch k {
	case ErrNone:
		return "none"
	case ErrTransport:
		return "transport"
	case ErrServer:
		return "server"
	case ErrNotFound:
		return "not_found"
	case ErrValidation:
		return "validation"
	}
	return "unknown"
}

// Pagination describes the page window of a list response.
type Pagination struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

// NewPagination computes the page window. TotalPages is zero when there are
// no items at all.
func NewPagination(page, perPage, totalItems int) *Pagination {
	p := &Pagination{Page: page, PerPage: perPage, TotalItems: totalItems}
	if totalItems > 0 && perPage > 0 {
		p.TotalPages = (totalItems + perPage - 1) / perPage
	}
	return p
}

// Envelope is the uniform outcome of one backend call. Data always holds a
// usable value: the decoded payload on success, the type's empty default on
// failure, so callers never need to type-narrow.
type Envelope[T any] struct {
	Success    bool        `json:"success"`
	Data       T           `json:"data"`
	Message    string      `json:"message"`
	Kind       ErrorKind   `json:"kind,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// OK builds a success envelope.
func OK[T any](data T, msg string) Envelope[T] {
	return Envelope[T]{Success: true, Data: data, Message: msg}
}

// Fail builds a failure envelope carrying the type's zero default.
func Fail[T any](kind ErrorKind, msg string) Envelope[T] {
	var zero T
	return Envelope[T]{Success: false, Data: zero, Message: msg, Kind: kind}
}

// FailList builds a failure envelope whose default is an empty (non-nil)
// slice, matching what collection wrappers hand out on success.
func FailList[T any](kind ErrorKind, msg string) Envelope[[]T] {
	return Envelope[[]T]{Success: false, Data: []T{}, Message: msg, Kind: kind}
}

// Transport builds the envelope for a request that never produced a
// response.
func Transport[T any](failMsg string) Envelope[T] {
	return Fail[T](ErrTransport, failMsg)
}

// body mirrors the conventional backend response shape. Every field is
// optional; absent fields fall through the extraction rule below.
type body struct {
	Success    *bool           `json:"success"`
	Message    string          `json:"message"`
	Detail     string          `json:"detail"`
	Data       json.RawMessage `json:"data"`
	Total      *int            `json:"total"`
	TotalItems *int            `json:"total_items"`
	Pagination *struct {
		TotalItems *int `json:"total_items"`
		Total      *int `json:"total"`
	} `json:"pagination"`
}

// failureMessage extracts the error text in priority order: detail, then
// message, then the caller's default.
func (b *body) failureMessage(fallback string) string {
	if b.Detail != "" {
		return b.Detail
	}
	if b.Message != "" {
		return b.Message
	}
	return fallback
}

// serverTotal returns the backend-reported item total, if any.
func (b *body) serverTotal() (int, bool) {
	if b.Total != nil {
		return *b.Total, true
	}
	if b.TotalItems != nil {
		return *b.TotalItems, true
	}
	if b.Pagination != nil {
		if b.Pagination.TotalItems != nil {
			return *b.Pagination.TotalItems, true
		}
		if b.Pagination.Total != nil {
			return *b.Pagination.Total, true
		}
	}
	return 0, false
}

var notFoundMarkers = []string{"not found", "no data", "no vehicle", "failed to get"}

// NotFoundMessage reports whether an error message reads as a "nothing
// there" outcome. Message-text matching is a fallback for backends that do
// not return a 404; the status code wins when present.
func NotFoundMessage(msg string) bool {
	lower := strings.ToLower(msg)
	for _, marker := range notFoundMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// Classify maps an HTTP failure to an error kind.
func Classify(status int, msg string) ErrorKind {
	if status == 404 || NotFoundMessage(msg) {
		return ErrNotFound
	}
	return ErrServer
}

// Extract parses a single-entity response into an envelope.
//
// Extraction rule: on a 2xx response whose body does not declare
// success=false, the payload is the body's data field when present,
// otherwise the whole body; the message is the body's message field when
// present, otherwise okMsg. Any other outcome is a failure carrying the
// zero default and the detail/message/failMsg chain.
func Extract[T any](status int, raw []byte, okMsg, failMsg string) Envelope[T] {
	var b body
	structured := json.Unmarshal(raw, &b) == nil

	if status < 200 || status >= 300 {
		msg := failMsg
		if structured {
			msg = b.failureMessage(failMsg)
		}
		return Fail[T](Classify(status, msg), msg)
	}

	if structured && b.Success != nil && !*b.Success {
		msg := b.failureMessage(failMsg)
		return Fail[T](Classify(status, msg), msg)
	}

	var data T
	payload := raw
	if structured && len(b.Data) > 0 && string(b.Data) != "null" {
		payload = b.Data
	}
	if len(payload) > 0 && string(payload) != "null" {
		if err := json.Unmarshal(payload, &data); err != nil {
			return Fail[T](ErrServer, failMsg)
		}
	}

	msg := okMsg
	if structured && b.Message != "" {
		msg = b.Message
	}
	return OK(data, msg)
}

// ExtractList parses a collection response into an envelope with a non-nil
// slice and a pagination block. The item total is the backend-reported
// total when the body carries one; otherwise it falls back to the length of
// the returned page.
func ExtractList[T any](status int, raw []byte, page, perPage int, okMsg, failMsg string) Envelope[[]T] {
	var b body
	structured := json.Unmarshal(raw, &b) == nil

	if status < 200 || status >= 300 {
		msg := failMsg
		if structured {
			msg = b.failureMessage(failMsg)
		}
		return FailList[T](Classify(status, msg), msg)
	}

	if structured && b.Success != nil && !*b.Success {
		msg := b.failureMessage(failMsg)
		return FailList[T](Classify(status, msg), msg)
	}

	items := []T{}
	payload := raw
	if structured && len(b.Data) > 0 && string(b.Data) != "null" {
		payload = b.Data
	}
	if len(payload) > 0 && string(payload) != "null" {
		if err := json.Unmarshal(payload, &items); err != nil {
			return FailList[T](ErrServer, failMsg)
		}
	}
	if items == nil {
		items = []T{}
	}

	total := len(items)
	if structured {
		if serverTotal, ok := b.serverTotal(); ok {
			total = serverTotal
		}
	}

	msg := okMsg
	if structured && b.Message != "" {
		msg = b.Message
	}

	env := OK(items, msg)
	env.Pagination = NewPagination(page, perPage, total)
	return env
}
