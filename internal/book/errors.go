package book

import (
	"errors"
	"fmt"
)

// ErrorCode distinguishes BookError values the way pkg/errors.Error's Kind
// field distinguishes its RFC-7807 problem types, minus the HTTP surface:
// this core has no transport layer to report a status code to.
type ErrorCode string

const (
	// CodeDuplicateOrderID is returned by Add when the id is already resting.
	CodeDuplicateOrderID ErrorCode = "DUPLICATE_ORDER_ID"
	// CodeOrderNotFound is returned by Cancel/Modify for an unknown id.
	CodeOrderNotFound ErrorCode = "ORDER_NOT_FOUND"
	// CodeOverfill marks a fill that exceeds an order's remaining quantity.
	// Programmer error: never returned, only ever panicked with.
	CodeOverfill ErrorCode = "OVERFILL"
	// CodeInvalidPromotion marks an attempt to re-anchor a non-Market order.
	// Programmer error: never returned, only ever panicked with.
	CodeInvalidPromotion ErrorCode = "INVALID_PROMOTION"
)

// BookError is the book's tagged error type. It supports errors.Is/As via
// Unwrap and a Code-based Is, mirroring the host's pkg/errors.Error.
type BookError struct {
	Code    ErrorCode
	OrderID OrderID
	Message string
	cause   error
}

var _ error = (*BookError)(nil)

func (e *BookError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("[%s] order %d: %s", e.Code, e.OrderID, e.Message)
	}
	return fmt.Sprintf("[%s] order %d", e.Code, e.OrderID)
}

func (e *BookError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// Is reports equality by Code, the same convention pkg/errors.Error uses:
// two BookErrors are "the same" error for errors.Is purposes iff their Code
// matches, regardless of which order triggered them.
func (e *BookError) Is(target error) bool {
	other, ok := target.(*BookError)
	if !ok {
		return false
	}
	return other.Code == e.Code
}

// Sentinel values for errors.Is comparisons, e.g. errors.Is(err, book.ErrDuplicateOrderID).
var (
	ErrDuplicateOrderID = &BookError{Code: CodeDuplicateOrderID}
	ErrOrderNotFound    = &BookError{Code: CodeOrderNotFound}
	ErrOverfill         = &BookError{Code: CodeOverfill}
	ErrInvalidPromotion = &BookError{Code: CodeInvalidPromotion}
)

func newDuplicateOrderIDError(id OrderID) *BookError {
	return &BookError{Code: CodeDuplicateOrderID, OrderID: id, Message: "order id already present in book"}
}

func newOrderNotFoundError(id OrderID) *BookError {
	return &BookError{Code: CodeOrderNotFound, OrderID: id, Message: "order id not present in book"}
}

func newOverfillError(id OrderID) *BookError {
	return &BookError{Code: CodeOverfill, OrderID: id, Message: "fill quantity exceeds remaining quantity"}
}

func newInvalidPromotionError(id OrderID) *BookError {
	return &BookError{Code: CodeInvalidPromotion, OrderID: id, Message: "promoteToLimit called on a non-Market order"}
}

// ErrorCodeOf extracts the ErrorCode from err if it (or something it wraps)
// is a *BookError, and returns an empty ErrorCode otherwise. Intended for
// callers outside this package that want a label for metrics/logging
// without needing to know the concrete error type.
func ErrorCodeOf(err error) ErrorCode {
	var be *BookError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}
