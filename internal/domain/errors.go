package domain

import (
	"errors"
	"net/http"
)

// ErrorKind identifies a business failure independently of its message.
type ErrorKind string

const (
	KindInvalidInterval          ErrorKind = "INVALID_INTERVAL"
	KindInvalidInput             ErrorKind = "INVALID_INPUT"
	KindPropertyNotFound         ErrorKind = "PROPERTY_NOT_FOUND"
	KindBookingNotFound          ErrorKind = "BOOKING_NOT_FOUND"
	KindDealerNotFound           ErrorKind = "DEALER_NOT_FOUND"
	KindPropertyOrDealerNotFound ErrorKind = "PROPERTY_OR_DEALER_NOT_FOUND"
	KindPropertyNotAvailable     ErrorKind = "PROPERTY_NOT_AVAILABLE"
	KindDateConflict             ErrorKind = "DATE_CONFLICT"
	KindInvalidBookingState      ErrorKind = "INVALID_BOOKING_STATE"
	KindPaymentNotCompleted      ErrorKind = "PAYMENT_NOT_COMPLETED"
	KindUnauthorized             ErrorKind = "UNAUTHORIZED"
	KindTreeTooDeep              ErrorKind = "TREE_TOO_DEEP"
	KindInvalidReferralCode      ErrorKind = "INVALID_REFERRAL_CODE"
	KindDealerAlreadyExists      ErrorKind = "DEALER_ALREADY_EXISTS"
	KindInvalidDealerState       ErrorKind = "INVALID_DEALER_STATE"
	KindCommissionLevelNotFound  ErrorKind = "COMMISSION_LEVEL_NOT_FOUND"
	KindInternal                 ErrorKind = "INTERNAL"
)

// Error is a typed business error carrying the HTTP status it should be reported with.
// Sentinels are compared by Kind, so wrapped copies still match errors.Is.
type Error struct {
	Kind    ErrorKind
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrInvalidInterval          = &Error{Kind: KindInvalidInterval, Status: http.StatusBadRequest, Message: "invalid interval: start must be before end"}
	ErrInvalidInput             = &Error{Kind: KindInvalidInput, Status: http.StatusBadRequest, Message: "invalid input data"}
	ErrPropertyNotFound         = &Error{Kind: KindPropertyNotFound, Status: http.StatusNotFound, Message: "property not found"}
	ErrBookingNotFound          = &Error{Kind: KindBookingNotFound, Status: http.StatusNotFound, Message: "booking not found"}
	ErrDealerNotFound           = &Error{Kind: KindDealerNotFound, Status: http.StatusNotFound, Message: "dealer not found"}
	ErrPropertyOrDealerNotFound = &Error{Kind: KindPropertyOrDealerNotFound, Status: http.StatusNotFound, Message: "property or its dealer not found"}
	ErrPropertyNotAvailable     = &Error{Kind: KindPropertyNotAvailable, Status: http.StatusBadRequest, Message: "property is not available"}
	ErrDateConflict             = &Error{Kind: KindDateConflict, Status: http.StatusBadRequest, Message: "requested dates overlap an existing booking"}
	ErrInvalidBookingState      = &Error{Kind: KindInvalidBookingState, Status: http.StatusBadRequest, Message: "booking is not in a valid state for this operation"}
	ErrPaymentNotCompleted      = &Error{Kind: KindPaymentNotCompleted, Status: http.StatusBadRequest, Message: "payment is not completed"}
	ErrUnauthorized             = &Error{Kind: KindUnauthorized, Status: http.StatusForbidden, Message: "access denied"}
	ErrTreeTooDeep              = &Error{Kind: KindTreeTooDeep, Status: http.StatusBadRequest, Message: "dealer tree exceeds traversal limits"}
	ErrInvalidReferralCode      = &Error{Kind: KindInvalidReferralCode, Status: http.StatusBadRequest, Message: "referral code not found"}
	ErrDealerAlreadyExists      = &Error{Kind: KindDealerAlreadyExists, Status: http.StatusConflict, Message: "user is already a dealer"}
	ErrInvalidDealerState       = &Error{Kind: KindInvalidDealerState, Status: http.StatusBadRequest, Message: "dealer status cannot be changed"}
	ErrCommissionLevelNotFound  = &Error{Kind: KindCommissionLevelNotFound, Status: http.StatusNotFound, Message: "commission level is not configured"}
	ErrInternal                 = &Error{Kind: KindInternal, Status: http.StatusInternalServerError, Message: "internal error"}
)

// HTTPStatus returns the status hint of the first *Error in err's chain, or 500.
func HTTPStatus(err error) int {
	var de *Error
	if errors.As(err, &de) {
		return de.Status
	}
	return http.StatusInternalServerError
}

// KindOf returns the kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}
