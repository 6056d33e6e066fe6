// internals/helpers/errs/errors.go
package errs

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Kind memetakan kategori error domain ke HTTP status.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindConflict
	KindAuthorization
	KindUnavailable
	KindInternal
)

type Error struct {
	Kind    Kind
	Code    string // stable machine-readable code, contoh: "already_checked_in"
	Message string
}

func (e *Error) Error() string { return e.Message }

func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

func Validation(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Code: "validation_error", Message: fmt.Sprintf(format, args...)}
}

func NotFound(resource string) *Error {
	return &Error{Kind: KindNotFound, Code: "not_found", Message: resource + " not found"}
}

func Forbidden(message string) *Error {
	return &Error{Kind: KindAuthorization, Code: "forbidden", Message: message}
}

func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Code: "internal_error", Message: err.Error()}
}

/* =========================================================
 * Sentinel errors — check-in pipeline & state machines
 * ========================================================= */

var (
	ErrSessionNotOpen = &Error{Kind: KindConflict, Code: "session_not_open",
		Message: "Session is not accepting check-ins"}
	ErrAlreadyCheckedIn = &Error{Kind: KindConflict, Code: "already_checked_in",
		Message: "Already checked in for this session"}
	ErrAlreadyAppealed = &Error{Kind: KindConflict, Code: "already_appealed",
		Message: "Check-in has already been appealed"}
	ErrAppealWindowExpired = &Error{Kind: KindConflict, Code: "appeal_window_expired",
		Message: "Appeal window has closed"}
	ErrInvalidTransition = &Error{Kind: KindConflict, Code: "invalid_transition",
		Message: "Invalid session status transition"}
	ErrVerificationUnavailable = &Error{Kind: KindUnavailable, Code: "verification_unavailable",
		Message: "Verification service unavailable, please retry"}
	ErrNotEnrolled = &Error{Kind: KindConflict, Code: "not_enrolled",
		Message: "Not enrolled in this course"}
)

// HTTPStatus mengembalikan status code untuk error domain.
// Error non-domain dianggap 500.
func HTTPStatus(err error) int {
	var de *Error
	if !errors.As(err, &de) {
		return fiber.StatusInternalServerError
	}
	switch de.Kind {
	case KindValidation:
		return fiber.StatusBadRequest
	case KindNotFound:
		return fiber.StatusNotFound
	case KindConflict:
		return fiber.StatusConflict
	case KindAuthorization:
		return fiber.StatusForbidden
	case KindUnavailable:
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// CodeOf mengambil stable code ("internal_error" untuk error biasa).
func CodeOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return "internal_error"
}
