package services

import (
	"errors"
	"fmt"
)

type Code string

const (
	CodeNotFound              Code = "not_found"
	CodeInvalidTransition     Code = "invalid_transition"
	CodeLessonNotCompleted    Code = "lesson_not_completed"
	CodeLessonStudentMismatch Code = "lesson_student_mismatch"
	CodeLessonTeacherMismatch Code = "lesson_teacher_mismatch"
	CodeDuplicateReview       Code = "duplicate_review"
	CodeInvalidRating         Code = "invalid_rating"
	CodeInvalidComment        Code = "invalid_comment"
	CodeInvalidInput          Code = "invalid_input"
	CodeConflict              Code = "conflict"
	CodeStorageFailure        Code = "storage_failure"
)

type Entity string

const (
	EntityLesson         Entity = "lesson"
	EntityTeacher        Entity = "teacher"
	EntityStudent        Entity = "student"
	EntityTeacherProfile Entity = "teacher_profile"
	EntitySubject        Entity = "subject"
	EntityRelationship   Entity = "relationship"
	EntityRequest        Entity = "request"
	EntityAttachment     Entity = "attachment"
	EntityUser           Entity = "user"
)

// Error is the result of every rejected operation. Domain rule violations
// carry a Code (and an Entity for not-found); storage failures wrap the
// underlying error but expose only a redacted message.
type Error struct {
	Code    Code
	Entity  Entity
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Entity != "" {
		return fmt.Sprintf("%s: %s", e.Entity, e.Code)
	}
	return string(e.Code)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches on Code, and on Entity when the target names one.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil {
		return false
	}
	if t.Code != e.Code {
		return false
	}
	return t.Entity == "" || t.Entity == e.Entity
}

var (
	ErrNotFound               = &Error{Code: CodeNotFound}
	ErrLessonNotFound         = notFound(EntityLesson)
	ErrTeacherNotFound        = notFound(EntityTeacher)
	ErrStudentNotFound        = notFound(EntityStudent)
	ErrTeacherProfileNotFound = notFound(EntityTeacherProfile)
	ErrSubjectNotFound        = notFound(EntitySubject)
	ErrRelationshipNotFound   = notFound(EntityRelationship)
	ErrRequestNotFound        = notFound(EntityRequest)
	ErrUserNotFound           = notFound(EntityUser)

	ErrInvalidTransition     = &Error{Code: CodeInvalidTransition, Message: "invalid status transition"}
	ErrLessonNotCompleted    = &Error{Code: CodeLessonNotCompleted, Message: "reviews can only be left for completed lessons"}
	ErrLessonStudentMismatch = &Error{Code: CodeLessonStudentMismatch, Message: "lesson does not belong to the given student"}
	ErrLessonTeacherMismatch = &Error{Code: CodeLessonTeacherMismatch, Message: "lesson does not belong to the given teacher"}
	ErrDuplicateReview       = &Error{Code: CodeDuplicateReview, Message: "a review for this lesson has already been submitted"}
	ErrInvalidRating         = &Error{Code: CodeInvalidRating, Message: "rating must be between 1 and 5"}
	ErrInvalidComment        = &Error{Code: CodeInvalidComment, Message: fmt.Sprintf("comment must be between %d and %d characters", MinCommentLength, MaxCommentLength)}
	ErrInvalidInput          = &Error{Code: CodeInvalidInput, Message: "invalid input"}
	ErrConflict              = &Error{Code: CodeConflict, Message: "conflict"}
	ErrStorageFailure        = &Error{Code: CodeStorageFailure, Message: "storage failure"}
)

func notFound(entity Entity) *Error {
	return &Error{Code: CodeNotFound, Entity: entity, Message: fmt.Sprintf("%s not found", entity)}
}

func newError(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// storageFailure wraps err unless it already is a typed result, which is
// passed through unchanged.
func storageFailure(err error) error {
	if err == nil {
		return nil
	}
	var typed *Error
	if errors.As(err, &typed) {
		return err
	}
	return &Error{Code: CodeStorageFailure, Message: "storage failure", Err: err}
}

// CodeOf returns the Code of a typed error, or CodeStorageFailure for anything else.
func CodeOf(err error) Code {
	var typed *Error
	if errors.As(err, &typed) {
		return typed.Code
	}
	return CodeStorageFailure
}
