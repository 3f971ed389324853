package util

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrEmailRegistered     = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrCourseNotFound      = errors.New("course not found")
	ErrLessonNotFound      = errors.New("lesson not found")
	ErrResourceNotFound    = errors.New("resource not found")
	ErrQuizNotFound        = errors.New("quiz not found")
	ErrQuestionNotFound    = errors.New("question not found")
	ErrOptionNotFound      = errors.New("option not found")
	ErrAttemptNotFound     = errors.New("attempt not found")
	ErrNotEnrolled         = errors.New("not enrolled in this course")
	ErrAlreadyEnrolled     = errors.New("already enrolled in this course")
	ErrPermissionDenied    = errors.New("permission denied")
	ErrAnswerCountMismatch = errors.New("number of answers must match number of questions")
	ErrUnknownQuestion     = errors.New("invalid question ids provided")
	ErrNoChanges           = errors.New("no changes made")
)
