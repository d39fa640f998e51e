package service

import "errors"

// Sentinel errors returned by the service layer. Callers distinguish
// "record does not exist" from storage failures with errors.Is; anything
// not listed here is a wrapped storage error.
var (
	ErrEnvironmentNotFound = errors.New("environment not found")
	ErrSurveyNotFound      = errors.New("survey not found")
	ErrInvalidSurveyStatus = errors.New("invalid survey status")
	ErrResponseNotFound    = errors.New("response not found")
	ErrTagNotFound         = errors.New("tag not found")
	ErrTagNameTaken        = errors.New("tag name already exists in this environment")
	ErrTagAlreadyApplied   = errors.New("tag already applied to this response")
	ErrMergeSameTag        = errors.New("source and destination tag are the same")
	ErrAPIKeyNotFound      = errors.New("api key not found")
	ErrInvalidAPIKey       = errors.New("invalid api key")
)
