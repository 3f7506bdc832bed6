package domain

import "errors"

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrFileTooLarge      = errors.New("file exceeds maximum allowed size")
	ErrUnsupportedFormat = errors.New("unsupported export format")
	ErrConfiguration     = errors.New("extractor configuration error")
	ErrRequestFailed     = errors.New("extraction request failed")
	ErrParseFailure      = errors.New("model reply could not be parsed")
)
