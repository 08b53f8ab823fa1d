package domain

import "errors"

var (
	ErrGameNotFound      = errors.New("game not found")
	ErrProfileNotFound   = errors.New("profile not found")
	ErrProfileExists     = errors.New("profile already exists")
	ErrModNotFound       = errors.New("mod not found")
	ErrAmbiguousState    = errors.New("mod is both active and inactive")
	ErrManifestParse     = errors.New("invalid manifest")
	ErrMoveFailed        = errors.New("move failed")
	ErrExtractFailed     = errors.New("extraction failed")
	ErrNoManifest        = errors.New("archive contains no manifest")
	ErrRemoteUnavailable = errors.New("mod registry unavailable")
	ErrSwitchInterrupted = errors.New("profile switch interrupted")
	ErrInvalidConfig     = errors.New("invalid configuration")
)
