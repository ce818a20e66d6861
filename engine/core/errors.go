package core

import (
	"errors"
)

var (
	ErrAssetNotFound = errors.New("asset not found")
	ErrNoLoader      = errors.New("no loader registered for resource type")
	ErrShutdown      = errors.New("system already shut down")
	ErrUnknown       = errors.New("unknown")
)
