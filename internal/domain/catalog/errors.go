package catalog

import "errors"

var (
	ErrAreaNotFound   = errors.New("care area not found")
	ErrReasonNotFound = errors.New("reason not found")
)
