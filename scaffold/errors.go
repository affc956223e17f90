package scaffold

import "errors"

var (
	ErrInvalidConfig      = errors.New("invalid project configuration")
	ErrNotImplemented     = errors.New("not implemented yet")
	ErrOverwriteDeclined  = errors.New("overwrite declined")
	ErrTargetExists       = errors.New("target directory already exists")
	ErrTemplateNotFound   = errors.New("template not found")
	ErrCommandFailed      = errors.New("external command failed")
	ErrCleanup            = errors.New("cleanup failure")
	ErrUnsupportedRuntime = errors.New("unsupported runtime")
)
