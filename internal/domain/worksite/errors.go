package worksite

import "errors"

var (
	ErrWorksiteNotFound   = errors.New("worksite not found")
	ErrWorksiteCodeExists = errors.New("worksite code already exists")
	ErrWorksiteInactive   = errors.New("worksite is not active")
)
