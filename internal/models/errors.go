package models

import "errors"

// Sentinel errors shared between the service, repositories and HTTP handlers.
// Handlers map them to status codes with errors.Is, so wrapped variants
// (fmt.Errorf("%w: ...")) keep working.
var (
	// ErrValidation - the generation request failed schema validation.
	ErrValidation = errors.New("invalid generation request")

	// ErrGenerationFailed - the image provider returned no usable image.
	ErrGenerationFailed = errors.New("image generation failed")

	// ErrNotFound - lookup by an unknown thumbnail id.
	ErrNotFound = errors.New("thumbnail not found")

	// ErrStore - persistence backend fault. The in-memory store never
	// produces it; redis/postgres backends wrap their driver errors into it
	// instead of leaking them.
	ErrStore = errors.New("thumbnail store error")
)
