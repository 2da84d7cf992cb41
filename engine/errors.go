package engine

import "errors"

var (
	// ErrEmptySurface is returned when particles are requested before the surface has a size
	ErrEmptySurface = errors.New("drawing surface has zero area")

	// ErrUnknownSection is returned when a scroll position references a section the page does not define
	ErrUnknownSection = errors.New("unknown page section")

	// ErrBadPosition is returned for scroll position strings that cannot be parsed
	ErrBadPosition = errors.New("invalid scroll position")
)
