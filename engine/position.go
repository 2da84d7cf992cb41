package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// EdgeRef is a point on an element or on the viewport: a fraction of its
// height plus a pixel offset
type EdgeRef struct {
	Frac float64
	Px   float64
}

// ScrollPosition says which point of a section must meet which point of the
// viewport, e.g. "top center" or "30% center" or "top top-=10"
type ScrollPosition struct {
	Element  EdgeRef
	Viewport EdgeRef
}

// ParsePosition parses "<element> <viewport>" position strings. Each side is
// top, center, bottom, a percentage or a pixel value, optionally followed by
// +=N or -=N pixels. A single token applies to both sides.
func ParsePosition(s string) (ScrollPosition, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 || len(fields) > 2 {
		return ScrollPosition{}, fmt.Errorf("%q: %w", s, ErrBadPosition)
	}
	if len(fields) == 1 {
		fields = append(fields, fields[0])
	}

	el, err := parseEdge(fields[0])
	if err != nil {
		return ScrollPosition{}, fmt.Errorf("%q element side: %w", s, err)
	}
	vp, err := parseEdge(fields[1])
	if err != nil {
		return ScrollPosition{}, fmt.Errorf("%q viewport side: %w", s, err)
	}
	return ScrollPosition{Element: el, Viewport: vp}, nil
}

func parseEdge(tok string) (EdgeRef, error) {
	var ref EdgeRef

	base := tok
	if i := strings.Index(tok, "+="); i > 0 {
		off, err := strconv.ParseFloat(strings.TrimSuffix(tok[i+2:], "px"), 64)
		if err != nil {
			return ref, ErrBadPosition
		}
		base, ref.Px = tok[:i], off
	} else if i := strings.Index(tok, "-="); i > 0 {
		off, err := strconv.ParseFloat(strings.TrimSuffix(tok[i+2:], "px"), 64)
		if err != nil {
			return ref, ErrBadPosition
		}
		base, ref.Px = tok[:i], -off
	}

	switch {
	case base == "top":
		ref.Frac = 0
	case base == "center":
		ref.Frac = 0.5
	case base == "bottom":
		ref.Frac = 1
	case strings.HasSuffix(base, "%"):
		v, err := strconv.ParseFloat(strings.TrimSuffix(base, "%"), 64)
		if err != nil {
			return ref, ErrBadPosition
		}
		ref.Frac = v / 100
	default:
		v, err := strconv.ParseFloat(strings.TrimSuffix(base, "px"), 64)
		if err != nil {
			return ref, ErrBadPosition
		}
		ref.Px += v
	}
	return ref, nil
}

// Resolve returns the scroll offset at which the element point meets the viewport point
func (p ScrollPosition) Resolve(top, height, viewport float64) float64 {
	el := top + p.Element.Frac*height + p.Element.Px
	vp := p.Viewport.Frac*viewport + p.Viewport.Px
	return el - vp
}

// Section is a named block of the page, Height in viewport heights
type Section struct {
	ID     string  `mapstructure:"id" yaml:"id"`
	Height float64 `mapstructure:"height" yaml:"height"`
}

// BodySection names the whole page
const BodySection = "body"

// Page is the virtual scrolling document the scenes are laid out on
type Page struct {
	Sections []Section
	Viewport Bounds
}

// NewPage creates a page with the given sections
func NewPage(viewport Bounds, sections ...Section) *Page {
	return &Page{Sections: sections, Viewport: viewport}
}

// Height returns the page height in pixels
func (p *Page) Height() float64 {
	h := 0.0
	for _, s := range p.Sections {
		h += s.Height * p.Viewport.H
	}
	return h
}

// MaxScroll returns the largest scroll offset
func (p *Page) MaxScroll() float64 {
	return max(0, p.Height()-p.Viewport.H)
}

// Section returns the top and height of a section in pixels
func (p *Page) Section(id string) (top, height float64, err error) {
	if id == BodySection {
		return 0, p.Height(), nil
	}
	for _, s := range p.Sections {
		h := s.Height * p.Viewport.H
		if s.ID == id {
			return top, h, nil
		}
		top += h
	}
	return 0, 0, fmt.Errorf("%q: %w", id, ErrUnknownSection)
}

// Resolve turns a section id and position string into a scroll offset
func (p *Page) Resolve(id, position string) (float64, error) {
	top, height, err := p.Section(id)
	if err != nil {
		return 0, err
	}
	pos, err := ParsePosition(position)
	if err != nil {
		return 0, err
	}
	return pos.Resolve(top, height, p.Viewport.H), nil
}
