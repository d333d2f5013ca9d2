package navigation

import (
	"errors"
	"fmt"
)

// ErrViewport marks a viewport that cannot hold a cursor
var ErrViewport = errors.New("invalid viewport")

// AccelDivisor scales accelerated steps to a fraction of the viewport dimension
const AccelDivisor = 10

// Direction of a single-axis cursor move
type Direction uint8

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// String returns the lowercase direction name
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	}
	return fmt.Sprintf("direction(%d)", uint8(d))
}

// Viewport is the terminal grid size, fixed for the process lifetime
type Viewport struct {
	Columns uint
	Rows    uint
}

// NewViewport converts a backend size report
func NewViewport(width, height int) (Viewport, error) {
	if width <= 0 || height <= 0 {
		return Viewport{}, fmt.Errorf("%w: %dx%d", ErrViewport, width, height)
	}
	return Viewport{Columns: uint(width), Rows: uint(height)}, nil
}

// Position is a zero-based screen coordinate
type Position struct {
	X uint
	Y uint
}

// Controller owns the cursor position and clamps it to the viewport
// Invariant: X < Columns and Y < Rows after every call
type Controller struct {
	pos Position
	vp  Viewport
}

// NewController creates a controller with the cursor at the origin
func NewController(vp Viewport) (*Controller, error) {
	if vp.Columns == 0 || vp.Rows == 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrViewport, vp.Columns, vp.Rows)
	}
	return &Controller{vp: vp}, nil
}

// Position returns the current cursor position
func (c *Controller) Position() Position { return c.pos }

// Viewport returns the fixed viewport
func (c *Controller) Viewport() Viewport { return c.vp }

// Move steps one cell; reports false when blocked at an edge
func (c *Controller) Move(dir Direction) bool {
	return c.step(dir, 1, 1)
}

// Jump steps a tenth of the moved axis, clamped to the last index
// A viewport smaller than AccelDivisor on that axis yields a zero step and no movement
func (c *Controller) Jump(dir Direction) bool {
	return c.step(dir, c.vp.Rows/AccelDivisor, c.vp.Columns/AccelDivisor)
}

func (c *Controller) step(dir Direction, vertical, horizontal uint) bool {
	before := c.pos
	switch dir {
	case DirUp:
		c.pos.Y = saturatingSub(c.pos.Y, vertical)
	case DirLeft:
		c.pos.X = saturatingSub(c.pos.X, horizontal)
	case DirDown:
		c.pos.Y = clampedAdd(c.pos.Y, vertical, c.vp.Rows-1)
	case DirRight:
		c.pos.X = clampedAdd(c.pos.X, horizontal, c.vp.Columns-1)
	}
	return c.pos != before
}

func saturatingSub(v, n uint) uint {
	if n > v {
		return 0
	}
	return v - n
}

// clampedAdd increments only below last, never past it
func clampedAdd(v, n, last uint) uint {
	if v >= last {
		return last
	}
	if n > last-v {
		return last
	}
	return v + n
}
