package selection

import "errors"

// Shape identifies the five selection request kinds.
type Shape int

const (
	// ShapeSingle clears the selection and selects one node.
	ShapeSingle Shape = iota
	// ShapeToggle flips one node's selection state.
	ShapeToggle
	// ShapeAll selects a supplied batch of nodes.
	ShapeAll
	// ShapeRange selects the inclusive span between two anchors over a
	// supplied flat ordering.
	ShapeRange
	// ShapePattern selects files matching a glob under a directory,
	// optionally recursing into subdirectories.
	ShapePattern
)

// String returns the shape name for diagnostics.
func (s Shape) String() string {
	switch s {
	case ShapeSingle:
		return "single"
	case ShapeToggle:
		return "toggle"
	case ShapeAll:
		return "all"
	case ShapeRange:
		return "range"
	case ShapePattern:
		return "pattern"
	default:
		return "unknown"
	}
}

// Request describes one selection request. Which fields matter depends
// on Shape; unused fields are ignored.
type Request struct {
	Shape Shape

	// Target is the node for Single and Toggle.
	Target string

	// Paths is the batch for All.
	Paths []string

	// Order is the flat render ordering for Range; Anchor and Focus are
	// the span endpoints within it.
	Order  []string
	Anchor string
	Focus  string

	// Pattern is a file glob for Pattern requests, scoped to Dir.
	// Recursive extends the match into subdirectories; Additive adds
	// matches to the current selection instead of replacing it.
	Pattern   string
	Dir       string
	Recursive bool
	Additive  bool
}

// Malformed requests are programmer errors and fail fast at the service
// boundary. Everything else (vanished nodes, stale rows) degrades
// silently.
var (
	ErrUnknownShape = errors.New("selection: unknown request shape")
	ErrEmptyRequest = errors.New("selection: request payload is empty")
)

// validate rejects requests whose payload cannot possibly be acted on.
func (r Request) validate() error {
	switch r.Shape {
	case ShapeSingle, ShapeToggle:
		if r.Target == "" {
			return ErrEmptyRequest
		}
	case ShapeAll:
		// An empty batch is a legitimate "clear selection".
	case ShapeRange:
		if len(r.Order) == 0 {
			return ErrEmptyRequest
		}
	case ShapePattern:
		if r.Pattern == "" || r.Dir == "" {
			return ErrEmptyRequest
		}
	default:
		return ErrUnknownShape
	}
	return nil
}
