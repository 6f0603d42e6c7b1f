package engine

import "github.com/example/pagemark/internal/shape"

// Tool identifies the active editing tool.
type Tool int

const (
	ToolSelect Tool = iota
	ToolFreehand
	ToolRect
	ToolCircle
	ToolArrow
	ToolText
	ToolCallout
	ToolCloud
	ToolStamp

	// Reserved tool slots, not yet implemented.
	ToolHighlight
	ToolMeasurement
)

func (t Tool) String() string {
	switch t {
	case ToolSelect:
		return "select"
	case ToolFreehand:
		return "freehand"
	case ToolRect:
		return "rectangle"
	case ToolCircle:
		return "circle"
	case ToolArrow:
		return "arrow"
	case ToolText:
		return "text"
	case ToolCallout:
		return "callout"
	case ToolCloud:
		return "cloud"
	case ToolStamp:
		return "stamp"
	case ToolHighlight:
		return "highlight"
	case ToolMeasurement:
		return "measurement"
	default:
		return "unknown"
	}
}

// ShapeKind returns the entity kind a tool creates, or false for tools that
// create nothing (select and the reserved tools).
func (t Tool) ShapeKind() (shape.Kind, bool) {
	switch t {
	case ToolFreehand:
		return shape.KindFreehand, true
	case ToolRect:
		return shape.KindRect, true
	case ToolCircle:
		return shape.KindCircle, true
	case ToolArrow:
		return shape.KindArrow, true
	case ToolText:
		return shape.KindText, true
	case ToolCallout:
		return shape.KindCallout, true
	case ToolCloud:
		return shape.KindCloud, true
	case ToolStamp:
		return shape.KindStamp, true
	default:
		return 0, false
	}
}

// ParseTool maps a tool identifier string to a Tool, for config files and
// host messages.
func ParseTool(s string) (Tool, bool) {
	for t := ToolSelect; t <= ToolMeasurement; t++ {
		if t.String() == s {
			return t, true
		}
	}
	return ToolSelect, false
}
