package blocks

import (
	"github.com/matzehuels/fcblocks/pkg/errors"
)

// Raw block tags as they appear in level and design documents.
const (
	TagStaticRectangle       = "StaticRectangle"
	TagStaticCircle          = "StaticCircle"
	TagDynamicRectangle      = "DynamicRectangle"
	TagDynamicCircle         = "DynamicCircle"
	TagNoSpinWheel           = "NoSpinWheel"
	TagClockwiseWheel        = "ClockwiseWheel"
	TagCounterClockwiseWheel = "CounterClockwiseWheel"
	TagSolidRod              = "SolidRod"
	TagHollowRod             = "HollowRod"
)

// tagTypes is the closed classification table for non-goal blocks.
// It is never mutated after package initialization.
var tagTypes = map[string]SimType{
	TagStaticRectangle:       StatRect,
	TagStaticCircle:          StatCircle,
	TagDynamicRectangle:      DynRect,
	TagDynamicCircle:         DynCircle,
	TagNoSpinWheel:           Wheel,
	TagClockwiseWheel:        CWWheel,
	TagCounterClockwiseWheel: CCWWheel,
	TagSolidRod:              SolidRod,
	TagHollowRod:             Rod,
}

// Tags returns the accepted raw tags in a stable order.
func Tags() []string {
	return []string{
		TagStaticRectangle,
		TagStaticCircle,
		TagDynamicRectangle,
		TagDynamicCircle,
		TagNoSpinWheel,
		TagClockwiseWheel,
		TagCounterClockwiseWheel,
		TagSolidRod,
		TagHollowRod,
	}
}

// KnownTag reports whether tag is in the classification table.
func KnownTag(tag string) bool {
	_, ok := tagTypes[tag]
	return ok
}

func unknownTag(tag string) error {
	return errors.New(errors.ErrCodeUnknownBlockType, "unknown block type %q", tag)
}

// Classify maps a raw tag and goal flag to the engine type.
//
// Goal blocks override the table: a goal NoSpinWheel becomes [GoalCircle] and
// every other goal block becomes [GoalRect]. Tags outside the table fail with
// ErrCodeUnknownBlockType whatever the goal flag.
func Classify(tag string, isGoal bool) (SimType, error) {
	t, ok := tagTypes[tag]
	if !ok {
		// Deliberately checked before the goal flag: the old Python
		// converter turned any goal-flagged tag into GOAL_RECT, which hid
		// pieces the engine does not know.
		return Invalid, unknownTag(tag)
	}
	if !isGoal {
		return t, nil
	}
	if tag == TagNoSpinWheel {
		return GoalCircle, nil
	}
	return GoalRect, nil
}
