package blocks

import (
	"fmt"
)

// SimType is the engine-side block type. The numeric values match the
// FCSIM_* constants compiled into the engine.
type SimType int

// Engine block types.
const (
	StatRect   SimType = 0
	StatCircle SimType = 1
	DynRect    SimType = 2
	DynCircle  SimType = 3
	GoalRect   SimType = 4
	GoalCircle SimType = 5
	Wheel      SimType = 6
	CWWheel    SimType = 7
	CCWWheel   SimType = 8
	Rod        SimType = 9
	SolidRod   SimType = 10

	// Invalid is returned alongside classification errors.
	Invalid SimType = -1
)

var simTypeNames = [...]string{
	StatRect:   "STAT_RECT",
	StatCircle: "STAT_CIRCLE",
	DynRect:    "DYN_RECT",
	DynCircle:  "DYN_CIRCLE",
	GoalRect:   "GOAL_RECT",
	GoalCircle: "GOAL_CIRCLE",
	Wheel:      "WHEEL",
	CWWheel:    "CW_WHEEL",
	CCWWheel:   "CCW_WHEEL",
	Rod:        "ROD",
	SolidRod:   "SOLID_ROD",
}

// SimTypes lists every engine type in engine id order.
func SimTypes() []SimType {
	out := make([]SimType, len(simTypeNames))
	for i := range simTypeNames {
		out[i] = SimType(i)
	}
	return out
}

// Valid reports whether t is one of the engine types.
func (t SimType) Valid() bool {
	return t >= StatRect && int(t) < len(simTypeNames)
}

// String returns the engine identifier without prefix, e.g. "STAT_RECT".
func (t SimType) String() string {
	if !t.Valid() {
		return fmt.Sprintf("SimType(%d)", int(t))
	}
	return simTypeNames[t]
}

// ID returns the engine's integer value for t.
func (t SimType) ID() int { return int(t) }

// IsGoal reports whether t is one of the goal types.
func (t SimType) IsGoal() bool { return t == GoalRect || t == GoalCircle }

// MarshalText encodes t by name so exports stay readable.
func (t SimType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid sim type %d", int(t))
	}
	return []byte(simTypeNames[t]), nil
}

// UnmarshalText decodes a name produced by MarshalText.
func (t *SimType) UnmarshalText(b []byte) error {
	for _, st := range SimTypes() {
		if st.String() == string(b) {
			*t = st
			return nil
		}
	}
	return fmt.Errorf("unknown sim type %q", b)
}

// Origin tells which group of the document a block came from.
type Origin string

// Block origins, in emission order.
const (
	OriginPlayer Origin = "player"
	OriginLevel  Origin = "level"
)
