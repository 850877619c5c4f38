package wkt

import "strings"

// AxisDirection is the direction keyword of an AXIS element.
type AxisDirection int

const (
	AxisOther AxisDirection = iota
	AxisNorth
	AxisSouth
	AxisEast
	AxisWest
	AxisUp
	AxisDown
)

var axisDirectionNames = [...]string{
	AxisOther: "OTHER",
	AxisNorth: "NORTH",
	AxisSouth: "SOUTH",
	AxisEast:  "EAST",
	AxisWest:  "WEST",
	AxisUp:    "UP",
	AxisDown:  "DOWN",
}

// String returns the WKT keyword for the direction.
func (d AxisDirection) String() string {
	if d < 0 || int(d) >= len(axisDirectionNames) {
		return "OTHER"
	}
	return axisDirectionNames[d]
}

// ParseAxisDirection matches s case-insensitively against the direction
// keywords.
func ParseAxisDirection(s string) (AxisDirection, bool) {
	for i, name := range axisDirectionNames {
		if strings.EqualFold(s, name) {
			return AxisDirection(i), true
		}
	}
	return AxisOther, false
}

// AxisDirectionNames returns the direction keywords in enum order.
func AxisDirectionNames() []string {
	return axisDirectionNames[:]
}
