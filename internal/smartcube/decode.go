package smartcube

import (
	"fmt"

	"github.com/SeamusWaldron/virtualcube"
)

// colorFaces maps the cube's color index to the face whose center has
// that color in the standard orientation.
var colorFaces = [...]virtualcube.Face{
	0: virtualcube.Back,  // blue
	1: virtualcube.Front, // green
	2: virtualcube.Up,    // white
	3: virtualcube.Down,  // yellow
	4: virtualcube.Right, // red
	5: virtualcube.Left,  // orange
}

// DecodeRotation turns a rotation payload into turn commands. The payload
// is a list of [face_dir, center_orientation] byte pairs; even face codes
// are clockwise, odd codes counter-clockwise, and code/2 is the color index.
func DecodeRotation(payload []byte) ([]virtualcube.Command, error) {
	if len(payload)%2 != 0 {
		return nil, fmt.Errorf("smartcube: rotation payload must have even length, got %d", len(payload))
	}

	cmds := make([]virtualcube.Command, 0, len(payload)/2)
	for i := 0; i < len(payload); i += 2 {
		code := payload[i]
		idx := int(code / 2)
		if idx >= len(colorFaces) {
			return nil, fmt.Errorf("smartcube: unknown color index %d from face code 0x%02X", idx, code)
		}
		cmds = append(cmds, virtualcube.Turn(colorFaces[idx], code%2 == 1))
	}
	return cmds, nil
}

// DecodeBattery returns the battery percentage.
func DecodeBattery(payload []byte) (int, error) {
	if len(payload) < 1 {
		return 0, fmt.Errorf("smartcube: battery payload too short")
	}
	return int(payload[0]), nil
}
