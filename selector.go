package virtualcube

// SelectUnits returns the units whose committed grid position lies in the
// layer of face, in the order they appear in units. For a full set of 27
// units the result always has 9 entries.
//
// It panics if face is not one of the six faces.
func SelectUnits(face Face, units []*CubieUnit) []*CubieUnit {
	axis, sign := face.Axis(), face.Sign()

	selected := make([]*CubieUnit, 0, 9)
	for _, u := range units {
		if u.grid[axis] == sign {
			selected = append(selected, u)
		}
	}
	return selected
}
