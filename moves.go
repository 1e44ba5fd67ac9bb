package virtualcube

// Predefined moves for convenience.
//
// Example:
//
//	state.Apply(virtualcube.R, virtualcube.U, virtualcube.RPrime, virtualcube.UPrime)
var (
	// Right face moves
	R      = Move{Face: Right, QuarterTurns: 1}
	RPrime = Move{Face: Right, QuarterTurns: 3}
	R2     = Move{Face: Right, QuarterTurns: 2}

	// Left face moves
	L      = Move{Face: Left, QuarterTurns: 1}
	LPrime = Move{Face: Left, QuarterTurns: 3}
	L2     = Move{Face: Left, QuarterTurns: 2}

	// Up face moves
	U      = Move{Face: Up, QuarterTurns: 1}
	UPrime = Move{Face: Up, QuarterTurns: 3}
	U2     = Move{Face: Up, QuarterTurns: 2}

	// Down face moves
	D      = Move{Face: Down, QuarterTurns: 1}
	DPrime = Move{Face: Down, QuarterTurns: 3}
	D2     = Move{Face: Down, QuarterTurns: 2}

	// Front face moves
	F      = Move{Face: Front, QuarterTurns: 1}
	FPrime = Move{Face: Front, QuarterTurns: 3}
	F2     = Move{Face: Front, QuarterTurns: 2}

	// Back face moves
	B      = Move{Face: Back, QuarterTurns: 1}
	BPrime = Move{Face: Back, QuarterTurns: 3}
	B2     = Move{Face: Back, QuarterTurns: 2}
)

// Common sequences.
var (
	// SexyMove is R U R' U'. Six repetitions return to the start.
	SexyMove = []Move{R, U, RPrime, UPrime}

	// TPerm swaps two edges and two corners on the top layer.
	TPerm = []Move{R, U, RPrime, UPrime, RPrime, F, R2, UPrime, RPrime, UPrime, R, U, RPrime, FPrime}

	// DemoScramble is the scramble the desktop demo plays at startup.
	DemoScramble = "D2 B' R' B L' B"
)
