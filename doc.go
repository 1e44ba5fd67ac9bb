// Package virtualcube is a virtual 3x3x3 twisty puzzle: a logical sticker
// model, 27 physical units that animate slice turns, a move notation
// interpreter and a sequencer that plays scrambles and solutions back.
//
// # Features
//
//   - Logical cube state with move history and solved check
//   - Slice selection by grid position, so turns work after any scramble
//   - Animated slice rotations with a single-rotation lock and watchdog
//   - Standard face-turn notation: R, R', R2 for U D L R F B
//   - FREE and SOLVING modes with automatic or step-by-step playback
//   - Pluggable solver, renderer, celebration and journal collaborators
//
// # Quick Start
//
// A Session owns everything. Time only moves when Tick is called:
//
//	s := virtualcube.NewSession(virtualcube.WithDuration(300 * time.Millisecond))
//
//	s.Turn(virtualcube.Right, false) // R
//	s.Settle(16*time.Millisecond, 100)
//
//	s.Submit("D2 B' R' B L' B") // plays in SOLVING mode
//	s.Settle(16*time.Millisecond, 1000)
//
//	s.Solve(ctx) // plays the solution
//	s.Settle(16*time.Millisecond, 1000)
//
//	fmt.Println(s.State().IsSolved()) // true
//
// # Standalone State
//
// The State type can be used without animation:
//
//	st := virtualcube.NewState()
//	st.Apply(virtualcube.R, virtualcube.U, virtualcube.RPrime, virtualcube.UPrime)
//	fmt.Println(st.FaceletString())
//
// # Threading
//
// Session and Engine are single-threaded. Drive them from one goroutine,
// typically the UI loop; input from other goroutines should be sent to it
// over a channel.
package virtualcube
