package smartcube

import "log/slog"

// Commander sends raw command codes to a cube. *Client implements it.
type Commander interface {
	SendCommand(cmd byte) error
}

// Backlight flashes the cube's backlight when a sequence finishes.
type Backlight struct {
	cube Commander
	log  *slog.Logger
}

// NewBacklight returns a celebrator that flashes cube's backlight.
func NewBacklight(cube Commander, logger *slog.Logger) *Backlight {
	return &Backlight{cube: cube, log: logger}
}

// Play flashes the backlight. Position and particle count do not apply to
// the hardware.
func (b *Backlight) Play(_, _ float64, _ int) {
	if err := b.cube.SendCommand(CmdFlashBacklight); err != nil {
		b.log.Warn("backlight flash failed", "error", err)
	}
}
