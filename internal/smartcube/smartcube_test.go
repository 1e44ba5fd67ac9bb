package smartcube

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/virtualcube"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestParseMessageRoundTrip(t *testing.T) {
	frame := BuildFrame(MsgTypeRotation, []byte{0x08, 0x03, 0x05, 0x00})
	msg, err := ParseMessage(frame)
	require.NoError(t, err)
	assert.Equal(t, MsgTypeRotation, msg.Type)
	assert.Equal(t, []byte{0x08, 0x03, 0x05, 0x00}, msg.Payload)
}

func TestParseMessageErrors(t *testing.T) {
	good := BuildFrame(MsgTypeBattery, []byte{80})

	badPrefix := append([]byte(nil), good...)
	badPrefix[0] = 0x00
	_, err := ParseMessage(badPrefix)
	assert.ErrorIs(t, err, ErrInvalidPrefix)

	badSum := append([]byte(nil), good...)
	badSum[len(badSum)-3]++
	_, err = ParseMessage(badSum)
	assert.ErrorIs(t, err, ErrInvalidChecksum)

	badSuffix := append([]byte(nil), good...)
	badSuffix[len(badSuffix)-1] = 0x00
	_, err = ParseMessage(badSuffix)
	assert.ErrorIs(t, err, ErrInvalidSuffix)

	_, err = ParseMessage(good[:len(good)-1])
	assert.ErrorIs(t, err, ErrInvalidLength)

	_, err = ParseMessage([]byte{0x2A})
	assert.ErrorIs(t, err, ErrFrameTooShort)
}

func TestBuildCommand(t *testing.T) {
	assert.Equal(t, []byte{0x2A, 0x01, 0x41, 0x6C, 0x0D, 0x0A}, BuildCommand(CmdFlashBacklight))
}

func TestDecodeRotation(t *testing.T) {
	// red clockwise, white counter-clockwise, blue clockwise
	cmds, err := DecodeRotation([]byte{0x08, 0x00, 0x05, 0x03, 0x00, 0x06})
	require.NoError(t, err)
	assert.Equal(t, []virtualcube.Command{
		virtualcube.Turn(virtualcube.Right, false),
		virtualcube.Turn(virtualcube.Up, true),
		virtualcube.Turn(virtualcube.Back, false),
	}, cmds)

	_, err = DecodeRotation([]byte{0x01})
	assert.Error(t, err)
	_, err = DecodeRotation([]byte{0x0C, 0x00})
	assert.Error(t, err)
}

func TestDispatchForwardsTurns(t *testing.T) {
	c := &Client{log: discard(), battery: -1}
	var got []virtualcube.Command
	c.OnTurn(func(cmd virtualcube.Command) { got = append(got, cmd) })

	c.handleNotification(BuildFrame(MsgTypeRotation, []byte{0x02, 0x00}))
	c.handleNotification(BuildFrame(MsgTypeBattery, []byte{77}))
	c.handleNotification([]byte{0x00, 0x01, 0x02})

	assert.Equal(t, []virtualcube.Command{virtualcube.Turn(virtualcube.Front, false)}, got)
	assert.Equal(t, 77, c.Battery())
}

func TestSendCommandRequiresConnection(t *testing.T) {
	c := &Client{log: discard()}
	assert.ErrorIs(t, c.SendCommand(CmdRequestState), ErrNotConnected)
	assert.NoError(t, c.Disconnect())
}

type fakeCommander struct {
	sent []byte
	err  error
}

func (f *fakeCommander) SendCommand(cmd byte) error {
	f.sent = append(f.sent, cmd)
	return f.err
}

func TestBacklightFlashes(t *testing.T) {
	cube := &fakeCommander{}
	NewBacklight(cube, discard()).Play(0, 0, 150)
	assert.Equal(t, []byte{CmdFlashBacklight}, cube.sent)

	failing := &fakeCommander{err: errors.New("gone")}
	assert.NotPanics(t, func() { NewBacklight(failing, discard()).Play(0, 0, 1) })
}
