// Package smartcube mirrors a physical GoCube smart cube into a session.
// It decodes the cube's BLE frames into turn commands and drives the
// cube's backlight as a celebration effect.
package smartcube

import (
	"errors"
	"fmt"
)

// GoCube BLE service and characteristic UUIDs.
const (
	ServiceUUID = "6e400001-b5a3-f393-e0a9-e50e24dcca9e"
	TxCharUUID  = "6e400003-b5a3-f393-e0a9-e50e24dcca9e" // notify
	RxCharUUID  = "6e400002-b5a3-f393-e0a9-e50e24dcca9e" // write
)

// Message types.
const (
	MsgTypeRotation byte = 0x01
	MsgTypeState    byte = 0x02
	MsgTypeBattery  byte = 0x05
)

// Command codes written to the RX characteristic.
const (
	CmdRequestBattery     byte = 0x32
	CmdRequestState       byte = 0x33
	CmdResetSolved        byte = 0x35
	CmdDisableOrientation byte = 0x37
	CmdFlashBacklight     byte = 0x41
	CmdSlowFlashBacklight byte = 0x43
	CmdToggleBacklight    byte = 0x44
)

// Frame constants.
const (
	framePrefix  byte = 0x2A // '*'
	frameSuffix1 byte = 0x0D // CR
	frameSuffix2 byte = 0x0A // LF
)

var (
	ErrInvalidPrefix   = errors.New("smartcube: invalid frame prefix")
	ErrInvalidSuffix   = errors.New("smartcube: invalid frame suffix")
	ErrInvalidChecksum = errors.New("smartcube: invalid checksum")
	ErrFrameTooShort   = errors.New("smartcube: frame too short")
	ErrInvalidLength   = errors.New("smartcube: invalid frame length")
)

// Message is one decoded notification.
type Message struct {
	Type    byte
	Payload []byte
}

// ParseMessage validates and unwraps a notification frame:
//
//	[0x2A] [len] [type] [payload...] [checksum] [0x0D 0x0A]
//
// len counts every byte after itself. The checksum is the byte sum of
// everything before it.
func ParseMessage(data []byte) (*Message, error) {
	if len(data) < 6 {
		return nil, ErrFrameTooShort
	}
	if data[0] != framePrefix {
		return nil, ErrInvalidPrefix
	}

	length := int(data[1])
	total := 2 + length
	if length < 4 || len(data) < total {
		return nil, fmt.Errorf("%w: header says %d bytes, have %d", ErrInvalidLength, total, len(data))
	}

	sumIdx := total - 3
	if data[sumIdx+1] != frameSuffix1 || data[sumIdx+2] != frameSuffix2 {
		return nil, ErrInvalidSuffix
	}

	var sum byte
	for _, b := range data[:sumIdx] {
		sum += b
	}
	if sum != data[sumIdx] {
		return nil, fmt.Errorf("%w: frame has 0x%02X, computed 0x%02X", ErrInvalidChecksum, data[sumIdx], sum)
	}

	return &Message{
		Type:    data[2],
		Payload: append([]byte(nil), data[3:sumIdx]...),
	}, nil
}

// BuildFrame wraps a message type and payload in a frame.
func BuildFrame(msgType byte, payload []byte) []byte {
	length := byte(len(payload) + 4) // type + payload + checksum + CRLF
	frame := make([]byte, 0, int(length)+2)
	frame = append(frame, framePrefix, length, msgType)
	frame = append(frame, payload...)

	var sum byte
	for _, b := range frame {
		sum += b
	}
	return append(frame, sum, frameSuffix1, frameSuffix2)
}

// BuildCommand creates a command frame with no payload.
func BuildCommand(cmd byte) []byte {
	// [0x2A] [0x01] [cmd] [checksum] [0x0D] [0x0A]
	const length = byte(0x01)
	return []byte{framePrefix, length, cmd, framePrefix + length + cmd, frameSuffix1, frameSuffix2}
}
