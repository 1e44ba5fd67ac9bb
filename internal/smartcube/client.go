package smartcube

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"tinygo.org/x/bluetooth"

	"github.com/SeamusWaldron/virtualcube"
)

var (
	ErrNotConnected     = errors.New("smartcube: not connected to device")
	ErrAlreadyConnected = errors.New("smartcube: already connected to a device")
	ErrDeviceNotFound   = errors.New("smartcube: device not found")
)

var (
	serviceUUID = mustParseUUID(ServiceUUID)
	txCharUUID  = mustParseUUID(TxCharUUID)
	rxCharUUID  = mustParseUUID(RxCharUUID)
)

func mustParseUUID(s string) bluetooth.UUID {
	u, err := bluetooth.ParseUUID(s)
	if err != nil {
		panic(fmt.Sprintf("smartcube: bad uuid %q: %v", s, err))
	}
	return u
}

// Device is a discovered smart cube.
type Device struct {
	Name    string
	RSSI    int16
	Address bluetooth.Address
}

// Client connects to one smart cube and turns its notifications into
// commands.
type Client struct {
	adapter *bluetooth.Adapter
	log     *slog.Logger

	mu        sync.RWMutex
	device    bluetooth.Device
	rxChar    bluetooth.DeviceCharacteristic
	connected bool
	name      string
	battery   int
	onTurn    func(virtualcube.Command)
}

// NewClient enables the default adapter.
func NewClient(logger *slog.Logger) (*Client, error) {
	adapter := bluetooth.DefaultAdapter
	if err := adapter.Enable(); err != nil {
		return nil, fmt.Errorf("enable BLE adapter: %w", err)
	}
	return &Client{adapter: adapter, log: logger, battery: -1}, nil
}

// OnTurn sets the callback for face turns. It runs on the BLE goroutine.
func (c *Client) OnTurn(fn func(virtualcube.Command)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onTurn = fn
}

// Scan collects devices whose name starts with "GoCube" until timeout or
// ctx ends.
func (c *Client) Scan(ctx context.Context, timeout time.Duration) ([]Device, error) {
	var (
		mu      sync.Mutex
		devices []Device
		seen    = map[string]bool{}
		done    = make(chan error, 1)
	)

	go func() {
		done <- c.adapter.Scan(func(_ *bluetooth.Adapter, result bluetooth.ScanResult) {
			name := result.LocalName()
			if !strings.HasPrefix(strings.ToLower(name), "gocube") {
				return
			}
			mu.Lock()
			defer mu.Unlock()
			addr := result.Address.String()
			if seen[addr] {
				return
			}
			seen[addr] = true
			devices = append(devices, Device{Name: name, RSSI: result.RSSI, Address: result.Address})
		})
	}()

	select {
	case <-time.After(timeout):
	case <-ctx.Done():
	}
	if err := c.adapter.StopScan(); err != nil {
		c.log.Debug("stop scan", "error", err)
	}
	if err := <-done; err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}

	mu.Lock()
	defer mu.Unlock()
	return devices, nil
}

// ConnectFirst scans and connects to the first cube found.
func (c *Client) ConnectFirst(ctx context.Context, timeout time.Duration) error {
	devices, err := c.Scan(ctx, timeout)
	if err != nil {
		return err
	}
	if len(devices) == 0 {
		return ErrDeviceNotFound
	}
	return c.Connect(devices[0])
}

// Connect subscribes to the cube's notifications.
func (c *Client) Connect(d Device) error {
	c.mu.Lock()
	if c.connected {
		c.mu.Unlock()
		return ErrAlreadyConnected
	}
	c.mu.Unlock()

	device, err := c.adapter.Connect(d.Address, bluetooth.ConnectionParams{})
	if err != nil {
		return fmt.Errorf("connect %s: %w", d.Name, err)
	}

	services, err := device.DiscoverServices([]bluetooth.UUID{serviceUUID})
	if err != nil || len(services) == 0 {
		device.Disconnect()
		return fmt.Errorf("discover GoCube service: %w", errors.Join(err, ErrDeviceNotFound))
	}

	chars, err := services[0].DiscoverCharacteristics([]bluetooth.UUID{txCharUUID, rxCharUUID})
	if err != nil {
		device.Disconnect()
		return fmt.Errorf("discover characteristics: %w", err)
	}

	var txChar, rxChar bluetooth.DeviceCharacteristic
	for _, ch := range chars {
		switch ch.UUID() {
		case txCharUUID:
			txChar = ch
		case rxCharUUID:
			rxChar = ch
		}
	}

	if err := txChar.EnableNotifications(c.handleNotification); err != nil {
		device.Disconnect()
		return fmt.Errorf("enable notifications: %w", err)
	}

	c.mu.Lock()
	c.device = device
	c.rxChar = rxChar
	c.connected = true
	c.name = d.Name
	c.mu.Unlock()

	c.log.Info("smart cube connected", "name", d.Name, "address", d.Address.String())
	if err := c.SendCommand(CmdRequestBattery); err != nil {
		c.log.Warn("battery request failed", "error", err)
	}
	return nil
}

// Disconnect drops the connection. It is a no-op when not connected.
func (c *Client) Disconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.connected {
		return nil
	}
	err := c.device.Disconnect()
	c.connected = false
	c.name = ""
	c.battery = -1
	return err
}

// Name returns the connected device name.
func (c *Client) Name() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.name
}

// Battery returns the last reported battery level, or -1.
func (c *Client) Battery() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.battery
}

// SendCommand writes a command frame.
func (c *Client) SendCommand(cmd byte) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.connected {
		return ErrNotConnected
	}

	data := BuildCommand(cmd)
	if _, err := c.rxChar.WriteWithoutResponse(data); err != nil {
		_, err = c.rxChar.Write(data)
		return err
	}
	return nil
}

func (c *Client) handleNotification(data []byte) {
	msg, err := ParseMessage(data)
	if err != nil {
		c.log.Debug("dropping malformed frame", "error", err)
		return
	}
	c.dispatch(msg)
}

func (c *Client) dispatch(msg *Message) {
	switch msg.Type {
	case MsgTypeBattery:
		level, err := DecodeBattery(msg.Payload)
		if err != nil {
			return
		}
		c.mu.Lock()
		c.battery = level
		c.mu.Unlock()

	case MsgTypeRotation:
		cmds, err := DecodeRotation(msg.Payload)
		if err != nil {
			c.log.Debug("dropping rotation", "error", err)
			return
		}
		c.mu.RLock()
		cb := c.onTurn
		c.mu.RUnlock()
		if cb == nil {
			return
		}
		for _, cmd := range cmds {
			cb(cmd)
		}
	}
}
