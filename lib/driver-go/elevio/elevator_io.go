// This file defines types and functions for interfacing with the elevator hardware.
// It establishes a TCP connection with the elevator server
package elevio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"time"
)

var ErrConnLost = errors.New("lost connection to elevator server")

type ButtonType int

const (
	BT_HallUp   ButtonType = 0
	BT_HallDown ButtonType = 1
	BT_Cab      ButtonType = 2
)

type ButtonEvent struct {
	Floor  int
	Button ButtonType
}

// Driver talks the four byte command protocol of the elevator server.
type Driver struct {
	mtx  sync.Mutex
	conn net.Conn
}

// Dial connects to the elevator server at addr.
func Dial(addr string) (*Driver, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("connecting to elevator server: %w", err)
	}
	return &Driver{conn: conn}, nil
}

func (d *Driver) Close() error {
	return d.conn.Close()
}

func (d *Driver) SetButtonLamp(button ButtonType, floor int, value bool) error {
	return d.write([4]byte{2, byte(button), byte(floor), toByte(value)})
}

func (d *Driver) GetButton(button ButtonType, floor int) (bool, error) {
	a, err := d.read([4]byte{6, byte(button), byte(floor), 0})
	if err != nil {
		return false, err
	}
	return toBool(a[1]), nil
}

// PollButtons reports hall button presses on floors 0..numFloors-1 until ctx
// is cancelled or the connection fails. Cab buttons are not polled.
func (d *Driver) PollButtons(ctx context.Context, numFloors int, pollRate time.Duration, receiver chan<- ButtonEvent) error {
	prev := make([][2]bool, numFloors)
	ticker := time.NewTicker(pollRate)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
		for f := 0; f < numFloors; f++ {
			for b := BT_HallUp; b <= BT_HallDown; b++ {
				v, err := d.GetButton(b, f)
				if err != nil {
					return err
				}
				if v != prev[f][b] && v {
					select {
					case receiver <- ButtonEvent{Floor: f, Button: b}:
					case <-ctx.Done():
						return ctx.Err()
					}
				}
				prev[f][b] = v
			}
		}
	}
}

func (d *Driver) read(in [4]byte) ([4]byte, error) {
	d.mtx.Lock()
	defer d.mtx.Unlock()

	var out [4]byte
	if _, err := d.conn.Write(in[:]); err != nil {
		return out, fmt.Errorf("%w: %w", ErrConnLost, err)
	}
	if _, err := io.ReadFull(d.conn, out[:]); err != nil {
		return out, fmt.Errorf("%w: %w", ErrConnLost, err)
	}
	return out, nil
}

func (d *Driver) write(in [4]byte) error {
	d.mtx.Lock()
	defer d.mtx.Unlock()

	if _, err := d.conn.Write(in[:]); err != nil {
		return fmt.Errorf("%w: %w", ErrConnLost, err)
	}
	return nil
}

func toByte(a bool) byte {
	var b byte = 0
	if a {
		b = 1
	}
	return b
}

func toBool(a byte) bool {
	return a != 0
}
