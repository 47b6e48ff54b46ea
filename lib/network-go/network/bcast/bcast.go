// Package bcast sends and receives JSON encoded values as UDP datagrams.
package bcast

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"time"
)

const (
	bufSize      = 4096
	pollInterval = 50 * time.Millisecond
)

// Listen opens a UDP socket on port for Receiver.
func Listen(port int) (net.PacketConn, error) {
	conn, err := net.ListenPacket("udp4", fmt.Sprintf(":%d", port))
	if err != nil {
		return nil, fmt.Errorf("listen on udp port %d: %w", port, err)
	}
	return conn, nil
}

// Dial opens a UDP socket towards addr for Transmitter.
func Dial(addr string) (net.Conn, error) {
	conn, err := net.Dial("udp4", addr)
	if err != nil {
		return nil, fmt.Errorf("dial udp %s: %w", addr, err)
	}
	return conn, nil
}

// Transmitter writes every value from ch as one datagram until ch is closed.
func Transmitter[T any](conn net.Conn, ch <-chan T) {
	for value := range ch {
		data, err := json.Marshal(value)
		if err != nil {
			slog.Error("Could not encode message", "err", err)
			continue
		}
		if len(data) > bufSize {
			slog.Error("Message too large for a datagram", "size", len(data))
			continue
		}
		if _, err := conn.Write(data); err != nil {
			slog.Warn("Write error", "err", err)
		}
	}
}

// Receiver decodes datagrams into ch until ctx is cancelled. Datagrams that
// do not decode into T are dropped.
func Receiver[T any](ctx context.Context, conn net.PacketConn, ch chan<- T) {
	var buf [bufSize]byte
	for ctx.Err() == nil {
		if err := conn.SetReadDeadline(time.Now().Add(pollInterval)); err != nil {
			slog.Warn("SetReadDeadline error", "err", err)
		}
		n, _, err := conn.ReadFrom(buf[:])
		if errors.Is(err, os.ErrDeadlineExceeded) {
			continue
		}
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			slog.Warn("Read error", "err", err)
			continue
		}

		var value T
		if err := json.Unmarshal(buf[:n], &value); err != nil {
			slog.Warn("Dropping malformed datagram", "err", err)
			continue
		}
		select {
		case ch <- value:
		case <-ctx.Done():
			return
		}
	}
}
