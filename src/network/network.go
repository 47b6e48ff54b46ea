// Package network exposes a running simulation over UDP: hall calls come in
// as CallMsg datagrams and every event goes out as a datagram.
package network

import (
	"context"
	"log/slog"
	"net"
	"sync/atomic"
	"time"

	"liftsim/lib/network-go/network/bcast"
	"liftsim/src/elev"
	"liftsim/src/types"
)

const (
	publisherBuffer = 64
	dedupWindow     = 64
)

// Submitter accepts calls for a running simulation.
type Submitter interface {
	Submit(ctx context.Context, call types.HallCall) error
}

// Publisher broadcasts events. Notify never blocks the simulation; events
// are dropped when the buffer is full.
type Publisher struct {
	senderID string
	bufTx    chan Msg[types.Event]
	dropped  atomic.Uint64
}

// NewPublisher starts sending on conn until ctx is cancelled.
func NewPublisher(ctx context.Context, conn net.Conn, senderID string, repetitions int, interval time.Duration) *Publisher {
	p := &Publisher{
		senderID: senderID,
		bufTx:    make(chan Msg[types.Event], publisherBuffer),
	}
	var counter atomic.Uint64
	tx := make(chan Msg[types.Event])
	go msgBufferTx(ctx, p.bufTx, tx, &counter, repetitions, interval)
	go bcast.Transmitter(conn, tx)
	return p
}

func (p *Publisher) Notify(ev types.Event) {
	select {
	case p.bufTx <- Msg[types.Event]{SenderID: p.senderID, Content: ev}:
	default:
		n := p.dropped.Add(1)
		slog.Warn("Event buffer full, dropping event", "kind", ev.Kind, "dropped", n)
	}
}

// Dropped is the number of events lost to a full buffer.
func (p *Publisher) Dropped() uint64 {
	return p.dropped.Load()
}

// ServeCalls reads CallMsg datagrams from conn and submits each distinct
// message once. It returns when ctx is cancelled.
func ServeCalls(ctx context.Context, conn net.PacketConn, sim Submitter) {
	rx := make(chan Msg[CallMsg])
	deduped := make(chan Msg[CallMsg])
	go bcast.Receiver(ctx, conn, rx)
	go msgBufferRx(ctx, deduped, rx, dedupWindow)

	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-deduped:
			call := msg.Content.Call
			if err := sim.Submit(ctx, call); err != nil {
				slog.Warn("Rejected remote call", "call", elev.FormatCall(call), "sender", msg.SenderID, "err", err)
				continue
			}
			slog.Debug("Remote call", "call", elev.FormatCall(call), "sender", msg.SenderID)
		}
	}
}

// CallSender sends calls to a ServeCalls endpoint, repeating each one.
type CallSender struct {
	senderID string
	bufTx    chan Msg[CallMsg]
	done     chan struct{}
}

func NewCallSender(ctx context.Context, conn net.Conn, senderID string, repetitions int, interval time.Duration) *CallSender {
	s := &CallSender{
		senderID: senderID,
		bufTx:    make(chan Msg[CallMsg]),
		done:     make(chan struct{}),
	}
	var counter atomic.Uint64
	tx := make(chan Msg[CallMsg])
	go msgBufferTx(ctx, s.bufTx, tx, &counter, repetitions, interval)
	go func() {
		defer close(s.done)
		bcast.Transmitter(conn, tx)
	}()
	return s
}

func (s *CallSender) Send(ctx context.Context, call types.HallCall) error {
	select {
	case s.bufTx <- Msg[CallMsg]{SenderID: s.senderID, Content: CallMsg{Call: call}}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close waits until every repetition of the sent calls is on the wire.
// Send must not be called afterwards.
func (s *CallSender) Close() {
	close(s.bufTx)
	<-s.done
}
