package network

import (
	"context"
	"sync/atomic"
	"time"
)

// msgBufferTx stamps each message with the next counter value and sends it
// repetitions times, interval apart. It closes msgTxCh once msgBufTxCh is
// closed and drained.
func msgBufferTx[T MsgContent](
	ctx context.Context,
	msgBufTxCh <-chan Msg[T],
	msgTxCh chan<- Msg[T],
	counter *atomic.Uint64,
	repetitions int,
	interval time.Duration,
) {
	defer close(msgTxCh)
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgBufTxCh:
			if !ok {
				return
			}
			msg.Counter = counter.Add(1)
			for i := 0; i < repetitions; i++ {
				select {
				case msgTxCh <- msg:
				case <-ctx.Done():
					return
				}
				time.Sleep(interval)
			}
		}
	}
}

// msgBufferRx forwards each message once. It remembers the last window
// message ids in a ring buffer, which must be larger than the number of
// distinct messages that can arrive while repeats of one are still in flight.
func msgBufferRx[T MsgContent](
	ctx context.Context,
	msgBufRxCh chan<- Msg[T],
	msgRxCh <-chan Msg[T],
	window int,
) {
	seenMsgs := make(map[msgID]bool)
	recentMsgIDs := make([]msgID, window)
	var nextIndex int

	for {
		var msgRx Msg[T]
		select {
		case <-ctx.Done():
			return
		case msgRx = <-msgRxCh:
		}

		id := msgRx.id()
		if seenMsgs[id] {
			continue
		}
		seenMsgs[id] = true

		// Forget the oldest id
		oldID := recentMsgIDs[nextIndex]
		if oldID != (msgID{}) {
			delete(seenMsgs, oldID)
		}
		recentMsgIDs[nextIndex] = id
		nextIndex = (nextIndex + 1) % window

		select {
		case msgBufRxCh <- msgRx:
		case <-ctx.Done():
			return
		}
	}
}
