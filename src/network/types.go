package network

import "liftsim/src/types"

// Msg wraps a content with its sender and a per-sender counter. The same
// message may be sent several times; receivers drop repeats by
// (SenderID, Counter).
type Msg[Content MsgContent] struct {
	SenderID string  `json:"sender"`
	Counter  uint64  `json:"counter"`
	Content  Content `json:"content"`
}

type MsgContent interface {
	CallMsg | types.Event
}

// CallMsg asks the simulation to queue a hall call.
type CallMsg struct {
	Call types.HallCall `json:"call"`
}

func (m Msg[Content]) id() msgID {
	return msgID{sender: m.SenderID, counter: m.Counter}
}

type msgID struct {
	sender  string
	counter uint64
}
