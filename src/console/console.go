// Package console lets an operator place hall calls from the keyboard.
//
//	0-9   select a floor
//	u, d  call Up or Down at the selected floor
//	s     print status
//	q     quit (also Esc and Ctrl-C)
package console

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/eiannone/keyboard"

	"liftsim/src/elev"
	"liftsim/src/sim"
	"liftsim/src/types"
	"liftsim/src/utils"
)

type Sim interface {
	Submit(ctx context.Context, call types.HallCall) error
	Snapshot(ctx context.Context) (sim.Status, error)
}

type ActionKind int

const (
	None ActionKind = iota
	Call
	Status
	Quit
)

type Action struct {
	Kind ActionKind
	Call types.HallCall
}

// Input tracks the selected floor between key presses.
type Input struct {
	Floor int
}

// Interpret maps one key press to an action. Digits only move the selection.
func (in *Input) Interpret(char rune, key keyboard.Key) Action {
	switch key {
	case keyboard.KeyEsc, keyboard.KeyCtrlC:
		return Action{Kind: Quit}
	}
	switch {
	case char >= '0' && char <= '9':
		in.Floor = int(char - '0')
	case char == 'u' || char == 'U':
		return Action{Kind: Call, Call: types.HallCall{Floor: in.Floor, Dir: types.DirUp}}
	case char == 'd' || char == 'D':
		return Action{Kind: Call, Call: types.HallCall{Floor: in.Floor, Dir: types.DirDown}}
	case char == 's' || char == 'S':
		return Action{Kind: Status}
	case char == 'q' || char == 'Q':
		return Action{Kind: Quit}
	}
	return Action{}
}

// Run reads the keyboard until the operator quits or ctx is cancelled.
func Run(ctx context.Context, s Sim, out io.Writer) error {
	if err := keyboard.Open(); err != nil {
		return fmt.Errorf("opening keyboard: %w", err)
	}
	defer keyboard.Close()

	keys, err := keyboard.GetKeys(10)
	if err != nil {
		return fmt.Errorf("reading keyboard: %w", err)
	}
	fmt.Fprintln(out, "0-9 floor, u/d call, s status, q quit")

	var in Input
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-keys:
			if ev.Err != nil {
				return fmt.Errorf("reading keyboard: %w", ev.Err)
			}
			if done := handle(ctx, s, out, in.Interpret(ev.Rune, ev.Key)); done {
				return nil
			}
		}
	}
}

func handle(ctx context.Context, s Sim, out io.Writer, action Action) bool {
	switch action.Kind {
	case Call:
		if err := s.Submit(ctx, action.Call); err != nil {
			fmt.Fprintf(out, "%s rejected: %v\n", elev.FormatCall(action.Call), err)
			return false
		}
		slog.Info("Console call", "call", elev.FormatCall(action.Call))
	case Status:
		status, err := s.Snapshot(ctx)
		if err != nil {
			fmt.Fprintf(out, "status unavailable: %v\n", err)
			return false
		}
		utils.PrintStatus(out, status)
	case Quit:
		return true
	}
	return false
}
