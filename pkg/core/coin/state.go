// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package coin

import "sync/atomic"

// State is the lifecycle label of a coin or of its redemption record.
type State int32

// Coin lifecycle. StateFlagged is only ever set on a redemption record.
const (
	StateCreated State = iota
	StateBlinded
	StateSigned
	StateUnblinded
	StateSpent
	StateFlagged
)

var stateNames = [...]string{"created", "blinded", "signed", "unblinded", "spent", "flagged"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// State returns the current lifecycle label.
func (c *Coin) State() State {
	return State(atomic.LoadInt32(&c.state))
}

func (c *Coin) advance(from, to State) bool {
	return atomic.CompareAndSwapInt32(&c.state, int32(from), int32(to))
}

// MarkSpent moves an unblinded coin to spent. It returns false if the coin
// was not in the unblinded state, e.g. because it was spent already.
func (c *Coin) MarkSpent() bool {
	return c.advance(StateUnblinded, StateSpent)
}
