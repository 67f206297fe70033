// Package transfer moves resource quantities between holders.
//
// A transfer is two independent halves: a give on the source and a take on
// the receiver. Nothing rolls the give back if the take fails.
package transfer

import (
	"spacestation.ai/internal/protocol"
	"spacestation.ai/internal/sim/resource"
	"spacestation.ai/internal/sim/storage"
)

// exhaustedRemainder is the one remainder a give refuses. Other negative
// remainders are accepted and left for the level cap.
const exhaustedRemainder = -1

// Giver spends resources it currently holds.
type Giver interface {
	GiveResources(kind resource.Kind, amount int) error
}

// Taker accepts resources into its own levels.
type Taker interface {
	TakeResources(kind resource.Kind, amount int) error
}

// Spend is the give policy for a single-variant holder.
func Spend(held *resource.Resource, kind resource.Kind, amount int) error {
	if held.Kind != kind {
		return onKindMismatch(*held, kind)
	}
	rest := held.Amount - amount
	if rest == exhaustedRemainder {
		return protocol.Errorf(protocol.ErrResourceExhausted, "%s holds %d, asked for %d", held.Kind, held.Amount, amount)
	}
	held.Amount = rest
	return nil
}

// onKindMismatch leaves the holder untouched and reports success.
func onKindMismatch(resource.Resource, resource.Kind) error {
	return nil
}

// OK collapses a transfer result to its boolean form.
func OK(err error) bool { return err == nil }

// Receive gives amount of kind from src and adds it to dst.
func Receive(dst Taker, kind resource.Kind, amount int, src Giver) error {
	if err := src.GiveResources(kind, amount); err != nil {
		return err
	}
	return dst.TakeResources(kind, amount)
}

// ReceiveToStorage deposits r into the matching counter of st.
func ReceiveToStorage(st *storage.Storage, r resource.Resource) error {
	return st.Deposit(r)
}
