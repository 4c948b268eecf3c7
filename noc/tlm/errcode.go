// Package tlm implements the transaction layer of the simulator: the
// send/recv protocol, the router forwarding engine, and the channel and
// ipcore adapters.
package tlm

import "fmt"

// An ErrCode is the result of one transaction call. Every Send and Recv
// returns exactly one code; codes are never silently dropped.
type ErrCode int

// The closed transaction error taxonomy.
const (
	// ErrNone means the packet was accepted or delivered.
	ErrNone ErrCode = 0

	// ErrFullFIFO means the receiver's bounded queue was at capacity. The
	// caller keeps the packet and must retry.
	ErrFullFIFO ErrCode = -1

	// ErrBadPacket means the packet is malformed or incomplete.
	ErrBadPacket ErrCode = -2

	// ErrBadCallRecv means the source could not be resolved to a known
	// entity. A topology bug, not a transient condition.
	ErrBadCallRecv ErrCode = -3

	// ErrBadCallSend means the destination could not be resolved to a
	// known entity. A topology bug, not a transient condition.
	ErrBadCallSend ErrCode = -4

	// ErrNotImplemented is reserved for endpoints that refuse an optional
	// capability. No shipped engine returns it.
	ErrNotImplemented ErrCode = -5
)

// String renders the code for diagnostics.
func (e ErrCode) String() string {
	switch e {
	case ErrNone:
		return "no_error"
	case ErrFullFIFO:
		return "full_fifo"
	case ErrBadPacket:
		return "packet_bad_data"
	case ErrBadCallRecv:
		return "tlm_badcall_recv"
	case ErrBadCallSend:
		return "tlm_badcall_send"
	case ErrNotImplemented:
		return "not_implemented"
	default:
		return fmt.Sprintf("errcode(%d)", int(e))
	}
}
