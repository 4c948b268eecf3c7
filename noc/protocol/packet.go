package protocol

import (
	"fmt"
	"strings"

	"github.com/sarchlab/noctlm/sim"
)

// A Packet is one unit of traffic: an ordered mapping from field name to
// value, laid out by the protocol that created it. A packet is owned by
// whichever entity currently holds it in a queue or signal; it is
// transferred, never aliased, across a transaction.
type Packet struct {
	// ID identifies the packet in diagnostics and traces.
	ID string

	proto  *Protocol
	values []int64
}

// NewPacket creates a zero-initialized packet of this protocol.
func (p *Protocol) NewPacket() *Packet {
	return &Packet{
		ID:     sim.GetIDGenerator().Generate(),
		proto:  p,
		values: make([]int64, len(p.fields)),
	}
}

// NewPacketWithValues creates a packet and fills the named fields. Unknown
// field names panic: they are a configuration error, not a runtime fault.
func (p *Protocol) NewPacketWithValues(values map[string]int64) *Packet {
	pkt := p.NewPacket()
	for name, v := range values {
		pkt.MustSet(name, v)
	}

	return pkt
}

// Protocol returns the protocol that defines the packet's layout.
func (pkt *Packet) Protocol() *Protocol {
	return pkt.proto
}

// Get reads a field by name.
func (pkt *Packet) Get(name string) (int64, bool) {
	i, found := pkt.proto.index[name]
	if !found {
		return 0, false
	}

	return pkt.values[i], true
}

// MustGet reads a field that the caller knows exists.
func (pkt *Packet) MustGet(name string) int64 {
	v, found := pkt.Get(name)
	if !found {
		panic("packet has no field " + name)
	}

	return v
}

// Set writes a field by name, truncating the value to the field's bit
// width. It reports whether the field exists.
func (pkt *Packet) Set(name string, v int64) bool {
	i, found := pkt.proto.index[name]
	if !found {
		return false
	}

	field := pkt.proto.fields[i]
	if field.Type == FieldInt && field.Bits < 64 {
		v &= (1 << field.Bits) - 1
	}

	pkt.values[i] = v

	return true
}

// MustSet writes a field that the caller knows exists.
func (pkt *Packet) MustSet(name string, v int64) {
	if !pkt.Set(name, v) {
		panic("packet has no field " + name)
	}
}

// Src returns the source address field.
func (pkt *Packet) Src() int {
	return int(pkt.MustGet("src"))
}

// Dst returns the destination address field.
func (pkt *Packet) Dst() int {
	return int(pkt.MustGet("dst"))
}

// String renders the packet for diagnostics.
func (pkt *Packet) String() string {
	if pkt == nil {
		return "Packet <nil>"
	}

	var sb strings.Builder

	fmt.Fprintf(&sb, "Packet %s {", pkt.ID)
	for i, f := range pkt.proto.fields {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s: %d", f.Name, pkt.values[i])
	}
	sb.WriteString("}")

	return sb.String()
}
