// Package protocol defines packet field layouts and the packet factory. The
// core of the simulator only ever reads the src and dst fields; everything
// else is opaque payload owned by the ipcores.
package protocol

import "log"

// FieldType is the kind of value a packet field carries.
type FieldType int

// The supported field kinds.
const (
	FieldInt FieldType = iota
	FieldFixed
	FieldFloat
)

// A Field describes one slot of a packet: its name, kind, and bit width.
// The bit position of a field is its rank in the protocol's field order.
type Field struct {
	Name        string
	Type        FieldType
	Bits        int
	Description string
}

// A Protocol is an ordered set of packet fields. All entities of one network
// share a single protocol, so every packet on its wires has the same layout.
type Protocol struct {
	name   string
	fields []Field
	index  map[string]int
}

// NewProtocol creates an empty protocol.
func NewProtocol(name string) *Protocol {
	return &Protocol{
		name:  name,
		index: make(map[string]int),
	}
}

// NewBasicProtocol creates the default protocol: an 8-bit source address, an
// 8-bit destination address, and a 16-bit data payload.
func NewBasicProtocol() *Protocol {
	p := NewProtocol("Basic")
	p.AddField("src", FieldInt, 8, "source address")
	p.AddField("dst", FieldInt, 8, "destination address")
	p.AddField("data", FieldInt, 16, "data payload")

	return p
}

// Name returns the name of the protocol.
func (p *Protocol) Name() string {
	return p.name
}

// AddField appends a field to the packet layout. Field names must be unique
// within a protocol.
func (p *Protocol) AddField(name string, t FieldType, bits int, desc string) {
	if _, taken := p.index[name]; taken {
		log.Panicf("field %s is already defined", name)
	}

	if bits <= 0 || bits > 64 {
		log.Panicf("field %s must be 1 to 64 bits wide", name)
	}

	p.index[name] = len(p.fields)
	p.fields = append(p.fields, Field{
		Name:        name,
		Type:        t,
		Bits:        bits,
		Description: desc,
	})
}

// Fields returns the packet layout in field order.
func (p *Protocol) Fields() []Field {
	return p.fields
}

// FieldByName finds a field description by name.
func (p *Protocol) FieldByName(name string) (Field, bool) {
	i, found := p.index[name]
	if !found {
		return Field{}, false
	}

	return p.fields[i], true
}

// HasRoutingFields reports whether packets of this protocol carry the src
// and dst fields the routers depend on.
func (p *Protocol) HasRoutingFields() bool {
	_, hasSrc := p.index["src"]
	_, hasDst := p.index["dst"]

	return hasSrc && hasDst
}
