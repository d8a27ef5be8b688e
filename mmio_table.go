// mmio_table.go - Endpoint address table builder for the MMIO bridge

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/MMIOBridge
License: GPLv3 or later
*/

package main

import "math/bits"

// Endpoint directions, as seen from the host: a read endpoint is polled
// through the read channel, a write endpoint is driven through the write
// channel.
const (
	ENDPOINT_READ = iota
	ENDPOINT_WRITE
)

// EndpointDesc describes one downstream service endpoint to be assigned an
// MMIO offset. Descriptors are supplied once, in discovery order, before
// the tables are built.
type EndpointDesc struct {
	Name      string
	Direction int
}

// AddressTable maps 4-byte-aligned MMIO offsets to endpoint descriptors.
// Built once by BuildAddressTables and never mutated afterwards. Offsets()
// preserves allocation order, which clients learn out of band, so the order
// is part of the contract.
type AddressTable struct {
	offsets  []uint32
	byOffset map[uint32]EndpointDesc
}

func newAddressTable() *AddressTable {
	return &AddressTable{byOffset: make(map[uint32]EndpointDesc)}
}

func (t *AddressTable) add(offset uint32, ep EndpointDesc) {
	t.offsets = append(t.offsets, offset)
	t.byOffset[offset] = ep
}

// Len returns the number of endpoints in the table.
func (t *AddressTable) Len() int {
	return len(t.offsets)
}

// Offsets returns the assigned offsets in allocation order.
func (t *AddressTable) Offsets() []uint32 {
	out := make([]uint32, len(t.offsets))
	copy(out, t.offsets)
	return out
}

// Lookup returns the endpoint assigned to offset, if any.
func (t *AddressTable) Lookup(offset uint32) (EndpointDesc, bool) {
	ep, ok := t.byOffset[offset]
	return ep, ok
}

// offsetCounter is the single running offset shared by both tables. It is
// an explicit object rather than a loop variable so the allocation order
// stays reproducible and testable on its own.
type offsetCounter struct {
	next uint32
}

func (c *offsetCounter) take() uint32 {
	offset := c.next
	c.next += 4
	return offset
}

// BuildAddressTables walks the endpoint sequence in order and assigns each
// recognized endpoint the next 4-byte-aligned offset starting at
// INITIAL_OFFSET. Read and write endpoints land in separate tables but
// consume the same monotonic offset counter, so the two tables never
// overlap and a reordering of the input is a breaking change.
//
// Endpoints with an unrecognized direction are skipped without an offset.
// There is no error path here: misconfiguration shows up as a missing
// register, nothing more.
//
// The returned romBase is the power of two one bit-length above the final
// offset, i.e. the lowest pow2 boundary strictly past everything the
// counter handed out. The manifest ROM window starts there. An empty
// endpoint list is valid and yields the minimal base of 0x200.
func BuildAddressTables(endpoints []EndpointDesc) (readTable, writeTable *AddressTable, romBase uint32) {
	counter := offsetCounter{next: INITIAL_OFFSET}
	readTable = newAddressTable()
	writeTable = newAddressTable()

	for _, ep := range endpoints {
		switch ep.Direction {
		case ENDPOINT_READ:
			readTable.add(counter.take(), ep)
		case ENDPOINT_WRITE:
			writeTable.add(counter.take(), ep)
		}
	}

	romBase = 1 << bits.Len32(counter.next)
	return readTable, writeTable, romBase
}
