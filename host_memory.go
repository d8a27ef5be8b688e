// host_memory.go - Stub transfer initiator standing in for the bus-master engine

package main

// HostMemory records manifest transfer requests in place of the real DMA
// engine, which lives outside this core. Each trigger pulse from the write
// path lands here as the composed 64-bit destination address.
type HostMemory struct {
	transfers []uint64
}

func NewHostMemory() *HostMemory {
	return &HostMemory{}
}

// InitiateTransfer implements TransferInitiator.
func (h *HostMemory) InitiateTransfer(hostAddr uint64) {
	h.transfers = append(h.transfers, hostAddr)
}

// Transfers returns every destination address requested so far.
func (h *HostMemory) Transfers() []uint64 {
	out := make([]uint64, len(h.transfers))
	copy(out, h.transfers)
	return out
}
