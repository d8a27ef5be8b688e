// mmio_write.go - AXI-lite write path: total acknowledgment and manifest trigger capture

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

// TransferInitiator is the boundary to the bus-master engine that moves the
// manifest into host memory. The bridge composes the 64-bit destination
// from two 32-bit register writes and pulses InitiateTransfer once per
// completed pair. What happens after the pulse is the initiator's problem.
type TransferInitiator interface {
	InitiateTransfer(hostAddr uint64)
}

// WritePath implements the write half of the bridge's AXI-lite surface.
//
// Every write is accepted unconditionally: both address-ready and
// data-ready are tied high, and one OKAY response is produced a cycle after
// both phases of a transaction have each been latched. Nothing ever blocks
// and nothing is ever rejected, so the write channel can't wedge the bus.
//
// Layered on top, two designated offsets capture the halves of a 64-bit
// host address. When both halves have been seen since the last trigger (or
// reset), a one-cycle trigger pulse fires and both valid flags clear on
// that same edge. Order and repetition don't matter; there is deliberately
// no check that the two halves belong to one host operation, and a lone
// half persists until its partner shows up.
type WritePath struct {
	// Requester-driven inputs, sampled on each Clock edge.
	AWValid bool
	AWAddr  uint32
	WValid  bool
	WData   uint32
	BReady  bool

	initiator TransferInitiator

	// Best-effort acknowledgment state.
	latchedAW ControlReg
	latchedW  ControlReg

	// Manifest trigger capture state.
	addrLo      uint32
	addrHi      uint32
	addrLoValid ControlReg
	addrHiValid ControlReg
	writing     ControlReg

	triggerCount uint64
	lastTrigger  uint64
}

// NewWritePath builds the write path. initiator may be nil, in which case
// trigger pulses are only counted.
func NewWritePath(initiator TransferInitiator) *WritePath {
	return &WritePath{initiator: initiator}
}

// AWReady is tied high: write addresses are always accepted.
func (wp *WritePath) AWReady() bool {
	return true
}

// WReady is tied high: write data is always accepted.
func (wp *WritePath) WReady() bool {
	return true
}

// BValid reports whether a write response is being issued this cycle.
func (wp *WritePath) BValid() bool {
	return wp.latchedAW.Get() && wp.latchedW.Get()
}

// BResp returns the write response status. Always OKAY.
func (wp *WritePath) BResp() uint32 {
	return AXI_RESP_OKAY
}

// Writing reports whether a triggered transfer is considered in flight.
// Nothing in this core ever completes it; the done signal belongs to the
// initiator side of the boundary.
func (wp *WritePath) Writing() bool {
	return wp.writing.Get()
}

// TriggerCount returns the number of trigger pulses since reset.
func (wp *WritePath) TriggerCount() uint64 {
	return wp.triggerCount
}

// LastTriggerAddr returns the composed host address of the most recent
// trigger pulse.
func (wp *WritePath) LastTriggerAddr() uint64 {
	return wp.lastTrigger
}

// Clock advances the write path one edge.
func (wp *WritePath) Clock() {
	// Combinational plane.
	writeHappened := wp.latchedAW.Get() && wp.latchedW.Get()
	isWriteLo := wp.AWValid && wp.AWAddr&AXI_ADDR_MASK == MANIFEST_OFFSET_LO
	isWriteHi := wp.AWValid && wp.AWAddr&AXI_ADDR_MASK == MANIFEST_OFFSET_HI
	trigger := wp.addrLoValid.Get() && wp.addrHiValid.Get()

	if trigger {
		wp.triggerCount++
		wp.lastTrigger = uint64(wp.addrHi)<<32 | uint64(wp.addrLo)
		if wp.initiator != nil {
			wp.initiator.InitiateTransfer(wp.lastTrigger)
		}
	}

	// Register plane.
	wp.latchedAW.Step(wp.AWValid, writeHappened)
	wp.latchedW.Step(wp.WValid, writeHappened)

	if isWriteLo {
		wp.addrLo = wp.AWAddr & AXI_ADDR_MASK
	}
	if isWriteHi {
		wp.addrHi = wp.AWAddr & AXI_ADDR_MASK
	}
	wp.addrLoValid.Step(isWriteLo, trigger)
	wp.addrHiValid.Step(isWriteHi, trigger)
	wp.writing.Step(trigger, false) // cleared by a done signal nobody drives yet
}
