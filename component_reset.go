// component_reset.go - Reset() methods for all bridge components (hard reset support)

package main

// ReadPath.Reset clears all transaction state. The header constants and
// the ROM base survive; they are build-time values, not registers.
func (rp *ReadPath) Reset() {
	rp.ARValid = false
	rp.ARAddr = 0
	rp.RReady = false

	rp.reqOutstanding.Reset()
	rp.address = 0
	rp.addressValid = false
	rp.romValid[0] = false
	rp.romValid[1] = false
	rp.dataOutValid.Reset()
	rp.rdata = 0
	rp.rresp = 0
}

// WritePath.Reset clears the phase latches, both trigger halves and the
// trigger bookkeeping.
func (wp *WritePath) Reset() {
	wp.AWValid = false
	wp.AWAddr = 0
	wp.WValid = false
	wp.WData = 0
	wp.BReady = false

	wp.latchedAW.Reset()
	wp.latchedW.Reset()
	wp.addrLo = 0
	wp.addrHi = 0
	wp.addrLoValid.Reset()
	wp.addrHiValid.Reset()
	wp.writing.Reset()
	wp.triggerCount = 0
	wp.lastTrigger = 0
}

// ManifestROM.Reset flushes the read pipeline. Contents are immutable.
func (rom *ManifestROM) Reset() {
	rom.Address = 0
	rom.stage1 = 0
	rom.stage2 = 0
}

// MMIOBridge.Reset returns every component to its power-on state. The
// address tables and ROM contents are configuration, not state, and are
// preserved.
func (b *MMIOBridge) Reset() {
	b.Read.Reset()
	b.Write.Reset()
	b.ROM.Reset()
	b.cycles = 0
}
