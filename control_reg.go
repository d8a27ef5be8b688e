// control_reg.go - Set/clear latch primitive shared by the MMIO bridge state machines

package main

// ControlReg models a one-bit set/clear register. It is the building block
// for every in-flight flag in the bridge: the read path's outstanding and
// response-valid flags, the write path's per-phase latches, and both halves
// of the manifest trigger capture.
//
// On each clock step the register evaluates its set conditions before its
// clear conditions, so a simultaneous set and clear leaves the register set.
// Reset forces it clear.
type ControlReg struct {
	value bool
}

// Step advances the register one clock edge. Any asserted set condition
// wins; otherwise any asserted clear condition clears; otherwise the value
// holds.
func (r *ControlReg) Step(set, clear bool) {
	if set {
		r.value = true
		return
	}
	if clear {
		r.value = false
	}
}

// StepMulti is Step over condition slices, for call sites that latch on
// more than one source.
func (r *ControlReg) StepMulti(set, clear []bool) {
	r.Step(anyOf(set), anyOf(clear))
}

// Get returns the current registered value.
func (r *ControlReg) Get() bool {
	return r.value
}

// Reset forces the register clear, as a hardware reset would.
func (r *ControlReg) Reset() {
	r.value = false
}

func anyOf(conds []bool) bool {
	for _, c := range conds {
		if c {
			return true
		}
	}
	return false
}
