// host_bridge.go - Host-side bus functional model over the bridge's AXI-lite ports

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

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"sync"
)

// ErrBusStall is returned when a transaction does not complete within the
// host's cycle budget. The underlying protocol has no timeout of its own;
// the budget only keeps a wedged path from hanging the caller.
var ErrBusStall = errors.New("mmio bridge: bus stalled")

// Default number of clock edges a HostBridge will spend on one transaction
// before giving up. Worst case for a well-behaved bridge is a handful of
// cycles, so this is generous.
const DEFAULT_CYCLE_BUDGET = 64

// HostBridge is the host's view of the bridge: blocking 32-bit reads and
// writes in the shape of a memory bus, implemented by driving the AXI-lite
// valid/ready wires cycle by cycle. A mutex serializes callers; the
// simulation itself is single-threaded.
type HostBridge struct {
	mu     sync.Mutex
	bridge *MMIOBridge
	budget int
}

func NewHostBridge(bridge *MMIOBridge) *HostBridge {
	return &HostBridge{bridge: bridge, budget: DEFAULT_CYCLE_BUDGET}
}

// SetCycleBudget overrides the per-transaction cycle budget.
func (h *HostBridge) SetCycleBudget(cycles int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.budget = cycles
}

// Read32 performs one full read transaction and returns the payload.
func (h *HostBridge) Read32(addr uint32) (uint32, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	rp := h.bridge.Read

	// Address phase: wait for the path to go idle, then handshake.
	waited := 0
	for !rp.ARReady() {
		if waited++; waited > h.budget {
			return 0, fmt.Errorf("read %#x address phase: %w", addr, ErrBusStall)
		}
		h.bridge.Clock()
	}
	rp.ARValid = true
	rp.ARAddr = addr
	h.bridge.Clock()
	rp.ARValid = false

	// Response phase: accept whatever arrives.
	rp.RReady = true
	defer func() { rp.RReady = false }()
	for edges := 0; !rp.RValid(); edges++ {
		if edges > h.budget {
			return 0, fmt.Errorf("read %#x response phase: %w", addr, ErrBusStall)
		}
		h.bridge.Clock()
	}
	data := rp.RData()
	h.bridge.Clock() // completes the handshake and frees the path
	return data, nil
}

// Write32 performs one full write transaction, posting address and data in
// the same cycle, and waits for the response pulse.
func (h *HostBridge) Write32(addr, value uint32) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	wp := h.bridge.Write

	wp.AWValid = true
	wp.AWAddr = addr
	wp.WValid = true
	wp.WData = value
	wp.BReady = true
	h.bridge.Clock()
	wp.AWValid = false
	wp.WValid = false

	for edges := 0; !wp.BValid(); edges++ {
		if edges > h.budget {
			wp.BReady = false
			return fmt.Errorf("write %#x response phase: %w", addr, ErrBusStall)
		}
		h.bridge.Clock()
	}
	if wp.BResp() != AXI_RESP_OKAY {
		wp.BReady = false
		return fmt.Errorf("write %#x: response code %d", addr, wp.BResp())
	}
	h.bridge.Clock() // consume the response pulse
	wp.BReady = false
	return nil
}

// Step advances the bridge n idle cycles.
func (h *HostBridge) Step(n int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.bridge.Step(n)
}

// ReadManifest walks the ROM window word by word and inflates the
// compressed manifest: word 0 holds the byte size, the blob follows.
func (h *HostBridge) ReadManifest() ([]byte, error) {
	base := h.bridge.ROMBase

	size, err := h.Read32(base)
	if err != nil {
		return nil, err
	}
	if size == 0 {
		return nil, errors.New("mmio bridge: manifest size word is zero")
	}

	packed := make([]byte, (size+3)&^3)
	for i := uint32(0); i < size; i += 4 {
		word, err := h.Read32(base + 4 + i)
		if err != nil {
			return nil, err
		}
		binary.LittleEndian.PutUint32(packed[i:], word)
	}

	zr, err := zlib.NewReader(bytes.NewReader(packed[:size]))
	if err != nil {
		return nil, fmt.Errorf("mmio bridge: inflate manifest: %w", err)
	}
	defer zr.Close()
	manifest, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("mmio bridge: inflate manifest: %w", err)
	}
	return manifest, nil
}

// TriggerManifestTransfer writes the two halves of a 64-bit host address
// to the trigger registers and steps until the pulse lands.
func (h *HostBridge) TriggerManifestTransfer(hostAddr uint64) error {
	if err := h.Write32(MANIFEST_OFFSET_LO, uint32(hostAddr)); err != nil {
		return err
	}
	if err := h.Write32(MANIFEST_OFFSET_HI, uint32(hostAddr>>32)); err != nil {
		return err
	}
	h.Step(2) // let the trigger pulse through
	return nil
}
