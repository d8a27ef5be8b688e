// mmio_read.go - AXI-lite read path: single-outstanding decode, header/ROM response mux

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

// ReadPath implements the read half of the bridge's AXI-lite surface.
//
// One transaction may be outstanding at a time. The outstanding flag is set
// when an address is accepted and cleared only when the requester takes the
// response, so a requester that never asserts RReady wedges the read path:
// ARReady stays low and later address assertions are refused at the
// handshake, never queued or dropped. TODO: add some kind of timeout.
//
// Two sources race to answer a decoded address. The constant header answers
// with zero added latency beyond the address register; the manifest ROM
// answers two cycles later, matching its read pipeline. One selector feeds
// three parallel muxes (data, valid, resp) so the fields of the two sources
// never mix.
type ReadPath struct {
	// Requester-driven inputs, sampled on each Clock edge.
	ARValid bool
	ARAddr  uint32
	RReady  bool

	romBase uint32
	header  [HEADER_WORDS]uint32

	// Registered state. All of it moves together on Clock.
	reqOutstanding ControlReg
	address        uint32
	addressValid   bool
	romValid       [2]bool
	dataOutValid   ControlReg
	rdata          uint32
	rresp          uint32
}

// NewReadPath builds the read path for a bridge whose manifest ROM window
// starts at romBase.
func NewReadPath(romBase uint32) *ReadPath {
	rp := &ReadPath{romBase: romBase}
	rp.header = [HEADER_WORDS]uint32{
		HDR_RESERVED0: 0,
		HDR_RESERVED1: 0,
		HDR_MAGIC_LO:  MMIO_MAGIC_LO,
		HDR_MAGIC_HI:  MMIO_MAGIC_HI,
		HDR_VERSION:   MMIO_VERSION,
		HDR_ROM_BASE:  romBase,
	}
	return rp
}

// ARReady reports whether a new read address would be accepted on the next
// edge. Low for as long as a transaction is outstanding.
func (rp *ReadPath) ARReady() bool {
	return !rp.reqOutstanding.Get()
}

// RValid reports whether a response is waiting on the data channel.
func (rp *ReadPath) RValid() bool {
	return rp.dataOutValid.Get()
}

// RData returns the response payload. Only meaningful while RValid.
func (rp *ReadPath) RData() uint32 {
	return rp.rdata
}

// RResp returns the response status code. Only meaningful while RValid.
func (rp *ReadPath) RResp() uint32 {
	return rp.rresp
}

// ROMAddress returns the word address currently presented to the manifest
// ROM, derived combinationally from the registered request address.
func (rp *ReadPath) ROMAddress() uint32 {
	return (rp.wordAddress() - rp.romBase>>2) & ROM_ADDR_MASK
}

func (rp *ReadPath) wordAddress() uint32 {
	return (rp.address & AXI_ADDR_MASK) >> 2
}

// headerSelected is true when the registered address decodes into the
// header zone: every word-address bit above the initial-offset width reads
// zero.
func (rp *ReadPath) headerSelected() bool {
	return rp.wordAddress()>>(bits.Len32(INITIAL_OFFSET)-2) == 0
}

func (rp *ReadPath) headerWord() uint32 {
	idx := rp.wordAddress() & 0x7
	if idx >= HEADER_WORDS {
		return 0
	}
	return rp.header[idx]
}

// responseSource is one candidate answer racing down the response
// pipeline: payload, validity and status travel together so a mux can
// never mix fields from different sources.
type responseSource struct {
	data  uint32
	valid bool
	resp  uint32
}

// muxResponse picks between the two candidates. One selector switches
// data, valid and resp in parallel.
func muxResponse(selROM bool, header, rom responseSource) responseSource {
	if selROM {
		return rom
	}
	return header
}

// Clock advances the read path one edge. romData is the backing store's
// current output, sampled before any state moves.
func (rp *ReadPath) Clock(romData uint32) {
	// Combinational plane, evaluated against pre-edge state.
	addressWritten := rp.ARValid && !rp.reqOutstanding.Get()
	responseWritten := rp.dataOutValid.Get() && rp.RReady

	pipe := muxResponse(!rp.headerSelected(),
		responseSource{data: rp.headerWord(), valid: rp.addressValid, resp: AXI_RESP_OKAY},
		responseSource{data: romData, valid: rp.romValid[1], resp: AXI_RESP_OKAY},
	)

	// Register plane: everything latches from the values above.
	rp.reqOutstanding.Step(addressWritten, responseWritten)
	if addressWritten {
		rp.address = rp.ARAddr & AXI_ADDR_MASK
	}
	rp.romValid[1] = rp.romValid[0]
	rp.romValid[0] = rp.addressValid
	rp.addressValid = addressWritten

	rp.dataOutValid.Step(pipe.valid, responseWritten)
	if pipe.valid {
		rp.rdata = pipe.data
		rp.rresp = pipe.resp
	}
}
