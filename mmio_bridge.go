// mmio_bridge.go - Top-level MMIO bridge: tables, read/write paths and ROM on one clock

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

// MMIOBridge is the assembled controller: the endpoint address tables built
// at configuration time, the manifest ROM, and the two protocol paths
// sharing one clock. The read and write paths operate on disjoint channel
// sets and share no state beyond that clock.
type MMIOBridge struct {
	ReadTable  *AddressTable
	WriteTable *AddressTable
	ROMBase    uint32

	Read  *ReadPath
	Write *WritePath
	ROM   *ManifestROM

	cycles uint64
}

// NewMMIOBridge builds the bridge for an ordered endpoint sequence and a
// raw manifest blob. The tables and the ROM base are fixed from here on.
func NewMMIOBridge(endpoints []EndpointDesc, manifest []byte, initiator TransferInitiator) (*MMIOBridge, error) {
	readTable, writeTable, romBase := BuildAddressTables(endpoints)

	rom, err := NewManifestROM(manifest)
	if err != nil {
		return nil, err
	}

	return &MMIOBridge{
		ReadTable:  readTable,
		WriteTable: writeTable,
		ROMBase:    romBase,
		Read:       NewReadPath(romBase),
		Write:      NewWritePath(initiator),
		ROM:        rom,
	}, nil
}

// Clock advances the whole bridge one edge. The ROM's output and its
// presented address are sampled before anything latches, so every register
// in the system sees the same pre-edge combinational plane.
func (b *MMIOBridge) Clock() {
	romAddr := b.Read.ROMAddress()
	romData := b.ROM.Data()

	b.Read.Clock(romData)
	b.Write.Clock()

	b.ROM.Address = romAddr
	b.ROM.Clock()

	b.cycles++
}

// Step runs n clock edges.
func (b *MMIOBridge) Step(n int) {
	for i := 0; i < n; i++ {
		b.Clock()
	}
}

// Cycles returns the number of edges since construction or reset.
func (b *MMIOBridge) Cycles() uint64 {
	return b.cycles
}
