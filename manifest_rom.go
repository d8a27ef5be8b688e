// manifest_rom.go - Compressed manifest backing store with a two-cycle read pipeline

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
	"fmt"
)

// ManifestROM models the bridge's backing store at its interface boundary:
// a word-addressed read-only memory with a fixed two-cycle latency from
// address presentation to valid data. There is no read enable; presenting
// an address is the request.
//
// Layout: word 0 holds the byte size of the compressed manifest, the
// compressed blob follows from word 1, packed little-endian and
// zero-padded to a word boundary. Reads past the end return 0.
type ManifestROM struct {
	words []uint32

	// Address is the 30-bit word address presented by the read path. It is
	// sampled on each Clock edge.
	Address uint32

	stage1 uint32
	stage2 uint32
}

// NewManifestROM compresses the raw manifest bytes and lays them out in ROM
// words behind the size word.
func NewManifestROM(manifest []byte) (*ManifestROM, error) {
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(manifest); err != nil {
		return nil, fmt.Errorf("manifest rom: compress: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("manifest rom: compress: %w", err)
	}

	compressed := buf.Bytes()
	padded := make([]byte, (len(compressed)+3)&^3)
	copy(padded, compressed)

	rom := &ManifestROM{words: make([]uint32, 1+len(padded)/4)}
	rom.words[0] = uint32(len(compressed))
	for i := 0; i < len(padded); i += 4 {
		rom.words[1+i/4] = binary.LittleEndian.Uint32(padded[i:])
	}
	return rom, nil
}

// Clock advances the read pipeline one edge: the previously fetched word
// moves to the output stage and the currently presented address is fetched.
func (rom *ManifestROM) Clock() {
	rom.stage2 = rom.stage1
	rom.stage1 = rom.lookup(rom.Address & ROM_ADDR_MASK)
}

// Data returns the word fetched two edges ago.
func (rom *ManifestROM) Data() uint32 {
	return rom.stage2
}

// Words returns the number of words in the ROM, size word included.
func (rom *ManifestROM) Words() int {
	return len(rom.words)
}

func (rom *ManifestROM) lookup(wordAddr uint32) uint32 {
	if wordAddr >= uint32(len(rom.words)) {
		return 0
	}
	return rom.words[wordAddr]
}
