// mmio_constants.go - Register map and protocol constants for the MMIO bridge

package main

// Discovery header constants. The magic pair identifies the bridge to host
// software probing a PCIe BAR or similar window; the version word gates the
// manifest format.
const (
	MMIO_MAGIC_LO = 0xE5100E51
	MMIO_MAGIC_HI = 0x207D98E5
	MMIO_VERSION  = 0
)

// Fixed header layout, word-addressed from the start of the MMIO window.
const (
	HDR_RESERVED0 = 0 // always reads 0
	HDR_RESERVED1 = 1 // always reads 0
	HDR_MAGIC_LO  = 2
	HDR_MAGIC_HI  = 3
	HDR_VERSION   = 4
	HDR_ROM_BASE  = 5 // absolute address of the manifest ROM window

	HEADER_WORDS = 6
)

// Address map parameters.
const (
	// First offset handed out to a registered endpoint. Everything below
	// 0x100 is reserved for the header and trigger registers.
	INITIAL_OFFSET = 0x100

	// Low half of the 64-bit host address used to trigger a manifest
	// transfer. The high half lives one word above.
	MANIFEST_OFFSET_LO = 0x18
	MANIFEST_OFFSET_HI = MANIFEST_OFFSET_LO + 4
)

// AXI-lite geometry. A 20-bit address bus gives a 1MB window, which is more
// than this register map will ever fill. Accesses are 32-bit aligned; the
// two byte-lane bits are dropped during decode.
const (
	AXI_ADDR_WIDTH = 20
	AXI_ADDR_MASK  = (1 << AXI_ADDR_WIDTH) - 1

	ROM_ADDR_WIDTH = 30
	ROM_ADDR_MASK  = (1 << ROM_ADDR_WIDTH) - 1
)

// AXI read/write response codes. The bridge never synthesizes an error
// response; failure shows up as a protocol stall, not a status code.
const (
	AXI_RESP_OKAY   = 0
	AXI_RESP_SLVERR = 2
)
