// mmio_ioview.go - I/O register viewer for the bridge monitor

package main

import (
	"fmt"
	"strings"
)

// IORegisterDesc describes a single MMIO register for display.
type IORegisterDesc struct {
	Name   string
	Addr   uint32
	Access string // "RO", "WO"
}

// IODeviceDesc describes a group of registers.
type IODeviceDesc struct {
	Name      string
	Registers []IORegisterDesc
}

// BuildIOView lays out the bridge's register map for the monitor: the fixed
// header, the trigger pair, and whatever offsets the table builder handed
// out for this configuration.
func BuildIOView(bridge *MMIOBridge) []IODeviceDesc {
	header := IODeviceDesc{
		Name: "Header",
		Registers: []IORegisterDesc{
			{"RESERVED0", HDR_RESERVED0 * 4, "RO"},
			{"RESERVED1", HDR_RESERVED1 * 4, "RO"},
			{"MAGIC_LO", HDR_MAGIC_LO * 4, "RO"},
			{"MAGIC_HI", HDR_MAGIC_HI * 4, "RO"},
			{"VERSION", HDR_VERSION * 4, "RO"},
			{"ROM_BASE", HDR_ROM_BASE * 4, "RO"},
		},
	}

	trigger := IODeviceDesc{
		Name: "ManifestTrigger",
		Registers: []IORegisterDesc{
			{"HOST_ADDR_LO", MANIFEST_OFFSET_LO, "WO"},
			{"HOST_ADDR_HI", MANIFEST_OFFSET_HI, "WO"},
		},
	}

	endpoints := IODeviceDesc{Name: "Endpoints"}
	for _, offset := range bridge.ReadTable.Offsets() {
		ep, _ := bridge.ReadTable.Lookup(offset)
		endpoints.Registers = append(endpoints.Registers,
			IORegisterDesc{strings.ToUpper(ep.Name), offset, "RO"})
	}
	for _, offset := range bridge.WriteTable.Offsets() {
		ep, _ := bridge.WriteTable.Lookup(offset)
		endpoints.Registers = append(endpoints.Registers,
			IORegisterDesc{strings.ToUpper(ep.Name), offset, "WO"})
	}

	rom := IODeviceDesc{
		Name: "ManifestROM",
		Registers: []IORegisterDesc{
			{"SIZE", bridge.ROMBase, "RO"},
			{"DATA", bridge.ROMBase + 4, "RO"},
		},
	}

	return []IODeviceDesc{header, trigger, endpoints, rom}
}

// FormatIOView renders the register map as the monitor prints it.
func FormatIOView(devices []IODeviceDesc) string {
	var sb strings.Builder
	for _, dev := range devices {
		fmt.Fprintf(&sb, "%s:\n", dev.Name)
		if len(dev.Registers) == 0 {
			sb.WriteString("  (none)\n")
			continue
		}
		for _, reg := range dev.Registers {
			fmt.Fprintf(&sb, "  %-14s %#07x  %s\n", reg.Name, reg.Addr, reg.Access)
		}
	}
	return sb.String()
}
