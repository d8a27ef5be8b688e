// main.go - Main entry point for the MMIO bridge simulator

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
	"flag"
	"fmt"
	"os"
)

func boilerPlate() {
	fmt.Println("MMIOBridge - AXI-lite MMIO service bridge simulator")
	fmt.Println("(c) 2024 - 2026 Zayn Otley")
	fmt.Println("https://github.com/IntuitionAmiga/MMIOBridge")
	fmt.Println("License: GPLv3 or later")
	fmt.Println()
}

func main() {
	var (
		manifestPath string
		scriptPath   string
		monitorMode  bool
		cycles       int
	)
	flag.StringVar(&manifestPath, "manifest", "", "manifest JSON file (built-in default if empty)")
	flag.StringVar(&scriptPath, "script", "", "Lua testbench to run headlessly")
	flag.BoolVar(&monitorMode, "monitor", false, "start the interactive machine monitor")
	flag.IntVar(&cycles, "cycles", 0, "free-run this many clock cycles before anything else")
	flag.Parse()

	manifestRaw := DefaultManifest()
	if manifestPath != "" {
		data, err := os.ReadFile(manifestPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		manifestRaw = data
	}

	manifest, err := ParseManifest(manifestRaw)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	hostMem := NewHostMemory()
	bridge, err := NewMMIOBridge(manifest.EndpointDescs(), manifestRaw, hostMem)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	host := NewHostBridge(bridge)

	if cycles > 0 {
		host.Step(cycles)
	}

	switch {
	case scriptPath != "":
		if err := NewScriptHost(host, bridge).RunFile(scriptPath); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		for i, addr := range hostMem.Transfers() {
			fmt.Printf("transfer %d -> host %#x\n", i, addr)
		}
	case monitorMode:
		boilerPlate()
		fmt.Printf("%d read / %d write endpoints, rom base %#x\n\n",
			bridge.ReadTable.Len(), bridge.WriteTable.Len(), bridge.ROMBase)
		if err := NewMonitor(host, bridge).Run(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	default:
		boilerPlate()
		fmt.Print(FormatIOView(BuildIOView(bridge)))
		fmt.Println("\nrun with -monitor or -script to drive the bridge")
	}
}
