// script_host.go - Lua testbench harness for driving the bridge headlessly

package main

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

// ScriptHost exposes the bridge to Lua testbenches. Scripts get a small
// register-level vocabulary:
//
//	read(addr)          -> value        full read transaction
//	write(addr, value)                  full write transaction
//	step(n)                             advance the clock n cycles
//	cycles()            -> n            cycle counter
//	rom_base()          -> addr         manifest ROM window base
//	manifest()          -> string       fetch and inflate the manifest
//	trigger(hostaddr)                   drive the transfer trigger pair
//	trigger_count()     -> n            pulses since reset
//	fail(msg)                           abort the script with an error
//
// Bus stalls surface as Lua errors so a wedged testbench fails loudly.
type ScriptHost struct {
	host   *HostBridge
	bridge *MMIOBridge
}

func NewScriptHost(host *HostBridge, bridge *MMIOBridge) *ScriptHost {
	return &ScriptHost{host: host, bridge: bridge}
}

// RunFile executes a Lua testbench from disk.
func (s *ScriptHost) RunFile(path string) error {
	L := lua.NewState()
	defer L.Close()
	s.register(L)
	if err := L.DoFile(path); err != nil {
		return fmt.Errorf("script %s: %w", path, err)
	}
	return nil
}

// RunString executes an inline Lua testbench.
func (s *ScriptHost) RunString(src string) error {
	L := lua.NewState()
	defer L.Close()
	s.register(L)
	if err := L.DoString(src); err != nil {
		return fmt.Errorf("script: %w", err)
	}
	return nil
}

func (s *ScriptHost) register(L *lua.LState) {
	L.SetGlobal("read", L.NewFunction(func(L *lua.LState) int {
		addr := uint32(L.CheckInt64(1))
		value, err := s.host.Read32(addr)
		if err != nil {
			L.RaiseError("read %#x: %v", addr, err)
			return 0
		}
		L.Push(lua.LNumber(value))
		return 1
	}))

	L.SetGlobal("write", L.NewFunction(func(L *lua.LState) int {
		addr := uint32(L.CheckInt64(1))
		value := uint32(L.CheckInt64(2))
		if err := s.host.Write32(addr, value); err != nil {
			L.RaiseError("write %#x: %v", addr, err)
		}
		return 0
	}))

	L.SetGlobal("step", L.NewFunction(func(L *lua.LState) int {
		s.host.Step(L.OptInt(1, 1))
		return 0
	}))

	L.SetGlobal("cycles", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LNumber(s.bridge.Cycles()))
		return 1
	}))

	L.SetGlobal("rom_base", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LNumber(s.bridge.ROMBase))
		return 1
	}))

	L.SetGlobal("manifest", L.NewFunction(func(L *lua.LState) int {
		manifest, err := s.host.ReadManifest()
		if err != nil {
			L.RaiseError("manifest: %v", err)
			return 0
		}
		L.Push(lua.LString(string(manifest)))
		return 1
	}))

	L.SetGlobal("trigger", L.NewFunction(func(L *lua.LState) int {
		hostAddr := uint64(L.CheckInt64(1))
		if err := s.host.TriggerManifestTransfer(hostAddr); err != nil {
			L.RaiseError("trigger: %v", err)
		}
		return 0
	}))

	L.SetGlobal("trigger_count", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LNumber(s.bridge.Write.TriggerCount()))
		return 1
	}))

	L.SetGlobal("fail", L.NewFunction(func(L *lua.LState) int {
		L.RaiseError("%s", L.CheckString(1))
		return 0
	}))
}
