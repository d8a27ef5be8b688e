// mmio_table_test.go - Address table builder tests

package main

import (
	"fmt"
	"math/rand"
	"testing"
)

func TestBuildAddressTablesEmpty(t *testing.T) {
	readTable, writeTable, romBase := BuildAddressTables(nil)

	if readTable.Len() != 0 || writeTable.Len() != 0 {
		t.Fatalf("empty endpoint list produced %d read / %d write entries",
			readTable.Len(), writeTable.Len())
	}
	if romBase != 0x200 {
		t.Fatalf("empty endpoint list: rom base = %#x, want 0x200", romBase)
	}
}

func TestBuildAddressTablesSharedCounter(t *testing.T) {
	endpoints := []EndpointDesc{
		{Name: "telemetry", Direction: ENDPOINT_READ},
		{Name: "cmd", Direction: ENDPOINT_WRITE},
		{Name: "status", Direction: ENDPOINT_READ},
		{Name: "doorbell", Direction: ENDPOINT_WRITE},
	}
	readTable, writeTable, _ := BuildAddressTables(endpoints)

	// Offsets are consumed in traversal order across both tables.
	wantRead := []uint32{0x100, 0x108}
	wantWrite := []uint32{0x104, 0x10C}

	gotRead := readTable.Offsets()
	gotWrite := writeTable.Offsets()
	for i, want := range wantRead {
		if gotRead[i] != want {
			t.Errorf("read offset %d = %#x, want %#x", i, gotRead[i], want)
		}
	}
	for i, want := range wantWrite {
		if gotWrite[i] != want {
			t.Errorf("write offset %d = %#x, want %#x", i, gotWrite[i], want)
		}
	}

	if ep, ok := readTable.Lookup(0x108); !ok || ep.Name != "status" {
		t.Errorf("lookup 0x108 = %+v, %v; want status endpoint", ep, ok)
	}
	if _, ok := readTable.Lookup(0x104); ok {
		t.Error("write endpoint offset must not appear in the read table")
	}
}

func TestBuildAddressTablesUnknownDirectionSkipped(t *testing.T) {
	endpoints := []EndpointDesc{
		{Name: "a", Direction: ENDPOINT_READ},
		{Name: "bogus", Direction: 99},
		{Name: "b", Direction: ENDPOINT_READ},
	}
	readTable, writeTable, _ := BuildAddressTables(endpoints)

	if readTable.Len() != 2 || writeTable.Len() != 0 {
		t.Fatalf("got %d read / %d write entries, want 2/0",
			readTable.Len(), writeTable.Len())
	}
	// The skipped endpoint must not consume an offset either.
	if got := readTable.Offsets()[1]; got != 0x104 {
		t.Errorf("offset after skipped endpoint = %#x, want 0x104", got)
	}
}

// Property test over random endpoint sequences: every assigned offset is
// unique across both tables, 4-aligned, starts at INITIAL_OFFSET, and the
// rom base is a power of two strictly above every offset in *both* tables.
// The last clause is the one that would catch a base computed from one
// table's extent alone.
func TestBuildAddressTablesProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(0x207D98E5))

	for trial := 0; trial < 200; trial++ {
		n := rng.Intn(300)
		endpoints := make([]EndpointDesc, n)
		for i := range endpoints {
			dir := ENDPOINT_READ
			// Bias towards write-heavy configurations now and then so the
			// write table's extent regularly exceeds the read table's.
			if rng.Intn(100) < 70 {
				dir = ENDPOINT_WRITE
			}
			endpoints[i] = EndpointDesc{Name: fmt.Sprintf("ep%d", i), Direction: dir}
		}

		readTable, writeTable, romBase := BuildAddressTables(endpoints)

		if romBase&(romBase-1) != 0 || romBase == 0 {
			t.Fatalf("trial %d: rom base %#x is not a power of two", trial, romBase)
		}

		seen := make(map[uint32]bool)
		all := append(readTable.Offsets(), writeTable.Offsets()...)
		for _, offset := range all {
			if offset%4 != 0 {
				t.Fatalf("trial %d: offset %#x not 4-aligned", trial, offset)
			}
			if offset < INITIAL_OFFSET {
				t.Fatalf("trial %d: offset %#x below initial offset", trial, offset)
			}
			if seen[offset] {
				t.Fatalf("trial %d: offset %#x assigned twice", trial, offset)
			}
			seen[offset] = true
			if offset >= romBase {
				t.Fatalf("trial %d: offset %#x overlaps rom base %#x",
					trial, offset, romBase)
			}
		}
		if len(all) != n {
			t.Fatalf("trial %d: %d offsets assigned for %d endpoints", trial, len(all), n)
		}
	}
}

func TestBuildAddressTablesDeterministic(t *testing.T) {
	endpoints := []EndpointDesc{
		{Name: "x", Direction: ENDPOINT_WRITE},
		{Name: "y", Direction: ENDPOINT_READ},
	}
	r1, w1, base1 := BuildAddressTables(endpoints)
	r2, w2, base2 := BuildAddressTables(endpoints)

	if base1 != base2 {
		t.Fatalf("rom base differs between identical builds: %#x vs %#x", base1, base2)
	}
	for i, off := range r1.Offsets() {
		if r2.Offsets()[i] != off {
			t.Fatal("read table order differs between identical builds")
		}
	}
	for i, off := range w1.Offsets() {
		if w2.Offsets()[i] != off {
			t.Fatal("write table order differs between identical builds")
		}
	}
}
