// manifest_test.go - Manifest parsing and endpoint registration tests

package main

import "testing"

func TestParseDefaultManifest(t *testing.T) {
	m, err := ParseManifest(DefaultManifest())
	if err != nil {
		t.Fatal(err)
	}
	if m.APIVersion != 0 {
		t.Errorf("apiVersion = %d, want 0", m.APIVersion)
	}
	if len(m.Endpoints) != 3 {
		t.Fatalf("endpoint count = %d, want 3", len(m.Endpoints))
	}

	descs := m.EndpointDescs()
	if descs[0].Direction != ENDPOINT_READ || descs[0].Name != "telemetry" {
		t.Errorf("descs[0] = %+v, want read telemetry", descs[0])
	}
	if descs[1].Direction != ENDPOINT_WRITE {
		t.Errorf("descs[1] = %+v, want write direction", descs[1])
	}
}

func TestParseManifestBadJSON(t *testing.T) {
	if _, err := ParseManifest([]byte("{")); err == nil {
		t.Fatal("truncated JSON must fail to parse")
	}
}

func TestManifestUnknownDirectionFlowsToBuilder(t *testing.T) {
	m, err := ParseManifest([]byte(`{
		"apiVersion": 0,
		"endpoints": [
			{"name": "a", "direction": "read"},
			{"name": "weird", "direction": "bidir"},
			{"name": "b", "direction": "write"}
		]
	}`))
	if err != nil {
		t.Fatal(err)
	}

	// Unknown directions are not an error here; the table builder skips
	// them without assigning an offset.
	readTable, writeTable, _ := BuildAddressTables(m.EndpointDescs())
	if readTable.Len() != 1 || writeTable.Len() != 1 {
		t.Fatalf("got %d read / %d write entries, want 1/1",
			readTable.Len(), writeTable.Len())
	}
	if got := writeTable.Offsets()[0]; got != 0x104 {
		t.Errorf("write offset = %#x, want 0x104 (skipped endpoint must not consume one)", got)
	}
}
