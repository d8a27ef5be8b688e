// manifest.go - Manifest blob parsing and the endpoint registration layer

package main

import (
	"encoding/json"
	"fmt"
)

// Manifest is the bridge's configuration document. The same bytes serve
// two purposes: the endpoint list drives the address table builder, and the
// raw blob is compressed into the manifest ROM so hosts can fetch the
// mapping at run time.
type Manifest struct {
	APIVersion int                `json:"apiVersion"`
	Endpoints  []ManifestEndpoint `json:"endpoints"`
}

// ManifestEndpoint is one downstream service endpoint as declared in the
// manifest. Direction is "read" or "write"; anything else is carried
// through and silently skipped by the table builder, matching the
// configuration-error behavior of the register core.
type ManifestEndpoint struct {
	Name      string `json:"name"`
	Direction string `json:"direction"`
}

// ParseManifest decodes a manifest document.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}
	return &m, nil
}

// EndpointDescs converts the declared endpoints into the ordered descriptor
// sequence the table builder consumes. Order is preserved; it defines the
// offset assignment.
func (m *Manifest) EndpointDescs() []EndpointDesc {
	descs := make([]EndpointDesc, len(m.Endpoints))
	for i, ep := range m.Endpoints {
		dir := -1
		switch ep.Direction {
		case "read":
			dir = ENDPOINT_READ
		case "write":
			dir = ENDPOINT_WRITE
		}
		descs[i] = EndpointDesc{Name: ep.Name, Direction: dir}
	}
	return descs
}

// DefaultManifest keeps the binary usable with no arguments: a small
// machine with a telemetry endpoint to poll and a command endpoint to
// drive.
func DefaultManifest() []byte {
	return []byte(`{
  "apiVersion": 0,
  "endpoints": [
    {"name": "telemetry", "direction": "read"},
    {"name": "command", "direction": "write"},
    {"name": "status", "direction": "read"}
  ]
}`)
}
