package graph

import (
	"encoding/json"
	"fmt"
	"os"
)

// Layout is the serialization format for computed layouts.
// It records the algorithm and parameters that produced the positions so
// cached and stored layouts can be traced back to their inputs.
type Layout struct {
	// Algorithm names the optimizer that produced the positions
	// ("spring", "forceatlas2", "arf", "kamada_kawai").
	Algorithm string `json:"algorithm" bson:"algorithm"`

	// Dim is the coordinate dimension of every position vector.
	Dim int `json:"dim" bson:"dim"`

	// Seed is the RNG seed used for initial placement, when any.
	Seed uint64 `json:"seed,omitempty" bson:"seed,omitempty"`

	// Iterations is the iteration budget the optimizer ran under.
	Iterations int `json:"iterations,omitempty" bson:"iterations,omitempty"`

	// Positions maps each node ID to its final coordinate vector.
	Positions map[string][]float64 `json:"positions" bson:"positions"`
}

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
// Validates that the algorithm name is present and applies the default
// dimension of 2 when missing.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}
	if l.Algorithm == "" {
		return Layout{}, fmt.Errorf("layout must name its algorithm")
	}
	if l.Dim == 0 {
		l.Dim = 2
	}
	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
