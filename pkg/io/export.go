package io

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/matzehuels/comparator/pkg/config"
	"github.com/matzehuels/comparator/pkg/layer"
)

// FormatVersion is the version written to and accepted from JSON files.
const FormatVersion = 1

type document struct {
	Version     int         `json:"version"`
	RunID       string      `json:"run_id,omitempty"`
	States      int         `json:"states"`
	Target      []int       `json:"target"`
	Families    []string    `json:"families"`
	Required    int         `json:"required"`
	Fingerprint string      `json:"fingerprint"`
	Layers      []layerJSON `json:"layers"`
}

type layerJSON struct {
	Output   []int  `json:"output"`
	Distinct int    `json:"distinct"`
	Label    string `json:"label,omitempty"`
	Children []int  `json:"children,omitempty"`
}

// Graph is a collection read back from JSON.
type Graph struct {
	RunID  string
	Layers layer.Collection
}

// Fingerprint identifies the inputs that determine a collection: the state
// count, the target and the enabled families.
func Fingerprint(cfg *config.Config) string {
	var b strings.Builder
	fmt.Fprintf(&b, "states=%d;target=%v;families=", cfg.States, cfg.Target.Ints())
	for i, f := range cfg.Families {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(string(f))
	}
	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

// WriteJSON encodes layers, built under cfg, as indented JSON.
func WriteJSON(w io.Writer, cfg *config.Config, runID string, layers layer.Collection) error {
	families := make([]string, len(cfg.Families))
	for i, f := range cfg.Families {
		families[i] = string(f)
	}

	out := document{
		Version:     FormatVersion,
		RunID:       runID,
		States:      cfg.States,
		Target:      cfg.Target.Ints(),
		Families:    families,
		Required:    cfg.RequiredDistinct(),
		Fingerprint: Fingerprint(cfg),
		Layers:      make([]layerJSON, len(layers)),
	}
	for i := range layers {
		l := &layers[i]
		out.Layers[i] = layerJSON{
			Output:   l.Output.Ints(),
			Distinct: l.Distinct,
			Label:    l.Label,
			Children: l.Children,
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes layers to a JSON file at path.
func ExportJSON(path string, cfg *config.Config, runID string, layers layer.Collection) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(f, cfg, runID, layers); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
