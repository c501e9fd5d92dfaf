package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/comparator/pkg/config"
	"github.com/matzehuels/comparator/pkg/errors"
	"github.com/matzehuels/comparator/pkg/layer"
	"github.com/matzehuels/comparator/pkg/state"
)

// ReadJSON decodes a collection from r and checks it against cfg.
//
// ReadJSON returns an INVALID_GRAPH error if:
//   - The JSON is malformed or has an unknown version
//   - The fingerprint does not match cfg
//   - A layer has the wrong width, an out-of-range value or a wrong
//     distinct count
//   - A child index is out of range
//
// ReadJSON does not close r.
func ReadJSON(r io.Reader, cfg *config.Config) (*Graph, error) {
	var data document
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidGraph, err, "decode")
	}
	if data.Version != FormatVersion {
		return nil, errors.New(errors.ErrCodeInvalidGraph, "unsupported version %d", data.Version)
	}
	if data.Fingerprint != Fingerprint(cfg) {
		return nil, errors.New(errors.ErrCodeInvalidGraph,
			"collection was built for %d states and target %v, not %d states and target %v",
			data.States, data.Target, cfg.States, cfg.Target.Ints())
	}

	layers := make(layer.Collection, len(data.Layers))
	for i, l := range data.Layers {
		if len(l.Output) != cfg.States {
			return nil, errors.New(errors.ErrCodeInvalidGraph, "layer %d: %d outputs, want %d", i, len(l.Output), cfg.States)
		}
		for _, v := range l.Output {
			if v < 0 || v >= cfg.States {
				return nil, errors.New(errors.ErrCodeInvalidGraph, "layer %d: output %d out of range", i, v)
			}
		}
		layers[i] = layer.New(state.FromInts(l.Output), l.Label)
		if layers[i].Distinct != l.Distinct {
			return nil, errors.New(errors.ErrCodeInvalidGraph, "layer %d: distinct is %d, recorded %d", i, layers[i].Distinct, l.Distinct)
		}
		for _, c := range l.Children {
			if c < 0 || c >= len(data.Layers) {
				return nil, errors.New(errors.ErrCodeInvalidGraph, "layer %d: child %d out of range", i, c)
			}
		}
		layers[i].Children = l.Children
	}

	return &Graph{RunID: data.RunID, Layers: layers}, nil
}

// ImportJSON reads a collection from the JSON file at path.
func ImportJSON(path string, cfg *config.Config) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f, cfg)
}
