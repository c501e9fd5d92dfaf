// Package io reads and writes layer collections as JSON.
//
// A built collection is expensive to produce for large state spaces, so the
// CLI can export it once and search it again later. The file records which
// configuration produced it so a collection is never searched under a
// different state space or target.
//
// # JSON Format
//
//	{
//	  "version": 1,
//	  "run_id": "7c9e6679-7425-40de-944b-e07fc1f90ae7",
//	  "states": 4,
//	  "target": [0, 0, 0, 0],
//	  "families": ["single", "dual"],
//	  "required": 1,
//	  "fingerprint": "9f2c...",
//	  "layers": [
//	    {"output": [0, 0, 1, 2], "distinct": 3, "label": "*1,0;", "children": [1]},
//	    {"output": [0, 0, 0, 0], "distinct": 1, "label": "*3,0;"}
//	  ]
//	}
//
// Layers appear in generation order and children are indices into the
// layers array. The fingerprint is derived from the states, target and
// families; [ReadJSON] rejects a file whose fingerprint does not match the
// configuration it is read under.
//
// # Export
//
// Use [WriteJSON] for any io.Writer or [ExportJSON] for a file path.
//
// # Import
//
// Use [ReadJSON] or [ImportJSON]. Both validate every layer against the
// configuration and return a code INVALID_GRAPH error from pkg/errors on
// any mismatch.
package io
