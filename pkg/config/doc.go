// Package config holds the run configuration shared by every stage.
//
// A [Config] is built once, validated, and then only read. Stages receive a
// *Config rather than consulting package-level constants, which lets tests
// run the whole pipeline with a small state space.
//
// # Sources
//
// Configuration starts from [DefaultFile], is optionally overlaid with a TOML
// file via [LoadFile], then with command-line overrides, and is finally
// turned into a Config with [New]:
//
//	f, err := config.LoadFile("search.toml")
//	if err != nil {
//	    return err
//	}
//	f.Search.MaxDepth = 6
//	cfg, err := config.New(f)
//
// A minimal file:
//
//	states = 16
//	target = [0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0]
//	goal = "exact"
//
//	[search]
//	max_depth = 8
//	cache_capacity = 10000
//
// # Derived values
//
// [Config.RequiredDistinct] is the number of groups the target partitions the
// inputs into. Layers and compositions with fewer distinct outputs than this
// can never reach the target and are discarded.
//
// Invalid values fail in New with an error from the errors package, before any
// generation begins.
package config
