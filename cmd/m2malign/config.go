package main

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config is the reference driver's JSON-configured run parameters,
// matching czcorpus-vert-tagextract's plain JSON-tagged struct
// approach over a reflection-based flag library.
type Config struct {
	// MaxIterations bounds the EM loop regardless of convergence.
	MaxIterations int `json:"maxIterations"`

	// DiffThreshold stops the EM loop early once Update's diff_total
	// falls below this value.
	DiffThreshold float64 `json:"diffThreshold"`

	// TagIndex selects which tag channel of each token is the training
	// phoneme sequence.
	TagIndex int `json:"tagIndex"`

	// TagCount is the number of tag columns corpusio expects on every
	// line, input and output alike.
	TagCount int `json:"tagCount"`

	// DumpScores, when set and -dump-scores was not given on the
	// command line, writes the finalized score table as JSON to
	// outputPath + ".scores.json". The CLI flag, when given, always
	// takes precedence over this field.
	DumpScores bool `json:"dumpScores"`
}

// DefaultConfig mirrors the reference paper's defaults: enough
// iterations for the city-block-weighted EM to settle on small
// corpora, a conservative diff threshold, and tag channel 0.
func DefaultConfig() Config {
	return Config{
		MaxIterations: 20,
		DiffThreshold: -20,
		TagIndex:      0,
		TagCount:      1,
	}
}

// LoadConfig reads a JSON config file, falling back to DefaultConfig
// for any field the file omits by decoding on top of it.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("loading config: %w", err)
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}
