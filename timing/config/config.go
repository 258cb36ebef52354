// Package config loads the timing simulator's pipeline parameters from a
// key=value text file: queue depths, functional-unit pipeline depths, lane
// count, and banked-memory parameters.
package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds the pipeline parameters that shape dispatch, functional-unit
// latency, and the banked load-store unit. All fields are required positive
// integers; there are no defaults, since an unconfigured pipeline has no
// sane shape to fall back to.
type Config struct {
	DataQueueDepth    int
	ComputeQueueDepth int
	NumLanes          int
	PipelineDepthMul  int
	PipelineDepthDiv  int
	PipelineDepthAdd  int
	VLSPipelineDepth  int
	VDMNumBanks       int
	VDMBankWait       int
}

var keySetters = map[string]func(*Config, int){
	"dataQueueDepth":    func(c *Config, v int) { c.DataQueueDepth = v },
	"computeQueueDepth": func(c *Config, v int) { c.ComputeQueueDepth = v },
	"numLanes":          func(c *Config, v int) { c.NumLanes = v },
	"pipelineDepthMul":  func(c *Config, v int) { c.PipelineDepthMul = v },
	"pipelineDepthDiv":  func(c *Config, v int) { c.PipelineDepthDiv = v },
	"pipelineDepthAdd":  func(c *Config, v int) { c.PipelineDepthAdd = v },
	"vlsPipelineDepth":  func(c *Config, v int) { c.VLSPipelineDepth = v },
	"vdmNumBanks":       func(c *Config, v int) { c.VDMNumBanks = v },
	"vdmBankWait":       func(c *Config, v int) { c.VDMBankWait = v },
}

// requiredKeys lists every key LoadConfig requires to be present.
var requiredKeys = []string{
	"dataQueueDepth", "computeQueueDepth", "numLanes",
	"pipelineDepthMul", "pipelineDepthDiv", "pipelineDepthAdd",
	"vlsPipelineDepth", "vdmNumBanks", "vdmBankWait",
}

// LoadConfig reads a key=value text file (# comments, blank lines ignored)
// and validates every required key is present and positive.
func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: failed to open %s: %w", path, err)
	}
	defer f.Close()

	c := &Config{}
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if i := strings.Index(line, "#"); i >= 0 {
			line = strings.TrimSpace(line[:i])
		}
		if line == "" {
			continue
		}

		key, val, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("config: line %d: expected key=value, got %q", lineNo, line)
		}
		key = strings.TrimSpace(key)
		setter, known := keySetters[key]
		if !known {
			return nil, fmt.Errorf("config: line %d: unrecognized key %q", lineNo, key)
		}

		n, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return nil, fmt.Errorf("config: line %d: %s: %w", lineNo, key, err)
		}
		setter(c, n)
		seen[key] = true
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
	}

	for _, k := range requiredKeys {
		if !seen[k] {
			return nil, fmt.Errorf("config: missing required key %q", k)
		}
	}
	return c, c.Validate()
}

// Validate checks that every field holds a positive integer.
func (c *Config) Validate() error {
	fields := map[string]int{
		"dataQueueDepth":    c.DataQueueDepth,
		"computeQueueDepth": c.ComputeQueueDepth,
		"numLanes":          c.NumLanes,
		"pipelineDepthMul":  c.PipelineDepthMul,
		"pipelineDepthDiv":  c.PipelineDepthDiv,
		"pipelineDepthAdd":  c.PipelineDepthAdd,
		"vlsPipelineDepth":  c.VLSPipelineDepth,
		"vdmNumBanks":       c.VDMNumBanks,
		"vdmBankWait":       c.VDMBankWait,
	}
	for k, v := range fields {
		if v <= 0 {
			return fmt.Errorf("config: %s must be > 0, got %d", k, v)
		}
	}
	return nil
}

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
