// Package core wraps the cycle-accurate pipeline with the file-loading
// glue the command-line driver needs: reading the pipeline shape out of
// Config.txt and the dynamic instruction stream out of a previously
// recorded trace file.
package core

import (
	"fmt"
	"path/filepath"

	"github.com/sarchlab/vmipssim/timing/config"
	"github.com/sarchlab/vmipssim/timing/pipeline"
	"github.com/sarchlab/vmipssim/trace"
)

// Core owns the loaded config and trace, and the pipeline running over
// them.
type Core struct {
	Pipeline *pipeline.Pipeline
	Config   *config.Config
}

// NewCore loads Config.txt from iodir and the trace file at tracePath,
// and builds a pipeline ready to run.
func NewCore(iodir, tracePath string, opts ...pipeline.Option) (*Core, error) {
	cfg, err := config.LoadConfig(filepath.Join(iodir, "Config.txt"))
	if err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}

	tr, err := trace.NewReader(tracePath)
	if err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}

	return &Core{
		Pipeline: pipeline.New(tr, cfg, opts...),
		Config:   cfg,
	}, nil
}

// Run executes the pipeline to completion and returns its final stats.
func (c *Core) Run() pipeline.Stats {
	c.Pipeline.Run()
	return c.Pipeline.Stats()
}
