package ossim

import (
	"fmt"

	"github.com/joeycumines/go-ossim/interrupt"
	"github.com/joeycumines/go-ossim/memory"
	"github.com/joeycumines/go-ossim/scheduler"
)

// engineConfig holds validated configuration for Engine construction.
type engineConfig struct {
	architectureName     string
	schedulingAlg        scheduler.Name
	quantum              int
	numCPUs              int
	threadsPerCPU        int
	numMemoryUnits       int
	memoryUnitCapacityMB int
	pageSizeMB           int
	allocStrategy        memory.FitStrategy
	pageReplacement      memory.ReplacementPolicy
	agingInterval        int
	newDelay             int
	cleanupDelay         int
	maxAutoSpawnDuration int
	autoSpawnProbability float64
	timerProbability     float64
	seed1, seed2         uint64
}

func defaultEngineConfig() *engineConfig {
	return &engineConfig{
		architectureName:     "Modular",
		schedulingAlg:        scheduler.FCFS,
		quantum:              4,
		numCPUs:              1,
		threadsPerCPU:        1,
		numMemoryUnits:       1,
		memoryUnitCapacityMB: 256,
		pageSizeMB:           memory.DefaultPageSizeMB,
		allocStrategy:        memory.FirstFit,
		pageReplacement:      memory.FIFO,
		agingInterval:        scheduler.DefaultAgingInterval,
		newDelay:             2,
		cleanupDelay:         5,
		maxAutoSpawnDuration: 100,
		autoSpawnProbability: 0.30,
		timerProbability:     0.02,
		seed1:                1,
		seed2:                2,
	}
}

// EngineOption configures an Engine at construction time.
type EngineOption interface {
	applyEngine(*engineConfig) error
}

type engineOptionFunc func(*engineConfig) error

func (f engineOptionFunc) applyEngine(c *engineConfig) error { return f(c) }

// WithArchitecture selects the architecture adapter by name. Only "Modular"
// is actively exposed by the engine's configuration surface, matching the
// spec's "only Modular is actively exposed" note; other names registered
// with interrupt.ParseArchitecture are accepted but unexercised here.
func WithArchitecture(name string) EngineOption {
	return engineOptionFunc(func(c *engineConfig) error {
		if _, ok := interrupt.ParseArchitecture(name); !ok {
			return fmt.Errorf("%w: unknown architecture %q", ErrInvalidMutation, name)
		}
		c.architectureName = name
		return nil
	})
}

// WithSchedulingAlgorithm selects the scheduling discipline by name.
func WithSchedulingAlgorithm(name string) EngineOption {
	return engineOptionFunc(func(c *engineConfig) error {
		n := scheduler.Name(name)
		if _, ok := scheduler.New(n, 1, 1); !ok {
			return fmt.Errorf("%w: unknown scheduling algorithm %q", ErrInvalidMutation, name)
		}
		c.schedulingAlg = n
		return nil
	})
}

// WithQuantum sets the RR/PriorityRR quantum, in [1,20].
func WithQuantum(q int) EngineOption {
	return engineOptionFunc(func(c *engineConfig) error {
		if q < 1 || q > 20 {
			return fmt.Errorf("%w: quantum %d out of range [1,20]", ErrOutOfRangeCommand, q)
		}
		c.quantum = q
		return nil
	})
}

// WithCPUs sets the number of CPUs, in [1,8].
func WithCPUs(n int) EngineOption {
	return engineOptionFunc(func(c *engineConfig) error {
		if n < 1 || n > 8 {
			return fmt.Errorf("%w: num_cpus %d out of range [1,8]", ErrOutOfRangeCommand, n)
		}
		c.numCPUs = n
		return nil
	})
}

// WithThreadsPerCPU sets each CPU's thread capacity, in [1,8].
func WithThreadsPerCPU(n int) EngineOption {
	return engineOptionFunc(func(c *engineConfig) error {
		if n < 1 || n > 8 {
			return fmt.Errorf("%w: threads_per_cpu %d out of range [1,8]", ErrOutOfRangeCommand, n)
		}
		c.threadsPerCPU = n
		return nil
	})
}

// WithMemoryUnits sets the number of independent memory units, in [1,8].
func WithMemoryUnits(n int) EngineOption {
	return engineOptionFunc(func(c *engineConfig) error {
		if n < 1 || n > 8 {
			return fmt.Errorf("%w: num_memory_units %d out of range [1,8]", ErrOutOfRangeCommand, n)
		}
		c.numMemoryUnits = n
		return nil
	})
}

// WithMemoryUnitCapacityMB sets each unit's capacity, in [64,4096] stepping
// by 64.
func WithMemoryUnitCapacityMB(mb int) EngineOption {
	return engineOptionFunc(func(c *engineConfig) error {
		if mb < 64 || mb > 4096 || mb%64 != 0 {
			return fmt.Errorf("%w: memory_unit_capacity_mb %d must be in [64,4096] step 64", ErrOutOfRangeCommand, mb)
		}
		c.memoryUnitCapacityMB = mb
		return nil
	})
}

// WithPageSizeMB overrides the paged manager's page size (default 4 MiB).
func WithPageSizeMB(mb int) EngineOption {
	return engineOptionFunc(func(c *engineConfig) error {
		if mb <= 0 {
			return fmt.Errorf("%w: page_size_mb must be positive", ErrOutOfRangeCommand)
		}
		c.pageSizeMB = mb
		return nil
	})
}

// WithAllocStrategy selects the initial contiguous fit strategy for every
// memory unit.
func WithAllocStrategy(name string) EngineOption {
	return engineOptionFunc(func(c *engineConfig) error {
		s, ok := memory.ParseFitStrategy(name)
		if !ok {
			return fmt.Errorf("%w: unknown fit strategy %q", ErrInvalidMutation, name)
		}
		c.allocStrategy = s
		return nil
	})
}

// WithPageReplacement selects the initial page-replacement policy for every
// memory unit.
func WithPageReplacement(name string) EngineOption {
	return engineOptionFunc(func(c *engineConfig) error {
		r, ok := memory.ParseReplacementPolicy(name)
		if !ok {
			return fmt.Errorf("%w: unknown replacement policy %q", ErrInvalidMutation, name)
		}
		c.pageReplacement = r
		return nil
	})
}

// WithAgingInterval overrides the Priority scheduler's aging interval.
func WithAgingInterval(ticks int) EngineOption {
	return engineOptionFunc(func(c *engineConfig) error {
		if ticks <= 0 {
			return fmt.Errorf("%w: aging_interval must be positive", ErrOutOfRangeCommand)
		}
		c.agingInterval = ticks
		return nil
	})
}

// WithNewDelay overrides the NEW→READY promotion delay (default 2 ticks).
func WithNewDelay(ticks int) EngineOption {
	return engineOptionFunc(func(c *engineConfig) error {
		if ticks < 0 {
			return fmt.Errorf("%w: new_delay must be non-negative", ErrOutOfRangeCommand)
		}
		c.newDelay = ticks
		return nil
	})
}

// WithCleanupDelay overrides the TERMINATED cleanup delay (default 5 ticks).
func WithCleanupDelay(ticks int) EngineOption {
	return engineOptionFunc(func(c *engineConfig) error {
		if ticks < 0 {
			return fmt.Errorf("%w: cleanup_delay must be non-negative", ErrOutOfRangeCommand)
		}
		c.cleanupDelay = ticks
		return nil
	})
}

// WithMaxAutoSpawnDuration overrides the upper bound of an auto-spawned
// process's duration range [20, max] (default 100).
func WithMaxAutoSpawnDuration(ticks int) EngineOption {
	return engineOptionFunc(func(c *engineConfig) error {
		if ticks < 20 {
			return fmt.Errorf("%w: max_auto_spawn_duration must be >= 20", ErrOutOfRangeCommand)
		}
		c.maxAutoSpawnDuration = ticks
		return nil
	})
}

// WithAutoSpawnProbability overrides the per-tick probability of a random
// process arrival (default 0.30). A value of 0 disables auto-spawn
// entirely, useful for deterministic scenario testing driven solely by
// ManualCreateProcess.
func WithAutoSpawnProbability(p float64) EngineOption {
	return engineOptionFunc(func(c *engineConfig) error {
		if p < 0 || p > 1 {
			return fmt.Errorf("%w: auto_spawn_probability %v out of range [0,1]", ErrOutOfRangeCommand, p)
		}
		c.autoSpawnProbability = p
		return nil
	})
}

// WithTimerInterruptProbability overrides the per-tick probability of a
// spontaneous TIMER interrupt (default 0.02).
func WithTimerInterruptProbability(p float64) EngineOption {
	return engineOptionFunc(func(c *engineConfig) error {
		if p < 0 || p > 1 {
			return fmt.Errorf("%w: timer_interrupt_probability %v out of range [0,1]", ErrOutOfRangeCommand, p)
		}
		c.timerProbability = p
		return nil
	})
}

// WithSeed fixes the engine-owned PRNG's seed, driving auto-spawn and sparse
// page-access sampling. reset() re-seeds from the same values, so an
// identical tick sequence from a freshly reset engine reproduces identical
// snapshots at every tick boundary.
func WithSeed(seed1, seed2 uint64) EngineOption {
	return engineOptionFunc(func(c *engineConfig) error {
		c.seed1, c.seed2 = seed1, seed2
		return nil
	})
}

func resolveEngineOptions(opts []EngineOption) (*engineConfig, error) {
	cfg := defaultEngineConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.applyEngine(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}
