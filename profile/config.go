package profile

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Flags holds CLI flag names for profiling configuration, allowing callers
// to customize flag names while keeping sensible defaults.
type Flags struct {
	CPUProfile       string
	HeapProfile      string
	AllocsProfile    string
	GoroutineProfile string
	MemProfileRate   string
}

// Config holds profiling configuration for CLI applications. An empty
// profile path disables that profile; a zero-value Config profiles
// nothing.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags]. Use [Config.NewProfiler] to create the
// [Profiler] that executes the profiling.
type Config struct {
	Flags Flags

	CPUProfile       string
	HeapProfile      string
	AllocsProfile    string
	GoroutineProfile string
	MemProfileRate   int
}

// NewConfig returns a new [Config] with default flag names and all
// profiles disabled.
func NewConfig() *Config {
	f := Flags{
		CPUProfile:       "cpu-profile",
		HeapProfile:      "heap-profile",
		AllocsProfile:    "allocs-profile",
		GoroutineProfile: "goroutine-profile",
		MemProfileRate:   "mem-profile-rate",
	}

	return &Config{Flags: f}
}

// RegisterFlags adds profiling flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.CPUProfile, c.Flags.CPUProfile, "", "write CPU profile to file")
	flags.StringVar(&c.HeapProfile, c.Flags.HeapProfile, "", "write heap profile to file")
	flags.StringVar(&c.AllocsProfile, c.Flags.AllocsProfile, "", "write allocs profile to file")
	flags.StringVar(&c.GoroutineProfile, c.Flags.GoroutineProfile, "", "write goroutine profile to file")
	flags.IntVar(&c.MemProfileRate, c.Flags.MemProfileRate, 524288, "memory profile rate (bytes per sample)")
}

// RegisterCompletions registers shell completions for profiling flags on
// cmd. The rate flag disables file completion; path flags keep default
// file completion.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	err := cmd.RegisterFlagCompletionFunc(c.Flags.MemProfileRate, cobra.NoFileCompletions)
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.MemProfileRate, err)
	}

	return nil
}

// Enabled reports whether any profile output is configured.
func (c *Config) Enabled() bool {
	return c.CPUProfile != "" || c.HeapProfile != "" ||
		c.AllocsProfile != "" || c.GoroutineProfile != ""
}

// NewProfiler creates a new [Profiler] using this [Config].
func (c *Config) NewProfiler() *Profiler {
	return &Profiler{Config: *c}
}
