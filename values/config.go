package values

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Output formats accepted by the CLI.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// Flags holds CLI flag names for values processing configuration, allowing
// callers to customize flag names while keeping sensible defaults.
type Flags struct {
	Output string
	Format string
	Schema string
	Set    string
}

// Config holds CLI flag values for values processing configuration.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags].
type Config struct {
	Flags  Flags
	Output string
	Format string
	Schema string
	Set    []string
}

// NewConfig returns a new [Config] with default flag names.
func NewConfig() *Config {
	f := Flags{
		Output: "output",
		Format: "format",
		Schema: "schema",
		Set:    "set",
	}

	return &Config{Flags: f}
}

// RegisterFlags adds values processing flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&c.Output, c.Flags.Output, "o", "-",
		"output file path (- for stdout)")
	flags.StringVarP(&c.Format, c.Flags.Format, "f", FormatYAML,
		"output format, one of: yaml, json")
	flags.StringVarP(&c.Schema, c.Flags.Schema, "s", "",
		"JSON schema file used for validation")
	flags.StringArrayVar(&c.Set, c.Flags.Set, nil,
		"override a value at a dot-delimited path (path=value, repeatable)")
}

// RegisterCompletions registers shell completions for values processing
// flags on cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	err := cmd.RegisterFlagCompletionFunc(c.Flags.Format,
		cobra.FixedCompletions([]string{FormatYAML, FormatJSON}, cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Format, err)
	}

	err = cmd.RegisterFlagCompletionFunc(c.Flags.Set,
		cobra.NoFileCompletions)
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Set, err)
	}

	return nil
}

// ValidateFormat checks that the configured output format is known.
func (c *Config) ValidateFormat() error {
	if c.Format != FormatYAML && c.Format != FormatJSON {
		return fmt.Errorf("%w: unknown format %q", ErrInvalidOption, c.Format)
	}

	return nil
}

// ApplyOverrides applies the configured path=value pairs to the processor's
// user overrides, coercing scalar values the same way the flat text parser
// does.
func (c *Config) ApplyOverrides(p *Processor) error {
	for _, pair := range c.Set {
		path, raw, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(path) == "" {
			return fmt.Errorf("%w: malformed override %q, expected path=value", ErrInvalidOption, pair)
		}

		p.SetValue(strings.TrimSpace(path), coerceScalar(strings.TrimSpace(raw)))
	}

	return nil
}
