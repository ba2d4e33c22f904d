// Package main provides the CLI entry point for helmvalues, a tool for
// merging, diffing, validating, and converting layered configuration value
// trees.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/spf13/cobra"

	"github.com/rewenila/helmvalues/log"
	"github.com/rewenila/helmvalues/profile"
	"github.com/rewenila/helmvalues/values"
	"github.com/rewenila/helmvalues/version"
)

func main() {
	logCfg := log.NewConfig()
	valCfg := values.NewConfig()
	profCfg := profile.NewConfig()

	var profiler *profile.Profiler

	rootCmd := &cobra.Command{
		Use:   "helmvalues",
		Short: "Merge, diff, validate, and convert layered configuration values",
		Long: `helmvalues works with layered configuration value trees: a default tree
plus user overrides, merged with override-wins semantics where sequences
replace wholesale. It can diff two trees, validate a merged tree against a
JSON schema, and convert between YAML and JSON encodings.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			handler, err := logCfg.NewHandler(os.Stderr)
			if err != nil {
				return err
			}

			slog.SetDefault(slog.New(handler))

			if profCfg.Enabled() {
				profiler = profCfg.NewProfiler()

				return profiler.Start()
			}

			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			if profiler == nil {
				return nil
			}

			return profiler.Stop()
		},
	}

	logCfg.RegisterFlags(rootCmd.PersistentFlags())
	valCfg.RegisterFlags(rootCmd.PersistentFlags())
	profCfg.RegisterFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(
		newMergeCmd(valCfg),
		newDiffCmd(valCfg),
		newValidateCmd(valCfg),
		newConvertCmd(valCfg),
		newSchemaCmd(valCfg),
		newVersionCmd(),
	)

	for _, register := range []func(*cobra.Command) error{
		logCfg.RegisterCompletions,
		valCfg.RegisterCompletions,
		profCfg.RegisterCompletions,
	} {
		completionErr := register(rootCmd)
		if completionErr != nil {
			fmt.Fprintf(os.Stderr, "register completions: %v\n", completionErr)
		}
	}

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// newMergeCmd merges a default values file with zero or more override
// files, last file wins, then applies --set overrides on top.
func newMergeCmd(cfg *values.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "merge <defaults.yaml> [overrides.yaml ...]",
		Short: "Merge layered values files into one effective tree",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			proc, err := newProcessor(cfg, args)
			if err != nil {
				return err
			}

			return writeTree(cfg, proc.MergedValues())
		},
	}
}

// newDiffCmd diffs two values files path by path.
func newDiffCmd(cfg *values.Config) *cobra.Command {
	var asPatch bool

	cmd := &cobra.Command{
		Use:   "diff <old.yaml> <new.yaml>",
		Short: "Report every path that was added, removed, or changed",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			oldTree, err := readTree(args[0])
			if err != nil {
				return err
			}

			newTree, err := readTree(args[1])
			if err != nil {
				return err
			}

			if asPatch {
				out, err := json.MarshalIndent(values.JSONPatch(oldTree, newTree), "", "  ")
				if err != nil {
					return fmt.Errorf("%w: %w", values.ErrWriteOutput, err)
				}

				return writeOutput(cfg.Output, append(out, '\n'))
			}

			var out []byte

			for _, entry := range values.Diff(oldTree, newTree) {
				switch entry.Kind {
				case values.DiffAdded:
					out = fmt.Appendf(out, "+ %s: %v\n", entry.Path, entry.New)
				case values.DiffRemoved:
					out = fmt.Appendf(out, "- %s: %v\n", entry.Path, entry.Old)
				case values.DiffModified:
					out = fmt.Appendf(out, "~ %s: %v -> %v\n", entry.Path, entry.Old, entry.New)
				}
			}

			return writeOutput(cfg.Output, out)
		},
	}

	cmd.Flags().BoolVar(&asPatch, "patch", false,
		"emit the diff as an RFC 6902 JSON Patch")

	return cmd
}

// newValidateCmd validates merged values against the configured schema.
func newValidateCmd(cfg *values.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <defaults.yaml> [overrides.yaml ...]",
		Short: "Validate merged values against a JSON schema",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if cfg.Schema == "" {
				return fmt.Errorf("%w: validate requires --schema", values.ErrInvalidOption)
			}

			proc, err := newProcessor(cfg, args)
			if err != nil {
				return err
			}

			result := proc.Process()

			for _, warning := range result.Warnings {
				slog.Warn(warning.Message, slog.String("path", warning.Path))
			}

			if len(result.Errors) == 0 {
				return nil
			}

			var out []byte

			for _, e := range result.Errors {
				out = fmt.Appendf(out, "%s\n", e.String())
			}

			writeErr := writeOutput(cfg.Output, out)
			if writeErr != nil {
				return writeErr
			}

			return fmt.Errorf("%d validation error(s)", len(result.Errors))
		},
	}
}

// newConvertCmd converts a values file between encodings.
func newConvertCmd(cfg *values.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "convert <file>",
		Short: "Convert a values file between YAML and JSON encodings",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			tree, err := readTree(args[0])
			if err != nil {
				return err
			}

			return writeTree(cfg, tree)
		},
	}
}

// newSchemaCmd infers a JSON schema from merged values files.
func newSchemaCmd(cfg *values.Config) *cobra.Command {
	var (
		title    string
		strict   bool
		defaults bool
	)

	cmd := &cobra.Command{
		Use:   "schema <defaults.yaml> [overrides.yaml ...]",
		Short: "Infer a JSON schema from merged values files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			proc, err := newProcessor(cfg, args)
			if err != nil {
				return err
			}

			in := values.NewInferrer(
				values.WithTitle(title),
				values.WithStrict(strict),
				values.WithDefaults(defaults),
			)

			out, err := json.MarshalIndent(in.Infer(proc.MergedValues()), "", "  ")
			if err != nil {
				return fmt.Errorf("%w: %w", values.ErrWriteOutput, err)
			}

			return writeOutput(cfg.Output, append(out, '\n'))
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "schema title")
	cmd.Flags().BoolVar(&strict, "strict", false,
		"reject keys absent from the values on inferred objects")
	cmd.Flags().BoolVar(&defaults, "defaults", false,
		"record leaf values as schema defaults")

	return cmd
}

// newVersionCmd prints build metadata.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())

			return nil
		},
	}
}

// newProcessor builds a Processor from layered values files: the first file
// is the default tree, the rest merge into the user override tree in order,
// last wins. The configured schema file and --set overrides are applied.
func newProcessor(cfg *values.Config, files []string) (*values.Processor, error) {
	defaults, err := readTree(files[0])
	if err != nil {
		return nil, err
	}

	user := make(map[string]any)

	for _, file := range files[1:] {
		tree, err := readTree(file)
		if err != nil {
			return nil, err
		}

		user, _ = values.Merge(user, tree).(map[string]any)
	}

	var opts []values.ProcessorOption

	if cfg.Schema != "" {
		schema, err := readSchema(cfg.Schema)
		if err != nil {
			return nil, err
		}

		opts = append(opts, values.WithSchema(schema))
	}

	proc := values.New(defaults, opts...)
	proc.SetUserValues(user)

	err = cfg.ApplyOverrides(proc)
	if err != nil {
		return nil, err
	}

	return proc, nil
}

// readTree loads a value tree from a file path or stdin ("-").
func readTree(path string) (map[string]any, error) {
	data, err := readInput(path)
	if err != nil {
		return nil, err
	}

	tree, err := values.DecodeText(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return tree, nil
}

// readSchema loads a JSON schema from a file path.
func readSchema(path string) (*jsonschema.Schema, error) {
	data, err := readInput(path)
	if err != nil {
		return nil, err
	}

	var schema jsonschema.Schema

	err = json.Unmarshal(data, &schema)
	if err != nil {
		return nil, fmt.Errorf("%w: schema %s: %w", values.ErrParse, path, err)
	}

	return &schema, nil
}

// readInput reads a file, or stdin when path is "-".
func readInput(path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("%w: stdin: %w", values.ErrReadInput, err)
		}

		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", values.ErrReadInput, err)
	}

	return data, nil
}

// writeTree renders tree in the configured format and writes it to the
// configured output.
func writeTree(cfg *values.Config, tree map[string]any) error {
	err := cfg.ValidateFormat()
	if err != nil {
		return err
	}

	var out []byte

	if cfg.Format == values.FormatJSON {
		out, err = values.EncodeJSON(tree)
		if err != nil {
			return err
		}
	} else {
		out = []byte(values.EncodeText(tree))
	}

	return writeOutput(cfg.Output, out)
}

// writeOutput writes data to a file path or stdout ("-").
func writeOutput(path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := os.Stdout.Write(data)
		if err != nil {
			return fmt.Errorf("%w: %w", values.ErrWriteOutput, err)
		}

		return nil
	}

	err := os.WriteFile(path, data, 0o644)
	if err != nil {
		return fmt.Errorf("%w: %w", values.ErrWriteOutput, err)
	}

	return nil
}
