package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/speakeasy-api/schemafaker/cmd/schemafaker/commands/cmdutil"
	"github.com/speakeasy-api/schemafaker/errors"
	"github.com/speakeasy-api/schemafaker/faker"
	"github.com/speakeasy-api/schemafaker/internal/check"
	"github.com/speakeasy-api/schemafaker/internal/selector"
	"github.com/speakeasy-api/schemafaker/jsonschema"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

const (
	outputJSON = "json"
	outputYAML = "yaml"
)

type generateOptions struct {
	count       int
	seed        uint64
	configFile  string
	output      string
	selectExpr  string
	legacyPath  bool
	check       bool
	concurrency int
}

// NewGenerateCommand returns the command producing values for a schema.
func NewGenerateCommand() *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate [<schema>]",
		Short: "Generate values that satisfy a JSON Schema",
		Long: `Generate one or more random values satisfying a JSON Schema given as JSON or YAML.

A single value is written as is; with --count greater than one the values are
written as a list.`,
		Args: cmdutil.StdinOrFileArgs(1, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, args, opts)
		},
		Example: `  # Generate one value
  schemafaker generate user.schema.json

  # Generate ten reproducible values as YAML
  schemafaker generate user.schema.json -n 10 --seed 42 -o yaml

  # Pick one schema out of a definitions file and validate the output
  schemafaker generate defs.yaml --select '$.definitions.user' --check

  # Pipe the schema via stdin
  echo '{"type": "string", "format": "email"}' | schemafaker generate`,
	}

	cmd.Flags().IntVarP(&opts.count, "count", "n", 1, "number of values to generate")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "seed for reproducible output")
	cmd.Flags().StringVar(&opts.configFile, "config", "", "YAML file of generator options (see 'schemafaker defaults')")
	cmd.Flags().StringVarP(&opts.output, "output", "o", outputJSON, "output format: json or yaml")
	cmd.Flags().StringVar(&opts.selectExpr, "select", "", "JSONPath selecting the schema inside the document")
	cmd.Flags().BoolVar(&opts.legacyPath, "legacy-jsonpath", false, "evaluate --select with the legacy JSONPath dialect instead of RFC 9535")
	cmd.Flags().BoolVar(&opts.check, "check", false, "validate every generated value against the schema")
	cmd.Flags().IntVar(&opts.concurrency, "concurrency", 4, "number of values generated in parallel")

	return cmd
}

func runGenerate(cmd *cobra.Command, args []string, opts *generateOptions) error {
	if opts.count < 1 {
		return fmt.Errorf("--count must be at least 1, got %d", opts.count)
	}
	if opts.output != outputJSON && opts.output != outputYAML {
		return fmt.Errorf("--output must be %q or %q, got %q", outputJSON, outputYAML, opts.output)
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	logger := cmdutil.NewLogger(cmd.ErrOrStderr(), verbose)

	js, err := loadSchema(cmd.InOrStdin(), cmdutil.InputFileFromArgs(args), opts)
	if err != nil {
		return err
	}

	genOpts := []faker.Option{faker.WithLogger(faker.NewSlogAdapter(logger))}
	if opts.configFile != "" {
		values, err := loadConfig(opts.configFile)
		if err != nil {
			return err
		}
		genOpts = append(genOpts, faker.WithConfigMap(values))
	}

	var validator *check.Validator
	if opts.check {
		if validator, err = check.Compile(js); err != nil {
			return err
		}
	}

	seeded := cmd.Flags().Changed("seed")
	shared, err := faker.New(genOpts...)
	if err != nil {
		return err
	}

	values := make([]any, opts.count)
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(max(opts.concurrency, 1))
	for i := range values {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			// seeded runs give each value its own source so output does not
			// depend on scheduling
			gen := shared
			if seeded {
				var err error
				if gen, err = faker.New(append(slices.Clone(genOpts), faker.WithSeed(opts.seed+uint64(i)))...); err != nil {
					return err
				}
			}

			v, err := gen.Generate(js)
			if err != nil {
				return fmt.Errorf("value %d: %w", i, err)
			}
			if validator != nil {
				if errs := validator.Validate(v); len(errs) > 0 {
					return fmt.Errorf("value %d: %w", i, errors.Join(errs...))
				}
			}
			values[i] = v
			logger.Debug("generated value", "index", i)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var out any = values
	if opts.count == 1 {
		out = values[0]
	}
	return writeOutput(cmd.OutOrStdout(), opts.output, out)
}

func loadSchema(stdin io.Reader, path string, opts *generateOptions) (*jsonschema.JSONSchema, error) {
	data, err := cmdutil.ReadInput(stdin, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema %q: %w", path, err)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, jsonschema.ErrInvalidSchema.Wrap(err)
	}
	if root.Kind == 0 {
		return nil, jsonschema.ErrInvalidSchema.Wrap(errors.New("empty document"))
	}

	node := &root
	if opts.selectExpr != "" {
		if node, err = selector.Select(&root, opts.selectExpr, opts.legacyPath); err != nil {
			return nil, err
		}
	}

	return jsonschema.FromNode(node)
}

func loadConfig(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %q: %w", path, err)
	}

	values := map[string]any{}
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, faker.ErrInvalidConfig.Wrap(err)
	}
	return values, nil
}

func writeOutput(w io.Writer, format string, v any) error {
	if format == outputYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
