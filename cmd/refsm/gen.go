package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/refsm/refsm/pkg/refsm"
)

// genEntry is one pattern in a batch config file.
type genEntry struct {
	Name    string `mapstructure:"name"`
	Pattern string `mapstructure:"pattern"`
	Output  string `mapstructure:"output"`
	Package string `mapstructure:"package"`
}

func genCmd() *cobra.Command {
	var (
		pattern string
		name    string
		output  string
		pkg     string
		cfgFile string
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate a specialized Go match function for a pattern",
		Long: `Compiles a pattern and writes a Go source file containing a
MatchString function specialized for it. Either pass a single pattern via
flags, or --config with a YAML file listing several:

    patterns:
      - name: Version
        pattern: v.+
        output: internal/patterns/version_gen.go
        package: patterns`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfgFile != "" {
				entries, err := loadGenConfig(cfgFile)
				if err != nil {
					return err
				}
				for _, e := range entries {
					opts := refsm.Options{
						Pattern:    e.Pattern,
						Name:       e.Name,
						OutputFile: e.Output,
						Package:    e.Package,
						Verbose:    verbose,
					}
					if err := refsm.Generate(opts); err != nil {
						return fmt.Errorf("%s: %w", e.Name, err)
					}
					fmt.Fprintf(cmd.OutOrStdout(), "generated %s -> %s\n", e.Name, e.Output)
				}
				return nil
			}

			return refsm.Generate(refsm.Options{
				Pattern:    pattern,
				Name:       name,
				OutputFile: output,
				Package:    pkg,
				Verbose:    verbose,
			})
		},
	}

	cmd.Flags().StringVarP(&pattern, "pattern", "p", "", "pattern to compile")
	cmd.Flags().StringVarP(&name, "name", "n", "", "prefix for generated identifiers")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file path")
	cmd.Flags().StringVar(&pkg, "package", "", "package name for the generated code")
	cmd.Flags().StringVarP(&cfgFile, "config", "c", "", "YAML config file for batch generation")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log analysis decisions during generation")

	return cmd
}

// loadGenConfig reads a batch generation config file.
func loadGenConfig(path string) ([]genEntry, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var entries []genEntry
	if err := v.UnmarshalKey("patterns", &entries); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if len(entries) == 0 {
		return nil, errors.New("config has no patterns")
	}
	return entries, nil
}
