package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ppacher/line-conf/conf"
	"github.com/ppacher/line-conf/internal/log"
)

// usageError marks errors caused by invalid command line usage.
type usageError struct{ err error }

func (e *usageError) Error() string { return e.err.Error() }

func (e *usageError) Unwrap() error { return e.err }

type options struct {
	decls      declarations
	dropinDirs []string
	format     string
	output     string
	list       bool
	quiet      bool
	logLevel   string

	schema *schema
}

func (o *options) addFlags(flags *pflag.FlagSet) {
	flags.StringArrayVarP(&o.decls.bools, "bool", "b", nil, "declare a boolean option `KEY`")
	flags.StringArrayVarP(&o.decls.strs, "string", "s", nil, "declare a string option `KEY[=DEFAULT]`")
	flags.StringArrayVar(&o.decls.allow, "allow", nil, "restrict a string option to `KEY=VALUE[,VALUE...]`")
	flags.StringArrayVarP(&o.decls.doubles, "double", "d", nil, "declare a double option `KEY[=DEFAULT]`")
	flags.StringArrayVarP(&o.decls.lists, "doubles", "l", nil, "declare a double-list option `KEY[=V1,V2...]`")
	flags.StringArrayVar(&o.dropinDirs, "dropin-dir", nil, "search `DIR` for drop-in files, lowest priority first")
	flags.StringVarP(&o.format, "format", "f", "conf", "output format of the effective configuration (conf, json)")
	flags.StringVarP(&o.output, "output", "o", "", "write the effective configuration to `FILE` instead of stdout")
	flags.BoolVar(&o.list, "list", false, "list the declared options as JSON and exit")
	flags.BoolVarP(&o.quiet, "quiet", "q", false, "only validate, do not print the effective configuration")
	flags.StringVar(&o.logLevel, "log-level", "", "log level (defaults to $LOG_LEVEL or info)")
}

func (o *options) validate(args []string) error {
	if !o.list && len(args) != 1 {
		return &usageError{errors.New("expected exactly one configuration FILE")}
	}
	if o.format != "conf" && o.format != "json" {
		return &usageError{fmt.Errorf("unsupported format %q", o.format)}
	}
	if o.output != "" && o.format != "conf" {
		return &usageError{errors.New("--output requires --format conf")}
	}

	s, err := o.decls.parse()
	if err != nil {
		return &usageError{err}
	}
	o.schema = s
	return nil
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "confcheck [flags] FILE",
		Short: "Validate a line oriented configuration file",
		Long: `confcheck declares options from its flags, loads FILE and all drop-in
files against them and prints the effective configuration.

Exit codes:
  0  the configuration is valid
  1  the configuration is invalid
  2  usage error`,
		Example: `  confcheck -b verbose -s mode=fast --allow mode=fast,slow -d rate -l weights app.conf`,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.MaximumNArgs(1)(cmd, args); err != nil {
				return &usageError{err}
			}
			return nil
		},
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.validate(args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd.OutOrStdout(), cmd.ErrOrStderr(), args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err}
	})
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	opts.addFlags(cmd.Flags())
	return cmd
}

func (o *options) run(stdout, stderr io.Writer, args []string) error {
	logger := log.New(log.Config{
		Level:   o.logLevel,
		Output:  stderr,
		Service: "confcheck",
		Console: true,
	})
	reg := conf.New(conf.WithLogger(logger.With().Str(log.FieldComponent, "conf").Logger()))

	if o.list {
		if err := o.schema.Setup(reg); err != nil {
			return err
		}
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(reg.Options())
	}

	path := args[0]
	if err := reg.LoadConfigWithDropIns(path, o.dropinDirs, o.schema); err != nil {
		return err
	}
	if o.quiet {
		return nil
	}

	switch {
	case o.output != "":
		if err := reg.WriteFile(o.output, 0o644); err != nil {
			return err
		}
		logger.Info().Str(log.FieldPath, o.output).Msg("effective configuration written")
		return nil

	case o.format == "json":
		values := reg.AsMap()
		for key, v := range values {
			values[key] = jsonValue(v)
		}
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(values)
	}

	_, err := reg.WriteTo(stdout)
	return err
}

// jsonValue replaces NaN and infinite numbers, which JSON cannot
// represent, with nil.
func jsonValue(v interface{}) interface{} {
	switch v := v.(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil
		}
	case []float64:
		res := make([]interface{}, len(v))
		for i, f := range v {
			res[i] = jsonValue(f)
		}
		return res
	}
	return v
}
