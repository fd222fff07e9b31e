package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/abey/findconf/internal/config"
	"github.com/abey/findconf/internal/errors"
	"github.com/abey/findconf/internal/file"
	"github.com/abey/findconf/internal/format"
	"github.com/abey/findconf/internal/log"
)

const (
	Version     = "0.2.0"
	Description = "Find a configuration file by walking up from the current directory."
)

type locateOptions struct {
	subdir     string
	format     string
	extensions []string
	check      bool
	pathOnly   bool
	quiet      bool
}

func NewRootCmd(name, shortDesc, longDesc string) *cobra.Command {
	opts := &locateOptions{}

	cmd := &cobra.Command{
		Use:           name + " NAME",
		Short:         shortDesc,
		Long:          longDesc,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       Version,
		RunE: func(cc *cobra.Command, args []string) error {
			return runLocate(cc, opts, args[0])
		},
	}

	cmd.PersistentFlags().String("log_level", "warn", "Set the log level (debug, info, warn, error)")
	cmd.PersistentFlags().String("log_format", "text", "Set the log format (text, json)")

	cmd.PersistentPreRunE = func(cc *cobra.Command, _ []string) error {
		flags := cc.Flags()

		var merr error

		logLevel, err := flags.GetString("log_level")
		if err != nil {
			merr = multierror.Append(merr, err)
		}

		logFormat, err := flags.GetString("log_format")
		if err != nil {
			merr = multierror.Append(merr, err)
		}

		if merr != nil {
			return fmt.Errorf("invalid argument: %w", merr)
		}

		h, err := log.CreateHandler(cc.ErrOrStderr(), logLevel, logFormat)
		if err != nil {
			return fmt.Errorf("%w: failed creating log handler: %w", errors.ErrConfig, err)
		}
		slog.SetDefault(slog.New(h))

		return nil
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.subdir, "subdir", "", "Subdirectory holding the file in each searched directory")
	flags.StringVarP(&opts.format, "format", "f", "", "Format of the file (auto, toml, json, yaml)")
	flags.StringSliceVarP(&opts.extensions, "ext", "e", nil, "Candidate extension, in priority order (overrides --format)")
	flags.BoolVar(&opts.check, "check", false, "Check that the contents parse as the file's format")
	flags.BoolVar(&opts.pathOnly, "path-only", false, "Print only the path of the file")
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "Print only the contents of the file")

	cmd.AddCommand(NewConfigCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

func runLocate(cc *cobra.Command, opts *locateOptions, name string) error {
	svc, err := config.NewService()
	if err != nil {
		return fmt.Errorf("%w: %w", errors.ErrConfig, err)
	}
	cfg := svc.Config()

	subdir := cfg.Subdirectory
	if cc.Flags().Changed("subdir") {
		subdir = opts.subdir
	}

	extensions, err := opts.candidateExtensions(cc, cfg)
	if err != nil {
		return err
	}

	slog.Debug("searching for configuration file",
		"name", name,
		"subdirectory", subdir,
		"extensions", extensions,
	)

	res, err := file.New(name).In(subdir).Locate(extensions)
	if err != nil {
		return err
	}

	slog.Info("located configuration file", "path", res.DisplayPath)

	if opts.check {
		if err := checkContents(res); err != nil {
			return err
		}
	}

	out := cc.OutOrStdout()

	if opts.pathOnly {
		fmt.Fprintln(out, res.DisplayPath)
		return nil
	}

	if !opts.quiet && isatty.IsTerminal(os.Stdout.Fd()) {
		fmt.Fprintf(out, "==> %s\n", res.DisplayPath)
	}
	fmt.Fprint(out, res.Contents)

	return nil
}

func (o *locateOptions) candidateExtensions(cc *cobra.Command, cfg *config.Config) ([]string, error) {
	if cc.Flags().Changed("ext") {
		if len(o.extensions) == 0 {
			return nil, fmt.Errorf("%w: %w", errors.ErrConfig, file.ErrNoExtensions)
		}
		return o.extensions, nil
	}

	name := cfg.Format
	if cc.Flags().Changed("format") {
		name = o.format
	}

	f, err := format.Parse(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrConfig, err)
	}

	return f.Extensions(), nil
}

func checkContents(res file.Result) error {
	f, ok := format.FromPath(res.Path)
	if !ok {
		slog.Warn("cannot infer format, skipping check", "path", res.DisplayPath)
		return nil
	}

	if err := f.Validate(res.Contents); err != nil {
		return fmt.Errorf("%s: %w", res.DisplayPath, err)
	}

	slog.Info("contents are valid", "path", res.DisplayPath, "format", f.String())
	return nil
}
