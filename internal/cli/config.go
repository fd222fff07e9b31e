package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/abey/findconf/internal/config"
	"github.com/abey/findconf/internal/errors"
)

func NewConfigCmd() *cobra.Command {
	var (
		formatName string
		subdir     string
		show       bool
	)

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or update the default format and subdirectory",
		Args:  cobra.NoArgs,
		RunE: func(cc *cobra.Command, _ []string) error {
			svc, err := config.NewService()
			if err != nil {
				return fmt.Errorf("%w: %w", errors.ErrConfig, err)
			}

			flags := cc.Flags()
			if flags.Changed("format") || flags.Changed("subdir") {
				updated := *svc.Config()
				if flags.Changed("format") {
					updated.Format = formatName
				}
				if flags.Changed("subdir") {
					updated.Subdirectory = subdir
				}

				if err := svc.Update(&updated); err != nil {
					return fmt.Errorf("%w: failed to save configuration: %w", errors.ErrConfig, err)
				}

				fmt.Fprintf(cc.OutOrStdout(), "Configuration saved to %s\n", svc.ConfigPath())
				if !show {
					return nil
				}
			}

			data, err := yaml.Marshal(svc.Config())
			if err != nil {
				return err
			}

			out := cc.OutOrStdout()
			fmt.Fprintf(out, "# %s\n", svc.ConfigPath())
			fmt.Fprint(out, string(data))

			return nil
		},
	}

	cmd.Flags().StringVarP(&formatName, "format", "f", "", "Default format (auto, toml, json, yaml)")
	cmd.Flags().StringVar(&subdir, "subdir", "", "Default subdirectory")
	cmd.Flags().BoolVar(&show, "show", false, "Print the configuration after updating it")

	return cmd
}
