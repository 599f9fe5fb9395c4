package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Bahjat/page-composer/backend/internal/configio"
	"github.com/Bahjat/page-composer/backend/internal/generator"
	"github.com/Bahjat/page-composer/backend/internal/model"
	"github.com/Bahjat/page-composer/backend/internal/platform/logger"
	"github.com/Bahjat/page-composer/backend/internal/remote"
	"github.com/Bahjat/page-composer/backend/internal/render"
	"github.com/Bahjat/page-composer/backend/internal/synth"
)

var errUsage = errors.New("usage")

type rootOptions struct {
	logLevel string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{logLevel: "warn"}

	cmd := &cobra.Command{
		Use:           "pagegen",
		Short:         "Generate, validate and render page configurations",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", opts.logLevel, "Log level for diagnostics on stderr (debug, info, warn, error)")

	cmd.AddCommand(newSynthCommand(opts), newValidateCommand(), newRenderCommand())
	return cmd
}

func (o *rootOptions) logger(cmd *cobra.Command) *slog.Logger {
	return logger.NewWithWriter(cmd.ErrOrStderr(), o.logLevel)
}

func exactArgs(what string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 || strings.TrimSpace(args[0]) == "" {
			return fmt.Errorf("%w: expected exactly one %s", errUsage, what)
		}
		return nil
	}
}

func newSynthCommand(root *rootOptions) *cobra.Command {
	var (
		asYAML     bool
		remoteURL  string
		timeout    time.Duration
		creativity float64
		keepTone   bool
	)

	cmd := &cobra.Command{
		Use:   "synth <text>",
		Short: "Synthesize a page configuration from a brand description",
		Long: strings.TrimSpace(`
Prints the configuration as JSON (or YAML with --yaml). Warnings go to stderr.
With --remote the endpoint is tried first and the offline synthesis is used
when it fails.
`),
		Args: exactArgs("brand description"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			var opts []generator.Option
			if remoteURL != "" {
				opts = append(opts, generator.WithRemote(remote.NewClient(remoteURL, timeout)))
			}
			svc := generator.NewService(synth.Default(), root.logger(cmd), opts...)

			req := model.SynthesisRequest{Text: args[0], KeepTone: keepTone}
			if cmd.Flags().Changed("creativity") {
				req.Creativity = &creativity
			}

			out, err := svc.Generate(ctx, req)
			if err != nil {
				return err
			}
			for _, w := range out.Warnings {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w)
			}

			format := configio.JSON
			if asYAML {
				format = configio.YAML
			}
			return configio.Export(cmd.OutOrStdout(), out.Config, format)
		},
	}

	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Print YAML instead of JSON")
	cmd.Flags().StringVar(&remoteURL, "remote", "", "Remote synthesis endpoint to try first")
	cmd.Flags().DurationVar(&timeout, "timeout", 20*time.Second, "Remote synthesis timeout")
	cmd.Flags().Float64Var(&creativity, "creativity", 0.5, "Creativity hint for the remote endpoint (0-1)")
	cmd.Flags().BoolVar(&keepTone, "keep-tone", false, "Ask the remote endpoint to keep the detected tone")
	return cmd
}

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a configuration file and list the bound section handlers",
		Args:  exactArgs("configuration file"),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := importFile(args[0])
			if err != nil {
				return err
			}

			set, err := render.NewSet()
			if err != nil {
				return err
			}
			bound, err := set.Compose(cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: ok (%d sections)\n", cfg.Brand.Name, len(bound))
			for _, b := range bound {
				fmt.Fprintf(out, "  %-16s %s\n", b.Section.ID, b.Handler.Name())
			}
			return nil
		},
	}
}

func newRenderCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "render <file>",
		Short: "Render a configuration file to HTML on stdout",
		Args:  exactArgs("configuration file"),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := importFile(args[0])
			if err != nil {
				return err
			}

			set, err := render.NewSet()
			if err != nil {
				return err
			}
			return set.RenderPage(cmd.OutOrStdout(), cfg)
		},
	}
}

func importFile(path string) (*model.PageConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg, err := configio.Import(f, configio.FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
