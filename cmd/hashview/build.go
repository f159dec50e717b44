package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vango-dev/hashview/internal/build"
)

func buildCmd(flags *globalFlags) *cobra.Command {
	var (
		lang     string
		collapse bool
		depFile  string
		target   string
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the page",
		Long: `Build the page file into an HTML document.

Templates and header fragments are inlined into the page. Styles and
scripts are linked, or concatenated into one CSS and one JS file with
--collapse.

Examples:
  hashview build
  hashview build --collapse
  hashview build --lang=lang/fr.lang --depfile=app.d`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			ctx, cancel := signalContext(nil)
			defer cancel()

			builder := build.New(cfg, build.Options{
				Lang:       lang,
				Collapse:   collapse,
				DepFile:    depFile,
				DepTarget:  target,
				Logger:     flags.logger(cmd.ErrOrStderr(), cfg),
				OnProgress: func(step string) {
					info(out, step)
				},
			})
			result, err := builder.Build(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintln(out)
			success(out, "Built in %s", result.Duration.Round(1000000))
			for _, f := range result.Outputs {
				info(out, "%s  %s", relative(cfg.Dir(), f), shortSum(result.Manifest[f]))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&lang, "lang", "l", "", "Lang file (default from hashview.json)")
	cmd.Flags().BoolVar(&collapse, "collapse", false, "Concatenate styles and scripts into single files")
	cmd.Flags().StringVarP(&depFile, "depfile", "d", "", "Also write a make dependency file")
	cmd.Flags().StringVarP(&target, "target", "t", "", "Target named in the dependency file (default: the HTML output)")

	return cmd
}

func depsCmd(flags *globalFlags) *cobra.Command {
	var (
		lang     string
		collapse bool
		output   string
		target   string
	)

	cmd := &cobra.Command{
		Use:   "deps",
		Short: "Print the page's make dependencies",
		Long: `Parse the page and print a make rule listing every file the
build reads, without writing the page. With --output the rule is
written to a file instead.

Examples:
  hashview deps
  hashview deps --output=app.d --target=dist/app.html`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}

			ctx, cancel := signalContext(nil)
			defer cancel()

			builder := build.New(cfg, build.Options{
				Lang:      lang,
				Collapse:  collapse,
				DepFile:   output,
				DepTarget: target,
				NoOutput:  true,
				Logger:    flags.logger(cmd.ErrOrStderr(), cfg),
			})
			result, err := builder.Build(ctx)
			if err != nil {
				return err
			}
			if output == "" && cfg.DepFilePath() == "" {
				_, err = cmd.OutOrStdout().Write(result.Page.DepFile(target, "", collapse || cfg.Page.Collapse))
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&lang, "lang", "l", "", "Lang file (default from hashview.json)")
	cmd.Flags().BoolVar(&collapse, "collapse", false, "List styles and scripts as collapsed build inputs")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the rule to this file")
	cmd.Flags().StringVarP(&target, "target", "t", "", "Target of the rule (default: the HTML output)")

	return cmd
}

func relative(dir, path string) string {
	if rel, err := filepath.Rel(dir, path); err == nil {
		return rel
	}
	return path
}

func shortSum(sum string) string {
	if len(sum) > 12 {
		return sum[:12]
	}
	return sum
}
