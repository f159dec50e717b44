package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vango-dev/hashview/internal/templates"
)

func initCmd() *cobra.Command {
	var (
		template string
		name     string
		title    string
	)

	cmd := &cobra.Command{
		Use:   "init [DIR]",
		Short: "Create a new project",
		Long: `Create a hashview.json, a page file and a first module in DIR
(default: the working directory).

Templates:
  minimal  A page with one module
  lang     The same page with its text in a lang file

Examples:
  hashview init
  hashview init shop --template=lang --title="My Shop"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			abs, err := filepath.Abs(dir)
			if err != nil {
				return err
			}

			tmpl, err := templates.Get(template)
			if err != nil {
				return err
			}
			files, err := tmpl.Create(abs, templates.Config{ProjectName: name, Title: title})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, f := range files {
				info(out, relative(abs, f))
			}
			fmt.Fprintln(out)
			success(out, "Created %s project in %s", tmpl.Name, abs)
			if wd, _ := os.Getwd(); wd != abs {
				info(out, "cd %s", dir)
			}
			info(out, "hashview serve")
			return nil
		},
	}

	cmd.Flags().StringVarP(&template, "template", "t", "minimal", "Project template")
	cmd.Flags().StringVar(&name, "name", "", "Project name (default: the directory name)")
	cmd.Flags().StringVar(&title, "title", "", "Page title (default: the project name)")

	return cmd
}
