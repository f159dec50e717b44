package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vango-dev/hashview/internal/build"
	"github.com/vango-dev/hashview/internal/publish"
)

func publishCmd(flags *globalFlags) *cobra.Command {
	var (
		bucket   string
		prefix   string
		endpoint string
		dryRun   bool
	)

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Build the page and upload it to S3",
		Long: `Build the page and upload the HTML document, its styles and its
scripts to an S3 bucket. Keys mirror the links in the page, under the
configured prefix.

Credentials are read from AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY
and AWS_SESSION_TOKEN.

Examples:
  hashview publish --bucket=my-site
  hashview publish --prefix=v2/ --dry-run
  hashview publish --endpoint=http://localhost:9000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			if bucket != "" {
				cfg.Publish.Bucket = bucket
			}
			if cmd.Flags().Changed("prefix") {
				cfg.Publish.Prefix = prefix
			}
			if endpoint != "" {
				cfg.Publish.Endpoint = endpoint
			}
			out := cmd.OutOrStdout()
			logger := flags.logger(cmd.ErrOrStderr(), cfg)

			publisher, err := publish.New(publish.NewClient(cfg.Publish), publish.Options{
				Bucket:       cfg.Publish.Bucket,
				Prefix:       cfg.Publish.Prefix,
				CacheControl: cfg.Publish.CacheControl,
				DryRun:       dryRun,
				Logger:       logger,
			})
			if err != nil {
				return err
			}

			ctx, cancel := signalContext(nil)
			defer cancel()

			result, err := build.New(cfg, build.Options{
				Logger:     logger,
				OnProgress: func(step string) {
					info(out, step)
				},
			}).Build(ctx)
			if err != nil {
				return err
			}

			start := time.Now()
			objects, err := publisher.Publish(ctx, result)
			for _, obj := range objects {
				info(out, "%s  %s  %s", obj.Key, obj.ContentType, formatBytes(obj.Size))
			}
			if err != nil {
				return err
			}
			if dryRun {
				success(out, "Would publish %d files to s3://%s", len(objects), cfg.Publish.Bucket)
				return nil
			}
			success(out, "Published %d files to s3://%s in %s", len(objects), cfg.Publish.Bucket, time.Since(start).Round(time.Millisecond))
			return nil
		},
	}

	cmd.Flags().StringVarP(&bucket, "bucket", "b", "", "Bucket (default from hashview.json)")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Key prefix (default from hashview.json)")
	cmd.Flags().StringVar(&endpoint, "endpoint", "", "S3-compatible endpoint URL")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "List the files without uploading")

	return cmd
}
