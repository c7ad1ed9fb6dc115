package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/veld-dev/veld/internal/config"
	"github.com/veld-dev/veld/internal/deploy"
	"github.com/veld-dev/veld/internal/errors"
)

func deployCmd() *cobra.Command {
	var (
		bucket string
		region string
		prefix string
	)

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Upload the build output to S3",
		Long: `Upload the production build to an S3 bucket for static hosting.

The bucket, region, and key prefix come from the deploy section of
veld.json and can be overridden with flags. Credentials are resolved
through the standard AWS credential chain.

Examples:
  veld deploy
  veld deploy --bucket=my-site --region=eu-west-1
  veld deploy --prefix=preview/42`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDeploy(bucket, region, prefix)
		},
	}

	cmd.Flags().StringVar(&bucket, "bucket", "", "Target bucket (default from veld.json)")
	cmd.Flags().StringVar(&region, "region", "", "Bucket region (default from veld.json)")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Key prefix (default from veld.json)")

	return cmd
}

func runDeploy(bucket, region, prefix string) error {
	cfg, err := config.Load(".")
	if err != nil {
		return err
	}

	if bucket == "" {
		bucket = cfg.Deploy.Bucket
	}
	if region == "" {
		region = cfg.Deploy.Region
	}
	if prefix == "" {
		prefix = cfg.Deploy.Prefix
	}
	if bucket == "" {
		return errors.New("E101").
			WithDetail("No target bucket configured").
			WithSuggestion("Set deploy.bucket in veld.json or pass --bucket")
	}

	dist := filepath.Join(cfg.Dir(), cfg.Build.Output)

	fmt.Printf("  Deploying %s to s3://%s/%s\n", cfg.Build.Output, bucket, prefix)
	fmt.Println()

	ctx := context.Background()
	uploader, err := deploy.NewFromConfig(ctx, region, bucket, prefix)
	if err != nil {
		return err
	}

	summary, err := uploader.UploadDir(ctx, dist)
	if err != nil {
		return err
	}

	success("Uploaded %d files (%s)", summary.Files, formatBytes(summary.Bytes))
	return nil
}
