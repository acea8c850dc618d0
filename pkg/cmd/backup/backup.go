package backup

import (
	"context"
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/cobra"

	backupsvc "github.com/Paintersrp/quire/internal/backup"
	"github.com/Paintersrp/quire/internal/state"
	cmdpkg "github.com/Paintersrp/quire/pkg/cmd"
)

var newBackup = backupsvc.New

// dryRun accepts every upload without sending anything.
type dryRun struct{}

func (dryRun) Upload(context.Context, *s3.PutObjectInput, ...func(*manager.Uploader)) (*manager.UploadOutput, error) {
	return &manager.UploadOutput{}, nil
}

func NewCmdBackup(s *state.State) *cobra.Command {
	var (
		bucket string
		prefix string
		dry    bool
	)

	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Upload the project to S3.",
		Long: heredoc.Doc(`
			Uploads every project file to the configured S3 bucket under
			<prefix>/<project>/<timestamp>/. The bucket, prefix, region and an
			optional S3-compatible endpoint are read from the project's backup
			settings.

			Credentials come from the default AWS chain, or from
			QUIRE_S3_ACCESS_KEY_ID and QUIRE_S3_SECRET_ACCESS_KEY when both are set.
		`),
		Example: heredoc.Doc(`
			quire backup
			quire backup --bucket my-bucket --prefix quire/ --dry-run
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cmdpkg.RequireBinder(s); err != nil {
				return err
			}

			cfg := s.Project.Backup
			if bucket != "" {
				cfg.Bucket = bucket
			}
			if cmd.Flags().Changed("prefix") {
				cfg.Prefix = prefix
			}

			opts := []backupsvc.Option{backupsvc.WithLogger(s.Logger)}
			if dry {
				opts = append(opts, backupsvc.WithUploader(dryRun{}))
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			b, err := newBackup(ctx, s.ProjectName, cfg, opts...)
			if err != nil {
				return err
			}

			res, err := b.Run(ctx, s.Binder)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if dry {
				for _, key := range res.Keys {
					fmt.Fprintln(out, key)
				}
			}
			fmt.Fprintf(out, "Backed up %d files to s3://%s/%s\n", len(res.Keys), res.Bucket, res.Prefix)
			return nil
		},
	}

	cmd.Flags().StringVar(&bucket, "bucket", "", "Bucket to upload to, overriding the project setting.")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Key prefix, overriding the project setting.")
	cmd.Flags().BoolVar(&dry, "dry-run", false, "List the keys that would be uploaded without uploading.")

	return cmd
}
