package cli

import (
	"fmt"
	"log/slog"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/beetlebugorg/mif/internal/config"
	"github.com/beetlebugorg/mif/pkg/mif"
)

func newSplitCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "split <input.mif>",
		Short: "write one MIF Region file per group",
		Long: `Split reads a MIF/MID dataset and writes one MIF file per distinct origin of the
key column. The origin is the key value up to the first "(", trimmed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v.Set("input", args[0])

			cfg, err := config.Load(v)
			if err != nil {
				return errors.Wrap(err, "invalid configuration")
			}

			opts := mif.DefaultRunOptions()
			opts.Logger = slog.Default()

			summary, err := mif.Run(cmd.Context(), cfg, opts)
			if err != nil {
				return errors.Wrapf(err, "error splitting %q", cfg.Input)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "records: %d (encoded %d, unsupported %d, filtered %d)\n",
				summary.Records, summary.Encoded, summary.Unsupported, summary.Filtered)
			fmt.Fprintf(out, "rows:    %d (written %d, skipped %d, failed %d)\n",
				summary.Rows, len(summary.Files), summary.Skipped, len(summary.Errors))
			for _, r := range summary.Reports {
				fmt.Fprintf(out, "report:  %s\n", r)
			}
			return nil
		},
	}

	d := config.Default()
	flags := cmd.Flags()
	flags.StringP("output-dir", "o", d.OutputDir, "directory receiving output files")
	flags.String("extension", d.Extension, "extension of output MIF files")
	flags.StringP("key-field", "k", d.KeyField, "attribute column holding the grouping key")
	flags.Bool("group", d.Group, "write one file per origin instead of one per record")
	flags.String("merge-mode", d.MergeMode, "group text: concat (blocks joined with \", \") or region (one Region block)")
	flags.StringSlice("columns", nil, "columns declared in output headers (default: the source columns)")
	flags.String("html", d.HTML, "name of the HTML table report, empty to disable")
	flags.String("parquet", "", "name of an optional Parquet export")
	flags.String("parquet-compression", d.ParquetCompression, "parquet compression: none, snappy, gzip, zstd")
	flags.String("metrics", "", "name of an optional Prometheus text-format metrics file")
	flags.Bool("write-mid", false, "write a .mid attribute file next to each MIF file")
	flags.IntP("workers", "w", d.Workers, "parallel encoding workers, 0 for one per CPU")
	flags.String("bbox", "", "keep only features intersecting minx,miny,maxx,maxy")
	flags.Bool("skip-errors", d.SkipErrors, "report failing rows and continue")
	flags.String("s3-bucket", "", "write outputs to this S3 bucket instead of output-dir")
	flags.String("s3-prefix", "", "key prefix for S3 outputs")
	flags.String("s3-region", "", "AWS region of the S3 bucket")

	return cmd
}
