package cli

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/beetlebugorg/mif/pkg/mif"
)

func newInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <input.mif>",
		Short: "describe a MIF/MID dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := mif.Inspect(args[0])
			if err != nil {
				return errors.Wrapf(err, "error inspecting %q", args[0])
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "File:      %s\n", info.File)
			fmt.Fprintf(out, "Version:   %d\n", info.Version)
			fmt.Fprintf(out, "Charset:   %s\n", info.Charset)
			fmt.Fprintf(out, "CoordSys:  %s\n", info.CoordSys)
			fmt.Fprintf(out, "Columns:   %s\n", strings.Join(info.Columns, ", "))
			fmt.Fprintf(out, "Objects:   %d (%d encodable)\n", info.Features, info.Encodable)
			for _, kind := range info.KindNames() {
				fmt.Fprintf(out, "  %-10s %d\n", kind, info.Kinds[kind])
			}
			if info.HasBounds {
				fmt.Fprintf(out, "Bounds:    %s\n", info.Bounds)
			}
			return nil
		},
	}
}
