package cli

import (
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/beetlebugorg/mif/pkg/mif"
)

// Input formats accepted by the encode command
var encodeFormats = []string{"wkt", "geojson"}

// errNotEncodable is returned for geometries that have no Region encoding
var errNotEncodable = errors.New("geometry is not a polygon or multi-polygon")

func newEncodeCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode [geometry|-]",
		Short: "print the MIF Region block of a single geometry",
		Long: `Encode reads one geometry as WKT or GeoJSON, from the argument or stdin
when the argument is "-" or absent, and prints its MIF Region block.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readGeometryArg(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			format := strings.ToLower(v.GetString("format"))
			var (
				text string
				ok   bool
			)
			switch format {
			case "wkt":
				text, ok, err = mif.EncodeWKT(input)
			case "geojson":
				text, ok, err = mif.EncodeGeoJSON([]byte(input))
			default:
				return errors.Errorf("unknown format %q, expected one of: %s", format, strings.Join(encodeFormats, ", "))
			}
			if err != nil {
				return errors.Wrap(err, "error reading geometry")
			}
			if !ok {
				return errNotEncodable
			}

			_, err = io.WriteString(cmd.OutOrStdout(), text)
			return err
		},
	}

	cmd.Flags().StringP("format", "f", "wkt", "input format: "+strings.Join(encodeFormats, ", "))
	return cmd
}

func readGeometryArg(stdin io.Reader, args []string) (string, error) {
	if len(args) == 1 && args[0] != "-" {
		return args[0], nil
	}
	b, err := io.ReadAll(stdin)
	if err != nil {
		return "", errors.Wrap(err, "error reading from stdin")
	}
	return string(b), nil
}
