package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var decodeCmd = &cobra.Command{
	Use:   "decode CODE",
	Short: "Decode a plus code to a coordinate",
	Long: `
Accepts a full code (8FH2W624+3X) or a short code followed by a place name
(W624+3X Monzón). Quote short codes so the place name stays in one argument.
`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}

		d, err := a.Decoder.Decode(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%.7f,%.7f\t%s", d.Coordinates.Lat, d.Coordinates.Lon, d.Tier)
		if d.Anchor != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "\t%s", d.Anchor)
		}
		fmt.Fprintln(cmd.OutOrStdout())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(decodeCmd)
}
