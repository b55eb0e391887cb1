package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup TEXT",
	Short: "Find the gazetteer place a free-text reference anchors to",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}

		text := strings.Join(args, " ")
		p, ok := a.Tables.Gazetteer.Lookup(text)
		if !ok {
			return fmt.Errorf("no gazetteer place found in %q", text)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%.4f,%.4f\n", p.Name, p.Coordinates.Lat, p.Coordinates.Lon)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lookupCmd)
}
