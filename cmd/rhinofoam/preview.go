package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Print the short instruction preview and run report",
	RunE: func(cmd *cobra.Command, args []string) error {
		geoPath, _ := cmd.Flags().GetString("geometry")
		profPath, _ := cmd.Flags().GetString("profile")

		bundle, _, err := runGeneration(geoPath, profPath, "", "")
		if err != nil {
			return err
		}

		fmt.Println(bundle.PreviewText)
		fmt.Println()
		fmt.Println(bundle.Report.Summary)
		for _, bp := range bundle.BadPoints {
			fmt.Printf("out of bounds: (%.3f, %.3f, %.3f) %s\n", bp.Point.X, bp.Point.Y, bp.Point.Z, bp.Reason)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().StringP("geometry", "g", "", "toolpath geometry file (.yaml/.yml/.json)")
	previewCmd.Flags().StringP("profile", "p", "", "machine profile file (.cfg)")
	previewCmd.MarkFlagRequired("geometry")
	previewCmd.MarkFlagRequired("profile")
}
