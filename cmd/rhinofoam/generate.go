package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lborunda/rhinoFOAM/pkg/generator"
	"github.com/lborunda/rhinoFOAM/pkg/geometry"
	"github.com/lborunda/rhinoFOAM/pkg/profile"
	"github.com/lborunda/rhinoFOAM/pkg/save"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate G-code from geometry and a machine profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		geoPath, _ := cmd.Flags().GetString("geometry")
		profPath, _ := cmd.Flags().GetString("profile")
		outPath, _ := cmd.Flags().GetString("output")
		headerPath, _ := cmd.Flags().GetString("header")
		footerPath, _ := cmd.Flags().GetString("footer")

		log := logger()

		bundle, prof, err := runGeneration(geoPath, profPath, headerPath, footerPath)
		if err != nil {
			return err
		}

		log.Info().
			Str("profile", prof.String()).
			Int("toolpaths", bundle.Report.Toolpaths).
			Int("lines", len(bundle.Instructions)).
			Int("badPoints", bundle.Report.BadPoints).
			Int("warnings", bundle.Report.Warnings).
			Str("status", bundle.Report.Status).
			Msg("generation complete")
		for _, note := range bundle.Report.Notes {
			log.Debug().Msg(note)
		}

		if outPath == "" {
			fmt.Println(strings.Join(bundle.Instructions, "\n"))
		} else {
			if err := save.WriteFile(outPath, bundle.Instructions); err != nil {
				return err
			}
			log.Info().Str("path", outPath).Msg("wrote output file")
		}

		fmt.Fprintln(os.Stderr, bundle.Report.Summary)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringP("geometry", "g", "", "toolpath geometry file (.yaml/.yml/.json)")
	generateCmd.Flags().StringP("profile", "p", "", "machine profile file (.cfg)")
	generateCmd.Flags().StringP("output", "o", "", "output G-code file (default: stdout)")
	generateCmd.Flags().String("header", "", "file with replacement header lines")
	generateCmd.Flags().String("footer", "", "file with replacement footer lines")
	generateCmd.MarkFlagRequired("geometry")
	generateCmd.MarkFlagRequired("profile")
}

// runGeneration loads the inputs and performs one generation pass.
func runGeneration(geoPath, profPath, headerPath, footerPath string) (*generator.Bundle, *profile.Profile, error) {
	geo, err := geometry.LoadFile(geoPath)
	if err != nil {
		return nil, nil, err
	}
	prof, err := profile.LoadFile(profPath)
	if err != nil {
		return nil, nil, err
	}

	var opts generator.Options
	if opts.BaseHeader, err = readLines(headerPath); err != nil {
		return nil, nil, err
	}
	if opts.BaseFooter, err = readLines(footerPath); err != nil {
		return nil, nil, err
	}

	bundle, err := generator.Generate(geo, prof, opts)
	if err != nil {
		return nil, nil, err
	}
	return bundle, prof, nil
}

// readLines reads a base-code file into lines. An empty path means the
// defaults stay in effect.
func readLines(path string) ([]string, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read %s: %w", path, err)
	}
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n"), nil
}
