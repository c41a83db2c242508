package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"ArmsDealer/internal/shared/gameconfig/geo"
	"ArmsDealer/internal/shared/simconfig"
	"ArmsDealer/modules/kit/errx"
)

func newGeoCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "geo",
		Short: "Inspect the country adjacency and border atlas",
	}
	cmd.AddCommand(newGeoCheckCmd(root), newGeoBordersCmd(root))
	return cmd
}

func newGeoCheckCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the atlas: border sides, frontier gaps and neighbor symmetry",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := simconfig.Load(root.configPath)
			if err != nil {
				return err
			}
			atlas, err := loadAtlas(cfg.Geo)
			if err != nil {
				var e *errx.Error
				if errors.As(err, &e) && errors.Is(err, geo.ErrInvalidAtlas) {
					defects, _ := e.Data()["defects"].([]geo.Defect)
					renderDefects(os.Stdout, defects)
				}
				return err
			}

			color.New(color.FgGreen, color.Bold).Printf("✓ %s: %d countries, no defects\n", atlas.Title(), len(atlas.Countries()))
			fmt.Printf("  attack distance %.0f, frontier tolerance %.0f\n", atlas.AttackDistance(), atlas.FrontierTolerance())
			if asym := atlas.AsymmetricNeighbors(); len(asym) > 0 {
				color.New(color.FgYellow).Printf("\n%d asymmetric neighbor declarations (informational):\n", len(asym))
				renderAsymmetries(os.Stdout, asym)
			}
			return nil
		},
	}
}

func newGeoBordersCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "borders COUNTRY DIRECTION",
		Short: "List the border cities of a country facing a direction",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			country, err := geo.ParseCountry(args[0])
			if err != nil {
				return err
			}
			dir, err := geo.ParseDirection(args[1])
			if err != nil {
				return err
			}
			cfg, err := simconfig.Load(root.configPath)
			if err != nil {
				return err
			}
			atlas, err := loadAtlas(cfg.Geo)
			if err != nil {
				return err
			}
			cities := atlas.BorderCitiesForDirection(country, dir)
			if len(cities) == 0 {
				fmt.Printf("%s has no border cities facing %s\n", country, dir)
				return nil
			}
			renderBorders(os.Stdout, country, dir, cities, atlas.AttackOrigin(dir))
			return nil
		},
	}
}
