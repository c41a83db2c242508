package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"ArmsDealer/internal/shared/gameconfig/geo"
	"ArmsDealer/internal/war/entity"
)

var (
	advanceColor   = color.New(color.FgRed, color.Bold)
	repulseColor   = color.New(color.FgGreen)
	stalemateColor = color.New(color.FgYellow)
)

func outcomeText(o entity.Outcome) string {
	switch o {
	case entity.OutcomeAdvance:
		return advanceColor.Sprint(string(o))
	case entity.OutcomeRepulse:
		return repulseColor.Sprint(string(o))
	case entity.OutcomeStalemate:
		return stalemateColor.Sprint(string(o))
	default:
		return "-"
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func renderTurn(w io.Writer, r *entity.TurnReport) {
	fmt.Fprintf(w, "\nTurn %d: %d battles, %d units processed\n", r.Turn, len(r.Battles), r.Processed)
	if len(r.Battles) == 0 {
		return
	}
	table := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"War", "Front", "Attack", "Defense", "Atk Loss", "Def Loss", "Outcome", "Captured", "Ended"}),
	)
	for _, b := range r.Battles {
		ended := "-"
		if b.Concluded {
			ended = b.Reason
		}
		table.Append([]string{
			string(b.WarID),
			orDash(string(b.FrontCity)),
			fmt.Sprintf("%.1f", b.AttackPower),
			fmt.Sprintf("%.1f", b.DefensePower),
			fmt.Sprintf("%.1f", b.AttackerDamage),
			fmt.Sprintf("%.1f", b.DefenderDamage),
			outcomeText(b.Outcome),
			orDash(string(b.Captured)),
			ended,
		})
	}
	table.Render()
	if len(r.Destroyed) > 0 {
		ids := make([]string, 0, len(r.Destroyed))
		for _, id := range r.Destroyed {
			ids = append(ids, string(id))
		}
		fmt.Fprintf(w, "  destroyed: %s\n", strings.Join(ids, ", "))
	}
}

func renderWars(w io.Writer, turn int, wars []entity.WarSnapshot) {
	fmt.Fprintf(w, "\nWars at turn %d:\n", turn)
	table := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"War", "Direction", "State", "Fallen", "Front", "Stalemates", "Reason"}),
	)
	for _, s := range wars {
		fallen := make([]string, 0, len(s.Fallen))
		for _, c := range s.Fallen {
			fallen = append(fallen, string(c))
		}
		table.Append([]string{
			string(s.ID),
			s.Direction.String(),
			string(s.State),
			orDash(strings.Join(fallen, ", ")),
			orDash(string(s.FrontCity)),
			fmt.Sprintf("%d", s.Stalemates),
			orDash(s.Reason),
		})
	}
	table.Render()
}

func renderBorders(w io.Writer, country geo.CountryCode, dir geo.Direction, cities []geo.BorderCity, origin geo.Point) {
	fmt.Fprintf(w, "%s %s border, attacks come from (%.0f, %.0f)\n", country, dir, origin.X, origin.Y)
	table := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"#", "City", "Name", "X", "Y"}),
	)
	for i, c := range cities {
		table.Append([]string{
			fmt.Sprintf("%d", i+1),
			string(c.CityID),
			c.CityName,
			fmt.Sprintf("%.0f", c.Position.X),
			fmt.Sprintf("%.0f", c.Position.Y),
		})
	}
	table.Render()
}

func renderDefects(w io.Writer, defects []geo.Defect) {
	color.New(color.FgRed, color.Bold).Fprintf(w, "✗ %d atlas defects\n", len(defects))
	table := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"Country", "Direction", "City", "Other", "Problem"}),
	)
	for _, d := range defects {
		table.Append([]string{
			string(d.Country),
			orDash(d.Direction.String()),
			orDash(string(d.City)),
			orDash(d.Other),
			string(d.Problem),
		})
	}
	table.Render()
}

func renderAsymmetries(w io.Writer, asym []geo.Asymmetry) {
	table := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"Country", "Neighbor", "Direction", "Reverse"}),
	)
	for _, s := range asym {
		table.Append([]string{
			string(s.Country),
			string(s.Neighbor),
			s.Direction.String(),
			orDash(s.Reverse.String()),
		})
	}
	table.Render()
}
