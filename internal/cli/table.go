package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ferris/pkg/circle"
	"github.com/matzehuels/ferris/pkg/config"
	"github.com/matzehuels/ferris/pkg/geom"
	"github.com/matzehuels/ferris/pkg/wheel"
)

// tableCommand creates the table command that dumps the circle points.
func (c *CLI) tableCommand() *cobra.Command {
	var (
		wf     wheelFlags
		every  int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "table",
		Short: "Print the precomputed circle points",
		Long: `Print the points the capsule centers travel along. Index 0 is the
rightmost point of the circle and indices grow clockwise on screen.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if every < 1 {
				return fmt.Errorf("--every must be at least 1, got %d", every)
			}
			cfg, err := c.loadConfig(cmd, &wf)
			if err != nil {
				return err
			}
			tbl, err := buildTable(cfg)
			if err != nil {
				return err
			}
			if asJSON {
				return writeTableJSON(cmd.OutOrStdout(), tbl, every)
			}

			printKeyValue("Radius", strconv.Itoa(tbl.Radius()))
			printKeyValue("Origin", fmt.Sprintf("%d,%d", tbl.Origin().X, tbl.Origin().Y))
			printKeyValue("Quadrants", strconv.Itoa(tbl.Quadrants()))
			printKeyValue("Points", strconv.Itoa(tbl.Len()))
			printKeyValue("Circular", strconv.FormatBool(tbl.Circular()))
			fmt.Fprintln(cmd.OutOrStdout(), pointTable(tbl, every))
			return nil
		},
	}

	wf.register(cmd)
	cmd.Flags().IntVar(&every, "every", 50, "print every n-th point")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the sampled points as JSON")
	return cmd
}

// buildTable builds the table for cfg, picking quadrants from the origin
// when none are configured.
func buildTable(cfg *config.Config) (*circle.Table, error) {
	q := cfg.Circle.Quadrants
	if q == 0 {
		q = wheel.AutoQuadrants(cfg.Circle.Origin())
	}
	return circle.Build(cfg.Circle.Radius, cfg.Circle.Origin(), q)
}

type tablePoint struct {
	Index int `json:"index"`
	geom.Point
}

// sample returns every n-th point plus the last one.
func sample(tbl *circle.Table, every int) []tablePoint {
	var out []tablePoint
	last := tbl.Len() - 1
	for i, p := range tbl.All() {
		if i%every == 0 || i == last {
			out = append(out, tablePoint{Index: i, Point: p})
		}
	}
	return out
}

func writeTableJSON(w io.Writer, tbl *circle.Table, every int) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(sample(tbl, every))
}

func pointTable(tbl *circle.Table, every int) string {
	var rows [][]string
	for _, p := range sample(tbl, every) {
		rows = append(rows, []string{strconv.Itoa(p.Index), strconv.Itoa(p.X), strconv.Itoa(p.Y)})
	}
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Index", "X", "Y").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorGray)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		}).
		Render()
}
