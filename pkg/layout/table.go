package layout

import (
	"math"

	"github.com/matzehuels/labelkit/pkg/label"
	"github.com/matzehuels/labelkit/pkg/scene"
)

const eps = 1e-9

// ColumnWidths distributes available width over columns in proportion to
// their base weights: width_i = weight_i / Σweights × available. The result
// always fills the available width exactly, however many columns there are.
func ColumnWidths(weights []float64, available float64) []float64 {
	var sum float64
	for _, w := range weights {
		sum += w
	}
	widths := make([]float64, len(weights))
	if sum < eps {
		return widths
	}
	for i, w := range weights {
		widths[i] = w / sum * available
	}
	// absorb rounding error in the last column
	if n := len(widths); n > 0 {
		var total float64
		for _, w := range widths[:n-1] {
			total += w
		}
		if rest := available - total; math.Abs(rest-widths[n-1]) > eps {
			widths[n-1] = rest
		}
	}
	return widths
}

func (b *builder) table(sec *scene.Node, key label.SectionKey) {
	var cols []label.FieldSpec
	for _, f := range label.FieldsIn(key, label.ColumnTable) {
		if b.state.Field(f.Key).Visible {
			cols = append(cols, f)
		}
	}
	// Whole rows only: rows that would cross the bottom padding are dropped.
	fit := int((b.state.Height(key) - 2*InnerPadding + eps) / RowHeight)
	if len(cols) == 0 || fit < 1 {
		return
	}
	rows := b.data.TableRows()
	rows = rows[:min(len(rows), fit-1)]

	avail := label.ContentWidth - 2*InnerPadding
	weights := make([]float64, len(cols))
	for i, c := range cols {
		weights[i] = c.Weight
	}
	widths := ColumnWidths(weights, avail)

	x := InnerPadding
	for i, c := range cols {
		size := b.state.Field(c.Key).FontSize
		w := widths[i]
		text := Truncate(b.measure, c.Caption, size, true, w-2*cellPadding)
		sec.Add(b.text(text, size, true, x+cellPadding, InnerPadding+(RowHeight-size)/2, scene.AnchorLeft,
			scene.RoleTableHeader, c.Key))

		for r, item := range rows {
			rowY := InnerPadding + RowHeight*float64(r+1)
			cell := Truncate(b.measure, item.Cell(c.Key), size, false, w-2*cellPadding)
			sec.Add(b.text(cell, size, false, x+cellPadding, rowY+(RowHeight-size)/2, scene.AnchorLeft,
				scene.RoleTableCell, c.Key))
		}
		x += w
	}

	sec.Add(&scene.Node{
		Kind:    scene.KindLine,
		Role:    scene.RoleTableRule,
		Section: key,
		X:       InnerPadding,
		Y:       InnerPadding + RowHeight,
		X2:      avail,
		Style:   scene.Style{Stroke: colorInk, StrokeWidth: 1},
	})
}
