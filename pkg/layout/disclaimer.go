package layout

import (
	"strings"

	"github.com/matzehuels/labelkit/pkg/label"
	"github.com/matzehuels/labelkit/pkg/scene"
)

// Wrap breaks text into lines no wider than width, splitting on whitespace.
// A single word wider than width gets a line of its own. Explicit newlines
// start a new line.
func Wrap(m Measurer, text string, size float64, width float64) []string {
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			candidate := line + " " + w
			if m.TextWidth(candidate, size, false) <= width {
				line = candidate
				continue
			}
			lines = append(lines, line)
			line = w
		}
		lines = append(lines, line)
	}
	return lines
}

// disclaimer wraps the long-form text into a box as wide as the section.
// The box height is clamped to the room left in the section; the content is
// kept in full and the node is flagged as overflowing.
func (b *builder) disclaimer(sec *scene.Node, key label.SectionKey, height float64) {
	for _, f := range label.FieldsIn(key, label.ColumnFull) {
		fs := b.state.Field(f.Key)
		if !fs.Visible || f.Content != label.ContentParagraph {
			continue
		}
		width := label.ContentWidth - 2*InnerPadding
		lines := Wrap(b.measure, f.Text(b.data), fs.FontSize, width)
		content := float64(len(lines)) * LineHeight(fs.FontSize)
		room := max(0, height-2*InnerPadding)

		sec.Add(&scene.Node{
			Kind:     scene.KindTextbox,
			Role:     scene.RoleDisclaimer,
			Section:  key,
			Field:    f.Key,
			X:        InnerPadding,
			Y:        InnerPadding,
			W:        width,
			H:        min(content, room),
			Text:     f.Text(b.data),
			Lines:    lines,
			Overflow: content > room,
			Style: scene.Style{
				Fill:       colorMuted,
				FontSize:   fs.FontSize,
				FontWeight: "normal",
				Anchor:     scene.AnchorLeft,
			},
		})
	}
}
