// Package barcode synthesizes the decorative tracking barcode drawn on labels.
//
// The output is a visual placeholder, not a scannable symbology. The only
// guarantees are determinism (the same code always yields the same widths)
// and a stable visual density. Widths come from a small fixed table of
// patterns over the alphabet {1, 2, 3}; each character selects a pattern by
// its value and its position, and the whole run is framed by guard bars.
//
//	p := barcode.Synthesize("1Z999AA10123456784")
//	scale := p.Scale(300)
//	for i, w := range p.Widths {
//	    if barcode.IsBar(i) {
//	        drawBar(x, w*scale)
//	    }
//	    x += w * scale
//	}
package barcode

// patterns holds ten six-element width patterns. Every pattern sums to 11
// units and starts with a bar, so consecutive characters alternate cleanly.
var patterns = [10][6]int{
	{2, 1, 2, 2, 2, 2},
	{2, 2, 2, 1, 2, 2},
	{2, 2, 2, 2, 2, 1},
	{1, 2, 1, 2, 2, 3},
	{1, 2, 1, 3, 2, 2},
	{1, 3, 1, 2, 2, 2},
	{1, 2, 2, 2, 1, 3},
	{1, 2, 2, 3, 1, 2},
	{1, 3, 2, 2, 1, 2},
	{2, 2, 1, 2, 1, 3},
}

var (
	startGuard = []int{2, 1, 1, 2}
	stopGuard  = []int{2, 3, 3, 1, 1, 1, 2}
)

// Pattern is a run of alternating bar and gap widths in units.
type Pattern struct {
	Code   string
	Widths []int
}

// Synthesize returns the width pattern of a code. An empty code yields only
// the guard bars.
func Synthesize(code string) Pattern {
	widths := make([]int, 0, len(startGuard)+6*len(code)+len(stopGuard))
	widths = append(widths, startGuard...)
	for pos, r := range []rune(code) {
		widths = append(widths, patterns[index(r, pos)][:]...)
	}
	widths = append(widths, stopGuard...)
	return Pattern{Code: code, Widths: widths}
}

func index(r rune, pos int) int {
	i := (int(r) + pos) % len(patterns)
	if i < 0 {
		i += len(patterns)
	}
	return i
}

// Units returns the total width of the pattern in units.
func (p Pattern) Units() int {
	var sum int
	for _, w := range p.Widths {
		sum += w
	}
	return sum
}

// Scale returns the uniform factor that stretches the pattern to target.
func (p Pattern) Scale(target float64) float64 {
	u := p.Units()
	if u == 0 {
		return 0
	}
	return target / float64(u)
}

// Scaled returns the widths multiplied by the factor that fits target.
func (p Pattern) Scaled(target float64) []float64 {
	s := p.Scale(target)
	out := make([]float64, len(p.Widths))
	for i, w := range p.Widths {
		out[i] = float64(w) * s
	}
	return out
}

// IsBar reports whether the i-th width is a filled bar. Even entries are
// bars, odd entries are gaps.
func IsBar(i int) bool { return i%2 == 0 }
