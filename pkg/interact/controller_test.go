package interact

import (
	"testing"

	"github.com/matzehuels/labelkit/pkg/label"
	"github.com/matzehuels/labelkit/pkg/layout"
	"github.com/matzehuels/labelkit/pkg/scene"
)

type fakeHost struct {
	store      *label.Store
	graph      *scene.Graph
	dispatched []label.Action
	rebuilds   int
}

func newHost(t *testing.T, heights map[label.SectionKey]float64) *fakeHost {
	t.Helper()
	s := label.DefaultState()
	for k, h := range heights {
		s = label.Reduce(s, label.ResizeSection{Section: k, Height: h})
	}
	h := &fakeHost{store: label.NewStore(s)}
	h.graph = layout.Build(h.store.State(), label.LabelData{})
	return h
}

func (h *fakeHost) Scene() *scene.Graph      { return h.graph }
func (h *fakeHost) State() label.EditorState { return h.store.State() }
func (h *fakeHost) Dispatch(a label.Action) {
	h.dispatched = append(h.dispatched, a)
	h.store.Dispatch(a)
	h.graph = layout.Build(h.store.State(), label.LabelData{})
}
func (h *fakeHost) Rebuild() {
	h.rebuilds++
	h.graph = layout.Build(h.store.State(), label.LabelData{})
}

func (h *fakeHost) top(k label.SectionKey) float64 {
	return h.graph.Section(k).Y - label.BorderWidth
}

func scenarioHeights() map[label.SectionKey]float64 {
	return map[label.SectionKey]float64{
		label.SectionSender:    100,
		label.SectionRecipient: 150,
		label.SectionBarcode:   80,
	}
}

func TestDragReordersSections(t *testing.T) {
	h := newHost(t, scenarioHeights())
	c := New(h)

	want := map[label.SectionKey]float64{label.SectionSender: 0, label.SectionRecipient: 100, label.SectionBarcode: 250}
	for k, top := range want {
		if got := h.top(k); got != top {
			t.Fatalf("initial top(%s) = %v, want %v", k, got, top)
		}
	}

	// barcode spans y 270..350 on the canvas; drag it above the sender
	c.PointerMove(100, 300)
	c.PointerDown(100, 300)
	if c.Mode() != Dragging || c.Active() != label.SectionBarcode {
		t.Fatalf("mode = %v on %q, want dragging barcode", c.Mode(), c.Active())
	}
	c.PointerMove(140, 10)
	sec := h.graph.Section(label.SectionBarcode)
	if sec.X != label.BorderWidth {
		t.Errorf("dragged x = %v, want locked to %v", sec.X, label.BorderWidth)
	}
	if sec.Y != -20 {
		t.Errorf("dragged y = %v, want -20", sec.Y)
	}
	c.PointerUp(140, 10)

	if c.Mode() != Idle {
		t.Errorf("mode after up = %v", c.Mode())
	}
	if len(h.dispatched) != 1 {
		t.Fatalf("dispatched %d actions, want 1", len(h.dispatched))
	}
	if _, ok := h.dispatched[0].(label.ReorderSections); !ok {
		t.Fatalf("dispatched %T, want ReorderSections", h.dispatched[0])
	}

	want = map[label.SectionKey]float64{label.SectionBarcode: 0, label.SectionSender: 80, label.SectionRecipient: 180}
	for k, top := range want {
		if got := h.top(k); got != top {
			t.Errorf("top(%s) = %v, want %v", k, got, top)
		}
	}

	// render z-order follows document order again
	secs := h.graph.Sections()
	for i, k := range h.State().SectionOrder {
		if secs[i].Section != k {
			t.Errorf("z-order[%d] = %s, want %s", i, secs[i].Section, k)
		}
	}
}

func TestDragWithoutOrderChangeIsNoop(t *testing.T) {
	h := newHost(t, scenarioHeights())
	c := New(h)

	c.PointerDown(100, 50)
	c.PointerMove(100, 70)
	c.PointerUp(100, 70)

	if len(h.dispatched) != 0 {
		t.Errorf("dispatched %v, want nothing", h.dispatched)
	}
	if h.rebuilds != 1 {
		t.Errorf("rebuilds = %d, want 1", h.rebuilds)
	}
	if h.top(label.SectionSender) != 0 {
		t.Errorf("sender did not snap back: top = %v", h.top(label.SectionSender))
	}
}

func TestReleaseOutsideCanvas(t *testing.T) {
	h := newHost(t, scenarioHeights())
	c := New(h)

	c.PointerDown(100, 150)
	c.PointerLeave()
	if c.Mode() != Dragging {
		t.Fatalf("leave ended the drag: mode = %v", c.Mode())
	}
	c.PointerMove(-40, 900)
	c.PointerUp(-40, 900)

	if c.Mode() != Idle || c.Active() != "" {
		t.Errorf("mode = %v on %q, want idle", c.Mode(), c.Active())
	}
	if err := label.ValidateState(h.State()); err != nil {
		t.Errorf("state inconsistent: %v", err)
	}
	order := h.State().SectionOrder
	if order[len(order)-1] != label.SectionRecipient {
		t.Errorf("order = %v, want recipient last", order)
	}
}

func TestHoverFeedback(t *testing.T) {
	h := newHost(t, nil)
	c := New(h)

	c.PointerMove(100, 30)
	if c.Mode() != Hovering || c.Active() != label.SectionSender {
		t.Fatalf("mode = %v on %q", c.Mode(), c.Active())
	}
	bg := scene.Background(h.graph.Section(label.SectionSender))
	if bg.Style.Stroke != HoverStyle.Stroke || len(bg.Style.Dash) == 0 {
		t.Errorf("hover style not applied: %+v", bg.Style)
	}
	secs := h.graph.Sections()
	if secs[len(secs)-1].Section != label.SectionSender {
		t.Error("hovered section not in front")
	}

	// moving to another section restores the first
	c.PointerMove(100, 150)
	if c.Active() != label.SectionRecipient {
		t.Errorf("active = %q, want recipient", c.Active())
	}
	if bg.Style.Stroke != layout.DefaultSectionStyle().Stroke || bg.Style.Dash != nil {
		t.Errorf("sender style not restored: %+v", bg.Style)
	}

	c.PointerLeave()
	if c.Mode() != Idle {
		t.Errorf("mode after leave = %v", c.Mode())
	}
	rbg := scene.Background(h.graph.Section(label.SectionRecipient))
	if rbg.Style.Dash != nil {
		t.Error("recipient style not restored on leave")
	}

	// border area is not a section
	c.PointerMove(5, 5)
	if c.Mode() != Idle {
		t.Errorf("hovering the border: mode = %v", c.Mode())
	}
}

func TestDragHighlightAndRestore(t *testing.T) {
	h := newHost(t, nil)
	c := New(h)

	c.PointerMove(100, 150)
	c.PointerDown(100, 150)
	bg := scene.Background(h.graph.Section(label.SectionRecipient))
	if bg.Style.Fill != DragFill {
		t.Errorf("drag fill = %q, want %q", bg.Style.Fill, DragFill)
	}

	// hovering other sections during a drag changes nothing
	c.PointerMove(100, 30)
	if c.Active() != label.SectionRecipient || c.Mode() != Dragging {
		t.Errorf("drag target changed to %q (%v)", c.Active(), c.Mode())
	}
	sender := scene.Background(h.graph.Section(label.SectionSender))
	if sender.Style.Dash != nil {
		t.Error("sender got hover style during drag")
	}

	var active int
	for _, s := range h.graph.Sections() {
		if b := scene.Background(s); b.Style.Fill == DragFill || b.Style.Dash != nil {
			active++
		}
	}
	if active != 1 {
		t.Errorf("%d sections active during drag, want 1", active)
	}
}

func TestPointerDownOutsideSections(t *testing.T) {
	h := newHost(t, nil)
	c := New(h)
	c.PointerDown(5, 5)
	if c.Mode() != Idle {
		t.Errorf("mode = %v, want idle", c.Mode())
	}
	c.PointerUp(5, 5)
	if h.rebuilds != 0 || len(h.dispatched) != 0 {
		t.Error("up without drag touched the host")
	}
}

func TestSyncAfterExternalRebuild(t *testing.T) {
	h := newHost(t, nil)
	c := New(h)
	c.PointerMove(100, 150)
	h.Dispatch(label.ToggleField{Field: "recipient.phone", Visible: false})
	c.Sync()

	bg := scene.Background(h.graph.Section(label.SectionRecipient))
	if bg.Style.Stroke != HoverStyle.Stroke {
		t.Error("hover not re-applied after rebuild")
	}
	c.PointerLeave()
	if bg.Style.Dash != nil {
		t.Error("style not restored after sync")
	}
}

func TestCandidateOrderStable(t *testing.T) {
	h := newHost(t, nil)
	order := h.State().SectionOrder
	got := CandidateOrder(h.graph, order)
	if !label.SameOrder(got, order) {
		t.Errorf("CandidateOrder() = %v, want %v", got, order)
	}

	h.graph.Section(label.SectionRecipient).Y = h.graph.Section(label.SectionSender).Y
	got = CandidateOrder(h.graph, order)
	if got[0] != label.SectionSender || got[1] != label.SectionRecipient {
		t.Errorf("ties reordered: %v", got)
	}
}
