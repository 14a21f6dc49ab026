package editor

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/labelkit/pkg/errors"
	"github.com/matzehuels/labelkit/pkg/interact"
	"github.com/matzehuels/labelkit/pkg/label"
)

func newEditor(t *testing.T, opts ...Option) *Editor {
	t.Helper()
	data := label.LabelData{Fields: map[string]string{
		"recipient_name":  "Ada Lovelace",
		"tracking_number": "1Z999AA10123456784",
	}}
	e, err := New(label.DefaultState(), data, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e
}

func TestNewRejectsInvalidState(t *testing.T) {
	if _, err := New(label.EditorState{}, label.LabelData{}); !errors.Is(err, errors.ErrCodeInvalidOrder) {
		t.Errorf("New() error = %v, want INVALID_ORDER", err)
	}
}

func TestDispatchRebuildsScene(t *testing.T) {
	e := newEditor(t)
	before := e.Scene()
	n := e.Rebuilds()

	e.Dispatch(label.ResizeSection{Section: label.SectionSender, Height: 120})
	if e.Scene() == before {
		t.Error("scene was not replaced")
	}
	if e.Rebuilds() != n+1 {
		t.Errorf("rebuilds = %d, want %d", e.Rebuilds(), n+1)
	}
	if got := e.Scene().Section(label.SectionRecipient).Y; got != label.BorderWidth+120 {
		t.Errorf("recipient y = %v, want %v", got, label.BorderWidth+120)
	}
}

func TestApplyValidates(t *testing.T) {
	e := newEditor(t)
	n := e.Rebuilds()
	err := e.Apply(label.ReorderSections{Order: []label.SectionKey{label.SectionSender}})
	if !errors.Is(err, errors.ErrCodeInvalidOrder) {
		t.Errorf("Apply() error = %v, want INVALID_ORDER", err)
	}
	if e.Rebuilds() != n {
		t.Error("invalid action triggered a rebuild")
	}
	if err := e.Apply(label.SetFontSize{Field: "recipient.name", Size: 20}); err != nil {
		t.Errorf("Apply() error = %v", err)
	}
	if e.State().Field("recipient.name").FontSize != 20 {
		t.Error("font size not applied")
	}
}

func TestPointerDragThroughEditor(t *testing.T) {
	e := newEditor(t)

	// items spans 370..510 by default; drag it to the top
	e.PointerMove(100, 400)
	e.PointerDown(100, 400)
	if e.Controller().Mode() != interact.Dragging {
		t.Fatalf("mode = %v", e.Controller().Mode())
	}
	e.PointerMove(100, 0)
	e.PointerUp(100, 0)

	if got := e.State().SectionOrder[0]; got != label.SectionItems {
		t.Errorf("first section = %s, want items", got)
	}
	if got := e.Scene().Section(label.SectionItems).Y; got != label.BorderWidth {
		t.Errorf("items y = %v, want snapped to %v", got, label.BorderWidth)
	}
}

func TestExportReflectsState(t *testing.T) {
	e := newEditor(t)
	e.Dispatch(label.ToggleField{Field: "recipient.name", Visible: false})
	doc := e.Export()
	for _, el := range doc.Elements {
		if el.Field == "recipient.name" {
			t.Error("hidden field exported")
		}
	}
	if len(doc.Sections.Order) != len(label.SectionKeys()) {
		t.Errorf("order = %v", doc.Sections.Order)
	}
}

func TestSetData(t *testing.T) {
	e := newEditor(t)
	e.SetData(label.LabelData{Fields: map[string]string{"recipient_name": "Grace Hopper"}})
	var found bool
	for _, el := range e.Export().Elements {
		if el.Field == "recipient.name" && el.Text == "Grace Hopper" {
			found = true
		}
	}
	if !found {
		t.Error("new data not rendered")
	}
}

func TestLoggerReceivesDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	e := newEditor(t, WithLogger(logger))
	e.Dispatch(label.ToggleField{Field: "sender.phone", Visible: true})
	if !bytes.Contains(buf.Bytes(), []byte("toggleField")) {
		t.Errorf("log missing dispatched action:\n%s", buf.String())
	}
	if !bytes.Contains(buf.Bytes(), []byte("rebuilt scene")) {
		t.Errorf("log missing rebuild:\n%s", buf.String())
	}
}
