package label

import (
	"strings"
	"testing"

	"github.com/matzehuels/labelkit/pkg/errors"
)

func TestDefaultStateValid(t *testing.T) {
	s := DefaultState()
	if err := ValidateState(s); err != nil {
		t.Fatalf("default state invalid: %v", err)
	}
	if got := s.TotalHeight(); got != ContentHeight {
		t.Errorf("default heights sum to %v, want %v", got, ContentHeight)
	}
	if len(s.Fields) != len(Fields()) {
		t.Errorf("fields = %d, want %d", len(s.Fields), len(Fields()))
	}
}

func TestTopIsSumOfPrecedingHeights(t *testing.T) {
	s := DefaultState()
	s = Reduce(s, ResizeSection{Section: SectionSender, Height: 100})
	s = Reduce(s, ResizeSection{Section: SectionRecipient, Height: 150})
	s = Reduce(s, ResizeSection{Section: SectionBarcode, Height: 80})

	want := map[SectionKey]float64{SectionSender: 0, SectionRecipient: 100, SectionBarcode: 250}
	for k, top := range want {
		if got := s.Top(k); got != top {
			t.Errorf("Top(%s) = %v, want %v", k, got, top)
		}
	}

	s = Reduce(s, ReorderSections{Order: []SectionKey{
		SectionBarcode, SectionSender, SectionRecipient, SectionItems, SectionDisclaimer,
	}})
	want = map[SectionKey]float64{SectionBarcode: 0, SectionSender: 80, SectionRecipient: 180}
	for k, top := range want {
		if got := s.Top(k); got != top {
			t.Errorf("after reorder Top(%s) = %v, want %v", k, got, top)
		}
	}
}

func TestCheckPermutation(t *testing.T) {
	tests := []struct {
		name    string
		order   []SectionKey
		wantErr bool
	}{
		{"default", SectionKeys(), false},
		{"reversed", []SectionKey{SectionDisclaimer, SectionItems, SectionBarcode, SectionRecipient, SectionSender}, false},
		{"missing", []SectionKey{SectionSender, SectionRecipient, SectionBarcode, SectionItems}, true},
		{"duplicate", []SectionKey{SectionSender, SectionSender, SectionBarcode, SectionItems, SectionDisclaimer}, true},
		{"unknown", []SectionKey{SectionSender, "footer", SectionBarcode, SectionItems, SectionDisclaimer}, true},
		{"empty", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckPermutation(tt.order)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CheckPermutation() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidOrder) {
				t.Errorf("error code = %s, want %s", errors.GetCode(err), errors.ErrCodeInvalidOrder)
			}
		})
	}
}

func TestValidateStateRejectsBadHeights(t *testing.T) {
	s := DefaultState().Clone()
	s.SectionHeights[SectionItems] = 0
	if err := ValidateState(s); !errors.Is(err, errors.ErrCodeInvalidSection) {
		t.Errorf("ValidateState() = %v, want INVALID_SECTION", err)
	}

	s = DefaultState().Clone()
	s.Fields["bogus.field"] = FieldState{Visible: true, FontSize: 8}
	if err := ValidateState(s); !errors.Is(err, errors.ErrCodeInvalidField) {
		t.Errorf("ValidateState() = %v, want INVALID_FIELD", err)
	}
}

func TestCloneIsDeep(t *testing.T) {
	a := DefaultState()
	b := a.Clone()
	b.SectionOrder[0] = SectionItems
	b.SectionHeights[SectionSender] = 1
	b.Fields["sender.name"] = FieldState{}

	if a.SectionOrder[0] != SectionSender {
		t.Error("clone shares section order")
	}
	if a.SectionHeights[SectionSender] != 100 {
		t.Error("clone shares section heights")
	}
	if !a.Fields["sender.name"].Visible {
		t.Error("clone shares fields")
	}
}

func TestFieldsIn(t *testing.T) {
	cols := FieldsIn(SectionItems, ColumnTable)
	if len(cols) != 5 {
		t.Fatalf("table columns = %d, want 5", len(cols))
	}
	var sum float64
	for _, c := range cols {
		sum += c.Weight
	}
	if sum < 0.999 || sum > 1.001 {
		t.Errorf("table weights sum to %v, want 1", sum)
	}

	right := FieldsIn(SectionSender, ColumnRight)
	if len(right) == 0 || right[0].Key != "sender.logo" {
		t.Errorf("sender right column = %v", right)
	}
}

func TestFieldSpecText(t *testing.T) {
	data := LabelData{Fields: map[string]string{"recipient_phone": "555-0100"}}

	phone, _ := Field("recipient.phone")
	if got := phone.Text(data); got != "Tel: 555-0100" {
		t.Errorf("Text() = %q", got)
	}

	name, _ := Field("recipient.name")
	if got := name.Text(data); got != "" {
		t.Errorf("missing value should render empty, got %q", got)
	}

	caption, _ := Field("recipient.caption")
	if got := caption.Text(data); got != "SHIP TO:" {
		t.Errorf("caption Text() = %q", got)
	}
}

func TestReadData(t *testing.T) {
	var b strings.Builder
	b.WriteString(`{"fields":{"recipient_name":"Ada"},"items":[`)
	for i := 0; i < MaxLineItems+10; i++ {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(`{"sku":"A","quantity":1}`)
	}
	b.WriteString("]}")

	d, err := ReadData(strings.NewReader(b.String()))
	if err != nil {
		t.Fatalf("ReadData() error: %v", err)
	}
	if d.Value("recipient_name") != "Ada" {
		t.Errorf("recipient_name = %q", d.Value("recipient_name"))
	}
	if len(d.Items) != MaxLineItems {
		t.Errorf("items = %d, want %d", len(d.Items), MaxLineItems)
	}
	if len(d.TableRows()) != MaxTableRows {
		t.Errorf("table rows = %d, want %d", len(d.TableRows()), MaxTableRows)
	}

	if _, err := ReadData(strings.NewReader("{")); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("malformed JSON error = %v, want INVALID_FORMAT", err)
	}
}

func TestDimensionalWeight(t *testing.T) {
	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{"50x40x30", 12, true},
		{"50 x 40 x 30 cm", 12, true},
		{"10×10×50", 1, true},
		{"10*20*25", 1, true},
		{"", 0, false},
		{"50x40", 0, false},
		{"axbxc", 0, false},
		{"10x-2x5", 0, false},
		{"10x0x5", 0, false},
		{"inf x 1 x 1", 0, false},
		{"10xNaNx5", 0, false},
		{"1e200x1e200x1", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := DimensionalWeight(tt.in)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("DimensionalWeight(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}

	if got := FormatDimensionalWeight("50x40x30"); got != "12.0 kg" {
		t.Errorf("FormatDimensionalWeight() = %q", got)
	}
	if got := FormatDimensionalWeight("n/a"); got != "" {
		t.Errorf("FormatDimensionalWeight(n/a) = %q, want empty", got)
	}
}
