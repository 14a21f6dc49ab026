package label

import "maps"

// Section keys. The set is fixed; only order and heights vary.
const (
	SectionSender     SectionKey = "sender"
	SectionRecipient  SectionKey = "recipient"
	SectionBarcode    SectionKey = "barcode"
	SectionItems      SectionKey = "items"
	SectionDisclaimer SectionKey = "disclaimer"
)

// Layout names the sub-layout the layout engine applies to a section.
type Layout string

const (
	LayoutTwoColumn  Layout = "two-column"
	LayoutBarcode    Layout = "barcode"
	LayoutTable      Layout = "table"
	LayoutDisclaimer Layout = "disclaimer"
)

// Column places a field inside its section's sub-layout.
type Column int

const (
	ColumnLeft Column = iota
	ColumnRight
	ColumnTable
	ColumnFull
)

// Content describes what a field renders as.
type Content string

const (
	ContentText      Content = "text"
	ContentImage     Content = "image"
	ContentBars      Content = "bars"
	ContentParagraph Content = "paragraph"
	ContentColumn    Content = "column"
)

// SectionSpec describes one fixed section.
type SectionSpec struct {
	Key           SectionKey
	Layout        Layout
	Title         string
	DefaultHeight float64
}

// FieldSpec describes one fixed field and where its content comes from.
type FieldSpec struct {
	Key     FieldKey
	Section SectionKey
	Column  Column
	Content Content

	// DataKey names the LabelData entry rendered into the field.
	// Captions have no data key and render Caption instead.
	DataKey string
	Caption string
	Prefix  string

	// Weight is the base width weight of a table column.
	Weight float64
	Bold   bool

	DefaultSize    float64
	DefaultVisible bool
}

// Text returns the rendered text for a plain text field.
func (f FieldSpec) Text(data LabelData) string {
	if f.DataKey == "" {
		return f.Caption
	}
	v := data.Value(f.DataKey)
	if v == "" {
		return ""
	}
	return f.Prefix + v
}

var sectionCatalog = []SectionSpec{
	{Key: SectionSender, Layout: LayoutTwoColumn, Title: "Sender", DefaultHeight: 100},
	{Key: SectionRecipient, Layout: LayoutTwoColumn, Title: "Recipient", DefaultHeight: 140},
	{Key: SectionBarcode, Layout: LayoutBarcode, Title: "Tracking", DefaultHeight: 110},
	{Key: SectionItems, Layout: LayoutTable, Title: "Items", DefaultHeight: 140},
	{Key: SectionDisclaimer, Layout: LayoutDisclaimer, Title: "Disclaimer", DefaultHeight: 70},
}

var fieldCatalog = []FieldSpec{
	// sender: from-address | logo + service
	{Key: "sender.caption", Section: SectionSender, Column: ColumnLeft, Content: ContentText, Caption: "FROM:", Bold: true, DefaultSize: 8, DefaultVisible: true},
	{Key: "sender.name", Section: SectionSender, Column: ColumnLeft, Content: ContentText, DataKey: "sender_name", Bold: true, DefaultSize: 11, DefaultVisible: true},
	{Key: "sender.company", Section: SectionSender, Column: ColumnLeft, Content: ContentText, DataKey: "sender_company", DefaultSize: 9, DefaultVisible: true},
	{Key: "sender.street", Section: SectionSender, Column: ColumnLeft, Content: ContentText, DataKey: "sender_street", DefaultSize: 9, DefaultVisible: true},
	{Key: "sender.city", Section: SectionSender, Column: ColumnLeft, Content: ContentText, DataKey: "sender_city", DefaultSize: 9, DefaultVisible: true},
	{Key: "sender.phone", Section: SectionSender, Column: ColumnLeft, Content: ContentText, DataKey: "sender_phone", Prefix: "Tel: ", DefaultSize: 8, DefaultVisible: false},
	{Key: "sender.logo", Section: SectionSender, Column: ColumnRight, Content: ContentImage, DataKey: "logo", DefaultSize: 28, DefaultVisible: true},
	{Key: "service.name", Section: SectionSender, Column: ColumnRight, Content: ContentText, DataKey: "service", Bold: true, DefaultSize: 14, DefaultVisible: true},
	{Key: "service.date", Section: SectionSender, Column: ColumnRight, Content: ContentText, DataKey: "ship_date", Prefix: "Shipped: ", DefaultSize: 8, DefaultVisible: true},

	// recipient: to-address | order reference
	{Key: "recipient.caption", Section: SectionRecipient, Column: ColumnLeft, Content: ContentText, Caption: "SHIP TO:", Bold: true, DefaultSize: 8, DefaultVisible: true},
	{Key: "recipient.name", Section: SectionRecipient, Column: ColumnLeft, Content: ContentText, DataKey: "recipient_name", Bold: true, DefaultSize: 14, DefaultVisible: true},
	{Key: "recipient.company", Section: SectionRecipient, Column: ColumnLeft, Content: ContentText, DataKey: "recipient_company", DefaultSize: 11, DefaultVisible: true},
	{Key: "recipient.street", Section: SectionRecipient, Column: ColumnLeft, Content: ContentText, DataKey: "recipient_street", DefaultSize: 11, DefaultVisible: true},
	{Key: "recipient.city", Section: SectionRecipient, Column: ColumnLeft, Content: ContentText, DataKey: "recipient_city", DefaultSize: 11, DefaultVisible: true},
	{Key: "recipient.country", Section: SectionRecipient, Column: ColumnLeft, Content: ContentText, DataKey: "recipient_country", Bold: true, DefaultSize: 11, DefaultVisible: true},
	{Key: "recipient.phone", Section: SectionRecipient, Column: ColumnLeft, Content: ContentText, DataKey: "recipient_phone", Prefix: "Tel: ", DefaultSize: 9, DefaultVisible: true},
	{Key: "order.number", Section: SectionRecipient, Column: ColumnRight, Content: ContentText, DataKey: "order_number", Prefix: "Order #", Bold: true, DefaultSize: 10, DefaultVisible: true},
	{Key: "order.weight", Section: SectionRecipient, Column: ColumnRight, Content: ContentText, DataKey: "weight", Prefix: "Weight: ", DefaultSize: 9, DefaultVisible: true},
	{Key: "order.dimWeight", Section: SectionRecipient, Column: ColumnRight, Content: ContentText, DataKey: "package_dimensions", Prefix: "Dim. wt: ", DefaultSize: 9, DefaultVisible: true},

	// barcode
	{Key: "barcode.bars", Section: SectionBarcode, Column: ColumnFull, Content: ContentBars, DataKey: "tracking_number", DefaultSize: 10, DefaultVisible: true},
	{Key: "barcode.text", Section: SectionBarcode, Column: ColumnFull, Content: ContentText, DataKey: "tracking_number", DefaultSize: 12, DefaultVisible: true},

	// items table
	{Key: "items.sku", Section: SectionItems, Column: ColumnTable, Content: ContentColumn, Caption: "SKU", Weight: 0.2, DefaultSize: 8, DefaultVisible: true},
	{Key: "items.description", Section: SectionItems, Column: ColumnTable, Content: ContentColumn, Caption: "Description", Weight: 0.4, DefaultSize: 8, DefaultVisible: true},
	{Key: "items.qty", Section: SectionItems, Column: ColumnTable, Content: ContentColumn, Caption: "Qty", Weight: 0.1, DefaultSize: 8, DefaultVisible: true},
	{Key: "items.weight", Section: SectionItems, Column: ColumnTable, Content: ContentColumn, Caption: "Weight", Weight: 0.15, DefaultSize: 8, DefaultVisible: true},
	{Key: "items.price", Section: SectionItems, Column: ColumnTable, Content: ContentColumn, Caption: "Price", Weight: 0.15, DefaultSize: 8, DefaultVisible: true},

	// disclaimer
	{Key: "disclaimer.text", Section: SectionDisclaimer, Column: ColumnFull, Content: ContentParagraph, DataKey: "disclaimer", DefaultSize: 7, DefaultVisible: true},
}

var (
	sectionIndex = indexSections(sectionCatalog)
	fieldIndex   = indexFields(fieldCatalog)
)

func indexSections(specs []SectionSpec) map[SectionKey]int {
	idx := make(map[SectionKey]int, len(specs))
	for i, s := range specs {
		idx[s.Key] = i
	}
	return idx
}

func indexFields(specs []FieldSpec) map[FieldKey]int {
	idx := make(map[FieldKey]int, len(specs))
	for i, f := range specs {
		idx[f.Key] = i
	}
	return idx
}

// SectionKeys returns the fixed section keys in default order.
func SectionKeys() []SectionKey {
	keys := make([]SectionKey, len(sectionCatalog))
	for i, s := range sectionCatalog {
		keys[i] = s.Key
	}
	return keys
}

// Sections returns the section catalog in default order.
func Sections() []SectionSpec {
	out := make([]SectionSpec, len(sectionCatalog))
	copy(out, sectionCatalog)
	return out
}

// Section looks up a section spec by key.
func Section(key SectionKey) (SectionSpec, bool) {
	i, ok := sectionIndex[key]
	if !ok {
		return SectionSpec{}, false
	}
	return sectionCatalog[i], true
}

// Fields returns the field catalog in declaration order.
func Fields() []FieldSpec {
	out := make([]FieldSpec, len(fieldCatalog))
	copy(out, fieldCatalog)
	return out
}

// Field looks up a field spec by key.
func Field(key FieldKey) (FieldSpec, bool) {
	i, ok := fieldIndex[key]
	if !ok {
		return FieldSpec{}, false
	}
	return fieldCatalog[i], true
}

// FieldsIn returns the fields of one section and column in declaration order.
func FieldsIn(section SectionKey, column Column) []FieldSpec {
	var out []FieldSpec
	for _, f := range fieldCatalog {
		if f.Section == section && f.Column == column {
			out = append(out, f)
		}
	}
	return out
}

// DefaultState returns the state a new editor starts with.
func DefaultState() EditorState {
	s := EditorState{
		SectionOrder:   SectionKeys(),
		SectionHeights: make(map[SectionKey]float64, len(sectionCatalog)),
		Fields:         make(map[FieldKey]FieldState, len(fieldCatalog)),
	}
	for _, sec := range sectionCatalog {
		s.SectionHeights[sec.Key] = sec.DefaultHeight
	}
	for _, f := range fieldCatalog {
		s.Fields[f.Key] = FieldState{Visible: f.DefaultVisible, FontSize: f.DefaultSize}
	}
	return s
}

// DefaultHeights returns a copy of the default section heights.
func DefaultHeights() map[SectionKey]float64 {
	return maps.Clone(DefaultState().SectionHeights)
}
