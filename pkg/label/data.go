package label

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/matzehuels/labelkit/pkg/errors"
)

// MaxLineItems caps the number of line items kept from input data.
// The items table renders at most [MaxTableRows] of them.
const MaxLineItems = 50

// MaxTableRows is the number of data rows the items table renders.
const MaxTableRows = 5

// LineItem is one row of the items table.
type LineItem struct {
	SKU         string `json:"sku"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	Weight      string `json:"weight,omitempty"`
	Price       string `json:"price,omitempty"`
}

// Cell returns the text of the column rendered for a table field.
func (it LineItem) Cell(key FieldKey) string {
	switch key {
	case "items.sku":
		return it.SKU
	case "items.description":
		return it.Description
	case "items.qty":
		if it.Quantity == 0 {
			return ""
		}
		return strconv.Itoa(it.Quantity)
	case "items.weight":
		return it.Weight
	case "items.price":
		return it.Price
	}
	return ""
}

// LabelData is the externally supplied content of a label.
type LabelData struct {
	Fields map[string]string `json:"fields"`
	Items  []LineItem        `json:"items,omitempty"`
}

// Value returns a content value. Missing values are empty strings.
func (d LabelData) Value(key string) string {
	return d.Fields[key]
}

// TableRows returns the items the table renders.
func (d LabelData) TableRows() []LineItem {
	if len(d.Items) > MaxTableRows {
		return d.Items[:MaxTableRows]
	}
	return d.Items
}

// ReadData decodes label data from JSON and caps the line items.
func ReadData(r io.Reader) (LabelData, error) {
	var d LabelData
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return LabelData{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode label data")
	}
	if d.Fields == nil {
		d.Fields = map[string]string{}
	}
	if len(d.Items) > MaxLineItems {
		d.Items = d.Items[:MaxLineItems]
	}
	return d, nil
}

// LoadData reads label data from a JSON file.
func LoadData(path string) (LabelData, error) {
	f, err := os.Open(path)
	if err != nil {
		return LabelData{}, errors.Wrap(errors.ErrCodeNotFound, err, "open %s", path)
	}
	defer f.Close()
	return ReadData(f)
}

// DimensionalWeight parses a "L x W x H" dimension string in centimetres and
// returns the volumetric weight in kilograms (L*W*H / 5000). Unparseable or
// non-positive or non-finite input reports false.
func DimensionalWeight(dims string) (float64, bool) {
	norm := strings.NewReplacer("×", "x", "*", "x", "X", "x").Replace(dims)
	parts := strings.Split(norm, "x")
	if len(parts) != 3 {
		return 0, false
	}
	vol := 1.0
	for _, p := range parts {
		p = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(p), "cm"))
		v, err := strconv.ParseFloat(p, 64)
		if err != nil || v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false
		}
		vol *= v
	}
	if math.IsInf(vol, 0) {
		return 0, false
	}
	return vol / 5000, true
}

// FormatDimensionalWeight formats a dimension string as a weight with one
// decimal, or returns "" when it cannot be parsed.
func FormatDimensionalWeight(dims string) string {
	w, ok := DimensionalWeight(dims)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%.1f kg", w)
}
