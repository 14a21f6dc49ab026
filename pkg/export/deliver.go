package export

import (
	"context"
	"os"
	"path/filepath"

	"github.com/matzehuels/labelkit/pkg/errors"
)

// Opener shows an exported document in a new view and returns where it can
// be found. Opening may be refused, in which case delivery falls back to a
// file.
type Opener interface {
	Open(ctx context.Context, doc Document) (location string, err error)
}

// OpenerFunc adapts a function to [Opener].
type OpenerFunc func(ctx context.Context, doc Document) (string, error)

// Open implements Opener.
func (f OpenerFunc) Open(ctx context.Context, doc Document) (string, error) { return f(ctx, doc) }

// Delivery methods.
const (
	DeliveredView = "view"
	DeliveredFile = "file"
)

// Delivery describes where a document ended up.
type Delivery struct {
	Method   string
	Location string

	// Blocked is the opener's error when delivery fell back to a file.
	Blocked error
}

// Deliver opens the document in a view when an opener is available and
// falls back to writing it to fallbackPath when there is none or it refuses.
// A refused view is not an error.
func Deliver(ctx context.Context, doc Document, opener Opener, fallbackPath string) (Delivery, error) {
	var blocked error
	if opener != nil {
		loc, err := opener.Open(ctx, doc)
		if err == nil {
			return Delivery{Method: DeliveredView, Location: loc}, nil
		}
		blocked = err
	}

	if err := errors.ValidatePath(fallbackPath); err != nil {
		return Delivery{}, err
	}
	data, err := Marshal(doc)
	if err != nil {
		return Delivery{}, err
	}
	if dir := filepath.Dir(fallbackPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return Delivery{}, errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", dir)
		}
	}
	if err := os.WriteFile(fallbackPath, data, 0o644); err != nil {
		return Delivery{}, errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", fallbackPath)
	}
	return Delivery{Method: DeliveredFile, Location: fallbackPath, Blocked: blocked}, nil
}
