// Package viewport is an in-memory host for the wheel: a fixed-size
// viewport holding capsule views, a recycling pool that binds capsules to
// data items, and the adapter describing those items.
//
// The CLI, the TUI, the HTTP server and the render pipeline all drive a
// wheel.Manager over a Viewport.
package viewport

import (
	"fmt"

	"github.com/matzehuels/ferris/pkg/errors"
)

// Item is the data behind one capsule.
type Item struct {
	Label  string `json:"label"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Adapter supplies the data items.
type Adapter interface {
	ItemCount() int
	Item(position int) Item
}

// Items is a fixed list of data items.
type Items []Item

func (it Items) ItemCount() int { return len(it) }

func (it Items) Item(position int) Item {
	if position < 0 || position >= len(it) {
		return Item{}
	}
	return it[position]
}

// NewItems builds count items of the default size. Entries of labels and
// sizes override the label and size of the item at the same position; items
// without a label are named after their position.
func NewItems(count, width, height int, labels []string, sizes [][2]int) (Items, error) {
	if count < 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "item count cannot be negative, got %d", count)
	}
	items := make(Items, count)
	for i := range items {
		items[i] = Item{Label: fmt.Sprintf("#%d", i), Width: width, Height: height}
		if i < len(labels) && labels[i] != "" {
			if err := errors.ValidateLabel(labels[i]); err != nil {
				return nil, err
			}
			items[i].Label = labels[i]
		}
		if i < len(sizes) {
			items[i].Width, items[i].Height = sizes[i][0], sizes[i][1]
		}
		if items[i].Width <= 0 || items[i].Height <= 0 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "item %d needs a positive size, got %dx%d", i, items[i].Width, items[i].Height)
		}
	}
	return items, nil
}
