package model

// Item is a single packable thing inside a category.
type Item struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Packed bool   `json:"packed"`
}

// Category owns an ordered list of items. IsOpen is display state only,
// but it is persisted so the checklist reopens the way it was left.
type Category struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Items  []Item `json:"items"`
	IsOpen bool   `json:"isOpen"`
}

// Checklist is the root aggregate, stored as a whole.
type Checklist []Category

// Counts returns packed and total items of the category.
func (c Category) Counts() (packed, total int) {
	for _, it := range c.Items {
		if it.Packed {
			packed++
		}
	}
	return packed, len(c.Items)
}

// Clone deep-copies the checklist so callers can't alias item slices.
func (cl Checklist) Clone() Checklist {
	if cl == nil {
		return nil
	}
	out := make(Checklist, len(cl))
	for i, c := range cl {
		out[i] = c
		out[i].Items = append([]Item{}, c.Items...)
	}
	return out
}
