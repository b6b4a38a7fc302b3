// Package checklist owns the category/item aggregate. Every mutation is
// persisted as a whole; invalid ids and empty names are silent no-ops.
//
// A Checklist is not safe for concurrent use. Callers mutate it from a
// single event loop (the TUI's Update or one CLI command).
package checklist

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/v-s-abhishek/PickList/internal/model"
	"github.com/v-s-abhishek/PickList/internal/store"
)

// KeyCorrupt receives unreadable checklist bytes before the seed replaces them.
const KeyCorrupt = store.KeyChecklist + ".corrupt"

// Checklist is the in-memory aggregate plus its backing store.
type Checklist struct {
	backend    store.Store
	log        *logrus.Logger
	categories model.Checklist
	lastErr    error
}

type Option func(*Checklist)

// WithLogger sets the logger used for persistence warnings.
func WithLogger(l *logrus.Logger) Option {
	return func(c *Checklist) {
		if l != nil {
			c.log = l
		}
	}
}

// Open restores the checklist from backend, or installs and saves the
// default seed when none is stored. Unreadable JSON is moved aside to
// KeyCorrupt and replaced by the seed. Only backend read errors fail Open.
func Open(ctx context.Context, backend store.Store, opts ...Option) (*Checklist, error) {
	c := &Checklist{backend: backend, log: logrus.StandardLogger()}
	for _, o := range opts {
		o(c)
	}

	data, ok, err := backend.Load(ctx, store.KeyChecklist)
	if err != nil {
		return nil, fmt.Errorf("load checklist: %w", err)
	}
	if ok {
		cats, derr := Decode(data)
		if derr == nil {
			c.categories = cats
			c.log.WithField("categories", len(cats)).Debug("checklist restored")
			return c, nil
		}
		c.log.WithError(derr).Warn("stored checklist is unreadable, installing default seed")
		if err := backend.Save(ctx, KeyCorrupt, quoteIfNeeded(data)); err != nil {
			c.log.WithError(err).Warn("could not keep a copy of the unreadable checklist")
		}
	}

	c.categories = DefaultSeed()
	c.persist(ctx)
	return c, nil
}

// DefaultSeed is installed for profiles that have never saved a checklist.
func DefaultSeed() model.Checklist {
	seed := []struct {
		name  string
		items []string
	}{
		{"Clothes", []string{"T-shirts", "Pants", "Socks"}},
		{"Toiletries", []string{"Toothbrush", "Toothpaste"}},
		{"Electronics", []string{"Phone charger", "Laptop"}},
	}
	out := make(model.Checklist, 0, len(seed))
	for _, s := range seed {
		cat := model.Category{ID: model.NewID("cat"), Name: s.name, Items: []model.Item{}, IsOpen: true}
		for _, n := range s.items {
			cat.Items = append(cat.Items, model.Item{ID: model.NewID("item"), Name: n})
		}
		out = append(out, cat)
	}
	return out
}

// Encode serializes the checklist in its stored form.
func Encode(cl model.Checklist) ([]byte, error) {
	if cl == nil {
		cl = model.Checklist{}
	}
	b, err := json.Marshal(cl)
	if err != nil {
		return nil, fmt.Errorf("json marshal: %w", err)
	}
	return b, nil
}

// Decode parses a stored checklist. null item lists come back empty.
func Decode(data []byte) (model.Checklist, error) {
	var cl model.Checklist
	if err := json.Unmarshal(data, &cl); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	if cl == nil {
		return nil, fmt.Errorf("json unmarshal: checklist is null")
	}
	for i := range cl {
		if cl[i].Items == nil {
			cl[i].Items = []model.Item{}
		}
	}
	return cl, nil
}

// quoteIfNeeded keeps corrupt bytes storable by adapters that insist on JSON.
func quoteIfNeeded(data []byte) []byte {
	if json.Valid(data) {
		return data
	}
	b, _ := json.Marshal(string(data))
	return b
}

// Err returns the most recent save failure, nil after a successful save.
func (c *Checklist) Err() error { return c.lastErr }

func (c *Checklist) persist(ctx context.Context) {
	data, err := Encode(c.categories)
	if err == nil {
		err = c.backend.Save(ctx, store.KeyChecklist, data)
	}
	if err != nil {
		c.lastErr = fmt.Errorf("save checklist: %w", err)
		c.log.WithError(err).Error("checklist not saved")
		return
	}
	c.lastErr = nil
}

func (c *Checklist) categoryIndex(id string) int {
	for i := range c.categories {
		if c.categories[i].ID == id {
			return i
		}
	}
	return -1
}

func (c *Checklist) itemIndex(ci int, id string) int {
	for i := range c.categories[ci].Items {
		if c.categories[ci].Items[i].ID == id {
			return i
		}
	}
	return -1
}

func (c *Checklist) find(categoryID, itemID string) (int, int, bool) {
	ci := c.categoryIndex(categoryID)
	if ci < 0 {
		return -1, -1, false
	}
	ii := c.itemIndex(ci, itemID)
	return ci, ii, ii >= 0
}

// Categories returns a copy of the current checklist.
func (c *Checklist) Categories() model.Checklist { return c.categories.Clone() }

// Category looks a category up by id.
func (c *Checklist) Category(id string) (model.Category, bool) {
	ci := c.categoryIndex(id)
	if ci < 0 {
		return model.Category{}, false
	}
	cat := c.categories[ci]
	cat.Items = append([]model.Item{}, cat.Items...)
	return cat, true
}

// AddCategory appends an open, empty category and returns its id.
func (c *Checklist) AddCategory(ctx context.Context, name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	cat := model.Category{ID: model.NewID("cat"), Name: name, Items: []model.Item{}, IsOpen: true}
	c.categories = append(c.categories, cat)
	c.persist(ctx)
	return cat.ID
}

// AddItem appends an unpacked item to the category and returns its id.
func (c *Checklist) AddItem(ctx context.Context, categoryID, name string) string {
	name = strings.TrimSpace(name)
	ci := c.categoryIndex(categoryID)
	if name == "" || ci < 0 {
		return ""
	}
	it := model.Item{ID: model.NewID("item"), Name: name}
	c.categories[ci].Items = append(c.categories[ci].Items, it)
	c.persist(ctx)
	return it.ID
}

func (c *Checklist) ToggleItemPacked(ctx context.Context, categoryID, itemID string) {
	ci, ii, ok := c.find(categoryID, itemID)
	if !ok {
		return
	}
	it := &c.categories[ci].Items[ii]
	it.Packed = !it.Packed
	c.persist(ctx)
}

func (c *Checklist) RenameCategory(ctx context.Context, categoryID, name string) {
	name = strings.TrimSpace(name)
	ci := c.categoryIndex(categoryID)
	if name == "" || ci < 0 {
		return
	}
	c.categories[ci].Name = name
	c.persist(ctx)
}

func (c *Checklist) RenameItem(ctx context.Context, categoryID, itemID, name string) {
	name = strings.TrimSpace(name)
	ci, ii, ok := c.find(categoryID, itemID)
	if name == "" || !ok {
		return
	}
	c.categories[ci].Items[ii].Name = name
	c.persist(ctx)
}

// DeleteCategory removes the category together with its items.
func (c *Checklist) DeleteCategory(ctx context.Context, categoryID string) {
	ci := c.categoryIndex(categoryID)
	if ci < 0 {
		return
	}
	c.categories = append(c.categories[:ci], c.categories[ci+1:]...)
	c.persist(ctx)
}

func (c *Checklist) DeleteItem(ctx context.Context, categoryID, itemID string) {
	ci, ii, ok := c.find(categoryID, itemID)
	if !ok {
		return
	}
	items := c.categories[ci].Items
	c.categories[ci].Items = append(items[:ii], items[ii+1:]...)
	c.persist(ctx)
}

func (c *Checklist) ToggleCategoryExpanded(ctx context.Context, categoryID string) {
	ci := c.categoryIndex(categoryID)
	if ci < 0 {
		return
	}
	c.categories[ci].IsOpen = !c.categories[ci].IsOpen
	c.persist(ctx)
}

func (c *Checklist) TotalItems() int {
	n := 0
	for _, cat := range c.categories {
		n += len(cat.Items)
	}
	return n
}

func (c *Checklist) PackedItems() int {
	n := 0
	for _, cat := range c.categories {
		p, _ := cat.Counts()
		n += p
	}
	return n
}

// CompletionPercentage is round(100*packed/total), 0 for an empty checklist.
func (c *Checklist) CompletionPercentage() int {
	total := c.TotalItems()
	if total == 0 {
		return 0
	}
	return int(math.Floor(float64(c.PackedItems())*100/float64(total) + 0.5))
}

// CategoryProgress returns packed and total counts for one category.
func (c *Checklist) CategoryProgress(categoryID string) (packed, total int) {
	ci := c.categoryIndex(categoryID)
	if ci < 0 {
		return 0, 0
	}
	return c.categories[ci].Counts()
}
