package checklist

import (
	"context"
	"errors"
	"math/rand"
	"reflect"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/v-s-abhishek/PickList/internal/model"
	"github.com/v-s-abhishek/PickList/internal/store"
	"github.com/v-s-abhishek/PickList/internal/store/memstore"
)

type failingStore struct {
	*memstore.Store
	saveErr error
}

func (f *failingStore) Save(ctx context.Context, key string, data []byte) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	return f.Store.Save(ctx, key, data)
}

func openEmpty(t *testing.T) (*Checklist, *memstore.Store) {
	t.Helper()
	ms := memstore.New()
	if err := ms.Save(context.Background(), store.KeyChecklist, []byte(`[]`)); err != nil {
		t.Fatalf("seed store: %v", err)
	}
	log, _ := test.NewNullLogger()
	c, err := Open(context.Background(), ms, WithLogger(log))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return c, ms
}

func stored(t *testing.T, s store.Store) model.Checklist {
	t.Helper()
	b, ok, err := s.Load(context.Background(), store.KeyChecklist)
	if err != nil || !ok {
		t.Fatalf("load stored checklist: ok=%v err=%v", ok, err)
	}
	cl, err := Decode(b)
	if err != nil {
		t.Fatalf("decode stored checklist: %v", err)
	}
	return cl
}

func TestOpenInstallsDefaultSeed(t *testing.T) {
	ms := memstore.New()
	c, err := Open(context.Background(), ms)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	cats := c.Categories()
	var names []string
	for _, cat := range cats {
		names = append(names, cat.Name)
		if !cat.IsOpen {
			t.Errorf("seed category %q should be open", cat.Name)
		}
	}
	if want := []string{"Clothes", "Toiletries", "Electronics"}; !reflect.DeepEqual(names, want) {
		t.Fatalf("seed categories = %v, want %v", names, want)
	}
	if c.TotalItems() != 7 || c.PackedItems() != 0 {
		t.Fatalf("seed counts = %d/%d", c.PackedItems(), c.TotalItems())
	}
	if !reflect.DeepEqual(stored(t, ms), cats) {
		t.Fatal("seed was not persisted")
	}
}

func TestOpenRestoresEmptyChecklistWithoutSeeding(t *testing.T) {
	c, _ := openEmpty(t)
	if n := len(c.Categories()); n != 0 {
		t.Fatalf("expected empty checklist, got %d categories", n)
	}
}

func TestOpenRecoversFromMalformedJSON(t *testing.T) {
	ctx := context.Background()
	ms := memstore.New()
	_ = ms.Save(ctx, store.KeyChecklist, []byte(`{not json`))

	log, hook := test.NewNullLogger()
	c, err := Open(ctx, ms, WithLogger(log))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if len(c.Categories()) != 3 {
		t.Fatalf("expected default seed, got %d categories", len(c.Categories()))
	}

	var warned bool
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			warned = true
		}
	}
	if !warned {
		t.Fatal("expected a warning about the unreadable checklist")
	}

	backup, ok, _ := ms.Load(ctx, KeyCorrupt)
	if !ok || string(backup) != `"{not json"` {
		t.Fatalf("corrupt copy = %q, ok=%v", backup, ok)
	}
}

func TestOpenPropagatesLoadErrors(t *testing.T) {
	_, err := Open(context.Background(), errStore{})
	if err == nil {
		t.Fatal("expected error")
	}
}

type errStore struct{}

func (errStore) Load(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("disk on fire")
}
func (errStore) Save(context.Context, string, []byte) error { return nil }
func (errStore) Delete(context.Context, string) error       { return nil }

func TestAddCategoryAndItem(t *testing.T) {
	ctx := context.Background()
	c, ms := openEmpty(t)

	if id := c.AddCategory(ctx, "   "); id != "" {
		t.Fatalf("blank category created: %q", id)
	}
	catID := c.AddCategory(ctx, "  Documents ")
	if catID == "" {
		t.Fatal("category not created")
	}
	cat, ok := c.Category(catID)
	if !ok || cat.Name != "Documents" || !cat.IsOpen || len(cat.Items) != 0 {
		t.Fatalf("unexpected category %#v", cat)
	}

	if id := c.AddItem(ctx, catID, ""); id != "" {
		t.Fatal("blank item created")
	}
	if id := c.AddItem(ctx, "cat-missing", "Passport"); id != "" {
		t.Fatal("item created in unknown category")
	}
	first := c.AddItem(ctx, catID, "Passport")
	second := c.AddItem(ctx, catID, "Tickets")
	cat, _ = c.Category(catID)
	if len(cat.Items) != 2 || cat.Items[0].ID != first || cat.Items[1].ID != second {
		t.Fatalf("items out of order: %#v", cat.Items)
	}
	if cat.Items[0].Packed {
		t.Fatal("new items must start unpacked")
	}
	if !reflect.DeepEqual(stored(t, ms), c.Categories()) {
		t.Fatal("store is behind memory")
	}
}

func TestToggleItemPackedTwiceRestores(t *testing.T) {
	ctx := context.Background()
	c, _ := openEmpty(t)
	catID := c.AddCategory(ctx, "Gear")
	itemID := c.AddItem(ctx, catID, "Tent")

	c.ToggleItemPacked(ctx, catID, itemID)
	if c.PackedItems() != 1 {
		t.Fatal("toggle did not pack")
	}
	c.ToggleItemPacked(ctx, catID, itemID)
	if c.PackedItems() != 0 {
		t.Fatal("second toggle did not unpack")
	}

	c.ToggleItemPacked(ctx, catID, "item-missing")
	c.ToggleItemPacked(ctx, "cat-missing", itemID)
	if c.PackedItems() != 0 {
		t.Fatal("unresolved toggle changed state")
	}
}

func TestRenamePreservesIdentity(t *testing.T) {
	ctx := context.Background()
	c, _ := openEmpty(t)
	catID := c.AddCategory(ctx, "Gear")
	itemID := c.AddItem(ctx, catID, "Tent")

	c.RenameCategory(ctx, catID, "Camping")
	c.RenameItem(ctx, catID, itemID, "Two-person tent")
	c.RenameCategory(ctx, catID, " ")
	c.RenameItem(ctx, catID, itemID, "")

	cat, _ := c.Category(catID)
	if cat.Name != "Camping" || cat.Items[0].Name != "Two-person tent" || cat.Items[0].ID != itemID {
		t.Fatalf("unexpected state %#v", cat)
	}
}

func TestDeleteCategoryCascadesOnlyItsItems(t *testing.T) {
	ctx := context.Background()
	c, ms := openEmpty(t)
	a := c.AddCategory(ctx, "A")
	b := c.AddCategory(ctx, "B")
	c.AddItem(ctx, a, "a1")
	c.AddItem(ctx, a, "a2")
	b1 := c.AddItem(ctx, b, "b1")
	before, _ := c.Category(b)

	c.DeleteCategory(ctx, a)
	c.DeleteCategory(ctx, "cat-missing")

	if _, ok := c.Category(a); ok {
		t.Fatal("category still present")
	}
	after, ok := c.Category(b)
	if !ok || !reflect.DeepEqual(before, after) || after.Items[0].ID != b1 {
		t.Fatalf("other category changed: %#v", after)
	}
	if c.TotalItems() != 1 {
		t.Fatalf("total = %d, want 1", c.TotalItems())
	}
	if len(stored(t, ms)) != 1 {
		t.Fatal("delete not persisted")
	}
}

func TestTotalItemsTracksRandomAddDelete(t *testing.T) {
	ctx := context.Background()
	c, _ := openEmpty(t)
	cats := []string{c.AddCategory(ctx, "x"), c.AddCategory(ctx, "y")}
	live := map[string]string{}
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 300; i++ {
		if len(live) == 0 || rng.Intn(3) > 0 {
			cat := cats[rng.Intn(len(cats))]
			live[c.AddItem(ctx, cat, "thing")] = cat
		} else {
			for id, cat := range live {
				c.DeleteItem(ctx, cat, id)
				delete(live, id)
				break
			}
		}
		if c.TotalItems() != len(live) {
			t.Fatalf("step %d: TotalItems=%d, live=%d", i, c.TotalItems(), len(live))
		}
	}
}

func TestCompletionPercentage(t *testing.T) {
	ctx := context.Background()
	c, _ := openEmpty(t)
	if got := c.CompletionPercentage(); got != 0 {
		t.Fatalf("empty checklist = %d", got)
	}

	cat := c.AddCategory(ctx, "c")
	ids := []string{c.AddItem(ctx, cat, "1"), c.AddItem(ctx, cat, "2"), c.AddItem(ctx, cat, "3")}
	tests := []struct {
		pack int
		want int
	}{
		{0, 0},
		{1, 33},
		{2, 67},
		{3, 100},
	}
	for _, tt := range tests {
		for _, id := range ids {
			it := findItem(c, cat, id)
			if it.Packed {
				c.ToggleItemPacked(ctx, cat, id)
			}
		}
		for _, id := range ids[:tt.pack] {
			c.ToggleItemPacked(ctx, cat, id)
		}
		if got := c.CompletionPercentage(); got != tt.want {
			t.Errorf("packed %d of 3: got %d, want %d", tt.pack, got, tt.want)
		}
	}

	p, n := c.CategoryProgress(cat)
	if p != 3 || n != 3 {
		t.Fatalf("category progress = %d/%d", p, n)
	}
}

func TestCompletionPercentageRoundsHalfUp(t *testing.T) {
	ctx := context.Background()
	c, _ := openEmpty(t)
	cat := c.AddCategory(ctx, "c")
	var ids []string
	for i := 0; i < 8; i++ {
		ids = append(ids, c.AddItem(ctx, cat, "i"))
	}
	for _, id := range ids[:1] {
		c.ToggleItemPacked(ctx, cat, id)
	}
	// 12.5 rounds to 13
	if got := c.CompletionPercentage(); got != 13 {
		t.Fatalf("got %d, want 13", got)
	}
}

func findItem(c *Checklist, catID, itemID string) model.Item {
	cat, _ := c.Category(catID)
	for _, it := range cat.Items {
		if it.ID == itemID {
			return it
		}
	}
	return model.Item{}
}

func TestToggleCategoryExpandedRoundTrips(t *testing.T) {
	ctx := context.Background()
	c, ms := openEmpty(t)
	cat := c.AddCategory(ctx, "c")
	c.ToggleCategoryExpanded(ctx, cat)

	reopened, err := Open(ctx, ms)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got, _ := reopened.Category(cat)
	if got.IsOpen {
		t.Fatal("collapsed flag lost on reload")
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	orig := DefaultSeed()
	orig[0].Items[1].Packed = true
	orig[2].IsOpen = false
	orig = append(orig, model.Category{ID: "cat-empty", Name: "Empty", Items: []model.Item{}})

	b, err := Encode(orig)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	back, err := Decode(b)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(orig, back) {
		t.Fatalf("round trip mismatch:\n%#v\n%#v", orig, back)
	}
}

func TestDecodeWireFormat(t *testing.T) {
	raw := `[{"id":"cat-1","name":"Clothes","items":[{"id":"item-1","name":"Socks","packed":true}],"isOpen":false},{"id":"cat-2","name":"X","items":null,"isOpen":true}]`
	cl, err := Decode([]byte(raw))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cl[0].IsOpen || !cl[0].Items[0].Packed || cl[0].Items[0].Name != "Socks" {
		t.Fatalf("unexpected %#v", cl[0])
	}
	if cl[1].Items == nil {
		t.Fatal("null items should decode as empty slice")
	}
	if _, err := Decode([]byte(`null`)); err == nil {
		t.Fatal("null checklist should be rejected")
	}
}

func TestSaveFailureIsLoggedAndExposed(t *testing.T) {
	ctx := context.Background()
	fs := &failingStore{Store: memstore.New()}
	_ = fs.Store.Save(ctx, store.KeyChecklist, []byte(`[]`))
	log, hook := test.NewNullLogger()
	c, err := Open(ctx, fs, WithLogger(log))
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	fs.saveErr = errors.New("read-only")
	id := c.AddCategory(ctx, "Kept in memory")
	if id == "" {
		t.Fatal("mutation must still apply in memory")
	}
	if c.Err() == nil {
		t.Fatal("expected Err() after failed save")
	}
	if last := hook.LastEntry(); last == nil || last.Level != logrus.ErrorLevel {
		t.Fatalf("expected error log, got %#v", last)
	}

	fs.saveErr = nil
	c.RenameCategory(ctx, id, "Saved")
	if c.Err() != nil {
		t.Fatalf("Err() should clear after a good save: %v", c.Err())
	}
}
