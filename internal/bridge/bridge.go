// Package bridge keeps an edit form, a status line and a results table in
// step with a remote inventory collection.
//
// Every operation reads the form, issues at most one request, and applies
// the outcome to the view-model. Responses are tagged with a sequence
// number per target; a response that is no longer the latest for its
// target is dropped.
package bridge

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"

	"github.com/CSCI-GA-2820-SU24-001/inventory/internal/model"
)

// Resource is the remote collection the bridge talks to.
type Resource interface {
	Create(ctx context.Context, in model.ItemInput) (*model.InventoryItem, error)
	Get(ctx context.Context, id string) (*model.InventoryItem, error)
	Update(ctx context.Context, id string, in model.ItemInput) (*model.InventoryItem, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, rawQuery string) ([]model.InventoryItem, error)
	Decrement(ctx context.Context, id string) (*model.InventoryItem, error)
	Archive(ctx context.Context, id string) (*model.InventoryItem, error)
}

// Staleness keys for requests that are not about one known item.
const (
	collectionKey = "collection"
	resultsKey    = "results"
)

// Bridge owns one view-model. It is safe for concurrent use.
type Bridge struct {
	res Resource
	log *slog.Logger

	mu     sync.Mutex
	vm     ViewModel
	seq    uint64
	latest map[string]uint64
}

// New returns a bridge with an empty form.
func New(res Resource, logger *slog.Logger) *Bridge {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bridge{
		res:    res,
		log:    logger,
		vm:     ViewModel{Form: EmptyForm()},
		latest: make(map[string]uint64),
	}
}

// Snapshot returns a copy of the current view-model.
func (b *Bridge) Snapshot() ViewModel {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.vm.clone()
}

// SetForm replaces the identifier and writable fields. Display-only fields
// are kept.
func (b *Bridge) SetForm(f Form) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.vm.Form.ID = f.ID
	b.vm.Form.Name = f.Name
	b.vm.Form.Description = f.Description
	b.vm.Form.Quantity = f.Quantity
	b.vm.Form.Price = f.Price
	b.vm.Form.ProductID = f.ProductID
	b.vm.Form.RestockLevel = f.RestockLevel
	b.vm.Form.Condition = f.Condition
}

// SetFilter replaces the search options.
func (b *Bridge) SetFilter(f Filter) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.vm.Filter = f
}

// SetField sets one writable field or search option by its wire name. It
// reports whether the name is known.
func (b *Bridge) SetField(name, value string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	f := &b.vm.Form
	switch name {
	case "id":
		f.ID = value
	case "name":
		f.Name = value
	case "description":
		f.Description = value
	case "quantity":
		f.Quantity = value
	case "price":
		f.Price = value
	case "product_id":
		f.ProductID = value
	case "restock_level":
		f.RestockLevel = value
	case "condition":
		f.Condition = value
	case "search_condition":
		b.vm.Filter.Condition = value
	default:
		return false
	}
	return true
}

// begin clears the status and claims a sequence number for key.
// b.mu must be held.
func (b *Bridge) begin(key string) uint64 {
	b.vm.Status = Status{}
	b.seq++
	b.latest[key] = b.seq
	return b.seq
}

// finish applies update if seq is still the latest request for key.
func (b *Bridge) finish(op, key string, seq uint64, update func(vm *ViewModel)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.latest[key] != seq {
		b.log.Debug("discarding stale response", "op", op, "key", key, "seq", seq)
		return
	}
	delete(b.latest, key)
	update(&b.vm)
}

// requireID returns the trimmed form ID or sets a validation status.
// b.mu must be held.
func (b *Bridge) requireID(op string) (string, bool) {
	id := strings.TrimSpace(b.vm.Form.ID)
	if id == "" {
		b.fail(&b.vm, op, &ValidationError{Field: "id", Message: MsgNeedID}, MsgNeedID, false)
		return "", false
	}
	return id, true
}

func (b *Bridge) fail(vm *ViewModel, op string, err error, fallback string, surface bool) {
	b.log.Warn("inventory operation failed", "op", op, "error", err)
	vm.Status = Status{Message: failureMessage(err, fallback, surface), Kind: StatusError}
}

func itemKey(id string) string { return "item:" + id }

// Create submits the form as a new item.
func (b *Bridge) Create(ctx context.Context) {
	b.mu.Lock()
	in := b.vm.Form.input()
	seq := b.begin(collectionKey)
	b.mu.Unlock()

	item, err := b.res.Create(ctx, in)
	b.finish("create", collectionKey, seq, func(vm *ViewModel) {
		if err != nil {
			b.fail(vm, "create", err, "Unable to create item", true)
			return
		}
		vm.Form = formFromItem(item)
		vm.Status = Status{Message: MsgSuccess, Kind: StatusSuccess}
	})
}

// Retrieve loads the item named by the form ID.
func (b *Bridge) Retrieve(ctx context.Context) {
	b.mu.Lock()
	id, ok := b.requireID("retrieve")
	if !ok {
		b.mu.Unlock()
		return
	}
	key := itemKey(id)
	seq := b.begin(key)
	b.mu.Unlock()

	item, err := b.res.Get(ctx, id)
	b.finish("retrieve", key, seq, func(vm *ViewModel) {
		if err != nil {
			typed := vm.Form.ID
			vm.Form = EmptyForm()
			vm.Form.ID = typed
			b.fail(vm, "retrieve", err, "Unable to retrieve item", true)
			return
		}
		vm.Form = formFromItem(item)
		vm.Status = Status{Message: MsgSuccess, Kind: StatusSuccess}
	})
}

// Update saves the form over the item named by the form ID.
func (b *Bridge) Update(ctx context.Context) {
	b.mu.Lock()
	id, ok := b.requireID("update")
	if !ok {
		b.mu.Unlock()
		return
	}
	in := b.vm.Form.input()
	key := itemKey(id)
	seq := b.begin(key)
	b.mu.Unlock()

	item, err := b.res.Update(ctx, id, in)
	b.finish("update", key, seq, func(vm *ViewModel) {
		if err != nil {
			b.fail(vm, "update", err, "Unable to update item", true)
			return
		}
		vm.Form = formFromItem(item)
		vm.Status = Status{Message: MsgSuccess, Kind: StatusSuccess}
	})
}

// Delete removes the item named by the form ID and blanks the form.
func (b *Bridge) Delete(ctx context.Context) {
	b.mu.Lock()
	id, ok := b.requireID("delete")
	if !ok {
		b.mu.Unlock()
		return
	}
	key := itemKey(id)
	seq := b.begin(key)
	b.mu.Unlock()

	err := b.res.Delete(ctx, id)
	b.finish("delete", key, seq, func(vm *ViewModel) {
		if err != nil {
			b.fail(vm, "delete", err, "Unable to delete item", false)
			return
		}
		vm.Form = EmptyForm()
		vm.Status = Status{Message: MsgDeleted, Kind: StatusSuccess}
	})
}

// Decrement lowers the quantity of the item named by the form ID.
func (b *Bridge) Decrement(ctx context.Context) {
	b.itemAction(ctx, "decrement", "Unable to decrement item", b.res.Decrement)
}

// Archive archives the item named by the form ID.
func (b *Bridge) Archive(ctx context.Context) {
	b.itemAction(ctx, "archive", "Unable to archive item", b.res.Archive)
}

func (b *Bridge) itemAction(ctx context.Context, op, fallback string,
	call func(context.Context, string) (*model.InventoryItem, error)) {
	b.mu.Lock()
	id, ok := b.requireID(op)
	if !ok {
		b.mu.Unlock()
		return
	}
	key := itemKey(id)
	seq := b.begin(key)
	b.mu.Unlock()

	item, err := call(ctx, id)
	b.finish(op, key, seq, func(vm *ViewModel) {
		if err != nil {
			b.fail(vm, op, err, fallback, true)
			return
		}
		vm.Form = formFromItem(item)
		vm.Status = Status{Message: MsgSuccess, Kind: StatusSuccess}
	})
}

// SearchQuery builds the filter query for a search. Empty filters are
// left out and name always precedes condition.
func SearchQuery(name, condition string) string {
	var parts []string
	if name = strings.TrimSpace(name); name != "" {
		parts = append(parts, "name="+url.QueryEscape(name))
	}
	if condition = strings.TrimSpace(condition); condition != "" {
		parts = append(parts, "condition="+url.QueryEscape(condition))
	}
	return strings.Join(parts, "&")
}

// Search lists items matching the form's name and the filter condition.
// When a name was given, the first result with exactly that name is loaded
// into the form.
func (b *Bridge) Search(ctx context.Context) {
	b.mu.Lock()
	name := strings.TrimSpace(b.vm.Form.Name)
	query := SearchQuery(name, b.vm.Filter.Condition)
	seq := b.begin(resultsKey)
	b.mu.Unlock()

	items, err := b.res.List(ctx, query)
	b.finish("search", resultsKey, seq, func(vm *ViewModel) {
		if err != nil {
			vm.Results = Results{}
			b.fail(vm, "search", err, "Unable to search items", true)
			return
		}
		if !showResults(vm, items) {
			return
		}
		if name == "" {
			vm.Status = Status{Message: MsgSuccess, Kind: StatusSuccess}
			return
		}
		for i := range items {
			if items[i].Name == name {
				vm.Form = formFromItem(&items[i])
				vm.Status = Status{Message: MsgSuccess, Kind: StatusSuccess}
				return
			}
		}
		vm.Status = Status{Message: fmt.Sprintf("No exact match for %q", name), Kind: StatusInfo}
	})
}

// ListAll shows every item without touching the form.
func (b *Bridge) ListAll(ctx context.Context) {
	b.mu.Lock()
	seq := b.begin(resultsKey)
	b.mu.Unlock()

	items, err := b.res.List(ctx, "")
	b.finish("list", resultsKey, seq, func(vm *ViewModel) {
		if err != nil {
			vm.Results = Results{}
			b.fail(vm, "list", err, "Unable to list items", true)
			return
		}
		if showResults(vm, items) {
			vm.Status = Status{Message: MsgSuccess, Kind: StatusSuccess}
		}
	})
}

// showResults replaces the table and reports whether any rows were shown.
func showResults(vm *ViewModel, items []model.InventoryItem) bool {
	if len(items) == 0 {
		vm.Results = Results{Message: MsgNoItems}
		return false
	}
	vm.Results = Results{Items: items}
	return true
}

// Clear blanks the form, the search filter and the status line. The
// results table is kept.
func (b *Bridge) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.vm.Form = EmptyForm()
	b.vm.Filter = Filter{}
	b.vm.Status = Status{}
}
