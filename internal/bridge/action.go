package bridge

import (
	"context"
	"fmt"
)

// Action names a console button.
type Action string

// Console actions.
const (
	ActionCreate    Action = "create"
	ActionRetrieve  Action = "retrieve"
	ActionUpdate    Action = "update"
	ActionDelete    Action = "delete"
	ActionDecrement Action = "decrement"
	ActionArchive   Action = "archive"
	ActionSearch    Action = "search"
	ActionList      Action = "list"
	ActionClear     Action = "clear"
)

// Actions lists every action in button order.
var Actions = []Action{
	ActionCreate, ActionRetrieve, ActionUpdate, ActionDelete,
	ActionDecrement, ActionArchive, ActionSearch, ActionList, ActionClear,
}

// Do runs the operation named by a.
func (b *Bridge) Do(ctx context.Context, a Action) error {
	switch a {
	case ActionCreate:
		b.Create(ctx)
	case ActionRetrieve:
		b.Retrieve(ctx)
	case ActionUpdate:
		b.Update(ctx)
	case ActionDelete:
		b.Delete(ctx)
	case ActionDecrement:
		b.Decrement(ctx)
	case ActionArchive:
		b.Archive(ctx)
	case ActionSearch:
		b.Search(ctx)
	case ActionList:
		b.ListAll(ctx)
	case ActionClear:
		b.Clear()
	default:
		return fmt.Errorf("unknown action %q", a)
	}
	return nil
}
