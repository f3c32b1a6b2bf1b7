package api

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/CSCI-GA-2820-SU24-001/inventory/internal/model"
	"github.com/CSCI-GA-2820-SU24-001/inventory/internal/store"
)

// ItemsHandler handles inventory item endpoints.
type ItemsHandler struct {
	DB     *sql.DB
	Prefix string
}

// parseID reads the {id} path value, writing a 400 response if it is not
// an integer.
func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, fmt.Sprintf("invalid item id %q", r.PathValue("id")))
		return 0, false
	}
	return id, true
}

func notFound(w http.ResponseWriter, id int64) {
	jsonError(w, http.StatusNotFound, fmt.Sprintf("Item with id '%d' was not found.", id))
}

// decodeInput decodes and validates an item body, writing a 400 response on
// failure.
func decodeInput(w http.ResponseWriter, r *http.Request) (model.ItemInput, bool) {
	var in model.ItemInput
	if err := decodeJSON(r, &in); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return in, false
	}
	if err := in.Validate(); err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid InventoryItem: "+err.Error())
		return in, false
	}
	return in, true
}

// List handles GET {prefix}?name=&condition=&id=.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := store.ItemFilter{
		Name:      q.Get("name"),
		Condition: q.Get("condition"),
	}
	if raw := q.Get("id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			jsonError(w, http.StatusBadRequest, fmt.Sprintf("invalid id filter %q", raw))
			return
		}
		filter.ID = id
	}

	items, err := store.ListItems(r.Context(), h.DB, filter)
	if err != nil {
		slog.Error("failed to list items", "request_id", GetRequestID(r.Context()), "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list items")
		return
	}
	if items == nil {
		items = []model.InventoryItem{}
	}
	jsonResponse(w, http.StatusOK, items)
}

// Create handles POST {prefix}.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeInput(w, r)
	if !ok {
		return
	}

	item, err := store.CreateItem(r.Context(), h.DB, in)
	if err != nil {
		slog.Error("failed to create item", "request_id", GetRequestID(r.Context()), "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to create item")
		return
	}

	slog.Info("item created", "request_id", GetRequestID(r.Context()), "id", item.ID, "name", item.Name)
	w.Header().Set("Location", fmt.Sprintf("%s/%d", h.Prefix, item.ID))
	jsonResponse(w, http.StatusCreated, item)
}

// Get handles GET {prefix}/{id}.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	item, err := store.GetItem(r.Context(), h.DB, id)
	if err != nil {
		slog.Error("failed to get item", "request_id", GetRequestID(r.Context()), "id", id, "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to get item")
		return
	}
	if item == nil {
		notFound(w, id)
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// Update handles PUT {prefix}/{id}.
func (h *ItemsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	in, ok := decodeInput(w, r)
	if !ok {
		return
	}

	item, err := store.UpdateItem(r.Context(), h.DB, id, in)
	if err != nil {
		slog.Error("failed to update item", "request_id", GetRequestID(r.Context()), "id", id, "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to update item")
		return
	}
	if item == nil {
		notFound(w, id)
		return
	}

	slog.Info("item updated", "request_id", GetRequestID(r.Context()), "id", id, "name", item.Name)
	jsonResponse(w, http.StatusOK, item)
}

// Delete handles DELETE {prefix}/{id}. A missing item still yields 204.
func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := store.DeleteItem(r.Context(), h.DB, id); err != nil {
		slog.Error("failed to delete item", "request_id", GetRequestID(r.Context()), "id", id, "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to delete item")
		return
	}

	slog.Info("item deleted", "request_id", GetRequestID(r.Context()), "id", id)
	w.WriteHeader(http.StatusNoContent)
}

// Decrement handles PUT {prefix}/{id}/decrement.
func (h *ItemsHandler) Decrement(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	item, err := store.DecrementItem(r.Context(), h.DB, id)
	if err != nil {
		slog.Error("failed to decrement item", "request_id", GetRequestID(r.Context()), "id", id, "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to decrement item")
		return
	}
	if item == nil {
		notFound(w, id)
		return
	}

	if item.Quantity < item.RestockLevel {
		slog.Warn("item below restock level",
			"request_id", GetRequestID(r.Context()), "id", item.ID, "name", item.Name, "quantity", item.Quantity, "restock_level", item.RestockLevel)
	}
	jsonResponse(w, http.StatusOK, item)
}

// Archive handles PUT {prefix}/{id}/archive.
func (h *ItemsHandler) Archive(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	item, err := store.ArchiveItem(r.Context(), h.DB, id)
	if errors.Is(err, store.ErrAlreadyArchived) {
		jsonError(w, http.StatusBadRequest, "Item is already archived.")
		return
	}
	if err != nil {
		slog.Error("failed to archive item", "request_id", GetRequestID(r.Context()), "id", id, "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to archive item")
		return
	}
	if item == nil {
		notFound(w, id)
		return
	}

	slog.Info("item archived", "request_id", GetRequestID(r.Context()), "id", id)
	jsonResponse(w, http.StatusOK, item)
}
