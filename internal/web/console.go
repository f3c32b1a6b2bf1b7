package web

import (
	"log/slog"
	"net/http"

	"github.com/CSCI-GA-2820-SU24-001/inventory/internal/bridge"
)

type consolePage struct {
	PageData
	View    bridge.ViewModel
	Actions []bridge.Action
}

// Console handles GET /.
func (s *Server) Console(w http.ResponseWriter, r *http.Request) {
	b := GetBridge(r.Context())
	s.Templates.Render(w, "console.html", &consolePage{
		PageData: PageData{Title: "Inventory"},
		View:     b.Snapshot(),
		Actions:  bridge.Actions,
	})
}

// ConsoleSubmit handles POST /console. The posted fields replace the form
// and the search filter before the chosen action runs.
func (s *Server) ConsoleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	action := bridge.Action(r.PostFormValue("action"))
	if !validAction(action) {
		http.Error(w, "unknown action", http.StatusBadRequest)
		return
	}

	b := GetBridge(r.Context())
	b.SetForm(bridge.Form{
		ID:           r.PostFormValue("id"),
		Name:         r.PostFormValue("name"),
		Description:  r.PostFormValue("description"),
		Quantity:     r.PostFormValue("quantity"),
		Price:        r.PostFormValue("price"),
		ProductID:    r.PostFormValue("product_id"),
		RestockLevel: r.PostFormValue("restock_level"),
		Condition:    r.PostFormValue("condition"),
	})
	b.SetFilter(bridge.Filter{Condition: r.PostFormValue("search_condition")})

	if err := b.Do(r.Context(), action); err != nil {
		slog.Error("console action failed", "action", action, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func validAction(a bridge.Action) bool {
	for _, known := range bridge.Actions {
		if a == known {
			return true
		}
	}
	return false
}
