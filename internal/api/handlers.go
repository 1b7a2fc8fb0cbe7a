package api

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"

	"github.com/tablegames/blackjack-table-be/internal/db"
	"github.com/tablegames/blackjack-table-be/internal/game"
	"github.com/tablegames/blackjack-table-be/internal/store"
)

// Handlers contains all the API handlers
type Handlers struct {
	store            store.Store
	database         *db.Database
	hub              *Hub
	logger           *log.Logger
	startingBankroll int

	// The engine is single-writer: one action at a time per table. HTTP is
	// not, so actions and state reads are serialized here.
	mu sync.Mutex
}

// NewHandlers creates a new instance of Handlers
func NewHandlers(store store.Store, database *db.Database, hub *Hub, logger *log.Logger, startingBankroll int) *Handlers {
	return &Handlers{
		store:            store,
		database:         database,
		hub:              hub,
		logger:           logger,
		startingBankroll: startingBankroll,
	}
}

// RegisterRoutes registers all API routes
func (h *Handlers) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/table/new", h.NewTable).Methods("POST")
	r.HandleFunc("/api/table/list", h.ListTables).Methods("GET")
	r.HandleFunc("/api/table/{id}", h.GetTable).Methods("GET")
	r.HandleFunc("/api/table/{id}/count", h.GetCount).Methods("GET")
	r.HandleFunc("/api/table/{id}/stats", h.GetStats).Methods("GET")
	r.HandleFunc("/api/table/{id}/rules", h.SetRules).Methods("POST")

	r.HandleFunc("/api/table/{id}/deal", h.Deal).Methods("POST")
	r.HandleFunc("/api/table/{id}/hit", h.Hit).Methods("POST")
	r.HandleFunc("/api/table/{id}/stand", h.Stand).Methods("POST")
	r.HandleFunc("/api/table/{id}/double", h.DoubleDown).Methods("POST")
	r.HandleFunc("/api/table/{id}/split", h.Split).Methods("POST")
	r.HandleFunc("/api/table/{id}/surrender", h.Surrender).Methods("POST")
	r.HandleFunc("/api/table/{id}/insurance", h.Insurance).Methods("POST")
	r.HandleFunc("/api/table/{id}/sidebet", h.PlaceSideBet).Methods("POST")
	r.HandleFunc("/api/table/{id}/sidebet/clear", h.ClearSideBet).Methods("POST")

	r.HandleFunc("/ws", h.hub.WebSocketHandler)
}

// response helper function to send JSON responses
func response(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// error response helper function
func errorResponse(w http.ResponseWriter, status int, message string) {
	response(w, status, map[string]string{"error": message})
}

// NewTable creates a table, restoring its bankroll when one was persisted
// under the same name.
func (h *Handlers) NewTable(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string `json:"name"`
		Rules string `json:"rules"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" {
		req.Name = "main"
	}

	rules, ok := game.RulesByName(req.Rules)
	if !ok {
		errorResponse(w, http.StatusBadRequest, "Unknown rules preset")
		return
	}

	bankroll := h.startingBankroll
	if h.database != nil {
		if balance, found, err := h.database.GetBankroll(req.Name); err == nil && found {
			bankroll = balance
		}
	}

	t := game.NewTable(req.Name, rules, bankroll)
	h.mu.Lock()
	if err := h.store.SaveTable(t); err != nil {
		h.mu.Unlock()
		errorResponse(w, http.StatusInternalServerError, "Failed to save table")
		return
	}
	snapshot := t.Snapshot()
	h.mu.Unlock()

	h.logger.Info("table created", "table", t.ID, "name", t.Name, "rules", rules.Name, "bankroll", bankroll)
	response(w, http.StatusCreated, snapshot)
}

// ListTables returns a list of live tables
func (h *Handlers) ListTables(w http.ResponseWriter, r *http.Request) {
	tables, err := h.store.GetAllTables()
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, "Error retrieving tables")
		return
	}

	h.mu.Lock()
	list := make([]map[string]interface{}, 0, len(tables))
	for _, t := range tables {
		list = append(list, map[string]interface{}{
			"id":       t.ID,
			"name":     t.Name,
			"rules":    t.Rules.Name,
			"phase":    t.Phase,
			"bankroll": t.Bankroll,
		})
	}
	h.mu.Unlock()
	response(w, http.StatusOK, list)
}

// GetTable returns the current state of a table
func (h *Handlers) GetTable(w http.ResponseWriter, r *http.Request) {
	t, ok := h.lookup(w, r)
	if !ok {
		return
	}
	h.mu.Lock()
	snapshot := t.Snapshot()
	h.mu.Unlock()
	response(w, http.StatusOK, snapshot)
}

// GetCount returns the card-count snapshot for a table
func (h *Handlers) GetCount(w http.ResponseWriter, r *http.Request) {
	t, ok := h.lookup(w, r)
	if !ok {
		return
	}
	h.mu.Lock()
	count := t.Count()
	h.mu.Unlock()
	response(w, http.StatusOK, count)
}

// GetStats returns the persisted round statistics for a table
func (h *Handlers) GetStats(w http.ResponseWriter, r *http.Request) {
	t, ok := h.lookup(w, r)
	if !ok {
		return
	}
	if h.database == nil {
		errorResponse(w, http.StatusInternalServerError, "Database not available")
		return
	}
	stats, err := h.database.GetTableStats(t.Name)
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, "Error retrieving table statistics")
		return
	}
	response(w, http.StatusOK, stats)
}

// SetRules swaps the table rules between rounds
func (h *Handlers) SetRules(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Rules string `json:"rules"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	rules, ok := game.RulesByName(req.Rules)
	if !ok {
		errorResponse(w, http.StatusBadRequest, "Unknown rules preset")
		return
	}

	h.action(w, r, "set rules", func(t *game.Table) bool {
		return t.SetRules(rules)
	})
}

// Deal starts a round with the requested bet
func (h *Handlers) Deal(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount int `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	h.action(w, r, "deal", func(t *game.Table) bool {
		return t.Deal(req.Amount)
	})
}

// Hit draws a card into the active hand
func (h *Handlers) Hit(w http.ResponseWriter, r *http.Request) {
	h.action(w, r, "hit", (*game.Table).Hit)
}

// Stand finishes the active hand
func (h *Handlers) Stand(w http.ResponseWriter, r *http.Request) {
	h.action(w, r, "stand", (*game.Table).Stand)
}

// DoubleDown doubles the active hand
func (h *Handlers) DoubleDown(w http.ResponseWriter, r *http.Request) {
	h.action(w, r, "double", (*game.Table).DoubleDown)
}

// Split splits the active pair into two hands
func (h *Handlers) Split(w http.ResponseWriter, r *http.Request) {
	h.action(w, r, "split", (*game.Table).Split)
}

// Surrender gives up the active hand for half the bet
func (h *Handlers) Surrender(w http.ResponseWriter, r *http.Request) {
	h.action(w, r, "surrender", (*game.Table).Surrender)
}

// Insurance takes insurance on the active hand. Insurance is offered once,
// before any other decision, so the hand stands immediately after.
func (h *Handlers) Insurance(w http.ResponseWriter, r *http.Request) {
	h.action(w, r, "insurance", func(t *game.Table) bool {
		if !t.Insurance() {
			return false
		}
		t.Stand()
		return true
	})
}

// PlaceSideBet adds to the pending side wager
func (h *Handlers) PlaceSideBet(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount int `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	h.action(w, r, "side bet", func(t *game.Table) bool {
		return t.PlaceSideBet(req.Amount)
	})
}

// ClearSideBet refunds the pending side wager
func (h *Handlers) ClearSideBet(w http.ResponseWriter, r *http.Request) {
	h.action(w, r, "clear side bet", (*game.Table).ClearSideBet)
}

func (h *Handlers) lookup(w http.ResponseWriter, r *http.Request) (*game.Table, bool) {
	vars := mux.Vars(r)
	t, err := h.store.GetTable(vars["id"])
	if err != nil {
		errorResponse(w, http.StatusNotFound, "Table not found")
		return nil, false
	}
	return t, true
}

// action runs one engine action and, when it hands control to the dealer,
// resolves and settles the round in the same request. The engine has no
// timers; pacing is a client concern.
func (h *Handlers) action(w http.ResponseWriter, r *http.Request, name string, fn func(*game.Table) bool) {
	t, ok := h.lookup(w, r)
	if !ok {
		return
	}

	h.mu.Lock()
	applied := fn(t)
	var result *game.RoundResult
	if applied && t.Phase == game.PhaseDealer {
		t.ResolveDealer()
	}
	if applied && t.Phase == game.PhasePayout {
		result, _ = t.Settle()
	}
	if !applied {
		h.mu.Unlock()
		errorResponse(w, http.StatusBadRequest, "Unable to "+name)
		return
	}

	// Snapshot and broadcast read the table, so they stay under the lock
	// with the action that produced the state; persistence below works from
	// the captured values.
	bankroll := t.Bankroll
	snapshot := t.Snapshot()
	if h.hub != nil {
		h.hub.BroadcastTableUpdate(t, result)
	}
	h.mu.Unlock()

	if result != nil {
		h.logger.Info("round settled",
			"table", t.ID, "delta", result.Delta, "bankroll", result.Bankroll, "sideBets", len(result.SideBets))
		if h.database != nil {
			if err := h.database.SaveBankroll(t.Name, t.Name, bankroll); err != nil {
				h.logger.Error("failed to persist bankroll", "table", t.ID, "error", err)
			}
			if err := h.database.SaveRoundResult(t.Name, result); err != nil {
				h.logger.Error("failed to persist round result", "table", t.ID, "error", err)
			}
		}
	}

	body := map[string]interface{}{
		"success": true,
		"table":   snapshot,
	}
	if result != nil {
		body["result"] = result
	}
	response(w, http.StatusOK, body)
}
