/* handlers.go
 * Contains the read-only JSON endpoints serving the typed group and match views
 */

package web

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"bracket-bot/api/api"
	"bracket-bot/api/matchgroup"
)

// Routes builds the request mux with all handlers bound to this server
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/webhooks/liquipedia", s.LiquipediaWebhookHandler)
	mux.HandleFunc("/groups", s.GroupsHandler)
	mux.HandleFunc("/bracket", s.BracketHandler)
	mux.HandleFunc("/match", s.MatchHandler)
	return mux
}

// GroupsHandler lists the bracket groups declared on the configured tournament page
func (s *Server) GroupsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	refs, err := s.api.Store.FetchGroupRefs()
	if err != nil {
		log.Println("group discovery failed:", err)
		http.Error(w, "group discovery failed", http.StatusBadGateway)
		return
	}
	writeJSON(w, refs)
}

// BracketHandler serves the full view of one group: /bracket?id=<groupId>
func (s *Server) BracketHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	groupID := r.URL.Query().Get("id")
	if groupID == "" {
		http.Error(w, "missing id parameter", http.StatusBadRequest)
		return
	}

	group, err := s.api.GetGroup(groupID)
	if err != nil {
		log.Println("group build failed:", err)
		http.Error(w, "group not available", http.StatusNotFound)
		return
	}
	writeJSON(w, api.NewGroupView(group))
}

// MatchHandler serves one match in display form: /match?group=<groupId>&id=<matchId>.
// Grand finals come back with the reset series merged in
func (s *Server) MatchHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	groupID := r.URL.Query().Get("group")
	matchID := r.URL.Query().Get("id")
	if groupID == "" || matchID == "" {
		http.Error(w, "missing group or id parameter", http.StatusBadRequest)
		return
	}

	match, err := s.api.GetMatchForDisplay(groupID, matchID)
	if err != nil {
		if errors.Is(err, matchgroup.ErrMatchNotFound) {
			http.Error(w, "match not found", http.StatusNotFound)
			return
		}
		log.Println("match resolution failed:", err)
		http.Error(w, "match not available", http.StatusBadGateway)
		return
	}
	writeJSON(w, api.NewMatchView(match))
}

func writeJSON(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Println("failed to encode response:", err)
	}
}
