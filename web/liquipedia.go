package web

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
)

type LiquipediaEvent struct {
	Wiki  string `json:"wiki"`
	Page  string `json:"page"`
	Event string `json:"event"`
}

func isRelevantTournamentPage(page, base string) bool {
	if page == base {
		return true
	}
	return strings.HasPrefix(page, base+"/")
}

// LiquipediaWebhookHandler HTTP endpoint that receives a webhook from the LiquipediaDB api
// when the tournament page is edited. It drops the cached records of every group on the
// page so the next read rebuilds from fresh data
// Preconditions: HTTP server has been started, receives HTTP ResponseWriter and Http Request
// Postconditions: Kicks off cache invalidation for the page's groups
func (s *Server) LiquipediaWebhookHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	defer r.Body.Close()

	var event LiquipediaEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		log.Println("failed to decode webhook:", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if event.Wiki != s.wiki {
		w.WriteHeader(http.StatusOK)
		return
	}
	if !isRelevantTournamentPage(event.Page, s.api.Store.GetPage()) {
		w.WriteHeader(http.StatusOK)
		return
	}

	log.Printf("Liquipedia event wiki=%s page=%s event=%s\n", event.Wiki, event.Page, event.Event)

	// The invalidation hits the db and possibly the wiki, so it runs off the request path
	go func() {
		refs, err := s.api.Store.FetchGroupRefs()
		if err != nil {
			log.Println("group discovery during invalidation failed:", err)
			return
		}
		for _, ref := range refs {
			if err := s.api.Store.InvalidateGroup(ref.ID); err != nil {
				log.Printf("failed to invalidate group %s: %v\n", ref.ID, err)
			}
		}
	}()

	w.WriteHeader(http.StatusOK)
}
