package handlers

import (
	"net/http"

	"vertigo/internal/affiliate"
)

// Affiliate handles GET /api/affiliate and redirects to the selected
// partner link.
func (a *API) Affiliate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req, err := affiliate.ParseRequest(q.Get("destination"), q.Get("category"), q.Get("vertical"), q.Get("partner"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	link, ok := a.selector.Best(req)
	if !ok {
		writeError(w, http.StatusNotFound, "no affiliate partner available")
		return
	}
	http.Redirect(w, r, link, http.StatusFound)
}
