package handler

import (
	"net/http"

	"github.com/rakatama/koperasi-admin/internal/platform/coa"
	"github.com/rakatama/koperasi-admin/internal/transport/httpapi/middleware"
)

// AccountsHandler serves the chart-of-accounts hierarchy
type AccountsHandler struct {
	accounts *coa.Service
}

// NewAccountsHandler creates a new accounts handler
func NewAccountsHandler(accounts *coa.Service) *AccountsHandler {
	return &AccountsHandler{accounts: accounts}
}

// GetTree handles GET /accounts/tree. With ?flat=true the hierarchy is
// returned as a depth-annotated pre-order list, the shape the account
// dropdowns render from.
func (h *AccountsHandler) GetTree(w http.ResponseWriter, r *http.Request) {
	token, ok := middleware.GetTokenFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if r.URL.Query().Get("flat") == "true" {
		rows, err := h.accounts.Rows(r.Context(), token)
		if err != nil {
			respondUpstreamError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, map[string]interface{}{"data": rows})
		return
	}

	tree, err := h.accounts.Tree(r.Context(), token)
	if err != nil {
		respondUpstreamError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{"data": tree})
}
