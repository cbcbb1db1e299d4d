package handler

import (
	"encoding/json"
	"net/http"

	"pokedex-api/internal/middleware"
	"pokedex-api/internal/service"
)

// FavoritesHandler handles the favorites set endpoints
type FavoritesHandler struct {
	favorites *service.FavoritesService
}

func NewFavoritesHandler(favorites *service.FavoritesService) *FavoritesHandler {
	return &FavoritesHandler{favorites: favorites}
}

// FavoriteRequest represents the add/remove request body
type FavoriteRequest struct {
	PokeName string `json:"pokeName"`
}

// Add handles POST /user/favorites/add
func (h *FavoritesHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: "Not authenticated"})
		return
	}

	var req FavoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "Invalid request body"})
		return
	}

	if err := h.favorites.Add(r.Context(), userID, req.PokeName); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// Remove handles POST /user/favorites/remove. Removing an absent item is a
// success, so the only failures here are transport-level ones.
func (h *FavoritesHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: "Not authenticated"})
		return
	}

	var req FavoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "Invalid request body"})
		return
	}

	if err := h.favorites.Remove(r.Context(), userID, req.PokeName); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// List handles GET /user/favorites. An empty set is a valid 200 with an
// empty array, distinct from the account itself being gone.
func (h *FavoritesHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: "Not authenticated"})
		return
	}

	items, err := h.favorites.List(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, items)
}
