package api

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mightytheif/sakany/pkg/repository"
)

type FavoritesHandler struct {
	favRepo  repository.FavoriteRepo
	propRepo repository.PropertyRepo
}

func NewFavoritesHandler(fr repository.FavoriteRepo, pr repository.PropertyRepo) *FavoritesHandler {
	return &FavoritesHandler{favRepo: fr, propRepo: pr}
}

func (h *FavoritesHandler) Add(w http.ResponseWriter, r *http.Request) {
	propertyID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || propertyID <= 0 {
		http.Error(w, "invalid property id", http.StatusBadRequest)
		return
	}

	p, err := h.propRepo.GetPropertyByID(r.Context(), propertyID)
	if err != nil {
		http.Error(w, "failed to fetch property", http.StatusInternalServerError)
		return
	}
	if p == nil {
		http.Error(w, "property not found", http.StatusNotFound)
		return
	}

	if err := h.favRepo.AddFavorite(r.Context(), userID(r), propertyID); err != nil {
		http.Error(w, "failed to add favorite", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]string{"message": "favorite added"}, http.StatusCreated)
}

func (h *FavoritesHandler) Remove(w http.ResponseWriter, r *http.Request) {
	propertyID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || propertyID <= 0 {
		http.Error(w, "invalid property id", http.StatusBadRequest)
		return
	}

	if err := h.favRepo.RemoveFavorite(r.Context(), userID(r), propertyID); err != nil {
		http.Error(w, "failed to remove favorite", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]string{"message": "favorite removed"}, http.StatusOK)
}

// List returns the caller's saved listings. Listings that lost their public
// visibility since being saved are still returned; the owner-independent
// display rules apply only to public lists, and users expect saved items to
// stay on their shelf.
func (h *FavoritesHandler) List(w http.ResponseWriter, r *http.Request) {
	props, err := h.favRepo.ListFavoriteProperties(r.Context(), userID(r))
	if err != nil {
		http.Error(w, "failed to list favorites", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]any{"items": props}, http.StatusOK)
}
