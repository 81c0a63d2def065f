package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mightytheif/sakany/internal/cache"
	"github.com/mightytheif/sakany/internal/visibility"
	"github.com/mightytheif/sakany/pkg/models"
	"github.com/mightytheif/sakany/pkg/repository"
)

const featuredLimit = 6

type PropertiesHandler struct {
	propRepo repository.PropertyRepo
	cache    *cache.Cache
}

func NewPropertiesHandler(pr repository.PropertyRepo, c *cache.Cache) *PropertiesHandler {
	return &PropertiesHandler{propRepo: pr, cache: c}
}

// ListPublic serves the public search endpoint. Query filters narrow the
// candidate set; the visibility gate decides what the public may see.
func (h *PropertiesHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := models.PropertyFilter{
		Type:     q.Get("type"),
		Location: q.Get("location"),
	}
	if v := q.Get("price_min"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			filter.PriceMin = f
		}
	}
	if v := q.Get("price_max"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			filter.PriceMax = f
		}
	}
	if v := q.Get("bedrooms"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			filter.Bedrooms = n
		}
	}
	limit, offset := pagination(q.Get("limit"), q.Get("offset"))

	params := map[string]string{
		"type": filter.Type, "location": filter.Location,
		"price_min": q.Get("price_min"), "price_max": q.Get("price_max"),
		"bedrooms": q.Get("bedrooms"),
		"limit":    strconv.Itoa(limit), "offset": strconv.Itoa(offset),
	}
	key := cache.Key("properties", params)

	var visible []models.Property
	if hit, err := h.cache.Get(r.Context(), key, &visible); err == nil && hit {
		writeJSON(w, map[string]any{"items": visible}, http.StatusOK)
		return
	}

	props, err := h.propRepo.ListProperties(r.Context(), filter, limit, offset)
	if err != nil {
		http.Error(w, "failed to list properties", http.StatusInternalServerError)
		return
	}

	visible = visibility.Filter(props)
	if err := h.cache.Set(r.Context(), key, visible); err != nil {
		logger.Warn("cache search results", "err", err)
	}

	writeJSON(w, map[string]any{"items": visible}, http.StatusOK)
}

// Featured serves the home-page list: the newest publicly visible listings.
// Visibility is decided after the fetch, so it pages through the newest rows
// until the list fills or the table runs out.
func (h *PropertiesHandler) Featured(w http.ResponseWriter, r *http.Request) {
	const page = featuredLimit * 4

	visible := make([]models.Property, 0, featuredLimit)
	for offset := 0; len(visible) < featuredLimit; offset += page {
		props, err := h.propRepo.ListProperties(r.Context(), models.PropertyFilter{}, page, offset)
		if err != nil {
			http.Error(w, "failed to list properties", http.StatusInternalServerError)
			return
		}
		visible = append(visible, visibility.Filter(props)...)
		if len(props) < page {
			break
		}
	}
	if len(visible) > featuredLimit {
		visible = visible[:featuredLimit]
	}

	writeJSON(w, map[string]any{"items": visible}, http.StatusOK)
}

// GetProperty returns one listing. Hidden listings are visible only to their
// owner and to admins; everyone else gets a 404, not a 403, so the endpoint
// does not leak listing existence.
func (h *PropertiesHandler) GetProperty(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "invalid property id", http.StatusBadRequest)
		return
	}

	p, err := h.propRepo.GetPropertyByID(r.Context(), id)
	if err != nil {
		http.Error(w, "failed to fetch property", http.StatusInternalServerError)
		return
	}
	if p == nil {
		http.Error(w, "property not found", http.StatusNotFound)
		return
	}

	if !visibility.IsPubliclyVisible(*p) {
		if userID(r) != p.OwnerID && !isAdmin(r) {
			http.Error(w, "property not found", http.StatusNotFound)
			return
		}
	}

	writeJSON(w, p, http.StatusOK)
}

type createPropertyRequest struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	PropertyType string   `json:"property_type"`
	Price        float64  `json:"price"`
	Bedrooms     int      `json:"bedrooms"`
	Bathrooms    float64  `json:"bathrooms"`
	AreaSqm      float64  `json:"area_sqm"`
	Location     string   `json:"location"`
	Amenities    []string `json:"amenities"`
	Published    *bool    `json:"published,omitempty"`
}

// CreateProperty submits a new listing. It always starts unverified and
// pending; only an admin decision moves it further.
func (h *PropertiesHandler) CreateProperty(w http.ResponseWriter, r *http.Request) {
	var req createPropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if req.Title == "" || req.PropertyType == "" {
		http.Error(w, "missing fields", http.StatusBadRequest)
		return
	}
	if req.Price < 0 || req.Bedrooms < 0 || req.Bathrooms < 0 || req.AreaSqm < 0 {
		http.Error(w, "negative values not allowed", http.StatusBadRequest)
		return
	}

	published := true
	if req.Published != nil {
		published = *req.Published
	}

	p := models.Property{
		OwnerID:      userID(r),
		Title:        req.Title,
		Description:  req.Description,
		PropertyType: req.PropertyType,
		Price:        req.Price,
		Bedrooms:     req.Bedrooms,
		Bathrooms:    req.Bathrooms,
		AreaSqm:      req.AreaSqm,
		Location:     req.Location,
		Amenities:    req.Amenities,
		Verified:     false,
		Published:    published,
		Status:       models.StatusPending,
	}

	id, err := h.propRepo.CreateProperty(r.Context(), &p)
	if err != nil {
		http.Error(w, "failed to create property", http.StatusInternalServerError)
		return
	}
	p.ID = id

	writeJSON(w, p, http.StatusCreated)
}

// UpdateProperty lets the owner (or an admin) edit listing details. Edits do
// not touch the moderation flags.
func (h *PropertiesHandler) UpdateProperty(w http.ResponseWriter, r *http.Request) {
	p, ok := h.ownedProperty(w, r)
	if !ok {
		return
	}

	var req createPropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if req.Title != "" {
		p.Title = req.Title
	}
	if req.PropertyType != "" {
		p.PropertyType = req.PropertyType
	}
	if req.Price > 0 {
		p.Price = req.Price
	}
	if req.Bedrooms > 0 {
		p.Bedrooms = req.Bedrooms
	}
	if req.Bathrooms > 0 {
		p.Bathrooms = req.Bathrooms
	}
	if req.AreaSqm > 0 {
		p.AreaSqm = req.AreaSqm
	}
	if req.Description != "" {
		p.Description = req.Description
	}
	if req.Location != "" {
		p.Location = req.Location
	}
	if req.Amenities != nil {
		p.Amenities = req.Amenities
	}
	if req.Published != nil {
		p.Published = *req.Published
	}

	if err := h.propRepo.UpdateProperty(r.Context(), p); err != nil {
		http.Error(w, "failed to update property", http.StatusInternalServerError)
		return
	}

	writeJSON(w, p, http.StatusOK)
}

func (h *PropertiesHandler) DeleteProperty(w http.ResponseWriter, r *http.Request) {
	p, ok := h.ownedProperty(w, r)
	if !ok {
		return
	}

	if err := h.propRepo.DeleteProperty(r.Context(), p.ID); err != nil {
		http.Error(w, "failed to delete property", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]string{"message": "property deleted"}, http.StatusOK)
}

type ownedProperty struct {
	models.Property
	DisplayStatus string `json:"display_status"`
}

// MyProperties lists the caller's listings annotated with the derived
// display status; the raw status field alone would mislabel unverified
// listings as live.
func (h *PropertiesHandler) MyProperties(w http.ResponseWriter, r *http.Request) {
	props, err := h.propRepo.ListByOwner(r.Context(), userID(r))
	if err != nil {
		http.Error(w, "failed to list properties", http.StatusInternalServerError)
		return
	}

	out := make([]ownedProperty, 0, len(props))
	for _, p := range props {
		out = append(out, ownedProperty{Property: p, DisplayStatus: visibility.DisplayStatus(p)})
	}

	writeJSON(w, map[string]any{"items": out}, http.StatusOK)
}

type statusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus performs an owner lifecycle transition (sold/rented/inactive/
// active). Transitions outside the allowed lateral set are refused.
func (h *PropertiesHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	p, ok := h.ownedProperty(w, r)
	if !ok {
		return
	}

	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	if !visibility.CanOwnerTransition(*p, req.Status) {
		http.Error(w, "status transition not allowed", http.StatusConflict)
		return
	}

	if err := h.propRepo.SetStatus(r.Context(), p.ID, req.Status); err != nil {
		http.Error(w, "failed to update status", http.StatusInternalServerError)
		return
	}
	p.Status = req.Status

	writeJSON(w, ownedProperty{Property: *p, DisplayStatus: visibility.DisplayStatus(*p)}, http.StatusOK)
}

// ownedProperty loads the listing from the path id and enforces that the
// caller owns it or is an admin. On failure it writes the response itself.
func (h *PropertiesHandler) ownedProperty(w http.ResponseWriter, r *http.Request) (*models.Property, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "invalid property id", http.StatusBadRequest)
		return nil, false
	}

	p, err := h.propRepo.GetPropertyByID(r.Context(), id)
	if err != nil {
		http.Error(w, "failed to fetch property", http.StatusInternalServerError)
		return nil, false
	}
	if p == nil {
		http.Error(w, "property not found", http.StatusNotFound)
		return nil, false
	}

	if p.OwnerID != userID(r) && !isAdmin(r) {
		http.Error(w, "not your property", http.StatusForbidden)
		return nil, false
	}

	return p, true
}

func pagination(limitStr, offsetStr string) (int, int) {
	limit := 50
	if limitStr != "" {
		if v, err := strconv.Atoi(limitStr); err == nil && v > 0 && v <= 500 {
			limit = v
		}
	}
	offset := 0
	if offsetStr != "" {
		if v, err := strconv.Atoi(offsetStr); err == nil && v >= 0 {
			offset = v
		}
	}
	return limit, offset
}
