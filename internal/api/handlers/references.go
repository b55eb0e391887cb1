package handlers

import (
	"delivery-route-planner/internal/api/dto"
	"delivery-route-planner/internal/refdata"
	"net/http"
)

// ReferenceHandler exposes the read-only gazetteer and whitelist tables.
type ReferenceHandler struct {
	Tables *refdata.Tables
}

func (h *ReferenceHandler) List(w http.ResponseWriter, r *http.Request) {
	res := dto.ReferencesResponse{
		Gazetteer: []refdata.GazetteerEntry{},
		Whitelist: []refdata.WhitelistEntry{},
	}
	if h.Tables != nil {
		if g := h.Tables.Gazetteer.Entries(); g != nil {
			res.Gazetteer = g
		}
		if wl := h.Tables.Whitelist.Entries(); wl != nil {
			res.Whitelist = wl
		}
	}

	writeJSON(w, r, http.StatusOK, res)
}
