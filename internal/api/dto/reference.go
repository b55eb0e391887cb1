package dto

import "delivery-route-planner/internal/refdata"

type ReferencesResponse struct {
	Gazetteer []refdata.GazetteerEntry `json:"gazetteer"`
	Whitelist []refdata.WhitelistEntry `json:"whitelist"`
}
