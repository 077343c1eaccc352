package catalog

import "local-market-backend/internal/model"

// ApiResponse models the remote catalog endpoint's response.
type ApiResponse struct {
	Code int `json:"code"`
	Data struct {
		Categories []model.Category `json:"categories"`
		Fixers     []model.Fixer    `json:"fixers"`
		Products   []model.Product  `json:"products"`
	} `json:"data"`
}
