package models

import "github.com/shopspring/decimal"

// LocalizedText carries the English and Amharic variants of a menu string.
type LocalizedText struct {
	En string `json:"en"`
	Am string `json:"am"`
}

type LocalizedList struct {
	En []string `json:"en"`
	Am []string `json:"am"`
}

// MenuItem is the catalog record as served by the menu collaborator.
// The ordering service only reads it; cart lines keep a snapshot of the
// item as it looked when it was added.
type MenuItem struct {
	ID          string          `json:"id"`
	Name        LocalizedText   `json:"name"`
	Description LocalizedText   `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Ingredients LocalizedList   `json:"ingredients"`
	ImageURL    string          `json:"imageUrl"`
	Available   bool            `json:"available"`
}

type MenuResponse struct {
	Items []MenuItem `json:"items"`
}
