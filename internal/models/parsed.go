package models

import "github.com/shopspring/decimal"

// ParsedBill is the structured result of reading a bill image.
type ParsedBill struct {
	Items    []ParsedItem `json:"items"`
	Category string       `json:"bill_category"`
	People   []string     `json:"people"`
}

// ParsedItem is one line of a parsed bill.
type ParsedItem struct {
	Name         string          `json:"item_name"`
	Quantity     decimal.Decimal `json:"quantity"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
	TotalPrice   decimal.Decimal `json:"total_price"`
}
