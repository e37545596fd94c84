package entity

import "time"

// TokenPrice is a single quote from the price feed. The feed may carry
// several quotes for one currency taken at different dates.
type TokenPrice struct {
	Currency string    `json:"currency"`
	Date     time.Time `json:"date"`
	Price    float64   `json:"price"`
}

// PriceTable maps a currency to its current USD unit price.
type PriceTable map[string]float64

// Price returns the USD unit price of currency, or 0 when it is not quoted.
func (t PriceTable) Price(currency string) float64 {
	return t[currency]
}
