package models

import (
	"github.com/golang-jwt/jwt/v4"
)

// --- JWT ---

// JwtClaims is the payload of the bearer tokens issued by the identity service.
type JwtClaims struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// --- Dashboard building blocks ---

// KpiData is a single KPI card: the current value, the value of the previous
// window and the percent change between them.
type KpiData struct {
	Value         float64 `json:"value"`
	Previous      float64 `json:"previous"`
	Change        float64 `json:"change"`
	Display       string  `json:"display"`
	ChangeDisplay string  `json:"change_display"`
}

// ProductSummary represents a summary of a single product's performance.
type ProductSummary struct {
	Rank         int     `json:"rank"`
	ProductID    string  `json:"product_id"`
	ProductName  string  `json:"product_name"`
	QuantitySold int     `json:"quantity_sold"`
	Revenue      float64 `json:"revenue"`
}

// PaginatedProductsResponse is a page of the product ranking.
type PaginatedProductsResponse struct {
	Items      []ProductSummary `json:"items"`
	Pagination PaginationInfo   `json:"pagination"`
}
