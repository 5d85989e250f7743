package request

import "github.com/shopspring/decimal"

// QuoteRequest is the body of quote create and update. Totals are computed server side.
type QuoteRequest struct {
	ClientName         string             `json:"client_name" binding:"required,max=255"`
	ClientEmail        string             `json:"client_email" binding:"omitempty,email,max=255"`
	ClientPhone        string             `json:"client_phone" binding:"omitempty,max=50"`
	ClientAddress      string             `json:"client_address"`
	ProjectName        string             `json:"project_name" binding:"max=255"`
	ProjectDescription string             `json:"project_description"`
	ValidUntil         *string            `json:"valid_until" binding:"omitempty,datetime=2006-01-02"`
	Tax                decimal.Decimal    `json:"tax"`
	Discount           decimal.Decimal    `json:"discount"`
	Notes              string             `json:"notes"`
	Images             []string           `json:"images" binding:"omitempty,dive,url"`
	Items              []QuoteItemRequest `json:"items" binding:"dive"`
}

// QuoteItemRequest is one line of a quote
type QuoteItemRequest struct {
	Description string          `json:"description" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// QuoteStatusRequest changes the status chosen by the admin
type QuoteStatusRequest struct {
	Status string `json:"status" binding:"required,quote_status"`
}

// QuoteFilterRequest represents quote list query parameters
type QuoteFilterRequest struct {
	Search    string `form:"search"`
	Status    string `form:"status" binding:"omitempty,quote_status"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
	Page      string `form:"page"`
	PerPage   string `form:"per_page"`
}
