package request

import "github.com/shopspring/decimal"

// ProductRequest creates or replaces a catalog product
type ProductRequest struct {
	Name        string           `json:"name" binding:"required,max=255"`
	Slug        string           `json:"slug" binding:"max=255"`
	Category    string           `json:"category" binding:"max=100"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Images      []string         `json:"images" binding:"omitempty,dive,url"`
	Featured    bool             `json:"featured"`
	Published   bool             `json:"published"`
}

// ServiceRequest creates or replaces an offered service
type ServiceRequest struct {
	Name        string   `json:"name" binding:"required,max=255"`
	Slug        string   `json:"slug" binding:"max=255"`
	Summary     string   `json:"summary" binding:"max=500"`
	Description string   `json:"description"`
	Icon        string   `json:"icon" binding:"max=100"`
	Images      []string `json:"images" binding:"omitempty,dive,url"`
	Position    int      `json:"position"`
	Published   bool     `json:"published"`
}

// ProjectRequest creates or replaces a portfolio project
type ProjectRequest struct {
	Title       string   `json:"title" binding:"required,max=255"`
	Slug        string   `json:"slug" binding:"max=255"`
	Location    string   `json:"location" binding:"max=255"`
	Description string   `json:"description"`
	CoverImage  string   `json:"cover_image" binding:"omitempty,url"`
	Gallery     []string `json:"gallery" binding:"omitempty,dive,url"`
	CompletedAt *string  `json:"completed_at" binding:"omitempty,datetime=2006-01-02"`
	Published   bool     `json:"published"`
}

// CatalogFilterRequest represents catalog list query parameters
type CatalogFilterRequest struct {
	Search   string `form:"search"`
	Category string `form:"category"`
	Featured bool   `form:"featured"`
	Page     string `form:"page"`
	PerPage  string `form:"per_page"`
}
