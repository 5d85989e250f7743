package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Product is a catalog piece of furniture shown on the public site
type Product struct {
	ID          uuid.UUID                   `gorm:"type:uuid;primary_key" json:"id"`
	Name        string                      `gorm:"size:255;not null" json:"name"`
	Slug        string                      `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Category    string                      `gorm:"size:100;index" json:"category,omitempty"`
	Description string                      `gorm:"type:text" json:"description,omitempty"`
	Price       *decimal.Decimal            `gorm:"type:decimal(15,2)" json:"price,omitempty"`
	Images      datatypes.JSONSlice[string] `json:"images"`
	Featured    bool                        `gorm:"default:false" json:"featured"`
	Published   bool                        `gorm:"default:false;index" json:"published"`
	CreatedAt   time.Time                   `json:"created_at"`
	UpdatedAt   time.Time                   `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// Service is a remodeling service offered by the business
type Service struct {
	ID          uuid.UUID                   `gorm:"type:uuid;primary_key" json:"id"`
	Name        string                      `gorm:"size:255;not null" json:"name"`
	Slug        string                      `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Summary     string                      `gorm:"size:500" json:"summary,omitempty"`
	Description string                      `gorm:"type:text" json:"description,omitempty"`
	Icon        string                      `gorm:"size:100" json:"icon,omitempty"`
	Images      datatypes.JSONSlice[string] `json:"images"`
	Position    int                         `gorm:"default:0" json:"position"`
	Published   bool                        `gorm:"default:false;index" json:"published"`
	CreatedAt   time.Time                   `json:"created_at"`
	UpdatedAt   time.Time                   `json:"updated_at"`
}

func (s *Service) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

func (Service) TableName() string {
	return "services"
}

// Project is a finished job shown in the portfolio
type Project struct {
	ID          uuid.UUID                   `gorm:"type:uuid;primary_key" json:"id"`
	Title       string                      `gorm:"size:255;not null" json:"title"`
	Slug        string                      `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Location    string                      `gorm:"size:255" json:"location,omitempty"`
	Description string                      `gorm:"type:text" json:"description,omitempty"`
	CoverImage  string                      `gorm:"size:500" json:"cover_image,omitempty"`
	Gallery     datatypes.JSONSlice[string] `json:"gallery"`
	CompletedAt *time.Time                  `gorm:"type:date" json:"completed_at,omitempty"`
	Published   bool                        `gorm:"default:false;index" json:"published"`
	CreatedAt   time.Time                   `json:"created_at"`
	UpdatedAt   time.Time                   `json:"updated_at"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (Project) TableName() string {
	return "projects"
}
