// Package records holds the plain CRUD entities served by the generic record store.
package records

import (
	"time"

	"github.com/frahmantamala/maritime-backoffice/internal/docnumber"
	"gorm.io/gorm"
)

type Vessel struct {
	ID                int64   `gorm:"primaryKey" json:"id"`
	VesselName        string  `gorm:"column:vessel_name;size:100;not null" json:"vessel_name"`
	IMONumber         *string `gorm:"column:imo_number;size:20;uniqueIndex" json:"imo_number,omitempty"`
	BuildYear         int     `gorm:"column:build_year" json:"build_year,omitempty"`
	VesselType        string  `gorm:"column:vessel_type;size:50" json:"vessel_type,omitempty"`
	GrossTonnageGT    float64 `gorm:"column:gross_tonnage_gt" json:"gross_tonnage_gt,omitempty"`
	FlagState         string  `gorm:"column:flag_state;size:50" json:"flag_state,omitempty"`
	USCGDocumentation string  `gorm:"column:uscg_documentation;size:50" json:"uscg_documentation,omitempty"`
	RadarSystem       string  `gorm:"column:radar_system;size:100" json:"radar_system,omitempty"`
	RouteType         string  `gorm:"column:route_type;size:50" json:"route_type,omitempty"`
}

func (Vessel) TableName() string { return "vessels" }

type Customer struct {
	ID          int64  `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"column:name;size:100;not null" json:"name"`
	ContactInfo string `gorm:"column:contact_info;size:200" json:"contact_info,omitempty"`
	Address     string `gorm:"column:address;size:200" json:"address,omitempty"`
	Phone       string `gorm:"column:phone;size:20" json:"phone,omitempty"`
}

func (Customer) TableName() string { return "customers" }

type Vendor struct {
	ID          int64  `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"column:name;size:100;not null" json:"name"`
	ContactInfo string `gorm:"column:contact_info;size:200" json:"contact_info,omitempty"`
	Address     string `gorm:"column:address;size:200" json:"address,omitempty"`
	Phone       string `gorm:"column:phone;size:20" json:"phone,omitempty"`
}

func (Vendor) TableName() string { return "vendors" }

type Item struct {
	ID          int64   `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"column:name;size:100;not null" json:"name"`
	Description string  `gorm:"column:description;type:text" json:"description,omitempty"`
	Quantity    int     `gorm:"column:quantity" json:"quantity"`
	UnitPrice   float64 `gorm:"column:unit_price" json:"unit_price"`
}

func (Item) TableName() string { return "items" }

type Contact struct {
	ID          int64  `gorm:"primaryKey" json:"id"`
	FullName    string `gorm:"column:full_name;size:100;not null" json:"full_name"`
	ContactInfo string `gorm:"column:contact_info;size:200;not null" json:"contact_info"`
	Address     string `gorm:"column:address;size:200" json:"address,omitempty"`
	Company     string `gorm:"column:company;size:100" json:"company,omitempty"`
	Role        string `gorm:"column:role;size:50" json:"role,omitempty"`
}

func (Contact) TableName() string { return "contacts" }

type PurchaseOrder struct {
	ID              int64     `gorm:"primaryKey" json:"id"`
	OrderNumber     string    `gorm:"column:order_number;size:8;uniqueIndex;not null" json:"order_number"`
	CreatedDate     time.Time `gorm:"column:created_date" json:"created_date"`
	CreatedBy       string    `gorm:"column:created_by;size:100" json:"created_by"`
	VendorID        *int64    `gorm:"column:vendor_id" json:"vendor_id,omitempty"`
	Quantity        int       `gorm:"column:quantity" json:"quantity"`
	ItemDescription string    `gorm:"column:item_description;type:text" json:"item_description,omitempty"`
	CustomerID      *int64    `gorm:"column:customer_id" json:"customer_id,omitempty"`
	JobID           *int64    `gorm:"column:job_id" json:"job_id,omitempty"`
	Notes           string    `gorm:"column:notes;type:text" json:"notes,omitempty"`
}

func (PurchaseOrder) TableName() string { return "purchase_orders" }

// BeforeCreate assigns the next MMYYNNNN order number unless one was given.
func (p *PurchaseOrder) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if p.CreatedDate.IsZero() {
		p.CreatedDate = now
	}
	if p.OrderNumber != "" {
		return nil
	}
	n, err := docnumber.Assign(tx, "purchase_orders", "order_number", now)
	if err != nil {
		return err
	}
	p.OrderNumber = n
	return nil
}
