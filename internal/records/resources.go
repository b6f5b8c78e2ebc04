package records

import (
	"time"

	recordsDatamodel "github.com/frahmantamala/maritime-backoffice/internal/core/datamodel/records"
	"github.com/frahmantamala/maritime-backoffice/internal/identity"
	"gorm.io/gorm"
)

// Stores holds one store per record table.
type Stores struct {
	Vessels        *Store[recordsDatamodel.Vessel]
	Customers      *Store[recordsDatamodel.Customer]
	Vendors        *Store[recordsDatamodel.Vendor]
	Items          *Store[recordsDatamodel.Item]
	Contacts       *Store[recordsDatamodel.Contact]
	PurchaseOrders *Store[recordsDatamodel.PurchaseOrder]
}

func NewStores(db *gorm.DB) *Stores {
	return &Stores{
		Vessels:        NewStore[recordsDatamodel.Vessel](db, "vessel_name"),
		Customers:      NewStore[recordsDatamodel.Customer](db, "name"),
		Vendors:        NewStore[recordsDatamodel.Vendor](db, "name"),
		Items:          NewStore[recordsDatamodel.Item](db, "name"),
		Contacts:       NewStore[recordsDatamodel.Contact](db, "full_name"),
		PurchaseOrders: NewStore[recordsDatamodel.PurchaseOrder](db, "created_date DESC, id DESC", "order_number", "created_date", "created_by"),
	}
}

type Handlers struct {
	Vessels        *Handler[recordsDatamodel.Vessel]
	Customers      *Handler[recordsDatamodel.Customer]
	Vendors        *Handler[recordsDatamodel.Vendor]
	Items          *Handler[recordsDatamodel.Item]
	Contacts       *Handler[recordsDatamodel.Contact]
	PurchaseOrders *Handler[recordsDatamodel.PurchaseOrder]
}

func NewHandlers(s *Stores) *Handlers {
	return &Handlers{
		Vessels:   NewHandler[recordsDatamodel.Vessel](s.Vessels, Options[recordsDatamodel.Vessel]{Name: "vessel", Validate: ValidateVessel}),
		Customers: NewHandler[recordsDatamodel.Customer](s.Customers, Options[recordsDatamodel.Customer]{Name: "customer", Validate: ValidateCustomer}),
		Vendors:   NewHandler[recordsDatamodel.Vendor](s.Vendors, Options[recordsDatamodel.Vendor]{Name: "vendor", Validate: ValidateVendor}),
		Items:     NewHandler[recordsDatamodel.Item](s.Items, Options[recordsDatamodel.Item]{Name: "item", Validate: ValidateItem}),
		Contacts:  NewHandler[recordsDatamodel.Contact](s.Contacts, Options[recordsDatamodel.Contact]{Name: "contact", Validate: ValidateContact}),
		PurchaseOrders: NewHandler[recordsDatamodel.PurchaseOrder](s.PurchaseOrders, Options[recordsDatamodel.PurchaseOrder]{
			Name:     "purchase_order",
			PageSize: PurchaseOrderPageSize,
			Validate: ValidatePurchaseOrder,
			Stamp:    stampPurchaseOrder,
		}),
	}
}

// stampPurchaseOrder records who raised the order; number and date come
// from the insert hook.
func stampPurchaseOrder(sess identity.SessionContext, po *recordsDatamodel.PurchaseOrder) {
	po.ID = 0
	po.OrderNumber = ""
	po.CreatedDate = time.Time{}
	po.CreatedBy = sess.Username
}
