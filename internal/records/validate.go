package records

import (
	"github.com/frahmantamala/maritime-backoffice/internal"
	recordsDatamodel "github.com/frahmantamala/maritime-backoffice/internal/core/datamodel/records"
	"github.com/frahmantamala/maritime-backoffice/internal/core/common/sanitize"
	"github.com/frahmantamala/maritime-backoffice/internal/core/common/validation"
)

func finish(v *validation.ValidationBuilder) error {
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

func ValidateVessel(r *recordsDatamodel.Vessel) error {
	r.VesselName = sanitize.Text(r.VesselName)
	r.VesselType = sanitize.Text(r.VesselType)
	r.FlagState = sanitize.Text(r.FlagState)
	if r.IMONumber != nil {
		imo := sanitize.Text(*r.IMONumber)
		r.IMONumber = &imo
		if imo == "" {
			r.IMONumber = nil
		}
	}

	v := validation.NewValidator()
	v.Field("vessel_name", r.VesselName).Required().MaxLength(100)
	v.Field("vessel_type", r.VesselType).MaxLength(50)
	v.Field("flag_state", r.FlagState).MaxLength(50)
	v.Field("build_year", r.BuildYear).MinInt(0, internal.ErrCodeValidationFailed)
	v.Field("gross_tonnage_gt", r.GrossTonnageGT).MinFloat(0)
	return finish(v)
}

// validateParty covers customers and vendors, which share a shape.
func validateParty(name, contact, address, phone *string) error {
	*name = sanitize.Text(*name)
	*contact = sanitize.Text(*contact)
	*address = sanitize.Text(*address)
	*phone = sanitize.Text(*phone)

	v := validation.NewValidator()
	v.Field("name", *name).Required().MaxLength(100)
	v.Field("contact_info", *contact).MaxLength(200)
	v.Field("address", *address).MaxLength(200)
	v.Field("phone", *phone).MaxLength(20)
	return finish(v)
}

func ValidateCustomer(r *recordsDatamodel.Customer) error {
	return validateParty(&r.Name, &r.ContactInfo, &r.Address, &r.Phone)
}

func ValidateVendor(r *recordsDatamodel.Vendor) error {
	return validateParty(&r.Name, &r.ContactInfo, &r.Address, &r.Phone)
}

func ValidateItem(r *recordsDatamodel.Item) error {
	r.Name = sanitize.Text(r.Name)
	r.Description = sanitize.Text(r.Description)

	v := validation.NewValidator()
	v.Field("name", r.Name).Required().MaxLength(100)
	v.Field("quantity", r.Quantity).MinInt(0, internal.ErrCodeValidationFailed)
	v.Field("unit_price", r.UnitPrice).MinFloat(0)
	return finish(v)
}

func ValidateContact(r *recordsDatamodel.Contact) error {
	r.FullName = sanitize.Text(r.FullName)
	r.ContactInfo = sanitize.Text(r.ContactInfo)
	r.Address = sanitize.Text(r.Address)
	r.Company = sanitize.Text(r.Company)
	r.Role = sanitize.Text(r.Role)

	v := validation.NewValidator()
	v.Field("full_name", r.FullName).Required().MaxLength(100)
	v.Field("contact_info", r.ContactInfo).Required().MaxLength(200)
	v.Field("company", r.Company).MaxLength(100)
	v.Field("role", r.Role).MaxLength(50)
	return finish(v)
}

func ValidatePurchaseOrder(r *recordsDatamodel.PurchaseOrder) error {
	r.ItemDescription = sanitize.Text(r.ItemDescription)
	r.Notes = sanitize.Text(r.Notes)

	v := validation.NewValidator()
	v.Field("quantity", r.Quantity).MinInt(0, internal.ErrCodeValidationFailed)
	return finish(v)
}
