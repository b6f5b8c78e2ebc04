package employee

import (
	"time"

	"github.com/frahmantamala/maritime-backoffice/internal/core/common/sanitize"
	"github.com/frahmantamala/maritime-backoffice/internal/core/common/validation"
)

type EmployeeRequest struct {
	FullName          string  `json:"full_name"`
	DateOfBirth       string  `json:"date_of_birth,omitempty"`
	ContactInfo       string  `json:"contact_info,omitempty"`
	Address           string  `json:"address,omitempty"`
	HireDate          string  `json:"hire_date,omitempty"`
	RolePosition      string  `json:"role_position,omitempty"`
	PayrateRT         float64 `json:"payrate_rt"`
	PayrateOT         float64 `json:"payrate_ot"`
	STCWCertification string  `json:"stcw_certification,omitempty"`
	TWICCard          string  `json:"twic_card,omitempty"`
	MMC               string  `json:"merchant_mariner_credential_mmc,omitempty"`
	YearsOfExperience string  `json:"years_of_experience,omitempty"`

	// User optionally creates a login linked to the new employee.
	User *AccountRequest `json:"user,omitempty"`
}

type AccountRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	RoleID   *int64 `json:"role_id,omitempty"`
}

func (r *EmployeeRequest) Validate() error {
	r.FullName = sanitize.Text(r.FullName)
	r.ContactInfo = sanitize.Text(r.ContactInfo)
	r.Address = sanitize.Text(r.Address)
	r.RolePosition = sanitize.Text(r.RolePosition)

	v := validation.NewValidator()
	v.Field("full_name", r.FullName).Required().MaxLength(100)
	v.Field("contact_info", r.ContactInfo).MaxLength(200)
	v.Field("address", r.Address).MaxLength(200)
	v.Field("role_position", r.RolePosition).MaxLength(100)
	v.Field("payrate_rt", r.PayrateRT).MinFloat(0)
	v.Field("payrate_ot", r.PayrateOT).MinFloat(0)
	v.Field("twic_card", r.TWICCard).MaxLength(20)
	v.Field("merchant_mariner_credential_mmc", r.MMC).MaxLength(20)
	v.Field("years_of_experience", r.YearsOfExperience).MaxLength(10)
	v.Field("date_of_birth", r.DateOfBirth).Date(DateLayout)
	v.Field("hire_date", r.HireDate).Date(DateLayout)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// apply copies the request onto e. Dates were checked by Validate.
func (r *EmployeeRequest) apply(e *Employee) {
	e.FullName = r.FullName
	e.DateOfBirth = parseDate(r.DateOfBirth)
	e.ContactInfo = r.ContactInfo
	e.Address = r.Address
	e.HireDate = parseDate(r.HireDate)
	e.RolePosition = r.RolePosition
	e.PayrateRT = r.PayrateRT
	e.PayrateOT = r.PayrateOT
	e.STCWCertification = r.STCWCertification
	e.TWICCard = r.TWICCard
	e.MMC = r.MMC
	e.YearsOfExperience = r.YearsOfExperience
}

func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return nil
	}
	return &t
}
