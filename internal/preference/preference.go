package preference

import (
	"regexp"
	"time"

	"github.com/frahmantamala/maritime-backoffice/internal"
	"github.com/frahmantamala/maritime-backoffice/internal/core/common/validation"
)

const (
	DefaultHeaderColor     = "#1da1f2"
	DefaultButtonColor     = "#1da1f2"
	DefaultBackgroundColor = "#f0f0f0"
)

var colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Preference is one user's theme colors.
type Preference struct {
	UserID          int64     `json:"-"`
	HeaderColor     string    `json:"header_color"`
	ButtonColor     string    `json:"button_color"`
	BackgroundColor string    `json:"background_color"`
	UpdatedAt       time.Time `json:"updated_at,omitempty"`
}

func Defaults(userID int64) *Preference {
	return &Preference{
		UserID:          userID,
		HeaderColor:     DefaultHeaderColor,
		ButtonColor:     DefaultButtonColor,
		BackgroundColor: DefaultBackgroundColor,
	}
}

type PreferenceRequest struct {
	HeaderColor     string `json:"header_color"`
	ButtonColor     string `json:"button_color"`
	BackgroundColor string `json:"background_color"`
}

func (r *PreferenceRequest) Validate() error {
	v := validation.NewValidator()
	v.Field("header_color", r.HeaderColor).Required().Matches(colorPattern, internal.ErrCodeInvalidColor)
	v.Field("button_color", r.ButtonColor).Required().Matches(colorPattern, internal.ErrCodeInvalidColor)
	v.Field("background_color", r.BackgroundColor).Required().Matches(colorPattern, internal.ErrCodeInvalidColor)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}
