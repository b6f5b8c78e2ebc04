package postgres

import (
	"context"
	"time"

	"github.com/frahmantamala/maritime-backoffice/internal"
	preferenceDatamodel "github.com/frahmantamala/maritime-backoffice/internal/core/datamodel/preference"
	"github.com/frahmantamala/maritime-backoffice/internal/core/dberr"
	"github.com/frahmantamala/maritime-backoffice/internal/preference"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PreferenceRepository struct {
	db *gorm.DB
}

func NewPreferenceRepository(db *gorm.DB) *PreferenceRepository {
	return &PreferenceRepository{db: db}
}

func (r *PreferenceRepository) Get(ctx context.Context, userID int64) (*preference.Preference, error) {
	var row preferenceDatamodel.Preference
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&row).Error; err != nil {
		if dberr.IsNotFound(err) {
			return nil, internal.ErrRecordNotFound
		}
		return nil, err
	}
	return &preference.Preference{
		UserID:          row.UserID,
		HeaderColor:     row.HeaderColor,
		ButtonColor:     row.ButtonColor,
		BackgroundColor: row.BackgroundColor,
		UpdatedAt:       row.UpdatedAt,
	}, nil
}

func (r *PreferenceRepository) Upsert(ctx context.Context, p *preference.Preference) error {
	p.UpdatedAt = time.Now()
	row := preferenceDatamodel.Preference{
		UserID:          p.UserID,
		HeaderColor:     p.HeaderColor,
		ButtonColor:     p.ButtonColor,
		BackgroundColor: p.BackgroundColor,
		UpdatedAt:       p.UpdatedAt,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"header_color", "button_color", "background_color", "updated_at"}),
	}).Create(&row).Error
}
