// Package records serves the plain CRUD entities (vessels, customers,
// vendors, items, contacts and purchase orders) through one generic store
// and handler.
package records

import (
	"context"

	"github.com/frahmantamala/maritime-backoffice/internal"
	"github.com/frahmantamala/maritime-backoffice/internal/core/dberr"
	"gorm.io/gorm"
)

// Page asks for one page of a listing. Number starts at 1; a zero Size
// returns everything.
type Page struct {
	Number int
	Size   int
}

type Listing[T any] struct {
	Items    []T   `json:"items"`
	Page     int   `json:"page,omitempty"`
	PageSize int   `json:"page_size,omitempty"`
	Total    int64 `json:"total"`
}

// Store is a gorm repository over one record table.
type Store[T any] struct {
	db    *gorm.DB
	order string
	// columns a PUT never overwrites
	immutable []string
}

func NewStore[T any](db *gorm.DB, order string, immutable ...string) *Store[T] {
	return &Store[T]{
		db:        db,
		order:     order,
		immutable: append([]string{"id"}, immutable...),
	}
}

func (s *Store[T]) List(ctx context.Context, page Page) (*Listing[T], error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(new(T)).Count(&total).Error; err != nil {
		return nil, err
	}

	q := s.db.WithContext(ctx).Order(s.order)
	if page.Size > 0 {
		if page.Number < 1 {
			page.Number = 1
		}
		q = q.Limit(page.Size).Offset((page.Number - 1) * page.Size)
	}

	items := make([]T, 0)
	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}

	out := &Listing[T]{Items: items, Total: total}
	if page.Size > 0 {
		out.Page = page.Number
		out.PageSize = page.Size
	}
	return out, nil
}

func (s *Store[T]) Get(ctx context.Context, id int64) (*T, error) {
	var v T
	if err := s.db.WithContext(ctx).First(&v, id).Error; err != nil {
		if dberr.IsNotFound(err) {
			return nil, internal.ErrRecordNotFound
		}
		return nil, err
	}
	return &v, nil
}

func (s *Store[T]) Create(ctx context.Context, v *T) error {
	if err := s.db.WithContext(ctx).Create(v).Error; err != nil {
		return translate(err)
	}
	return nil
}

// Update overwrites every mutable column of row id with v, zero values
// included, and returns the stored row.
func (s *Store[T]) Update(ctx context.Context, id int64, v *T) (*T, error) {
	res := s.db.WithContext(ctx).Model(new(T)).
		Where("id = ?", id).
		Select("*").Omit(s.immutable...).
		Updates(v)
	if res.Error != nil {
		return nil, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, internal.ErrRecordNotFound
	}
	return s.Get(ctx, id)
}

func (s *Store[T]) Delete(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Delete(new(T), id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return internal.ErrRecordNotFound
	}
	return nil
}

// Count is used by the dashboard.
func (s *Store[T]) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(new(T)).Count(&n).Error
	return n, err
}

func translate(err error) error {
	if dberr.IsUniqueViolation(err) {
		return internal.ErrDuplicateRecord.WithCause(err)
	}
	return err
}
