// Package store offers collection-style access to a gorm-mapped table:
// insert, lookup by id, filtered find, save and delete.
package store

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("record not found")

// Filter is an equality match on column names. Nil values match NULL.
type Filter map[string]interface{}

type Collection[T any] struct {
	db    *gorm.DB
	order string
}

func NewCollection[T any](db *gorm.DB) *Collection[T] {
	return &Collection[T]{db: db, order: "created_at ASC"}
}

// OrderBy returns a copy of the collection that sorts Find results by clause.
func (c *Collection[T]) OrderBy(clause string) *Collection[T] {
	return &Collection[T]{db: c.db, order: clause}
}

func (c *Collection[T]) Insert(ctx context.Context, doc *T) error {
	return c.db.WithContext(ctx).Create(doc).Error
}

func (c *Collection[T]) FindByID(ctx context.Context, id string) (*T, error) {
	var doc T
	err := c.db.WithContext(ctx).Where("id = ?", id).First(&doc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &doc, nil
}

func (c *Collection[T]) Find(ctx context.Context, filter Filter) ([]*T, error) {
	q := c.db.WithContext(ctx)
	if len(filter) > 0 {
		q = q.Where(map[string]interface{}(filter))
	}
	if c.order != "" {
		q = q.Order(c.order)
	}
	docs := make([]*T, 0)
	if err := q.Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

// Save writes every column of doc. The record must already exist.
func (c *Collection[T]) Save(ctx context.Context, doc *T) error {
	res := c.db.WithContext(ctx).Model(doc).Select("*").Updates(doc)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (c *Collection[T]) DeleteByID(ctx context.Context, id string) error {
	res := c.db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
