package database

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Scope narrows a query. Filters, ordering and pagination are all scopes.
type Scope = func(*gorm.DB) *gorm.DB

// Repo is the CRUD surface shared by every table
type Repo[T any] struct {
	db       *gorm.DB
	resource string
	preloads []string
	onDelete func(tx *gorm.DB, id uint) error
}

func newRepo[T any](db *gorm.DB, resource string, preloads ...string) *Repo[T] {
	return &Repo[T]{db: db, resource: resource, preloads: preloads}
}

func (r *Repo[T]) withOnDelete(fn func(tx *gorm.DB, id uint) error) *Repo[T] {
	r.onDelete = fn
	return r
}

// Resource returns the singular name used in errors and logs
func (r *Repo[T]) Resource() string {
	return r.resource
}

func (r *Repo[T]) query(ctx context.Context) *gorm.DB {
	q := getDBFromContext(ctx, r.db).Model(new(T))
	for _, p := range r.preloads {
		q = q.Preload(p)
	}
	return q
}

// List returns rows matching scopes, ordered by the scopes first and by id last
func (r *Repo[T]) List(ctx context.Context, scopes ...Scope) ([]T, error) {
	q := r.query(ctx)
	for _, s := range scopes {
		q = s(q)
	}
	var out []T
	err := q.Order(clause.OrderByColumn{Column: clause.Column{Table: clause.CurrentTable, Name: clause.PrimaryKey}}).
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", r.resource, translateError(err))
	}
	return out, nil
}

// Count returns the number of rows matching scopes
func (r *Repo[T]) Count(ctx context.Context, scopes ...Scope) (int64, error) {
	q := getDBFromContext(ctx, r.db).Model(new(T))
	for _, s := range scopes {
		q = s(q)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count %s: %w", r.resource, translateError(err))
	}
	return n, nil
}

// Get loads one row by primary key
func (r *Repo[T]) Get(ctx context.Context, id uint) (*T, error) {
	out := new(T)
	if err := r.query(ctx).First(out, id).Error; err != nil {
		return nil, fmt.Errorf("get %s %d: %w", r.resource, id, translateError(err))
	}
	return out, nil
}

// Exists reports whether a row with id exists
func (r *Repo[T]) Exists(ctx context.Context, id uint) (bool, error) {
	var n int64
	err := getDBFromContext(ctx, r.db).Model(new(T)).Where(clause.Eq{
		Column: clause.Column{Table: clause.CurrentTable, Name: clause.PrimaryKey}, Value: id,
	}).Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("check %s %d: %w", r.resource, id, translateError(err))
	}
	return n > 0, nil
}

// Create inserts v. Duplicates surface as ErrConflict.
func (r *Repo[T]) Create(ctx context.Context, v *T) error {
	if err := getDBFromContext(ctx, r.db).Omit(clause.Associations).Create(v).Error; err != nil {
		return fmt.Errorf("create %s: %w", r.resource, translateError(err))
	}
	return nil
}

// Update writes every column of v
func (r *Repo[T]) Update(ctx context.Context, v *T) error {
	if err := getDBFromContext(ctx, r.db).Omit(clause.Associations).Save(v).Error; err != nil {
		return fmt.Errorf("update %s: %w", r.resource, translateError(err))
	}
	return nil
}

// Delete removes the row and its dependents in one transaction
func (r *Repo[T]) Delete(ctx context.Context, id uint) error {
	return runInTx(ctx, r.db, func(ctx context.Context) error {
		tx := TransactionFromContext(ctx)
		if r.onDelete != nil {
			if err := r.onDelete(tx, id); err != nil {
				return fmt.Errorf("delete %s %d dependents: %w", r.resource, id, translateError(err))
			}
		}
		res := tx.Delete(new(T), id)
		if res.Error != nil {
			return fmt.Errorf("delete %s %d: %w", r.resource, id, translateError(res.Error))
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("delete %s %d: %w", r.resource, id, ErrNotFound)
		}
		return nil
	})
}
