package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lexfirm/backoffice-api/internal/domain"
	"github.com/lexfirm/backoffice-api/internal/metrics"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Gateway is the single access point to the record store. Every failure is
// returned as a *domain.StoreError carrying the store's message.
type Gateway struct {
	db *gorm.DB
}

// NewGateway creates a new Gateway
func NewGateway(db *gorm.DB) *Gateway {
	return &Gateway{db: db}
}

// DB exposes the underlying handle for health checks
func (g *Gateway) DB() *gorm.DB {
	return g.db
}

var tableModels = map[domain.Table]func() interface{}{
	domain.TableLawyers:         func() interface{} { return &domain.Lawyer{} },
	domain.TableClients:         func() interface{} { return &domain.Client{} },
	domain.TableLegalServices:   func() interface{} { return &domain.LegalService{} },
	domain.TableCases:           func() interface{} { return &domain.Case{} },
	domain.TableCaseLawyers:     func() interface{} { return &domain.CaseLawyer{} },
	domain.TableNumberSequences: func() interface{} { return &domain.NumberSequence{} },
	domain.TableFirmSettings:    func() interface{} { return &domain.FirmSettings{} },
}

func modelFor(table domain.Table) (interface{}, error) {
	factory, ok := tableModels[table]
	if !ok {
		return nil, fmt.Errorf("unknown table %q", table)
	}
	return factory(), nil
}

// DefaultOrder is applied by FetchAll unless OrderBy replaces it
const DefaultOrder = "created_at DESC"

type query struct {
	order  string
	scopes []func(*gorm.DB) *gorm.DB
}

// QueryOption adjusts a fetch
type QueryOption func(*query)

func newQuery(opts []QueryOption) *query {
	q := &query{order: DefaultOrder}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

func (q *query) apply(db *gorm.DB, ordered bool) *gorm.DB {
	db = db.Scopes(q.scopes...)
	if ordered {
		db = db.Order(q.order)
	}
	return db
}

// OrderBy replaces the default ordering, e.g. "name ASC"
func OrderBy(expr string) QueryOption {
	return func(q *query) {
		q.order = expr
	}
}

// Expand eagerly loads related records, e.g. "Client" or "CaseLawyers.Lawyer"
func Expand(relations ...string) QueryOption {
	return func(q *query) {
		for _, rel := range relations {
			q.scopes = append(q.scopes, func(db *gorm.DB) *gorm.DB {
				return db.Preload(rel)
			})
		}
	}
}

// ExpandOrdered eagerly loads a has-many relation in the given order
func ExpandOrdered(relation, order string) QueryOption {
	return func(q *query) {
		q.scopes = append(q.scopes, func(db *gorm.DB) *gorm.DB {
			return db.Preload(relation, func(db *gorm.DB) *gorm.DB {
				return db.Order(order)
			})
		})
	}
}

// Where filters the fetch
func Where(cond string, args ...interface{}) QueryOption {
	return func(q *query) {
		q.scopes = append(q.scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where(cond, args...)
		})
	}
}

// FetchAll loads every matching record of table into dest (a pointer to a slice)
func (g *Gateway) FetchAll(ctx context.Context, table domain.Table, dest interface{}, opts ...QueryOption) (err error) {
	defer g.observe(table, "fetch_all", time.Now(), &err)

	q := newQuery(opts).apply(g.db.WithContext(ctx).Table(string(table)), true)
	if err := q.Find(dest).Error; err != nil {
		return g.storeError("fetch_all", table, err)
	}
	return nil
}

// FetchOne loads the record with the given id into dest
func (g *Gateway) FetchOne(ctx context.Context, table domain.Table, id uuid.UUID, dest interface{}, opts ...QueryOption) (err error) {
	defer g.observe(table, "fetch_one", time.Now(), &err)

	q := newQuery(opts).apply(g.db.WithContext(ctx).Table(string(table)).Where("id = ?", id), false)
	if err := q.First(dest).Error; err != nil {
		return g.storeError("fetch_one", table, err)
	}
	return nil
}

// Count returns the number of records matching the condition
func (g *Gateway) Count(ctx context.Context, table domain.Table, query string, args ...interface{}) (n int64, err error) {
	defer g.observe(table, "count", time.Now(), &err)

	if err := g.db.WithContext(ctx).Table(string(table)).Where(query, args...).Count(&n).Error; err != nil {
		return 0, g.storeError("count", table, err)
	}
	return n, nil
}

// Insert creates record in table. Associations are never written implicitly.
func (g *Gateway) Insert(ctx context.Context, table domain.Table, record interface{}) (err error) {
	defer g.observe(table, "insert", time.Now(), &err)

	if _, err := modelFor(table); err != nil {
		return g.storeError("insert", table, err)
	}
	if err := g.db.WithContext(ctx).Omit(clause.Associations).Create(record).Error; err != nil {
		return g.storeError("insert", table, err)
	}
	return nil
}

// Update applies fields (column name to value) to the record with id and,
// when dest is non-nil, reloads the updated record into it.
func (g *Gateway) Update(ctx context.Context, table domain.Table, id uuid.UUID, fields map[string]interface{}, dest interface{}) (err error) {
	defer g.observe(table, "update", time.Now(), &err)

	model, err := modelFor(table)
	if err != nil {
		return g.storeError("update", table, err)
	}

	if len(fields) == 0 {
		// nothing to write; still report a missing record
		if dest == nil {
			dest = model
		}
		if err := g.db.WithContext(ctx).Where("id = ?", id).First(dest).Error; err != nil {
			return g.storeError("update", table, err)
		}
		return nil
	}

	res := g.db.WithContext(ctx).Model(model).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return g.storeError("update", table, res.Error)
	}
	if res.RowsAffected == 0 {
		return g.storeError("update", table, domain.ErrRecordNotFound)
	}

	if dest != nil {
		if err := g.db.WithContext(ctx).Where("id = ?", id).First(dest).Error; err != nil {
			return g.storeError("update", table, err)
		}
	}
	return nil
}

// UpdateWhere applies fields to every record matching the condition and
// returns how many were affected.
func (g *Gateway) UpdateWhere(ctx context.Context, table domain.Table, fields map[string]interface{}, query string, args ...interface{}) (n int64, err error) {
	defer g.observe(table, "update", time.Now(), &err)

	model, err := modelFor(table)
	if err != nil {
		return 0, g.storeError("update", table, err)
	}

	res := g.db.WithContext(ctx).Model(model).Where(query, args...).Updates(fields)
	if res.Error != nil {
		return 0, g.storeError("update", table, res.Error)
	}
	return res.RowsAffected, nil
}

// Delete removes the record with id
func (g *Gateway) Delete(ctx context.Context, table domain.Table, id uuid.UUID) (err error) {
	defer g.observe(table, "delete", time.Now(), &err)

	model, err := modelFor(table)
	if err != nil {
		return g.storeError("delete", table, err)
	}

	res := g.db.WithContext(ctx).Where("id = ?", id).Delete(model)
	if res.Error != nil {
		return g.storeError("delete", table, res.Error)
	}
	if res.RowsAffected == 0 {
		return g.storeError("delete", table, domain.ErrRecordNotFound)
	}
	return nil
}

// DeleteWhere removes every record matching the condition
func (g *Gateway) DeleteWhere(ctx context.Context, table domain.Table, query string, args ...interface{}) (err error) {
	defer g.observe(table, "delete", time.Now(), &err)

	model, err := modelFor(table)
	if err != nil {
		return g.storeError("delete", table, err)
	}
	if err := g.db.WithContext(ctx).Where(query, args...).Delete(model).Error; err != nil {
		return g.storeError("delete", table, err)
	}
	return nil
}

// Transaction runs fn against a gateway bound to a single transaction
func (g *Gateway) Transaction(ctx context.Context, fn func(tx *Gateway) error) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Gateway{db: tx})
	})
}

func (g *Gateway) storeError(op string, table domain.Table, err error) error {
	var storeErr *domain.StoreError
	if errors.As(err, &storeErr) {
		return err
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		err = fmt.Errorf("%w: %w", domain.ErrRecordNotFound, err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		err = fmt.Errorf("%w: %w", domain.ErrDuplicateRecord, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		err = fmt.Errorf("%w: %w", domain.ErrRecordReferenced, err)
	}
	return domain.NewStoreError(op, table, err)
}

func (g *Gateway) observe(table domain.Table, op string, start time.Time, err *error) {
	metrics.StoreDuration.WithLabelValues(string(table), op).Observe(time.Since(start).Seconds())
	metrics.StoreOperations.WithLabelValues(string(table), op, metrics.Outcome(*err)).Inc()
}
