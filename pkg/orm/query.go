// Package orm is a thin fluent wrapper around gorm with optional
// cache-through reads and offset pagination.
package orm

import (
	"time"

	"gorm.io/gorm"

	"github.com/favourfurniture/storefront/pkg/cache"
	"github.com/favourfurniture/storefront/pkg/database"
)

// Query wraps a gorm chain. All builder methods return a new Query so a
// partially built query can be reused safely.
type Query struct {
	db *gorm.DB
}

// DB starts a query on the global connection.
func DB() *Query {
	return &Query{db: database.DB}
}

// Wrap starts a query on an explicit connection (used by tests and
// transactions).
func Wrap(db *gorm.DB) *Query {
	return &Query{db: db}
}

// Gorm exposes the underlying chain for the rare case the wrapper is not
// expressive enough.
func (q *Query) Gorm() *gorm.DB { return q.db }

func (q *Query) Model(v interface{}) *Query {
	return &Query{db: q.db.Model(v)}
}

func (q *Query) Where(query string, args ...interface{}) *Query {
	return &Query{db: q.db.Where(query, args...)}
}

func (q *Query) Order(value string) *Query {
	return &Query{db: q.db.Order(value)}
}

func (q *Query) Select(columns string, args ...interface{}) *Query {
	return &Query{db: q.db.Select(columns, args...)}
}

func (q *Query) Group(name string) *Query {
	return &Query{db: q.db.Group(name)}
}

func (q *Query) Offset(n int) *Query {
	return &Query{db: q.db.Offset(n)}
}

func (q *Query) Limit(n int) *Query {
	return &Query{db: q.db.Limit(n)}
}

func (q *Query) Preload(relation string, args ...interface{}) *Query {
	return &Query{db: q.db.Preload(relation, args...)}
}

func (q *Query) Get(dest interface{}) error {
	return q.db.Find(dest).Error
}

func (q *Query) First(dest interface{}) error {
	return q.db.First(dest).Error
}

func (q *Query) Count(count *int64) error {
	return q.db.Count(count).Error
}

func (q *Query) Scan(dest interface{}) error {
	return q.db.Scan(dest).Error
}

func (q *Query) Create(value interface{}) error {
	return q.db.Create(value).Error
}

func (q *Query) Save(value interface{}) error {
	return q.db.Save(value).Error
}

func (q *Query) Updates(values interface{}) (int64, error) {
	res := q.db.Updates(values)
	return res.RowsAffected, res.Error
}

func (q *Query) Delete(value interface{}) error {
	return q.db.Delete(value).Error
}

// Cache reads through the cache: on a hit dest is filled from the cached
// value, on a miss the query runs and its result is stored for ttl.
func (q *Query) Cache(key string, ttl time.Duration, dest interface{}) error {
	if cache.Get(key, dest) {
		return nil
	}

	err := q.db.Find(dest).Error
	if err != nil {
		return err
	}

	cache.Set(key, dest, ttl)
	return nil
}

// Pagination describes one page of a larger result set.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// GetWithPagination counts the filtered set, then fetches the requested
// page into dest. page and pageSize must already be clamped by the caller.
func (q *Query) GetWithPagination(dest interface{}, page, pageSize int) (Pagination, error) {
	p := Pagination{Page: page, PageSize: pageSize}

	if err := q.db.Session(&gorm.Session{}).Count(&p.Total).Error; err != nil {
		return p, err
	}
	p.TotalPages = int((p.Total + int64(pageSize) - 1) / int64(pageSize))

	err := q.db.Offset((page - 1) * pageSize).Limit(pageSize).Find(dest).Error
	return p, err
}
