// Package scope provides the tenant-scoped data accessor. A Handle wraps a
// gorm.DB so that every read through it is filtered to one tenant and every
// create is stamped with that tenant's id. The injection is structural: the
// generic helpers only accept entity types that embed model.TenantOwned, so
// an entity without a tenant column is rejected at compile time, and a call
// site cannot forget the filter because it never writes one.
package scope

import (
	"errors"

	"gorm.io/gorm"
)

// ErrCrossTenant is returned when a row handed to a write helper already
// belongs to a different tenant than the handle.
var ErrCrossTenant = errors.New("scope: row belongs to another tenant")

// Owned is satisfied by pointers to entities that embed model.TenantOwned.
type Owned interface {
	SetTenantID(uint)
	OwnerTenantID() uint
}

// Handle is a data accessor bound to a single tenant. It deliberately does
// not expose the underlying gorm.DB.
type Handle struct {
	db       *gorm.DB
	tenantID uint
}

// For binds a database connection to a tenant id. The id must come from the
// resolved session, never from request parameters.
func For(db *gorm.DB, tenantID uint) *Handle {
	return &Handle{db: db, tenantID: tenantID}
}

// TenantID returns the tenant this handle is bound to.
func (h *Handle) TenantID() uint {
	return h.tenantID
}

// Query returns a gorm query over T pre-filtered to the handle's tenant,
// for listings that need ordering, pagination, or extra conditions.
func Query[T any, PT interface {
	*T
	Owned
}](h *Handle) *gorm.DB {
	return h.db.Model(PT(new(T))).Where("tenant_id = ?", h.tenantID)
}

// Find loads all rows of T belonging to the handle's tenant that match the
// optional inline conditions.
func Find[T any, PT interface {
	*T
	Owned
}](h *Handle, dest *[]T, conds ...interface{}) error {
	return h.db.Where("tenant_id = ?", h.tenantID).Find(dest, conds...).Error
}

// First loads a single row of T belonging to the handle's tenant. A row that
// exists under another tenant yields gorm.ErrRecordNotFound, exactly like a
// row that does not exist.
func First[T any, PT interface {
	*T
	Owned
}](h *Handle, dest PT, conds ...interface{}) error {
	return h.db.Where("tenant_id = ?", h.tenantID).First(dest, conds...).Error
}

// Create inserts the row under the handle's tenant. Any caller-set tenant id
// is overwritten.
func Create[T any, PT interface {
	*T
	Owned
}](h *Handle, row PT) error {
	row.SetTenantID(h.tenantID)
	return h.db.Create(row).Error
}

// Save persists changes to a row previously loaded through this handle.
// Rows stamped with a different tenant are rejected before touching the
// database.
func Save[T any, PT interface {
	*T
	Owned
}](h *Handle, row PT) error {
	if row.OwnerTenantID() != h.tenantID {
		return ErrCrossTenant
	}
	return h.db.Save(row).Error
}

// Updates applies a column map to the row with the given id inside the
// handle's tenant and reports how many rows matched. The tenant id column
// cannot be rewritten through this path.
func Updates[T any, PT interface {
	*T
	Owned
}](h *Handle, id uint, values map[string]interface{}) (int64, error) {
	delete(values, "tenant_id")
	res := h.db.Model(PT(new(T))).
		Where("id = ? AND tenant_id = ?", id, h.tenantID).
		Updates(values)
	return res.RowsAffected, res.Error
}

// Delete removes the row with the given id inside the handle's tenant and
// reports how many rows matched. Zero rows means "not found" to the caller,
// whether the id is absent or owned by another tenant.
func Delete[T any, PT interface {
	*T
	Owned
}](h *Handle, id uint) (int64, error) {
	res := h.db.Where("tenant_id = ?", h.tenantID).Delete(PT(new(T)), id)
	return res.RowsAffected, res.Error
}

// Count counts rows of T inside the handle's tenant.
func Count[T any, PT interface {
	*T
	Owned
}](h *Handle) (int64, error) {
	var n int64
	err := Query[T, PT](h).Count(&n).Error
	return n, err
}
