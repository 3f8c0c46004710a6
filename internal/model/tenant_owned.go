package model

// TenantOwned is embedded by every entity that lives inside a tenant
// boundary. The scope package only accepts types that embed it, which makes
// "this entity has no tenant column" a compile error rather than a silent
// unscoped query.
type TenantOwned struct {
	TenantID uint `json:"tenant_id" gorm:"index;not null"`
}

// SetTenantID stamps the owning tenant. Called by the scoped accessor on
// every create; caller-set values are overwritten.
func (o *TenantOwned) SetTenantID(id uint) { o.TenantID = id }

// OwnerTenantID returns the owning tenant id.
func (o *TenantOwned) OwnerTenantID() uint { return o.TenantID }
