package domain

import (
	"time"
)

// RoleName is the display name of a role as stored in the roles table.
// The set is static and seeded at bootstrap.
type RoleName string

const (
	RoleAdministrator RoleName = "Administrador"
	RoleNurse         RoleName = "Enfermera"
)

func (r RoleName) IsValid() bool {
	switch r {
	case RoleAdministrator, RoleNurse:
		return true
	}
	return false
}

// Landing returns the area a user of this role is sent to after login,
// and where an access-denied response points them back to.
func (r RoleName) Landing() string {
	if r == RoleAdministrator {
		return "/administrador"
	}
	return "/enfermeras"
}

type Role struct {
	ID         uint   `gorm:"primaryKey" json:"id_rol"`
	Name       string `gorm:"column:name;type:varchar(50);uniqueIndex;not null" json:"nombre"`
	Permission string `gorm:"column:permission;type:varchar(50)" json:"permiso"`
}

func (Role) TableName() string {
	return "roles"
}

type User struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	Name         string `gorm:"column:name;type:varchar(100);not null"`
	Phone        string `gorm:"column:phone;type:varchar(20);uniqueIndex"`
	PasswordHash string `gorm:"column:password_hash;type:varchar(255);not null"`
	RoleID       uint   `gorm:"column:role_id;not null;index"`
	Role         Role   `gorm:"foreignKey:RoleID"`
}

func (User) TableName() string {
	return "users"
}

// AuditLog rows are append-only; the application never updates or deletes them.
type AuditLog struct {
	ID         uint      `gorm:"primaryKey"`
	OccurredAt time.Time `gorm:"autoCreateTime;index"`

	UserID        *uint  `gorm:"column:user_id;index"`
	Action        string `gorm:"column:action;type:text;not null"`
	AffectedTable string `gorm:"column:affected_table;type:varchar(50);not null;index"`
	RequestID     string `gorm:"column:request_id;type:varchar(50);index"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

// Report is the persisted record of a generated report: who asked for it,
// which kind, and the serialized result content.
type Report struct {
	ID          uint      `gorm:"primaryKey"`
	GeneratedAt time.Time `gorm:"autoCreateTime;index"`

	UserID  uint   `gorm:"column:user_id;not null;index"`
	Type    string `gorm:"column:type;type:varchar(100);not null"`
	Content string `gorm:"column:content;type:jsonb"`
}

func (Report) TableName() string {
	return "reports"
}

type TokenPair struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	TokenType    string    `json:"token_type"` // Always "Bearer"
}

// Claims is the session identity carried in a signed token.
type Claims struct {
	UserID uint     `json:"sub"`
	Name   string   `json:"name"`
	Role   RoleName `json:"role"`
}
