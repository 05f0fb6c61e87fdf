package mother

import (
	"strings"
)

// Sentinel identity of the fallback mother row seeded at bootstrap. Infants
// registered without any mother data are linked to this row.
const (
	SentinelName            = "Desconocida"
	SentinelPaternalSurname = "Desconocido"
)

// Mother's natural key for deduplication is (Name, PaternalSurname); the
// maternal surname is an optional attribute, not part of the key.
type Mother struct {
	ID uint `gorm:"primaryKey" json:"id_madre"`

	Name            string `gorm:"column:name;type:varchar(100);not null;uniqueIndex:idx_mothers_natural_key" json:"nombre"`
	PaternalSurname string `gorm:"column:paternal_surname;type:varchar(100);not null;uniqueIndex:idx_mothers_natural_key" json:"apellido_paterno"`
	MaternalSurname string `gorm:"column:maternal_surname;type:varchar(100)" json:"apellido_materno"`
	Disability      string `gorm:"column:disability;type:varchar(200)" json:"discapacidad"`
	ReasonID        uint   `gorm:"column:reason_id;not null" json:"id_motivo"`
}

func (Mother) TableName() string {
	return "mothers"
}

func (m *Mother) FullName() string {
	return strings.TrimSpace(strings.Join([]string{m.Name, m.PaternalSurname, m.MaternalSurname}, " "))
}

func (m *Mother) IsSentinel() bool {
	return m.Name == SentinelName && m.PaternalSurname == SentinelPaternalSurname
}

// UpdateMotherCommand applies partial updates; empty strings keep the
// stored value.
type UpdateMotherCommand struct {
	Name            string
	PaternalSurname string
	MaternalSurname string
	Disability      string
}
