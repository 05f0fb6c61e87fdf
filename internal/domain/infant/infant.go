package infant

import (
	"time"

	"github.com/vinculodevida/lactario/internal/domain/catalog"
	"github.com/vinculodevida/lactario/internal/domain/mother"
)

// Status values are stored as the unit writes them on paper.
const (
	StatusActive   = "Activo"
	StatusInactive = "Inactivo"
)

// DisabilityNone is the neutral placeholder stored when the field is left blank.
const DisabilityNone = "Ninguna"

type Infant struct {
	ID        uint      `gorm:"primaryKey" json:"id_lactantes"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"-"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"-"`

	MotherID uint `gorm:"column:mother_id;not null;index" json:"id_madres"`
	AreaID   uint `gorm:"column:area_id;not null;index" json:"id_area"`

	PaternalSurname string   `gorm:"column:paternal_surname;type:varchar(100);not null" json:"apellido_paterno"`
	MaternalSurname string   `gorm:"column:maternal_surname;type:varchar(100)" json:"apellido_materno"`
	BirthDate       string   `gorm:"column:birth_date;type:date" json:"fecha_nacimiento"`
	Gender          string   `gorm:"column:gender;type:varchar(20)" json:"genero"`
	Status          string   `gorm:"column:status;type:varchar(20);default:'Activo'" json:"estado"`
	Disability      string   `gorm:"column:disability;type:varchar(200)" json:"discapacidad"`
	Weight          *float64 `gorm:"column:weight" json:"peso"`

	Mother mother.Mother    `gorm:"foreignKey:MotherID" json:"-"`
	Area   catalog.CareArea `gorm:"foreignKey:AreaID" json:"-"`
}

func (Infant) TableName() string {
	return "infants"
}

// RegisterCommand carries the raw submitted registration fields for one
// infant, including the optional identifying fields of the mother. The
// registration service resolves them into committed rows.
type RegisterCommand struct {
	PaternalSurname string
	MaternalSurname string
	BirthDate       string
	Gender          string
	AreaName        string
	Disability      string
	Weight          *float64

	MotherName            string
	MotherPaternalSurname string
	MotherMaternalSurname string
	MotherDisability      string
}

// UpdateCommand applies partial updates; empty strings and nil pointers
// keep the stored value. AreaName, when set, is reference-checked.
type UpdateCommand struct {
	PaternalSurname string
	MaternalSurname string
	BirthDate       string
	Gender          string
	Status          string
	Disability      string
	Weight          *float64
	AreaName        string

	Mother *mother.UpdateMotherCommand
}

// Listing is one row of the infant overview, joined for display.
type Listing struct {
	ID              uint     `json:"id_lactantes"`
	PaternalSurname string   `json:"apellido_paterno"`
	MaternalSurname string   `json:"apellido_materno"`
	BirthDate       string   `json:"fecha_nacimiento"`
	Gender          string   `json:"genero"`
	Status          string   `json:"estado"`
	Disability      string   `json:"discapacidad"`
	Weight          *float64 `json:"peso"`
	MotherFullName  string   `json:"nombre_completo_madre"`
	AreaName        string   `json:"area_nombre"`
}

// Ref is the short form used to populate selectors.
type Ref struct {
	ID              uint   `json:"id_lactantes"`
	PaternalSurname string `json:"apellido_paterno"`
	MaternalSurname string `json:"apellido_materno"`
	BirthDate       string `json:"fecha_nacimiento"`
	Gender          string `json:"genero"`
}
