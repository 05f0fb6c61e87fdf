package infant

import "time"

// GrowthCheck is one periodic weight/height control for an infant.
type GrowthCheck struct {
	ID        uint      `gorm:"primaryKey" json:"id_controles"`
	CheckedAt time.Time `gorm:"autoCreateTime;index" json:"fecha_control"`

	InfantID     uint     `gorm:"column:infant_id;not null;index" json:"id_lactantes"`
	Weight       *float64 `gorm:"column:weight" json:"peso"`
	Height       *float64 `gorm:"column:height" json:"talla"`
	AgeMonths    *int     `gorm:"column:age_months" json:"edad_meses"`
	GeneralState string   `gorm:"column:general_state;type:varchar(100)" json:"estado_general"`
	Observations string   `gorm:"column:observations;type:text" json:"observaciones"`

	Infant Infant `gorm:"foreignKey:InfantID;constraint:OnDelete:CASCADE" json:"-"`
}

func (GrowthCheck) TableName() string {
	return "growth_checks"
}

type CreateGrowthCheckCommand struct {
	InfantID     uint
	Weight       *float64
	Height       *float64
	AgeMonths    *int
	GeneralState string
	Observations string
}
