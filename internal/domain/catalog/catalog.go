package catalog

// CareArea is a static reference row: the service an infant is registered
// under. Registration resolves areas by name, not by id.
type CareArea struct {
	ID       uint   `gorm:"primaryKey" json:"id_area"`
	Name     string `gorm:"column:name;type:varchar(100);uniqueIndex;not null" json:"nombre"`
	Category string `gorm:"column:category;type:varchar(50)" json:"tipo_de_area"`
}

func (CareArea) TableName() string {
	return "care_areas"
}

// Reason classifies a visit or a mother's registration.
type Reason struct {
	ID       uint   `gorm:"primaryKey" json:"id_motivo"`
	Name     string `gorm:"column:name;type:varchar(100);uniqueIndex;not null" json:"nombre"`
	Category string `gorm:"column:category;type:varchar(50)" json:"tipo_de_motivo"`
}

func (Reason) TableName() string {
	return "reasons"
}

// ReasonRoutineCheckup is the fallback reason when a workflow omits the
// reason selector, and the default reason attached to new mother rows.
const ReasonRoutineCheckup = "Chequeo de rutina"
