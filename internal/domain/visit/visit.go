package visit

import (
	"time"

	"github.com/vinculodevida/lactario/internal/domain"
	"github.com/vinculodevida/lactario/internal/domain/catalog"
	"github.com/vinculodevida/lactario/internal/domain/infant"
)

// Visit is one cita: an infant seen by a staff member on a date, for a
// reason, at an entry time.
type Visit struct {
	ID        uint      `gorm:"primaryKey" json:"id_citas"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"-"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"-"`

	InfantID   uint `gorm:"column:infant_id;not null;index" json:"id_lactantes"`
	ReasonID   uint `gorm:"column:reason_id;not null" json:"id_motivo"`
	AttendedBy uint `gorm:"column:attended_by;not null;index" json:"atendido_por_id_usuario"`

	VisitDate     string `gorm:"column:visit_date;type:date;not null" json:"fecha_cita"`
	EntryTime     string `gorm:"column:entry_time;type:varchar(10)" json:"hora_de_entrada"`
	FollowUp      bool   `gorm:"column:follow_up" json:"subsecuente"`
	Justification string `gorm:"column:justification;type:text" json:"justificacion"`

	Infant   infant.Infant  `gorm:"foreignKey:InfantID;constraint:OnDelete:CASCADE" json:"-"`
	Reason   catalog.Reason `gorm:"foreignKey:ReasonID" json:"-"`
	Attendee domain.User    `gorm:"foreignKey:AttendedBy" json:"-"`
}

func (Visit) TableName() string {
	return "visits"
}

type BookCommand struct {
	InfantID      uint
	ReasonID      *uint  // nil falls back to the routine-checkup reason
	VisitDate     string // empty falls back to today
	EntryTime     string
	FollowUp      bool
	Justification string
	AttendedBy    uint
}

// UpdateCommand applies partial updates; zero values keep the stored value.
type UpdateCommand struct {
	ReasonID      uint
	VisitDate     string
	EntryTime     string
	FollowUp      *bool
	Justification string
}

// Listing is one row of the visit overview, joined for display and
// ordered by visit date descending.
type Listing struct {
	ID             uint   `json:"id_citas"`
	VisitDate      string `json:"fecha_cita"`
	EntryTime      string `json:"hora_de_entrada"`
	InfantSurname  string `json:"lactante_apellido"`
	ReasonName     string `json:"motivo_nombre"`
	AttendedByName string `json:"atendido_por"`
}

// HistoryRow is one entry of the per-infant visit report.
type HistoryRow struct {
	VisitID       uint   `json:"id_citas"`
	MotherName    string `json:"nombre_madre"`
	InfantSurname string `json:"lactante_apellido"`
	ReasonName    string `json:"motivo"`
	VisitDate     string `json:"fecha_cita"`
}
