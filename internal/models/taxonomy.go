package models

import (
	"time"
)

// Discipline is a user-defined discipline in the taxonomy side-table,
// consulted when translating remote payloads that carry ids without names.
type Discipline struct {
	ID   int    `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:255" json:"name"`

	Subjects []Subject `gorm:"foreignKey:DisciplineID" json:"subjects"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Discipline) TableName() string {
	return "disciplines"
}

// Subject is a named subject within a discipline. Subject ids are scoped
// to their discipline, not globally unique.
type Subject struct {
	DisciplineID int    `gorm:"primaryKey" json:"discipline_id"`
	ID           int    `gorm:"primaryKey" json:"id"`
	Name         string `gorm:"size:255" json:"name"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Subject) TableName() string {
	return "subjects"
}

// PredefinedDisciplineMax is the highest id reserved for the built-in
// discipline set; ids above it are user-defined.
const PredefinedDisciplineMax = 8

// PredefinedDisciplines are the built-in disciplines every installation
// knows about, keyed by their fixed ids.
var PredefinedDisciplines = map[int]string{
	1: "Anatomia",
	2: "Fisiologia",
	3: "Bioquímica",
	4: "Farmacologia",
	5: "Patologia",
	6: "Microbiologia",
	7: "Semiologia",
	8: "Clínica Médica",
}
