package models

// OperatingUnit (Unidad Operativa) is an organizational site that files
// equipment requests.
type OperatingUnit struct {
	ID   string `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// Category classifies requested equipment.
type Category struct {
	ID   string `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}
