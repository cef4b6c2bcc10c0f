package models

import "fmt"

type MaterialUnit string

const (
	UnitPcs   MaterialUnit = "pcs"
	UnitMeter MaterialUnit = "meter"
	UnitKg    MaterialUnit = "kg"
	UnitLiter MaterialUnit = "liter"
	UnitSet   MaterialUnit = "set"
	UnitRoll  MaterialUnit = "roll"
	UnitBox   MaterialUnit = "box"
	UnitOther MaterialUnit = "other"
)

var materialUnits = map[MaterialUnit]bool{
	UnitPcs:   true,
	UnitMeter: true,
	UnitKg:    true,
	UnitLiter: true,
	UnitSet:   true,
	UnitRoll:  true,
	UnitBox:   true,
	UnitOther: true,
}

// MaterialUsage is a value object embedded in tasks and routine tasks; it has
// no identity of its own.
type MaterialUsage struct {
	MaterialName     string       `json:"material_name"`
	Quantity         float64      `json:"quantity"`
	Unit             MaterialUnit `json:"unit"`
	OtherUnitDetails string       `json:"other_unit_details,omitempty"`
	Notes            string       `json:"notes,omitempty"`
}

// Validate checks the material usage invariants and clears OtherUnitDetails
// when the unit is not "other".
func (m *MaterialUsage) Validate() error {
	if m.MaterialName == "" {
		return fmt.Errorf("material name is required")
	}
	if len(m.MaterialName) > 100 {
		return fmt.Errorf("material name cannot exceed 100 characters")
	}
	if m.Quantity <= 0 {
		return fmt.Errorf("quantity must be greater than 0")
	}
	if !materialUnits[m.Unit] {
		return fmt.Errorf("%q is not a supported unit", m.Unit)
	}
	if m.Unit != UnitOther {
		m.OtherUnitDetails = ""
	} else if len(m.OtherUnitDetails) > 50 {
		return fmt.Errorf("other unit details cannot exceed 50 characters")
	}
	if len(m.Notes) > 250 {
		return fmt.Errorf("material usage notes cannot exceed 250 characters")
	}
	return nil
}

// ValidateMaterials validates a list of material usages in place.
func ValidateMaterials(materials []MaterialUsage) error {
	for i := range materials {
		if err := materials[i].Validate(); err != nil {
			return fmt.Errorf("materials[%d]: %w", i, err)
		}
	}
	return nil
}
