package rework

import "github.com/bryanwahyu/rcis/internal/domain/records"

// Field names an event attribute that analytics can group by.
type Field string

const (
	FieldStation       Field = "station"
	FieldDefectType    Field = "defectType"
	FieldShift         Field = "shift"
	FieldSeverity      Field = "severity"
	FieldOperatorGroup Field = "operatorGroup"
	FieldMaterialBatch Field = "materialBatch"
	FieldDate          Field = "date"
)

// ParseField validates a field name from a query string.
func ParseField(s string) (Field, error) {
	switch f := Field(s); f {
	case FieldStation, FieldDefectType, FieldShift, FieldSeverity,
		FieldOperatorGroup, FieldMaterialBatch, FieldDate:
		return f, nil
	}
	return "", records.Invalidf("unknown field %q", s)
}

// Value returns the raw attribute; empty when unset.
func (e Event) Value(f Field) string {
	switch f {
	case FieldStation:
		return e.Station
	case FieldDefectType:
		return e.DefectType
	case FieldShift:
		return e.Shift
	case FieldSeverity:
		return e.Severity
	case FieldOperatorGroup:
		return e.OperatorGroup
	case FieldMaterialBatch:
		return e.MaterialBatch
	case FieldDate:
		return e.Date
	}
	return ""
}
