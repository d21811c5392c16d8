package record

import (
	"errors"
	"fmt"
	"strings"
)

// TableName identifies a table and the single record shape it accepts.
type TableName uint8

const (
	TableUser TableName = iota
	TableCar
)

// Tables lists every known table in their natural order.
var Tables = []TableName{TableUser, TableCar}

var ErrUnknownTable = errors.New("record: unknown table")

// UnknownTableError carries the text that did not match any TableName.
type UnknownTableError struct {
	Name string
}

func (e *UnknownTableError) Error() string {
	return fmt.Sprintf("record: unknown table %q", e.Name)
}

func (e *UnknownTableError) Is(target error) bool { return target == ErrUnknownTable }

func (t TableName) String() string {
	switch t {
	case TableUser:
		return "User"
	case TableCar:
		return "Car"
	default:
		return fmt.Sprintf("TableName(%d)", uint8(t))
	}
}

// ParseTableName matches s against the known table names, ignoring case.
func ParseTableName(s string) (TableName, error) {
	switch strings.ToLower(s) {
	case "user":
		return TableUser, nil
	case "car":
		return TableCar, nil
	default:
		return 0, &UnknownTableError{Name: s}
	}
}
