package property

import (
	"fmt"
	"strings"
)

type UnknownPropertyError struct {
	Property Property
}

func (e *UnknownPropertyError) Error() string {
	return fmt.Sprintf("unknown property %v", e.Property)
}

// InvalidEnumValueError is returned when an enum property is given an
// integer or a name that is not a member.
type InvalidEnumValueError struct {
	Enum  string
	Value any
	Valid []string
}

func (e *InvalidEnumValueError) Error() string {
	quoted := make([]string, len(e.Valid))
	for i, v := range e.Valid {
		quoted[i] = "'" + v + "'"
	}
	return fmt.Sprintf("'%v' is not a valid value for enum %s. Please specify one of %s", e.Value, e.Enum, JoinList(quoted, "or"))
}

type TypeMismatchError struct {
	Property Property
	Expected string
	Actual   string
	Detail   string
}

func (e *TypeMismatchError) Error() string {
	msg := fmt.Sprintf("cannot set %s '%v': expected type '%s', actual type '%s'", e.Property.Scope(), e.Property, e.Expected, e.Actual)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// InvalidOperationError reports a request that cannot be issued as given,
// such as a dependent property without its primary property.
type InvalidOperationError struct {
	Message string
}

func (e *InvalidOperationError) Error() string {
	return e.Message
}

// JoinList joins items as "a, b and c" using conjunction for the last pair.
func JoinList(items []string, conjunction string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	}
	return strings.Join(items[:len(items)-1], ", ") + " " + conjunction + " " + items[len(items)-1]
}
