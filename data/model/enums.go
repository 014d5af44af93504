package model

import "fmt"

// Enum is implemented by every PRTG enumeration that can be written to an
// object or channel property.
type Enum interface {
	fmt.Stringer
	EnumName() string
	Int() int
}

type Status int

const (
	StatusNone Status = iota
	StatusUnknown
	StatusCollecting
	StatusUp
	StatusWarning
	StatusDown
	StatusNoProbe
	StatusPausedByUser
	StatusPausedByDependency
	StatusPausedBySchedule
	StatusUnusual
	StatusPausedByLicense
	StatusPausedUntil
	StatusDownAcknowledged
	StatusDownPartial
)

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return fmt.Sprintf("Status(%d)", int(s))
	}
	return statusNames[s]
}

var statusNames = [...]string{
	"None", "Unknown", "Collecting", "Up", "Warning", "Down", "NoProbe",
	"PausedByUser", "PausedByDependency", "PausedBySchedule", "Unusual",
	"PausedByLicense", "PausedUntil", "DownAcknowledged", "DownPartial",
}

func (s Status) EnumName() string { return "Status" }
func (s Status) Int() int         { return int(s) }

// Paused reports whether the object is in any of the paused states.
func (s Status) Paused() bool {
	switch s {
	case StatusPausedByUser, StatusPausedByDependency, StatusPausedBySchedule, StatusPausedByLicense, StatusPausedUntil:
		return true
	}
	return false
}

type IntervalErrorMode int

const (
	DownImmediately IntervalErrorMode = iota
	OneWarningThenDown
	TwoWarningsThenDown
	ThreeWarningsThenDown
	FourWarningsThenDown
	FiveWarningsThenDown
)

var IntervalErrorModes = []IntervalErrorMode{
	DownImmediately, OneWarningThenDown, TwoWarningsThenDown,
	ThreeWarningsThenDown, FourWarningsThenDown, FiveWarningsThenDown,
}

func (m IntervalErrorMode) String() string {
	if m < 0 || int(m) >= len(IntervalErrorModes) {
		return fmt.Sprintf("IntervalErrorMode(%d)", int(m))
	}
	return [...]string{
		"DownImmediately", "OneWarningThenDown", "TwoWarningsThenDown",
		"ThreeWarningsThenDown", "FourWarningsThenDown", "FiveWarningsThenDown",
	}[m]
}

func (m IntervalErrorMode) EnumName() string { return "IntervalErrorMode" }
func (m IntervalErrorMode) Int() int         { return int(m) }
