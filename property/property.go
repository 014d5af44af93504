// Package property describes the settable properties of PRTG objects and
// channels and turns typed values into editsettings parameters.
package property

import (
	"fmt"
	"strings"
)

// Property identifies an object or channel property.
type Property interface {
	fmt.Stringer
	// Scope is "ObjectProperty" or "ChannelProperty".
	Scope() string
}

type ObjectProperty int

const (
	Name ObjectProperty = iota + 1
	Tags
	Priority
	Comments
	Host
	Location
	LocationName
	InheritLocation
	Interval
	InheritInterval
	IntervalErrorMode
	DBPort
	ChannelDefinition
	WindowsDomain
	WindowsUserName
	WindowsPassword
	InheritWindowsCredentials
)

var objectPropertyNames = map[ObjectProperty]string{
	Name:                      "Name",
	Tags:                      "Tags",
	Priority:                  "Priority",
	Comments:                  "Comments",
	Host:                      "Host",
	Location:                  "Location",
	LocationName:              "LocationName",
	InheritLocation:           "InheritLocation",
	Interval:                  "Interval",
	InheritInterval:           "InheritInterval",
	IntervalErrorMode:         "IntervalErrorMode",
	DBPort:                    "DBPort",
	ChannelDefinition:         "ChannelDefinition",
	WindowsDomain:             "WindowsDomain",
	WindowsUserName:           "WindowsUserName",
	WindowsPassword:           "WindowsPassword",
	InheritWindowsCredentials: "InheritWindowsCredentials",
}

func (p ObjectProperty) String() string {
	if s, ok := objectPropertyNames[p]; ok {
		return s
	}
	return fmt.Sprintf("ObjectProperty(%d)", int(p))
}

func (p ObjectProperty) Scope() string { return "ObjectProperty" }

type ChannelProperty int

const (
	Unit ChannelProperty = iota + 1
	ValueLookup
	ColorMode
	LineColor
	ScalingMultiplication
	ScalingDivision
	LimitsEnabled
	UpperErrorLimit
	LowerErrorLimit
	UpperWarningLimit
	LowerWarningLimit
	ErrorLimitMessage
	WarningLimitMessage
	SpikeFilterEnabled
	SpikeFilterMax
	SpikeFilterMin
	DecimalMode
	DecimalPlaces
)

var channelPropertyNames = map[ChannelProperty]string{
	Unit:                  "Unit",
	ValueLookup:           "ValueLookup",
	ColorMode:             "ColorMode",
	LineColor:             "LineColor",
	ScalingMultiplication: "ScalingMultiplication",
	ScalingDivision:       "ScalingDivision",
	LimitsEnabled:         "LimitsEnabled",
	UpperErrorLimit:       "UpperErrorLimit",
	LowerErrorLimit:       "LowerErrorLimit",
	UpperWarningLimit:     "UpperWarningLimit",
	LowerWarningLimit:     "LowerWarningLimit",
	ErrorLimitMessage:     "ErrorLimitMessage",
	WarningLimitMessage:   "WarningLimitMessage",
	SpikeFilterEnabled:    "SpikeFilterEnabled",
	SpikeFilterMax:        "SpikeFilterMax",
	SpikeFilterMin:        "SpikeFilterMin",
	DecimalMode:           "DecimalMode",
	DecimalPlaces:         "DecimalPlaces",
}

func (p ChannelProperty) String() string {
	if s, ok := channelPropertyNames[p]; ok {
		return s
	}
	return fmt.Sprintf("ChannelProperty(%d)", int(p))
}

func (p ChannelProperty) Scope() string { return "ChannelProperty" }

// Lookup finds a property by its name, checking object properties first.
func Lookup(name string) (Property, bool) {
	for p, s := range objectPropertyNames {
		if strings.EqualFold(s, name) {
			return p, true
		}
	}
	for p, s := range channelPropertyNames {
		if strings.EqualFold(s, name) {
			return p, true
		}
	}
	return nil, false
}

// LookupObject finds an object property by name.
func LookupObject(name string) (ObjectProperty, bool) {
	for p, s := range objectPropertyNames {
		if strings.EqualFold(s, name) {
			return p, true
		}
	}
	return 0, false
}

// LookupChannel finds a channel property by name.
func LookupChannel(name string) (ChannelProperty, bool) {
	for p, s := range channelPropertyNames {
		if strings.EqualFold(s, name) {
			return p, true
		}
	}
	return 0, false
}
