// Package sensorparams builds the parameter sets used to create sensors.
//
// Each supported sensor type is its own struct. Anything else can be created
// from a raw parameter set naming the sensortype directly.
package sensorparams

import (
	"fmt"
	"strconv"
	"strings"

	"prtgctl/data/model"
)

const (
	nameParam       = "name_"
	sensorTypeParam = "sensortype"
)

// Kind names a sensor type with a typed parameter set.
type Kind string

const (
	KindExeXML     Kind = "exexml"
	KindWMIService Kind = "wmiservice"
)

var kinds = []Kind{KindExeXML, KindWMIService}

func Kinds() []Kind { return append([]Kind(nil), kinds...) }

// ParseKind matches s case-insensitively, ignoring "_" and "-".
func ParseKind(s string) (Kind, error) {
	norm := strings.ToLower(strings.NewReplacer("_", "", "-", "").Replace(s))
	for _, k := range kinds {
		if string(k) == norm {
			return k, nil
		}
	}
	return "", &UnsupportedTypeError{Kind: s}
}

// Params is a complete set of sensor creation parameters.
type Params interface {
	SensorType() string
	// Parameters validates the set and renders it for addsensor5.htm.
	Parameters() (model.Parameters, error)
}

type UnsupportedTypeError struct {
	Kind string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("Sensor type '%s' is currently not supported", e.Kind)
}

// MissingValueError reports a mandatory parameter without a value.
type MissingValueError struct {
	Name string
}

func (e *MissingValueError) Error() string {
	return fmt.Sprintf("Parameter '%s' is mandatory, however a value was not specified", e.Name)
}

// Common holds the settings every sensor type shares.
type Common struct {
	Name     string
	Tags     []string
	Priority model.Priority
	// Interval in seconds. Zero inherits the parent's interval.
	Interval int
}

func (c Common) parameters(defaultTags ...string) model.Parameters {
	var p model.Parameters
	p.Add(nameParam, c.Name)

	tags := c.Tags
	if tags == nil {
		tags = defaultTags
	}
	p.Add("tags_", strings.Join(tags, " "))

	prio := c.Priority
	if prio == 0 {
		prio = model.PriorityThree
	}
	p.Add("priority_", strconv.Itoa(prio.Int()))

	if c.Interval > 0 {
		p.Add("intervalgroup", "0")
		p.Add("interval_", strconv.Itoa(c.Interval))
	} else {
		p.Add("intervalgroup", "1")
	}
	return p
}

// ExeXML runs a script on the probe that reports channels as XML.
type ExeXML struct {
	Common
	// ExeFile is the script name as listed under Custom Sensors\EXEXML.
	ExeFile string
	// Args is passed to the script on its command line.
	Args    string
	Timeout int
}

func (e *ExeXML) SensorType() string { return string(KindExeXML) }

func (e *ExeXML) Parameters() (model.Parameters, error) {
	if e.Name == "" {
		return nil, &MissingValueError{Name: nameParam}
	}
	if e.ExeFile == "" {
		return nil, &MissingValueError{Name: "exefile_"}
	}

	p := e.Common.parameters("xmlexesensor")
	p.Add("exefile_", e.ExeFile+"|"+e.ExeFile+"||")
	p.Add("exeparams_", e.Args)
	timeout := e.Timeout
	if timeout == 0 {
		timeout = 60
	}
	p.Add("timeout_", strconv.Itoa(timeout))
	p.Add(sensorTypeParam, e.SensorType())
	return p, nil
}

// WMIService monitors Windows services. PRTG creates one sensor per service
// and names each after its service, so Name is not sent.
type WMIService struct {
	Common
	Services []string
}

func (w *WMIService) SensorType() string { return string(KindWMIService) }

func (w *WMIService) Parameters() (model.Parameters, error) {
	if len(w.Services) == 0 {
		return nil, &MissingValueError{Name: "service__check"}
	}

	var p model.Parameters
	for _, param := range w.Common.parameters("wmiservicesensor", "servicesensor") {
		if param.Name != nameParam {
			p = append(p, param)
		}
	}
	for _, svc := range w.Services {
		p.Add("service__check", svc)
	}
	p.Add(sensorTypeParam, w.SensorType())
	return p, nil
}

// Raw passes parameters through as given. sensortype is always sent last.
type Raw struct {
	Type   string
	Params model.Parameters
}

// NewRaw builds a raw set. params must name both name_ and sensortype.
func NewRaw(params model.Parameters) (*Raw, error) {
	if !params.Has(nameParam) {
		return nil, &MissingValueError{Name: nameParam}
	}
	typ, ok := params.Get(sensorTypeParam)
	if !ok || typ == "" {
		return nil, &MissingValueError{Name: sensorTypeParam}
	}

	r := &Raw{Type: typ}
	for _, p := range params {
		if p.Name != sensorTypeParam {
			r.Params = append(r.Params, p)
		}
	}
	return r, nil
}

func (r *Raw) SensorType() string { return r.Type }

func (r *Raw) Parameters() (model.Parameters, error) {
	if r.Type == "" {
		return nil, &MissingValueError{Name: sensorTypeParam}
	}
	p := r.Params.Clone()
	p.Add(sensorTypeParam, r.Type)
	return p, nil
}

// New builds the typed set for kind. first is the sensor name, or the list
// of services for WMI service sensors; second is the type's main target.
func New(kind string, first, second any) (Params, error) {
	k, err := ParseKind(kind)
	if err != nil {
		return nil, err
	}

	switch k {
	case KindExeXML:
		e := &ExeXML{}
		if first != nil {
			e.Name = fmt.Sprint(first)
		}
		if second != nil {
			e.ExeFile = fmt.Sprint(second)
		}
		return e, nil
	case KindWMIService:
		services, err := stringList(first)
		if err != nil {
			return nil, err
		}
		return &WMIService{Services: services}, nil
	}
	return nil, &UnsupportedTypeError{Kind: kind}
}

func stringList(v any) ([]string, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case string:
		return []string{t}, nil
	case []string:
		return append([]string(nil), t...), nil
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if item == nil {
				continue
			}
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("expected one or more items of type string, however an item of type %T was specified", item)
			}
			out = append(out, s)
		}
		return out, nil
	}
	return nil, fmt.Errorf("expected one or more items of type string, however an item of type %T was specified", v)
}
