package property

import (
	"cmp"
	"slices"
	"strings"

	"prtgctl/data/model"
)

// Kind is the declared value type of a property.
type Kind int

const (
	KindString Kind = iota
	KindBool
	KindInt
	KindDouble
	KindEnum
	KindStringList
	KindLocation
)

func (k Kind) String() string {
	return [...]string{"string", "bool", "int", "double", "enum", "string list", "location"}[k]
}

// EnumSpec lists the members a KindEnum property accepts.
type EnumSpec struct {
	Name    string
	Members []model.Enum
}

func enumOf[T model.Enum](name string, members []T) *EnumSpec {
	spec := &EnumSpec{Name: name}
	for _, m := range members {
		spec.Members = append(spec.Members, m)
	}
	return spec
}

func (e *EnumSpec) Names() []string {
	names := make([]string, len(e.Members))
	for i, m := range e.Members {
		names[i] = m.String()
	}
	return names
}

// Lookup finds a member by name, ignoring case.
func (e *EnumSpec) Lookup(name string) (model.Enum, bool) {
	for _, m := range e.Members {
		if strings.EqualFold(m.String(), name) {
			return m, true
		}
	}
	return nil, false
}

// Implication is a companion property written alongside another one unless
// the caller set it explicitly.
type Implication struct {
	Property Property
	Value    any
}

// Descriptor is the static knowledge about one property.
type Descriptor struct {
	Property Property
	Kind     Kind
	// Wire is the editsettings parameter name. Channel properties get
	// "_<channel id>" appended. Empty for properties that are merged into
	// another parameter.
	Wire      string
	Enum      *EnumSpec
	Separator string

	RequiresWith  Property
	Implies       []Implication
	ClearsOnFalse []Property

	// VersionGated properties behave differently depending on the PRTG
	// version's limit mode.
	VersionGated bool
	// Limit marks the four channel thresholds, which are written together
	// with their unit factor.
	Limit bool

	// Parse converts command line text into a value Coerce accepts.
	Parse func(string) (any, error)
}

var registry = map[Property]*Descriptor{}

func register(d *Descriptor) {
	if d.Parse == nil {
		d.Parse = defaultParser(d)
	}
	if d.Kind == KindStringList && d.Separator == "" {
		d.Separator = "\n"
	}
	registry[d.Property] = d
}

// Describe returns the descriptor registered for p.
func Describe(p Property) (*Descriptor, error) {
	if d, ok := registry[p]; ok {
		return d, nil
	}
	return nil, &UnknownPropertyError{Property: p}
}

// All lists the registered properties, object properties first, each
// scope sorted by name.
func All() []Property {
	out := make([]Property, 0, len(registry))
	for p := range registry {
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b Property) int {
		if c := cmp.Compare(b.Scope(), a.Scope()); c != 0 {
			return c
		}
		return cmp.Compare(a.String(), b.String())
	})
	return out
}

// MustDescribe is Describe for properties known to be registered.
func MustDescribe(p Property) *Descriptor {
	d, err := Describe(p)
	if err != nil {
		panic(err)
	}
	return d
}

var (
	limitsOn = []Implication{{Property: LimitsEnabled, Value: true}}

	// Thresholds in the order PRTG considers them.
	Thresholds = []ChannelProperty{UpperErrorLimit, LowerErrorLimit, UpperWarningLimit, LowerWarningLimit}
)

func init() {
	// Object properties
	register(&Descriptor{Property: Name, Kind: KindString, Wire: "name_"})
	register(&Descriptor{Property: Tags, Kind: KindStringList, Wire: "tags_", Separator: " "})
	register(&Descriptor{Property: Priority, Kind: KindEnum, Wire: "priority_", Enum: enumOf("Priority", model.Priorities)})
	register(&Descriptor{Property: Comments, Kind: KindString, Wire: "comments"})
	register(&Descriptor{Property: Host, Kind: KindString, Wire: "host_"})
	register(&Descriptor{
		Property: Location,
		Kind:     KindLocation,
		Wire:     "location_",
		Implies:  []Implication{{Property: InheritLocation, Value: false}},
	})
	register(&Descriptor{Property: LocationName, Kind: KindString, RequiresWith: Location})
	register(&Descriptor{Property: InheritLocation, Kind: KindBool, Wire: "locationgroup"})
	register(&Descriptor{
		Property: Interval,
		Kind:     KindInt,
		Wire:     "interval_",
		Implies:  []Implication{{Property: InheritInterval, Value: false}},
		Parse:    parseInterval,
	})
	register(&Descriptor{Property: InheritInterval, Kind: KindBool, Wire: "intervalgroup"})
	register(&Descriptor{Property: IntervalErrorMode, Kind: KindEnum, Wire: "errorintervalsdown_", Enum: enumOf("IntervalErrorMode", model.IntervalErrorModes)})
	register(&Descriptor{Property: DBPort, Kind: KindInt, Wire: "dbport_"})
	register(&Descriptor{Property: ChannelDefinition, Kind: KindStringList, Wire: "aggregationchannel_"})

	windows := []Implication{{Property: InheritWindowsCredentials, Value: false}}
	register(&Descriptor{Property: WindowsDomain, Kind: KindString, Wire: "windowslogindomain_", Implies: windows})
	register(&Descriptor{Property: WindowsUserName, Kind: KindString, Wire: "windowsloginusername_", Implies: windows})
	register(&Descriptor{Property: WindowsPassword, Kind: KindString, Wire: "windowsloginpassword_", Implies: windows})
	register(&Descriptor{Property: InheritWindowsCredentials, Kind: KindBool, Wire: "windowsconnection"})

	// Channel properties
	register(&Descriptor{Property: Unit, Kind: KindString, Wire: "customunit"})
	register(&Descriptor{Property: ValueLookup, Kind: KindString, Wire: "valuelookup"})
	register(&Descriptor{Property: ColorMode, Kind: KindEnum, Wire: "colmode", Enum: enumOf("AutoMode", model.AutoModes)})
	register(&Descriptor{
		Property: LineColor,
		Kind:     KindString,
		Wire:     "color",
		Implies:  []Implication{{Property: ColorMode, Value: model.Manual}},
	})
	register(&Descriptor{Property: ScalingMultiplication, Kind: KindDouble, Wire: "scalingmult"})
	register(&Descriptor{Property: ScalingDivision, Kind: KindDouble, Wire: "scalingdiv"})
	register(&Descriptor{
		Property:     LimitsEnabled,
		Kind:         KindBool,
		Wire:         "limitmode",
		VersionGated: true,
		ClearsOnFalse: []Property{
			UpperErrorLimit, UpperWarningLimit, LowerErrorLimit, LowerWarningLimit,
			ErrorLimitMessage, WarningLimitMessage,
		},
	})
	register(&Descriptor{Property: UpperErrorLimit, Kind: KindDouble, Wire: "limitmaxerror", Limit: true, Implies: limitsOn})
	register(&Descriptor{Property: LowerErrorLimit, Kind: KindDouble, Wire: "limitminerror", Limit: true, Implies: limitsOn})
	register(&Descriptor{Property: UpperWarningLimit, Kind: KindDouble, Wire: "limitmaxwarning", Limit: true, Implies: limitsOn})
	register(&Descriptor{Property: LowerWarningLimit, Kind: KindDouble, Wire: "limitminwarning", Limit: true, Implies: limitsOn})
	register(&Descriptor{Property: ErrorLimitMessage, Kind: KindString, Wire: "limiterrormsg", VersionGated: true, Implies: limitsOn})
	register(&Descriptor{Property: WarningLimitMessage, Kind: KindString, Wire: "limitwarningmsg", VersionGated: true, Implies: limitsOn})

	spikeOn := []Implication{{Property: SpikeFilterEnabled, Value: true}}
	register(&Descriptor{Property: SpikeFilterEnabled, Kind: KindBool, Wire: "spikemode"})
	register(&Descriptor{Property: SpikeFilterMax, Kind: KindDouble, Wire: "spikemax", Implies: spikeOn})
	register(&Descriptor{Property: SpikeFilterMin, Kind: KindDouble, Wire: "spikemin", Implies: spikeOn})
	register(&Descriptor{Property: DecimalMode, Kind: KindEnum, Wire: "decimalmode", Enum: enumOf("DecimalMode", model.DecimalModes)})
	register(&Descriptor{
		Property: DecimalPlaces,
		Kind:     KindInt,
		Wire:     "decimaldigits",
		Implies:  []Implication{{Property: DecimalMode, Value: model.DecimalCustom}},
	})
}
