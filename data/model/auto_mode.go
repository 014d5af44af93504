package model

// AutoMode selects between PRTG choosing a value and the user supplying one,
// e.g. a channel's line color.
type AutoMode int

const (
	Automatic AutoMode = iota
	Manual
)

var AutoModes = []AutoMode{Automatic, Manual}

func (am AutoMode) String() string {
	return [...]string{"Automatic", "Manual"}[am]
}

func (am AutoMode) EnumName() string { return "AutoMode" }
func (am AutoMode) Int() int         { return int(am) }

type DecimalMode int

const (
	DecimalAutomatic DecimalMode = iota
	DecimalAll
	DecimalCustom
)

var DecimalModes = []DecimalMode{DecimalAutomatic, DecimalAll, DecimalCustom}

func (dm DecimalMode) String() string {
	return [...]string{"Automatic", "All", "Custom"}[dm]
}

func (dm DecimalMode) EnumName() string { return "DecimalMode" }
func (dm DecimalMode) Int() int         { return int(dm) }
