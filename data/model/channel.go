package model

// Channel is a single value stream of a sensor. The limit fields are nil when
// PRTG has no threshold configured for them.
type Channel struct {
	ID        int    `mapstructure:"objid"`
	SensorID  int    `mapstructure:"-"`
	Name      string `mapstructure:"name"`
	LastValue string `mapstructure:"lastvalue"`

	UpperErrorLimit     *float64 `mapstructure:"-"`
	LowerErrorLimit     *float64 `mapstructure:"-"`
	UpperWarningLimit   *float64 `mapstructure:"-"`
	LowerWarningLimit   *float64 `mapstructure:"-"`
	ErrorLimitMessage   string   `mapstructure:"-"`
	WarningLimitMessage string   `mapstructure:"-"`
	LimitsEnabled       bool     `mapstructure:"-"`

	// Factor is the unit multiplier PRTG applies to limits typed in the web
	// interface. It is echoed back whenever a limit is written.
	Factor string `mapstructure:"-"`
}

func NewChannel(id, sensorID int) *Channel {
	return &Channel{
		ID:       id,
		SensorID: sensorID,
		Factor:   "1",
	}
}

// HasLimit reports whether any of the four thresholds is set.
func (c *Channel) HasLimit() bool {
	return c.UpperErrorLimit != nil || c.LowerErrorLimit != nil ||
		c.UpperWarningLimit != nil || c.LowerWarningLimit != nil
}

// LimitFactor returns Factor, defaulting to "1" when PRTG reported none.
func (c *Channel) LimitFactor() string {
	if c.Factor == "" {
		return "1"
	}
	return c.Factor
}
