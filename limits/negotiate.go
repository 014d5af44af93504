// Package limits decides how channel limit changes are written for a given
// PRTG version and splits a batch of sensors into requests that can share
// the same parameters.
package limits

import (
	"prtgctl/data/model"
	"prtgctl/property"
)

// Mode is the way a PRTG version handles channel limit fields.
type Mode int

const (
	// Legacy servers accept a limit message or the limit mode flag on its
	// own.
	Legacy Mode = iota
	// Modern servers discard limit messages unless a threshold is written
	// in the same request.
	Modern
)

func (m Mode) String() string {
	return [...]string{"legacy", "modern"}[m]
}

type policy struct {
	since model.Version
	mode  Mode
}

// Ordered by version. The last entry whose version is not greater than the
// server's applies.
var policies = []policy{
	{since: model.Version{}, mode: Legacy},
	{since: model.NewVersion(18, 1), mode: Modern},
}

// ModeFor returns the limit mode of a PRTG version.
func ModeFor(v model.Version) Mode {
	mode := policies[0].mode
	for _, p := range policies {
		if v.AtLeast(p.since) {
			mode = p.mode
		}
	}
	return mode
}

// Plan describes what a channel property change needs beyond its own
// parameters.
type Plan struct {
	Mode Mode
	// Reemit is set when an existing threshold of each target must be
	// written back for the change to stick.
	Reemit bool
	// Subject is the value that caused Reemit, used in error messages.
	Subject property.Value
	// Factors lists the thresholds being written, each of which needs its
	// unit factor.
	Factors []property.ChannelProperty
}

// NeedsChannels reports whether the current limit state of the targets is
// required to build the requests.
func (p Plan) NeedsChannels() bool {
	return p.Reemit || len(p.Factors) > 0
}

// NeedsVersion reports whether the outcome of Negotiate depends on the
// server version for values.
func NeedsVersion(values []property.Value) bool {
	_, ok := trigger(values)
	return ok
}

// Negotiate works out the plan for setting values on a server running
// version v.
func Negotiate(values []property.Value, v model.Version) Plan {
	plan := Plan{Mode: ModeFor(v)}
	for _, val := range values {
		if val.Descriptor.Limit && !val.IsNull() {
			plan.Factors = append(plan.Factors, val.Property().(property.ChannelProperty))
		}
	}

	subject, ok := trigger(values)
	if ok && plan.Mode == Modern && len(plan.Factors) == 0 {
		plan.Reemit = true
		plan.Subject = subject
	}
	return plan
}

// trigger finds the first value that turns limits on without writing a
// threshold: a limit message or LimitsEnabled=true. Turning limits off
// never triggers.
func trigger(values []property.Value) (property.Value, bool) {
	for _, v := range values {
		if v.Property() == property.LimitsEnabled {
			if on, _ := v.Raw.(bool); !on {
				return property.Value{}, false
			}
		}
	}
	for _, v := range values {
		if v.Descriptor.VersionGated && !v.IsNull() {
			return v, true
		}
	}
	return property.Value{}, false
}
