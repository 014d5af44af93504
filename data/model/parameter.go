package model

import (
	"net/url"
	"strconv"
	"strings"
)

// Parameter is a single name=value pair of a PRTG request. Raw values are
// written to the query string as is; everything else is form encoded.
type Parameter struct {
	Name  string
	Value string
	Raw   bool
}

func NewParameter(name, value string) Parameter {
	return Parameter{Name: name, Value: value}
}

// IDParameter renders object IDs the way PRTG expects them, comma separated
// and unescaped.
func IDParameter(ids []int) Parameter {
	s := make([]string, len(ids))
	for i, id := range ids {
		s[i] = strconv.Itoa(id)
	}
	return Parameter{Name: "id", Value: strings.Join(s, ","), Raw: true}
}

// Parameters keeps insertion order, which url.Values does not.
type Parameters []Parameter

func (p *Parameters) Add(name, value string) {
	*p = append(*p, Parameter{Name: name, Value: value})
}

func (p *Parameters) AddRaw(name, value string) {
	*p = append(*p, Parameter{Name: name, Value: value, Raw: true})
}

func (p Parameters) Get(name string) (string, bool) {
	for _, param := range p {
		if param.Name == name {
			return param.Value, true
		}
	}
	return "", false
}

func (p Parameters) Has(name string) bool {
	_, ok := p.Get(name)
	return ok
}

func (p Parameters) Names() []string {
	names := make([]string, len(p))
	for i, param := range p {
		names[i] = param.Name
	}
	return names
}

func (p Parameters) Clone() Parameters {
	if p == nil {
		return nil
	}
	out := make(Parameters, len(p))
	copy(out, p)
	return out
}

// Encode renders the parameters as a query string using classic form
// encoding (space becomes "+").
func (p Parameters) Encode() string {
	var b strings.Builder
	for i, param := range p {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(param.Name)
		b.WriteByte('=')
		if param.Raw {
			b.WriteString(param.Value)
		} else {
			b.WriteString(url.QueryEscape(param.Value))
		}
	}
	return b.String()
}
