package model

// Priority is the star rating of an object. PRTG stores it as 1 through 5.
type Priority int

const (
	PriorityOne Priority = iota + 1
	PriorityTwo
	PriorityThree
	PriorityFour
	PriorityFive
)

var Priorities = []Priority{PriorityOne, PriorityTwo, PriorityThree, PriorityFour, PriorityFive}

func (p Priority) String() string {
	if p < PriorityOne || p > PriorityFive {
		return "None"
	}
	return [...]string{"One", "Two", "Three", "Four", "Five"}[p-1]
}

func (p Priority) EnumName() string { return "Priority" }
func (p Priority) Int() int         { return int(p) }
