package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is a PRTG server version such as 18.1.37.1234.
type Version struct {
	Major    int
	Minor    int
	Build    int
	Revision int
}

func NewVersion(major, minor int) Version {
	return Version{Major: major, Minor: minor}
}

// ParseVersion accepts the forms reported by getstatus.htm, including a
// trailing "+" on preview builds.
func ParseVersion(s string) (Version, error) {
	s = strings.TrimSpace(strings.TrimRight(strings.TrimSpace(s), "+"))
	if s == "" {
		return Version{}, fmt.Errorf("empty version string")
	}
	parts := strings.Split(s, ".")
	if len(parts) > 4 {
		return Version{}, fmt.Errorf("invalid version %q", s)
	}
	var nums [4]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return Version{}, fmt.Errorf("invalid version %q", s)
		}
		nums[i] = n
	}
	return Version{Major: nums[0], Minor: nums[1], Build: nums[2], Revision: nums[3]}, nil
}

// Compare returns -1, 0 or 1.
func (v Version) Compare(o Version) int {
	a := [4]int{v.Major, v.Minor, v.Build, v.Revision}
	b := [4]int{o.Major, o.Minor, o.Build, o.Revision}
	for i := range a {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}
	return 0
}

func (v Version) AtLeast(o Version) bool { return v.Compare(o) >= 0 }

func (v Version) IsZero() bool { return v == Version{} }

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d.%d", v.Major, v.Minor, v.Build, v.Revision)
}
