package domain

import "strconv"

// WeightUnit is the unit a workout's weights are recorded in.
type WeightUnit string

const (
	WeightUnitKG WeightUnit = "kg"
	WeightUnitLB WeightUnit = "lb"
)

func (u WeightUnit) String() string { return string(u) }

func (u WeightUnit) IsValid() bool {
	switch u {
	case WeightUnitKG, WeightUnitLB:
		return true
	}
	return false
}

func itoa(n int) string { return strconv.Itoa(n) }
