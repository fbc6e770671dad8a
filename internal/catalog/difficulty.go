package catalog

import (
	"encoding/json"
	"fmt"
)

// Difficulty is the ordered tier an activity is classified under.
// The zero value is reserved as a filter wildcard; every catalog entry
// declares a real tier.
type Difficulty int

const (
	DifficultyUnspecified Difficulty = iota
	Beginner
	Intermediate
	Advanced
	Expert
)

// AllDifficulties returns the real tiers in ascending order.
func AllDifficulties() []Difficulty {
	return []Difficulty{Beginner, Intermediate, Advanced, Expert}
}

func (d Difficulty) String() string {
	switch d {
	case Beginner:
		return "beginner"
	case Intermediate:
		return "intermediate"
	case Advanced:
		return "advanced"
	case Expert:
		return "expert"
	default:
		return "unspecified"
	}
}

// DisplayName returns a human-readable label for the tier.
func (d Difficulty) DisplayName() string {
	switch d {
	case Beginner:
		return "Beginner"
	case Intermediate:
		return "Intermediate"
	case Advanced:
		return "Advanced"
	case Expert:
		return "Expert"
	default:
		return "Any"
	}
}

// Next returns the tier one step up, saturating at Expert.
func (d Difficulty) Next() Difficulty {
	if d >= Expert {
		return Expert
	}
	if d < Beginner {
		return Beginner
	}
	return d + 1
}

// ParseDifficulty parses the lowercase string form of a tier.
func ParseDifficulty(s string) (Difficulty, error) {
	switch s {
	case "beginner":
		return Beginner, nil
	case "intermediate":
		return Intermediate, nil
	case "advanced":
		return Advanced, nil
	case "expert":
		return Expert, nil
	default:
		return DifficultyUnspecified, fmt.Errorf("unknown difficulty %q", s)
	}
}

// MarshalJSON encodes the tier as its string form.
func (d Difficulty) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes the string form of a tier.
func (d *Difficulty) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseDifficulty(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
