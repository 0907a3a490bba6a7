package weather

// Situation codes of the weathersit column
const (
	ClearSituation     = 1
	MistSituation      = 2
	LightRainSituation = 3
	HeavyRainSituation = 4
)

const unknownDescriptor Descriptor = "Unknown"

// Category coarse weather quality derived from situation, temperature and humidity
type Category string

const (
	Ideal    Category = "Ideal"
	Good     Category = "Good"
	Moderate Category = "Moderate"
	Poor     Category = "Poor"
)

// Categories returns the categories in display order. Views keep this order even
// when a category has no rows
func Categories() []Category {
	return []Category{Ideal, Good, Moderate, Poor}
}

func (c Category) String() string {
	return string(c)
}

// Descriptor human readable label of a weather situation
type Descriptor string

var descriptors = map[int]Descriptor{
	ClearSituation:     "Clear/Partly Cloudy",
	MistSituation:      "Mist/Cloudy",
	LightRainSituation: "Light Rain/Snow",
	HeavyRainSituation: "Heavy Rain/Ice Pallets",
}

// Describe returns the descriptor of a situation code, Unknown for codes outside 1-4
func Describe(situation int) Descriptor {
	descriptor, ok := descriptors[situation]
	if !ok {
		return unknownDescriptor
	}
	return descriptor
}

// Descriptors returns the known descriptors ordered by situation code
func Descriptors() []Descriptor {
	return []Descriptor{
		descriptors[ClearSituation],
		descriptors[MistSituation],
		descriptors[LightRainSituation],
		descriptors[HeavyRainSituation],
	}
}

// IsValidSituation returns true for codes 1 to 4
func IsValidSituation(situation int) bool {
	_, ok := descriptors[situation]
	return ok
}
