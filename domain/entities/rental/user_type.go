package rental

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidUserType = errors.New("invalid user type")

// UserType selects which ridership column a single-series view shows
type UserType string

const (
	AllUsers        UserType = "All"
	CasualUsers     UserType = "Casual"
	RegisteredUsers UserType = "Registered"
)

// UserTypes returns the selectable user types in display order
func UserTypes() []UserType {
	return []UserType{AllUsers, CasualUsers, RegisteredUsers}
}

// ParseUserType is case-insensitive. An empty string means All
func ParseUserType(value string) (UserType, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "all":
		return AllUsers, nil
	case "casual":
		return CasualUsers, nil
	case "registered":
		return RegisteredUsers, nil
	default:
		validTypes := make([]string, 0, len(UserTypes()))
		for _, userType := range UserTypes() {
			validTypes = append(validTypes, string(userType))
		}
		return "", fmt.Errorf("%w: %s. Must be one of: %s", ErrInvalidUserType, value, strings.Join(validTypes, ", "))
	}
}

// Column returns the dataset column name backing the user type
func (ut UserType) Column() string {
	switch ut {
	case CasualUsers:
		return "casual"
	case RegisteredUsers:
		return "registered"
	default:
		return "cnt"
	}
}

// Count picks the ridership value of the user type out of the three columns
func (ut UserType) Count(casual, registered, total float64) float64 {
	switch ut {
	case CasualUsers:
		return casual
	case RegisteredUsers:
		return registered
	default:
		return total
	}
}
