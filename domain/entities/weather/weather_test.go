package weather

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDescribe(t *testing.T) {
	assert.Equal(t, Descriptor("Clear/Partly Cloudy"), Describe(ClearSituation))
	assert.Equal(t, Descriptor("Heavy Rain/Ice Pallets"), Describe(HeavyRainSituation))
	assert.Equal(t, Descriptor("Unknown"), Describe(0))
	assert.Equal(t, Descriptor("Unknown"), Describe(5))
}

func TestIsValidSituation(t *testing.T) {
	for situation := ClearSituation; situation <= HeavyRainSituation; situation++ {
		assert.True(t, IsValidSituation(situation))
	}
	assert.False(t, IsValidSituation(0))
	assert.False(t, IsValidSituation(5))
}

func TestCategoriesOrder(t *testing.T) {
	assert.Equal(t, []Category{Ideal, Good, Moderate, Poor}, Categories())
	assert.Len(t, Descriptors(), 4)
}
