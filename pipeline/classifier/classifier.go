package classifier

import (
	"fmt"

	"github.com/mrsyaban/bike-rental-analysis/domain/entities/rental"
	"github.com/mrsyaban/bike-rental-analysis/domain/entities/weather"
	"github.com/mrsyaban/bike-rental-analysis/utils"
)

// Rule assigns Category to the records that match every condition
// + Situations: weather situation codes accepted by the rule
// + MinTemperature: exclusive lower bound of the normalized temperature
// + MaxHumidity: exclusive upper bound of the normalized humidity
type Rule struct {
	Category       weather.Category `yaml:"category" json:"category"`
	Situations     []int            `yaml:"situations" json:"situations"`
	MinTemperature float64          `yaml:"min_temperature" json:"min_temperature"`
	MaxHumidity    float64          `yaml:"max_humidity" json:"max_humidity"`
}

// Matches returns true if the record satisfies the three conditions of the rule
func (r Rule) Matches(record rental.Record) bool {
	return utils.ContainsInt(record.WeatherSituation, r.Situations) &&
		record.Temperature > r.MinTemperature &&
		record.Humidity < r.MaxHumidity
}

// DefaultRules returns the rules of the dashboard, most favorable first
func DefaultRules() []Rule {
	return []Rule{
		{Category: weather.Ideal, Situations: []int{weather.ClearSituation}, MinTemperature: 0.6, MaxHumidity: 0.5},
		{Category: weather.Good, Situations: []int{weather.ClearSituation, weather.MistSituation}, MinTemperature: 0.4, MaxHumidity: 0.7},
		{Category: weather.Moderate, Situations: []int{weather.MistSituation, weather.LightRainSituation}, MinTemperature: 0.2, MaxHumidity: 0.8},
	}
}

// Classifier evaluates an ordered rule list. The first matching rule wins and records
// that match no rule get the fallback category
type Classifier struct {
	rules    []Rule
	fallback weather.Category
}

// NewDefaultClassifier returns the classifier built from DefaultRules with Poor as fallback
func NewDefaultClassifier() *Classifier {
	return &Classifier{
		rules:    DefaultRules(),
		fallback: weather.Poor,
	}
}

// NewClassifier validates rules and fallback. An empty rule list means DefaultRules
func NewClassifier(rules []Rule, fallback weather.Category) (*Classifier, error) {
	if fallback == "" {
		fallback = weather.Poor
	}
	if !isValidCategory(fallback) {
		return nil, fmt.Errorf("%w: unknown fallback category %q", ErrInvalidRule, fallback)
	}

	if len(rules) == 0 {
		rules = DefaultRules()
	}

	for idx, rule := range rules {
		if err := validateRule(rule); err != nil {
			return nil, fmt.Errorf("rule %d: %w", idx, err)
		}
	}

	rulesCopy := make([]Rule, len(rules))
	copy(rulesCopy, rules)
	return &Classifier{
		rules:    rulesCopy,
		fallback: fallback,
	}, nil
}

// Rules returns a copy of the rules in evaluation order
func (c *Classifier) Rules() []Rule {
	rules := make([]Rule, len(c.rules))
	copy(rules, c.rules)
	return rules
}

func (c *Classifier) Fallback() weather.Category {
	return c.fallback
}

func (c *Classifier) Classify(record rental.Record) weather.Category {
	for _, rule := range c.rules {
		if rule.Matches(record) {
			return rule.Category
		}
	}
	return c.fallback
}

// ClassifyAll returns the category of every record, categories[i] belongs to records[i]
func (c *Classifier) ClassifyAll(records []rental.Record) []weather.Category {
	categories := make([]weather.Category, len(records))
	for idx := range records {
		categories[idx] = c.Classify(records[idx])
	}
	return categories
}

// Describe returns the label of a weather situation code
func Describe(situation int) weather.Descriptor {
	return weather.Describe(situation)
}

func validateRule(rule Rule) error {
	if !isValidCategory(rule.Category) {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidRule, rule.Category)
	}

	if len(rule.Situations) == 0 {
		return fmt.Errorf("%w: category %s has no weather situations", ErrInvalidRule, rule.Category)
	}

	for _, situation := range rule.Situations {
		if !weather.IsValidSituation(situation) {
			return fmt.Errorf("%w: category %s has an invalid weather situation %v", ErrInvalidRule, rule.Category, situation)
		}
	}

	return nil
}

func isValidCategory(category weather.Category) bool {
	for _, validCategory := range weather.Categories() {
		if category == validCategory {
			return true
		}
	}
	return false
}
