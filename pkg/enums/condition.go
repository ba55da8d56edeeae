package enums

import "fmt"

// ProductCondition represents the informal wear grading applied to listings.
type ProductCondition string

const (
	ProductConditionBrandNew ProductCondition = "Brand New"
	ProductConditionLikeNew  ProductCondition = "Like New"
	ProductConditionGood     ProductCondition = "Good"
	ProductConditionFair     ProductCondition = "Fair"
	ProductConditionPoor     ProductCondition = "Poor"
)

var validProductConditions = []ProductCondition{
	ProductConditionBrandNew,
	ProductConditionLikeNew,
	ProductConditionGood,
	ProductConditionFair,
	ProductConditionPoor,
}

// String implements fmt.Stringer.
func (c ProductCondition) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ProductCondition.
func (c ProductCondition) IsValid() bool {
	for _, candidate := range validProductConditions {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseProductCondition converts raw input into a ProductCondition.
func ParseProductCondition(value string) (ProductCondition, error) {
	for _, candidate := range validProductConditions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product condition %q", value)
}
