package catalog

import (
	"regexp"
	"strings"

	"food-delivery-api/internal/domain/pricing"
	"food-delivery-api/internal/pkg/errs"
)

var (
	ErrInvalidAddonType = errs.Define("addon type must be TOPPING, OPTION or SPICE", errs.ErrValidation)
	ErrInvalidVariation = errs.Define("variation needs a name and a non-negative price", errs.ErrValidation)
	ErrInvalidAddon     = errs.Define("addon needs a name and a non-negative price", errs.ErrValidation)
)

type AddonType string

const (
	AddonTopping AddonType = "TOPPING"
	AddonOption  AddonType = "OPTION"
	AddonSpice   AddonType = "SPICE"
)

func (t AddonType) IsValid() bool {
	switch t {
	case AddonTopping, AddonOption, AddonSpice:
		return true
	default:
		return false
	}
}

type Variation struct {
	Name      string        `json:"name"`
	Price     pricing.Money `json:"price"`
	MaxAddons int           `json:"maxAddons"`
}

func NewVariation(name string, price pricing.Money, maxAddons int) (Variation, error) {
	name = strings.TrimSpace(name)
	if name == "" || price.IsNegative() || maxAddons < 0 {
		return Variation{}, ErrInvalidVariation
	}
	return Variation{Name: name, Price: price, MaxAddons: maxAddons}, nil
}

type Addon struct {
	Name  string        `json:"name"`
	Price pricing.Money `json:"price"`
	Type  AddonType     `json:"type"`
}

func NewAddon(name string, price pricing.Money, kind AddonType) (Addon, error) {
	name = strings.TrimSpace(name)
	if name == "" || price.IsNegative() {
		return Addon{}, ErrInvalidAddon
	}
	if !kind.IsValid() {
		return Addon{}, ErrInvalidAddonType
	}
	return Addon{Name: name, Price: price, Type: kind}, nil
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases and collapses anything non-alphanumeric into single dashes.
func Slugify(s string) string {
	return strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(s), "-"), "-")
}
