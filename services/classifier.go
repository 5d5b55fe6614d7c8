package services

import (
	"strings"

	"github.com/yeremiapane/catprinter/models"
)

// Item groups produced by classification. Every item lands in exactly one.
const (
	GroupFood  = "food"
	GroupDrink = "drink"
)

// ClassifierConfig holds the vocabulary used to split order items into
// routing groups and to match printers to those groups.
type ClassifierConfig struct {
	// DrinkMarkers are food_type values that mark an item as a drink.
	DrinkMarkers []string
	// DrinkAliases are substrings matched against food_type.
	DrinkAliases []string
	// DrinkCodePrefixes are item code prefixes of known beverage codes.
	DrinkCodePrefixes []string
	// CategoryAliases maps a group to the printer categories that serve it.
	CategoryAliases map[string][]string
}

func DefaultClassifierConfig() ClassifierConfig {
	return ClassifierConfig{
		DrinkMarkers:      []string{"drink", "beverage"},
		DrinkAliases:      []string{"drink", "beverage", "getraenk"},
		DrinkCodePrefixes: []string{"COC", "BEV", "D"},
		CategoryAliases: map[string][]string{
			GroupDrink: {"drink", "beverage", "bar"},
			GroupFood:  {"food", "kitchen"},
		},
	}
}

// ClassifyItem decides the routing group of a single item. The checks run
// from most to least specific; the first hit wins.
func (c ClassifierConfig) ClassifyItem(item models.OrderItem) string {
	foodType := strings.ToLower(strings.TrimSpace(item.FoodType))

	for _, marker := range c.DrinkMarkers {
		if foodType == marker {
			return GroupDrink
		}
	}
	if foodType != "" {
		for _, alias := range c.DrinkAliases {
			if strings.Contains(foodType, alias) {
				return GroupDrink
			}
		}
	}

	code := strings.ToUpper(strings.TrimSpace(item.Code))
	if code != "" {
		for _, prefix := range c.DrinkCodePrefixes {
			if strings.HasPrefix(code, prefix) {
				return GroupDrink
			}
		}
	}

	if strings.TrimSpace(item.Volume) != "" {
		return GroupDrink
	}

	return GroupFood
}

// ClassifyItems splits the items into groups. The union of all groups is
// always the full input; nothing is dropped.
func (c ClassifierConfig) ClassifyItems(items []models.OrderItem) map[string][]models.OrderItem {
	groups := make(map[string][]models.OrderItem)
	for _, item := range items {
		group := c.ClassifyItem(item)
		groups[group] = append(groups[group], item)
	}
	return groups
}

// ResolvePrinters picks the printers that should receive a group. Printers
// whose category matches the group's aliases win; otherwise the default
// printer serves as fallback. An empty result means the group is unroutable.
func (c ClassifierConfig) ResolvePrinters(group string, printers []models.Printer) []models.Printer {
	aliases := c.CategoryAliases[group]

	var matched []models.Printer
	for _, p := range printers {
		category := strings.ToLower(strings.TrimSpace(p.Category))
		for _, alias := range aliases {
			if category == alias {
				matched = append(matched, p)
				break
			}
		}
	}
	if len(matched) > 0 {
		return matched
	}

	for _, p := range printers {
		if p.IsDefault {
			return []models.Printer{p}
		}
	}
	return nil
}
