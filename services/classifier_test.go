package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yeremiapane/catprinter/models"
)

func TestClassifyItem_Layers(t *testing.T) {
	c := DefaultClassifierConfig()

	tests := []struct {
		name string
		item models.OrderItem
		want string
	}{
		{"exact drink marker", models.OrderItem{FoodType: "drink"}, GroupDrink},
		{"exact marker with noise", models.OrderItem{FoodType: "  Beverage "}, GroupDrink},
		{"vocabulary substring", models.OrderItem{FoodType: "kaltes getraenk"}, GroupDrink},
		{"beverage code prefix", models.OrderItem{Code: "COC1"}, GroupDrink},
		{"d code prefix", models.OrderItem{Code: "d12"}, GroupDrink},
		{"volume only", models.OrderItem{Name: "Hauswein", Volume: "0.2l"}, GroupDrink},
		{"plain food", models.OrderItem{Name: "Pommes", Code: "F1", FoodType: "main"}, GroupFood},
		{"empty item", models.OrderItem{Name: "Unbekannt"}, GroupFood},
		{"dumpling code stays food", models.OrderItem{Code: "CD2"}, GroupFood},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.ClassifyItem(tt.item))
		})
	}
}

func TestClassifyItems_TotalCoverage(t *testing.T) {
	c := DefaultClassifierConfig()
	items := []models.OrderItem{
		{Name: "Pommes", Code: "F1"},
		{Name: "Cola", FoodType: "drink"},
		{Name: "Wein", Volume: "0.2l"},
		{Name: "Menu A", Code: "S1"},
	}

	groups := c.ClassifyItems(items)

	total := 0
	for _, groupItems := range groups {
		total += len(groupItems)
	}
	assert.Equal(t, len(items), total, "every item lands in exactly one group")
	assert.Len(t, groups[GroupFood], 2)
	assert.Len(t, groups[GroupDrink], 2)
}

func TestResolvePrinters(t *testing.T) {
	c := DefaultClassifierConfig()
	kitchen := models.Printer{ID: "p1", Name: "Kueche", Category: "kitchen"}
	bar := models.Printer{ID: "p2", Name: "Bar", Category: "Bar"}
	fallback := models.Printer{ID: "p3", Name: "Theke", IsDefault: true}

	t.Run("category match wins", func(t *testing.T) {
		got := c.ResolvePrinters(GroupDrink, []models.Printer{kitchen, bar, fallback})
		assert.Len(t, got, 1)
		assert.Equal(t, "p2", got[0].ID)
	})

	t.Run("default fallback", func(t *testing.T) {
		got := c.ResolvePrinters(GroupDrink, []models.Printer{kitchen, fallback})
		assert.Len(t, got, 1)
		assert.Equal(t, "p3", got[0].ID)
	})

	t.Run("no printer at all", func(t *testing.T) {
		got := c.ResolvePrinters(GroupDrink, []models.Printer{kitchen})
		assert.Empty(t, got)
	})
}
