package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Pavel26ru/BruCup/internal/domain"
)

func TestBuildOrderSummary(t *testing.T) {
	catalog := newTestCatalog()
	pricing := NewPricingService(catalog)

	t.Run("full draft", func(t *testing.T) {
		draft := finalizedDraft()
		draft.MilkID = 1

		text := BuildOrderSummary(catalog, pricing, draft)
		assert.Contains(t, text, "Напиток: Латте")
		assert.Contains(t, text, "Объем: 300мл")
		assert.Contains(t, text, "Молоко: Овсяное")
		assert.Contains(t, text, "Сироп: Карамель")
		assert.Contains(t, text, "Количество: 2 шт.")
		assert.Contains(t, text, "Время: 12:30")
		assert.Contains(t, text, "Адрес: ул. Ленина, 5")
		assert.Contains(t, text, "Итого: 560₽")
	})

	t.Run("skipped options are left out", func(t *testing.T) {
		draft := finalizedDraft()
		draft.SyrupID = 0

		text := BuildOrderSummary(catalog, pricing, draft)
		assert.NotContains(t, text, "Молоко:")
		assert.NotContains(t, text, "Сироп:")
		assert.Contains(t, text, "Итого: 400₽")
	})
}

func TestFormatOrder(t *testing.T) {
	order := &domain.Order{
		ID:          3,
		UserID:      42,
		Address:     "ул. Ленина, 5",
		ProductName: "Капучино",
		Volume:      "250мл",
		Quantity:    1,
		MilkName:    "Кокосовое",
		PickupTime:  "09:15",
		TotalPrice:  240,
		Status:      domain.StatusPending,
	}

	text := FormatOrder(order)
	assert.Contains(t, text, "Заказ #3")
	assert.Contains(t, text, "От: 42")
	assert.Contains(t, text, "Капучино (250мл)")
	assert.Contains(t, text, "Молоко: Кокосовое")
	assert.NotContains(t, text, "Сироп:")
	assert.Contains(t, text, "Статус: pending")
	assert.Contains(t, text, "Итого: 240₽")
}
