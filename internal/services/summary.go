package services

import (
	"fmt"
	"strings"

	"github.com/Pavel26ru/BruCup/internal/domain"
	"github.com/Pavel26ru/BruCup/internal/repository"
)

// BuildOrderSummary renders the priced composition of a draft. The customer
// confirmation screen and the admin notification both use this output, so
// they always show the same snapshot.
func BuildOrderSummary(catalog repository.CatalogRepository, pricing *PricingService, draft domain.Draft) string {
	var b strings.Builder
	b.WriteString("Ваш заказ:\n\n")

	if product := catalog.ProductByID(draft.ProductID); product != nil {
		fmt.Fprintf(&b, "Напиток: %s\n", product.Name)
	}
	fmt.Fprintf(&b, "Объем: %s\n", draft.Volume)
	if draft.MilkID != 0 {
		if milk := catalog.OptionByID(draft.MilkID); milk != nil {
			fmt.Fprintf(&b, "Молоко: %s\n", milk.Name)
		}
	}
	if draft.SyrupID != 0 {
		if syrup := catalog.OptionByID(draft.SyrupID); syrup != nil {
			fmt.Fprintf(&b, "Сироп: %s\n", syrup.Name)
		}
	}

	quantity := draft.Quantity
	if quantity == 0 {
		quantity = 1
	}
	fmt.Fprintf(&b, "Количество: %d шт.\n", quantity)
	if draft.PickupTime != "" {
		fmt.Fprintf(&b, "Время: %s\n", draft.PickupTime)
	}
	if draft.Address != "" {
		fmt.Fprintf(&b, "Адрес: %s\n", draft.Address)
	}

	fmt.Fprintf(&b, "\nИтого: %d₽", pricing.Total(draft))
	return b.String()
}

// FormatOrder renders a persisted order from its denormalized snapshot, for
// admin listings and completion edits.
func FormatOrder(order *domain.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Заказ #%d\n", order.ID)
	fmt.Fprintf(&b, "От: %d\n", order.UserID)
	fmt.Fprintf(&b, "Адрес: %s\n", order.Address)
	fmt.Fprintf(&b, "Время: %s\n", order.PickupTime)
	fmt.Fprintf(&b, "Статус: %s\n", order.Status)
	b.WriteString("--- Состав ---\n")
	fmt.Fprintf(&b, "Напиток: %s (%s)\n", order.ProductName, order.Volume)
	fmt.Fprintf(&b, "Кол-во: %d\n", order.Quantity)
	if order.MilkName != "" {
		fmt.Fprintf(&b, "Молоко: %s\n", order.MilkName)
	}
	if order.SyrupName != "" {
		fmt.Fprintf(&b, "Сироп: %s\n", order.SyrupName)
	}
	fmt.Fprintf(&b, "Итого: %d₽", order.TotalPrice)
	return b.String()
}
