package services

import (
	"github.com/Pavel26ru/BruCup/internal/domain"
	"github.com/Pavel26ru/BruCup/internal/repository/memory"
)

func newTestCatalog() *memory.CatalogRepository {
	products := []domain.Product{
		{ID: 1, Name: "Латте", Volumes: []domain.Volume{
			{Label: "300мл", Price: 200},
			{Label: "400мл", Price: 250},
		}},
		{ID: 2, Name: "Капучино", Volumes: []domain.Volume{
			{Label: "250мл", Price: 180},
		}},
	}
	options := map[string][]domain.Option{
		domain.CategoryMilk: {
			{ID: 1, Name: "Овсяное", Price: 50},
			{ID: 2, Name: "Кокосовое", Price: 60},
		},
		domain.CategorySyrup: {
			{ID: 10, Name: "Карамель", Price: 30},
			{ID: 11, Name: "Ваниль", Price: 30},
		},
	}
	return memory.NewCatalogRepository(products, options)
}

var testShops = []domain.CoffeeShop{
	{AdminID: 900, Address: "ул. Ленина, 5"},
	{AdminID: 901, Address: "пр. Мира, 12"},
}

const (
	TestUserID    = int64(42)
	TestAdminID   = int64(900)
	TestConversID = "conv-42"
)

// finalizedDraft is a draft as the conversation leaves it right before
// confirmation.
func finalizedDraft() domain.Draft {
	return domain.Draft{
		Step:       domain.StepConfirmingOrder,
		AdminID:    TestAdminID,
		Address:    "ул. Ленина, 5",
		ProductID:  1,
		Volume:     "300мл",
		SyrupID:    10,
		Quantity:   2,
		PickupTime: "12:30",
	}
}
