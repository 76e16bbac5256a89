package services

import (
	"log"

	"github.com/Pavel26ru/BruCup/internal/domain"
	"github.com/Pavel26ru/BruCup/internal/repository"
)

// PricingService computes order totals from a draft. It is side-effect free
// and safe to call with partial drafts while the conversation is still
// collecting selections.
type PricingService struct {
	catalog repository.CatalogRepository
}

func NewPricingService(catalog repository.CatalogRepository) *PricingService {
	return &PricingService{catalog: catalog}
}

// Total sums the matched volume price and any selected options, then
// multiplies once by quantity. An unmatched volume or option contributes
// zero instead of failing; that keeps running totals rendering even when
// the draft and catalog disagree, so misses are logged for monitoring.
func (s *PricingService) Total(draft domain.Draft) int64 {
	quantity := draft.Quantity
	if quantity == 0 {
		quantity = 1
	}

	var total int64

	if product := s.catalog.ProductByID(draft.ProductID); product != nil {
		matched := false
		for _, v := range product.Volumes {
			if v.Label == draft.Volume {
				total += v.Price
				matched = true
				break
			}
		}
		if !matched && draft.Volume != "" {
			log.Printf("pricing: volume %q not found on product %d, contributes 0", draft.Volume, draft.ProductID)
		}
	}

	if draft.MilkID != 0 {
		if milk := s.catalog.OptionByID(draft.MilkID); milk != nil {
			total += milk.Price
		} else {
			log.Printf("pricing: milk option %d not found, contributes 0", draft.MilkID)
		}
	}

	if draft.SyrupID != 0 {
		if syrup := s.catalog.OptionByID(draft.SyrupID); syrup != nil {
			total += syrup.Price
		} else {
			log.Printf("pricing: syrup option %d not found, contributes 0", draft.SyrupID)
		}
	}

	return total * int64(quantity)
}
