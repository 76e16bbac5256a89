// Package notify implements the order notification protocol between
// customers and staff.
package notify

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/Pavel26ru/BruCup/internal/domain"
	"github.com/Pavel26ru/BruCup/internal/infra"
)

type Dispatcher struct {
	notifier infra.Notifier
}

func NewDispatcher(notifier infra.Notifier) *Dispatcher {
	return &Dispatcher{notifier: notifier}
}

// OrderCreated tells the location's admin chat about a new order and
// attaches the completion action. The order is already persisted when this
// runs; a delivery failure is logged and reported, never rolled back.
func (d *Dispatcher) OrderCreated(ctx context.Context, adminID int64, fromLabel, summary, doneCallback string) (domain.MessageRef, error) {
	text := fmt.Sprintf("Новый заказ от %s!\n\n%s", fromLabel, summary)
	keyboard := domain.Keyboard{
		{{Text: "✅ Готов", Data: doneCallback}},
	}
	ref, err := d.notifier.Send(ctx, adminID, text, keyboard)
	if err != nil {
		log.Printf("notify: admin %d unreachable for new order: %v", adminID, err)
		return domain.MessageRef{}, err
	}
	return ref, nil
}

// CompletionResult reports what actually happened after an order was marked
// done. The completion itself has already succeeded whatever these fields
// say.
type CompletionResult struct {
	AlreadyEdited    bool
	CustomerNotified bool
	NotifyErr        error
}

// OrderCompleted updates the admin-facing message and pings the customer.
// An edit that changed nothing means another admin action got there first,
// which is acknowledged without notifying the customer again.
func (d *Dispatcher) OrderCompleted(ctx context.Context, ref domain.MessageRef, order *domain.Order, customerText string) CompletionResult {
	adminText := fmt.Sprintf("%s\n\n✅ Заказ выполнен!", FormatAdminOrder(order))
	if err := d.notifier.Edit(ctx, ref, adminText, nil); err != nil {
		if errors.Is(err, infra.ErrNotModified) {
			return CompletionResult{AlreadyEdited: true}
		}
		log.Printf("notify: edit of admin message for order %d failed: %v", order.ID, err)
	}

	if err := d.notifier.Notify(ctx, order.UserID, customerText); err != nil {
		log.Printf("notify: customer %d unreachable for order %d: %v", order.UserID, order.ID, err)
		return CompletionResult{NotifyErr: err}
	}
	return CompletionResult{CustomerNotified: true}
}

// OrderReady pings the customer directly, for completions done via command
// where there is no admin message to edit.
func (d *Dispatcher) OrderReady(ctx context.Context, order *domain.Order) error {
	text := fmt.Sprintf("Ваш заказ #%d готов! ☕️✨\nЖдём вас ❤️", order.ID)
	if err := d.notifier.Notify(ctx, order.UserID, text); err != nil {
		log.Printf("notify: customer %d unreachable for order %d: %v", order.UserID, order.ID, err)
		return err
	}
	return nil
}

// FormatAdminOrder renders the persisted snapshot the way the original
// admin notification showed it.
func FormatAdminOrder(order *domain.Order) string {
	text := fmt.Sprintf("Заказ #%d\nНапиток: %s (%s)\nКол-во: %d\n",
		order.ID, order.ProductName, order.Volume, order.Quantity)
	if order.MilkName != "" {
		text += fmt.Sprintf("Молоко: %s\n", order.MilkName)
	}
	if order.SyrupName != "" {
		text += fmt.Sprintf("Сироп: %s\n", order.SyrupName)
	}
	text += fmt.Sprintf("Время: %s\nАдрес: %s\nИтого: %d₽",
		order.PickupTime, order.Address, order.TotalPrice)
	return text
}
