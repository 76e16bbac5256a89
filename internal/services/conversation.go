package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/Pavel26ru/BruCup/internal/domain"
	"github.com/Pavel26ru/BruCup/internal/notify"
	"github.com/Pavel26ru/BruCup/internal/repository"
	"github.com/Pavel26ru/BruCup/internal/session"
)

type EventKind string

const (
	EventCommand     EventKind = "command"
	EventFreeText    EventKind = "free_text"
	EventButtonPress EventKind = "button_press"
)

type UserIdentity struct {
	ID        int64  `json:"id"`
	Username  string `json:"username,omitempty"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName,omitempty"`
}

// Event is one inbound chat-transport turn.
type Event struct {
	ConversationID string
	User           UserIdentity
	Kind           EventKind
	// Payload is the command line, the free text, or the encoded callback.
	Payload string
	// Message identifies the message whose button was pressed, so admin
	// actions can edit it afterwards.
	Message domain.MessageRef
}

// ConversationService is the multi-step ordering flow. Each call to Handle
// is one short-lived turn: it reads the conversation's draft, applies the
// event, persists the draft and returns the reply. Conversations are
// isolated by key; no state is shared between users.
type ConversationService struct {
	sessions   session.Store
	catalog    repository.CatalogRepository
	pricing    *PricingService
	orders     *OrderService
	users      *UserService
	dispatcher *notify.Dispatcher
	broadcast  *BroadcastService
	shops      []domain.CoffeeShop

	now func() time.Time
}

func NewConversationService(
	sessions session.Store,
	catalog repository.CatalogRepository,
	pricing *PricingService,
	orders *OrderService,
	users *UserService,
	dispatcher *notify.Dispatcher,
	broadcast *BroadcastService,
	shops []domain.CoffeeShop,
) *ConversationService {
	return &ConversationService{
		sessions:   sessions,
		catalog:    catalog,
		pricing:    pricing,
		orders:     orders,
		users:      users,
		dispatcher: dispatcher,
		broadcast:  broadcast,
		shops:      shops,
		now:        time.Now,
	}
}

func (s *ConversationService) Handle(ctx context.Context, ev Event) (domain.Reply, error) {
	switch ev.Kind {
	case EventCommand:
		return s.handleCommand(ctx, ev)
	case EventButtonPress:
		return s.handleButton(ctx, ev)
	case EventFreeText:
		return s.handleText(ctx, ev)
	}
	return alert("Неизвестный тип события."), nil
}

// The flow is linear; back buttons re-enter an earlier step, so a selection
// is accepted whenever the conversation has reached its step or passed it.
var stepOrder = map[domain.Step]int{
	domain.StepChoosingLocation:   1,
	domain.StepChoosingProduct:    2,
	domain.StepChoosingVolume:     3,
	domain.StepChoosingMilk:       4,
	domain.StepChoosingSyrup:      5,
	domain.StepChoosingQuantity:   6,
	domain.StepEnteringPickupTime: 7,
	domain.StepConfirmingOrder:    8,
}

func stepReached(current, want domain.Step) bool {
	c, ok := stepOrder[current]
	return ok && c >= stepOrder[want]
}

func alert(text string) domain.Reply {
	return domain.Reply{Text: text, Alert: true}
}

func staleReply() domain.Reply {
	return alert("Сессия устарела. Начните заказ заново через 'Сделать заказ'.")
}

// --- commands ---

func (s *ConversationService) handleCommand(ctx context.Context, ev Event) (domain.Reply, error) {
	name, args := splitCommand(ev.Payload)
	switch name {
	case "/start":
		return s.handleStart(ctx, ev)
	case "/orders":
		if !s.users.IsAdmin(ctx, ev.User.ID) {
			return alert("Команда доступна только администраторам."), nil
		}
		return s.handleActiveOrders(ctx)
	case "/done":
		if !s.users.IsAdmin(ctx, ev.User.ID) {
			return alert("Команда доступна только администраторам."), nil
		}
		return s.handleDoneCommand(ctx, args)
	case "/broadcast":
		if !s.users.IsAdmin(ctx, ev.User.ID) {
			return alert("Команда доступна только администраторам."), nil
		}
		return s.startBroadcast(ctx, ev)
	}
	return alert("Неизвестная команда."), nil
}

func splitCommand(payload string) (name, args string) {
	name, args, _ = strings.Cut(strings.TrimSpace(payload), " ")
	return name, strings.TrimSpace(args)
}

func (s *ConversationService) handleStart(ctx context.Context, ev Event) (domain.Reply, error) {
	user, err := s.users.GetOrCreate(ctx, ev.User.ID, ev.User.Username, ev.User.FirstName, ev.User.LastName)
	if err != nil {
		return domain.Reply{}, fmt.Errorf("register user %d: %w", ev.User.ID, err)
	}

	welcome := fmt.Sprintf("Привет, %s! 👋\nВы в кофейне Bru Cup.\n", user.FirstName)

	if user.IsAdmin {
		return domain.Reply{
			Text: welcome + "Добро пожаловать в админ-панель!",
			Keyboard: domain.Keyboard{
				{{Text: "/orders", Data: "/orders"}},
				{{Text: "/done", Data: "/done"}, {Text: "/broadcast", Data: "/broadcast"}},
			},
		}, nil
	}

	text := welcome +
		"Здесь можно заказать кофе заранее — мы приготовим его к вашему приходу!\n\n" +
		"Выберите, что хотите сделать:"
	reply := s.mainMenuReply()
	reply.Text = text
	return reply, nil
}

func (s *ConversationService) mainMenuReply() domain.Reply {
	return domain.Reply{
		Text: "Выберите, что хотите сделать:",
		Keyboard: domain.Keyboard{
			{{Text: "Сделать заказ ☕", Data: cbPlaceOrder}},
			{{Text: "Меню 📖", Data: cbShowMenu}},
			{{Text: "Режим работы ⏰", Data: cbWorkingHours}},
			{{Text: "Программа лояльности ❤️", Data: cbLoyaltyProgram}},
		},
	}
}

// maxMessageLength is the chat transport's message size limit; longer
// listings are split across follow-up messages.
const maxMessageLength = 4096

func (s *ConversationService) handleActiveOrders(ctx context.Context) (domain.Reply, error) {
	active, err := s.orders.Active(ctx)
	if err != nil {
		return domain.Reply{}, err
	}
	if len(active) == 0 {
		return domain.Reply{Text: "Активных заказов нет."}, nil
	}

	chunks := []string{"Активные заказы:\n\n"}
	for i := range active {
		block := FormatOrder(&active[i]) + "\n-------------------\n\n"
		last := chunks[len(chunks)-1]
		if len(last)+len(block) > maxMessageLength {
			chunks = append(chunks, block)
		} else {
			chunks[len(chunks)-1] = last + block
		}
	}

	reply := domain.Reply{Text: chunks[0]}
	if len(chunks) > 1 {
		reply.Followups = chunks[1:]
	}
	return reply, nil
}

func (s *ConversationService) handleDoneCommand(ctx context.Context, args string) (domain.Reply, error) {
	if args == "" {
		return domain.Reply{Text: "Пожалуйста, укажите ID заказа. Пример: /done 123"}, nil
	}
	orderID, err := strconv.ParseUint(args, 10, 64)
	if err != nil {
		return domain.Reply{Text: "ID заказа должен быть числом. Пример: /done 123"}, nil
	}

	order, err := s.orders.Complete(ctx, orderID)
	switch {
	case errors.Is(err, ErrOrderNotFound):
		return domain.Reply{Text: fmt.Sprintf("Заказ с ID %d не найден.", orderID)}, nil
	case errors.Is(err, ErrAlreadyCompleted):
		return domain.Reply{Text: fmt.Sprintf("Заказ #%d уже был выполнен ранее.", orderID)}, nil
	case err != nil:
		return domain.Reply{}, fmt.Errorf("complete order %d: %w", orderID, err)
	}

	if err := s.dispatcher.OrderReady(ctx, order); err != nil {
		return domain.Reply{Text: fmt.Sprintf("Заказ #%d отмечен как выполненный, но не удалось уведомить пользователя.", orderID)}, nil
	}
	return domain.Reply{Text: fmt.Sprintf("Заказ #%d отмечен как выполненный. Пользователь уведомлен.", orderID)}, nil
}

// --- buttons ---

func (s *ConversationService) handleButton(ctx context.Context, ev Event) (domain.Reply, error) {
	// Admin panel buttons carry the command itself as payload; pressing one
	// behaves exactly like typing the command.
	if strings.HasPrefix(ev.Payload, "/") {
		return s.handleCommand(ctx, ev)
	}

	switch ev.Payload {
	case cbPlaceOrder:
		return s.startOrder(ctx, ev)
	case cbBackToMainMenu:
		if err := s.sessions.Clear(ctx, ev.ConversationID); err != nil {
			return domain.Reply{}, err
		}
		return s.mainMenuReply(), nil
	case cbConfirmOrder:
		return s.confirmOrder(ctx, ev)
	case cbConfirmBroadcast:
		return s.confirmBroadcast(ctx, ev)
	case cbCancelBroadcast:
		return s.cancelBroadcast(ctx, ev)
	case cbShowMenu:
		return alert("Для просмотра меню, пожалуйста, начните новый заказ через 'Сделать заказ'."), nil
	case cbWorkingHours:
		return alert("Раздел 'Режим работы' в разработке."), nil
	case cbLoyaltyProgram:
		return alert("Раздел 'Программа лояльности' в разработке."), nil
	}

	switch callbackPrefix(ev.Payload) {
	case cbPrefixLocation:
		return s.selectLocation(ctx, ev)
	case cbPrefixProduct:
		return s.selectProduct(ctx, ev)
	case cbPrefixVolume:
		return s.selectVolume(ctx, ev)
	case cbPrefixOption:
		return s.selectOption(ctx, ev)
	case cbPrefixQuantity:
		return s.selectQuantity(ctx, ev)
	case cbPrefixDone:
		return s.adminDone(ctx, ev)
	}
	return alert("Неизвестное действие."), nil
}

// startOrder always discards previous progress: restarting never resumes.
func (s *ConversationService) startOrder(ctx context.Context, ev Event) (domain.Reply, error) {
	draft := domain.Draft{Step: domain.StepChoosingLocation}
	if err := s.sessions.Put(ctx, ev.ConversationID, draft); err != nil {
		return domain.Reply{}, err
	}

	var kb domain.Keyboard
	for _, shop := range s.shops {
		kb = append(kb, []domain.Button{{Text: shop.Address, Data: locationCallback(shop.AdminID, shop.Address)}})
	}
	kb = append(kb, []domain.Button{{Text: "⬅️ Назад", Data: cbBackToMainMenu}})
	return domain.Reply{Text: "Выберите кофейню:", Keyboard: kb}, nil
}

func (s *ConversationService) selectLocation(ctx context.Context, ev Event) (domain.Reply, error) {
	draft, err := s.sessions.Get(ctx, ev.ConversationID)
	if err != nil {
		return domain.Reply{}, err
	}
	if !stepReached(draft.Step, domain.StepChoosingLocation) {
		return staleReply(), nil
	}

	adminID, address, err := parseLocationCallback(ev.Payload)
	if err != nil {
		return alert("Кофейня не найдена!"), nil
	}
	known := false
	for _, shop := range s.shops {
		if shop.AdminID == adminID && shop.Address == address {
			known = true
			break
		}
	}
	if !known {
		return alert("Кофейня не найдена!"), nil
	}

	draft.AdminID = adminID
	draft.Address = address
	draft.Step = domain.StepChoosingProduct
	if err := s.sessions.Put(ctx, ev.ConversationID, draft); err != nil {
		return domain.Reply{}, err
	}

	products := s.catalog.AllProducts()
	var buttons []domain.Button
	for _, p := range products {
		buttons = append(buttons, domain.Button{Text: p.Name, Data: productCallback(p.ID)})
	}
	kb := rowsOf(buttons, 2)
	kb = append(kb, []domain.Button{{Text: "⬅️ Назад к выбору кофейни", Data: cbPlaceOrder}})
	return domain.Reply{Text: "Наше текущее меню 🌿\nВыберите напиток:", Keyboard: kb}, nil
}

func (s *ConversationService) selectProduct(ctx context.Context, ev Event) (domain.Reply, error) {
	draft, err := s.sessions.Get(ctx, ev.ConversationID)
	if err != nil {
		return domain.Reply{}, err
	}
	if !stepReached(draft.Step, domain.StepChoosingProduct) {
		return staleReply(), nil
	}

	id, err := parseProductCallback(ev.Payload)
	if err != nil {
		return alert("Напиток не найден!"), nil
	}
	product := s.catalog.ProductByID(id)
	if product == nil {
		return alert("Напиток не найден!"), nil
	}

	draft.ProductID = id
	draft.Step = domain.StepChoosingVolume
	if err := s.sessions.Put(ctx, ev.ConversationID, draft); err != nil {
		return domain.Reply{}, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Вы выбрали: %s\n\n", product.Name)
	for _, v := range product.Volumes {
		fmt.Fprintf(&b, "%s - %d₽\n", v.Label, v.Price)
	}
	b.WriteString("\nВыберите объём:")

	var kb domain.Keyboard
	for _, v := range product.Volumes {
		kb = append(kb, []domain.Button{{Text: v.Label, Data: volumeCallback(product.ID, v.Label)}})
	}
	kb = append(kb, []domain.Button{{Text: "⬅️ Назад к выбору кофейни", Data: cbPlaceOrder}})
	return domain.Reply{Text: b.String(), Keyboard: kb}, nil
}

func (s *ConversationService) selectVolume(ctx context.Context, ev Event) (domain.Reply, error) {
	draft, err := s.sessions.Get(ctx, ev.ConversationID)
	if err != nil {
		return domain.Reply{}, err
	}
	if !stepReached(draft.Step, domain.StepChoosingVolume) {
		return staleReply(), nil
	}

	productID, label, err := parseVolumeCallback(ev.Payload)
	if err != nil || productID != draft.ProductID {
		return alert("Объём не найден!"), nil
	}
	product := s.catalog.ProductByID(productID)
	if product == nil {
		return alert("Объём не найден!"), nil
	}
	valid := false
	for _, v := range product.Volumes {
		if v.Label == label {
			valid = true
			break
		}
	}
	if !valid {
		return alert("Объём не найден!"), nil
	}

	draft.Volume = label
	draft.Step = domain.StepChoosingMilk
	if err := s.sessions.Put(ctx, ev.ConversationID, draft); err != nil {
		return domain.Reply{}, err
	}

	return s.optionPrompt(draft, domain.CategoryMilk, optionTokenMilk,
		"🥛 Выберите молоко:",
		domain.Button{Text: "⬅️ Назад к выбору напитка", Data: productCallback(draft.ProductID)},
	), nil
}

// selectOption handles both skippable steps; item id 0 advances without a
// selection.
func (s *ConversationService) selectOption(ctx context.Context, ev Event) (domain.Reply, error) {
	token, id, err := parseOptionCallback(ev.Payload)
	if err != nil {
		return alert("Опция не найдена!"), nil
	}
	switch token {
	case optionTokenMilk:
		return s.selectMilk(ctx, ev, id)
	case optionTokenSyrup:
		return s.selectSyrup(ctx, ev, id)
	}
	return alert("Опция не найдена!"), nil
}

func (s *ConversationService) selectMilk(ctx context.Context, ev Event, id int) (domain.Reply, error) {
	draft, err := s.sessions.Get(ctx, ev.ConversationID)
	if err != nil {
		return domain.Reply{}, err
	}
	if !stepReached(draft.Step, domain.StepChoosingMilk) {
		return staleReply(), nil
	}

	if id != 0 {
		option := s.catalog.OptionByID(id)
		if option == nil || option.Category != domain.CategoryMilk {
			return alert("Опция не найдена!"), nil
		}
	}

	draft.MilkID = id
	draft.Step = domain.StepChoosingSyrup
	if err := s.sessions.Put(ctx, ev.ConversationID, draft); err != nil {
		return domain.Reply{}, err
	}

	return s.optionPrompt(draft, domain.CategorySyrup, optionTokenSyrup,
		"🍯 Выберите сироп:",
		domain.Button{Text: "⬅️ Назад к выбору молока", Data: volumeCallback(draft.ProductID, draft.Volume)},
	), nil
}

func (s *ConversationService) selectSyrup(ctx context.Context, ev Event, id int) (domain.Reply, error) {
	draft, err := s.sessions.Get(ctx, ev.ConversationID)
	if err != nil {
		return domain.Reply{}, err
	}
	if !stepReached(draft.Step, domain.StepChoosingSyrup) {
		return staleReply(), nil
	}

	if id != 0 {
		option := s.catalog.OptionByID(id)
		if option == nil || option.Category != domain.CategorySyrup {
			return alert("Опция не найдена!"), nil
		}
	}

	draft.SyrupID = id
	draft.Step = domain.StepChoosingQuantity
	if err := s.sessions.Put(ctx, ev.ConversationID, draft); err != nil {
		return domain.Reply{}, err
	}

	var buttons []domain.Button
	for i := 1; i <= 3; i++ {
		buttons = append(buttons, domain.Button{Text: strconv.Itoa(i), Data: quantityCallback(i)})
	}
	kb := domain.Keyboard{buttons}
	kb = append(kb, []domain.Button{{Text: "⬅️ Назад к выбору сиропа", Data: optionCallback(optionTokenMilk, draft.MilkID)}})
	return domain.Reply{Text: "Выберите количество порций:", Keyboard: kb}, nil
}

func (s *ConversationService) optionPrompt(draft domain.Draft, category, token, text string, back domain.Button) domain.Reply {
	options := s.catalog.OptionsByCategory(category)
	var buttons []domain.Button
	for _, o := range options {
		buttons = append(buttons, domain.Button{Text: o.Name, Data: optionCallback(token, o.ID)})
	}
	kb := rowsOf(buttons, 2)
	kb = append(kb, []domain.Button{{Text: "Пропустить ➡️", Data: optionCallback(token, 0)}})
	kb = append(kb, []domain.Button{back})
	return domain.Reply{Text: text, Keyboard: kb}
}

func (s *ConversationService) selectQuantity(ctx context.Context, ev Event) (domain.Reply, error) {
	draft, err := s.sessions.Get(ctx, ev.ConversationID)
	if err != nil {
		return domain.Reply{}, err
	}
	if !stepReached(draft.Step, domain.StepChoosingQuantity) {
		return staleReply(), nil
	}

	count, err := parseQuantityCallback(ev.Payload)
	if err != nil || count < 1 || count > 3 {
		return alert("Выберите количество от 1 до 3."), nil
	}

	draft.Quantity = count
	draft.Step = domain.StepEnteringPickupTime
	if err := s.sessions.Put(ctx, ev.ConversationID, draft); err != nil {
		return domain.Reply{}, err
	}

	minReady := s.now().Add(minLeadTime)
	text := fmt.Sprintf(
		"На какое время приготовить ваш напиток?\nНапишите ответ сообщением, например: к 08:40 или через 10 минут.\nНе ранее %s.",
		minReady.Format("15:04"),
	)
	return domain.Reply{Text: text}, nil
}

func (s *ConversationService) confirmOrder(ctx context.Context, ev Event) (domain.Reply, error) {
	draft, err := s.sessions.Get(ctx, ev.ConversationID)
	if err != nil {
		return domain.Reply{}, err
	}
	if draft.Step != domain.StepConfirmingOrder {
		return staleReply(), nil
	}

	user, err := s.users.GetOrCreate(ctx, ev.User.ID, ev.User.Username, ev.User.FirstName, ev.User.LastName)
	if err != nil {
		return domain.Reply{}, fmt.Errorf("register user %d: %w", ev.User.ID, err)
	}

	// Price and render the snapshot before anything mutates, so customer
	// and admin see the same composition.
	summary := BuildOrderSummary(s.catalog, s.pricing, draft)

	order, err := s.orders.Create(ctx, draft, ev.User.ID)
	if err != nil {
		log.Printf("conversation %s: order creation failed: %v", ev.ConversationID, err)
		return alert("Произошла ошибка при создании заказа. Пожалуйста, попробуйте снова."), nil
	}

	if draft.AdminID != 0 {
		from := "@" + user.Username
		if user.Username == "" {
			from = strconv.FormatInt(user.ID, 10)
		}
		done := doneCallback(ev.User.ID, order.ID)
		if _, err := s.dispatcher.OrderCreated(ctx, draft.AdminID, from, summary, done); err != nil {
			log.Printf("conversation %s: admin notification for order %d failed: %v", ev.ConversationID, order.ID, err)
		}
	}

	if err := s.sessions.Clear(ctx, ev.ConversationID); err != nil {
		return domain.Reply{}, err
	}

	text := fmt.Sprintf(
		"Ваш заказ #%d принят! Мы приготовим его к %s. Как только кофе будет готов - пришлём уведомление.",
		order.ID, order.PickupTime,
	)
	return domain.Reply{Text: text}, nil
}

func (s *ConversationService) adminDone(ctx context.Context, ev Event) (domain.Reply, error) {
	if !s.users.IsAdmin(ctx, ev.User.ID) {
		return alert("Действие доступно только администраторам."), nil
	}
	_, orderID, err := parseDoneCallback(ev.Payload)
	if err != nil {
		return alert("Неизвестное действие."), nil
	}

	order, err := s.orders.Complete(ctx, orderID)
	switch {
	case errors.Is(err, ErrOrderNotFound):
		return alert(fmt.Sprintf("Заказ с ID %d не найден.", orderID)), nil
	case errors.Is(err, ErrAlreadyCompleted):
		return alert("Заказ уже был отмечен как выполненный."), nil
	case err != nil:
		return domain.Reply{}, fmt.Errorf("complete order %d: %w", orderID, err)
	}

	result := s.dispatcher.OrderCompleted(ctx, ev.Message, order, "Ваш кофе готов! ☕️✨\nЖдём вас ❤️")
	if result.AlreadyEdited {
		return alert("Заказ уже был отмечен как выполненный."), nil
	}
	if result.NotifyErr != nil {
		return alert("Заказ отмечен как выполненный, но не удалось уведомить пользователя."), nil
	}
	return alert("Заказ отмечен как выполненный."), nil
}

// --- free text ---

func (s *ConversationService) handleText(ctx context.Context, ev Event) (domain.Reply, error) {
	draft, err := s.sessions.Get(ctx, ev.ConversationID)
	if err != nil {
		return domain.Reply{}, err
	}

	switch draft.Step {
	case domain.StepEnteringPickupTime:
		return s.handlePickupTime(ctx, ev, draft)
	case domain.StepAwaitingBroadcast:
		return s.receiveBroadcastText(ctx, ev, draft)
	}
	return s.mainMenuReply(), nil
}

func (s *ConversationService) handlePickupTime(ctx context.Context, ev Event, draft domain.Draft) (domain.Reply, error) {
	now := s.now()
	pickup, ok := parsePickupTime(ev.Payload, now)
	if !ok || !isValidPickupTime(pickup, now) {
		// Same state, no advance: the user just tries again.
		return domain.Reply{
			Text: "Это слишком быстро или неверный формат! Мы не успеем.\nМинимальное время ожидания - 10 минут. Пожалуйста, выберите другое время (например, 'через 20 минут').",
		}, nil
	}

	draft.PickupTime = pickup.Format("15:04")
	draft.Step = domain.StepConfirmingOrder
	if err := s.sessions.Put(ctx, ev.ConversationID, draft); err != nil {
		return domain.Reply{}, err
	}

	quantity := draft.Quantity
	if quantity == 0 {
		quantity = 1
	}
	return domain.Reply{
		Text: BuildOrderSummary(s.catalog, s.pricing, draft),
		Keyboard: domain.Keyboard{
			{{Text: "✅ Подтвердить заказ", Data: cbConfirmOrder}},
			{{Text: "⬅️ Изменить количество", Data: quantityCallback(quantity)}},
		},
	}, nil
}

// --- broadcast flow ---

func (s *ConversationService) startBroadcast(ctx context.Context, ev Event) (domain.Reply, error) {
	draft := domain.Draft{Step: domain.StepAwaitingBroadcast}
	if err := s.sessions.Put(ctx, ev.ConversationID, draft); err != nil {
		return domain.Reply{}, err
	}
	return domain.Reply{Text: "Отправьте сообщение, которое вы хотите разослать всем пользователям."}, nil
}

func (s *ConversationService) receiveBroadcastText(ctx context.Context, ev Event, draft domain.Draft) (domain.Reply, error) {
	if !s.users.IsAdmin(ctx, ev.User.ID) {
		return alert("Действие доступно только администраторам."), nil
	}

	draft.BroadcastText = ev.Payload
	draft.Step = domain.StepConfirmingBroadcast
	if err := s.sessions.Put(ctx, ev.ConversationID, draft); err != nil {
		return domain.Reply{}, err
	}
	return domain.Reply{
		Text: "Вы уверены, что хотите разослать это сообщение всем пользователям?",
		Keyboard: domain.Keyboard{
			{
				{Text: "✅ Отправить", Data: cbConfirmBroadcast},
				{Text: "❌ Отмена", Data: cbCancelBroadcast},
			},
		},
	}, nil
}

func (s *ConversationService) cancelBroadcast(ctx context.Context, ev Event) (domain.Reply, error) {
	if err := s.sessions.Clear(ctx, ev.ConversationID); err != nil {
		return domain.Reply{}, err
	}
	return domain.Reply{Text: "Рассылка отменена."}, nil
}

func (s *ConversationService) confirmBroadcast(ctx context.Context, ev Event) (domain.Reply, error) {
	draft, err := s.sessions.Get(ctx, ev.ConversationID)
	if err != nil {
		return domain.Reply{}, err
	}
	if draft.Step != domain.StepConfirmingBroadcast || draft.BroadcastText == "" {
		return alert("Произошла ошибка: не найдено сообщение для рассылки."), nil
	}
	if err := s.sessions.Clear(ctx, ev.ConversationID); err != nil {
		return domain.Reply{}, err
	}

	report, err := s.broadcast.Run(ctx, draft.BroadcastText)
	if errors.Is(err, ErrBroadcastInProgress) {
		return alert("Рассылка уже выполняется."), nil
	}
	if err != nil {
		return domain.Reply{}, err
	}
	text := fmt.Sprintf("✅ Рассылка завершена!\n\nУспешно отправлено: %d\nНе удалось отправить: %d",
		report.Sent, report.Failed)
	return domain.Reply{Text: text}, nil
}

func rowsOf(buttons []domain.Button, perRow int) domain.Keyboard {
	var kb domain.Keyboard
	for len(buttons) > perRow {
		kb = append(kb, buttons[:perRow])
		buttons = buttons[perRow:]
	}
	if len(buttons) > 0 {
		kb = append(kb, buttons)
	}
	return kb
}
