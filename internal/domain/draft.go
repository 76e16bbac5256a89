package domain

// Step is the position of a conversation inside the ordering flow.
type Step string

const (
	StepIdle                Step = ""
	StepChoosingLocation    Step = "choosing_location"
	StepChoosingProduct     Step = "choosing_product"
	StepChoosingVolume      Step = "choosing_volume"
	StepChoosingMilk        Step = "choosing_milk"
	StepChoosingSyrup       Step = "choosing_syrup"
	StepChoosingQuantity    Step = "choosing_quantity"
	StepEnteringPickupTime  Step = "entering_pickup_time"
	StepConfirmingOrder     Step = "confirming_order"
	StepAwaitingBroadcast   Step = "awaiting_broadcast"
	StepConfirmingBroadcast Step = "confirming_broadcast"
)

// Draft accumulates one conversation's selections before the order is
// persisted. It lives only in the session store and is cleared on
// confirmation, cancellation or restart.
type Draft struct {
	Step          Step   `json:"step"`
	AdminID       int64  `json:"adminId,omitempty"`
	Address       string `json:"address,omitempty"`
	ProductID     int    `json:"productId,omitempty"`
	Volume        string `json:"volume,omitempty"`
	MilkID        int    `json:"milkId,omitempty"`
	SyrupID       int    `json:"syrupId,omitempty"`
	Quantity      int    `json:"quantity,omitempty"`
	PickupTime    string `json:"pickupTime,omitempty"` // "HH:MM"
	BroadcastText string `json:"broadcastText,omitempty"`
}
