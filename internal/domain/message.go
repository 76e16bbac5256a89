package domain

// Button is one inline action the transport should render. Data carries the
// encoded callback that comes back as a button_press event.
type Button struct {
	Text string `json:"text"`
	Data string `json:"data"`
}

// Keyboard is a grid of buttons, one slice per row.
type Keyboard [][]Button

// Reply is the state machine's answer to a single inbound event.
type Reply struct {
	Text     string   `json:"text"`
	Keyboard Keyboard `json:"keyboard,omitempty"`
	// Alert asks the transport for a transient popup instead of a message.
	Alert bool `json:"alert,omitempty"`
	// Followups are extra messages sent after Text, for listings that would
	// exceed the transport's message size limit.
	Followups []string `json:"followups,omitempty"`
}

// MessageRef identifies a message the transport has already delivered,
// so it can be edited later.
type MessageRef struct {
	ChatID    int64  `json:"chatId"`
	MessageID string `json:"messageId"`
}
