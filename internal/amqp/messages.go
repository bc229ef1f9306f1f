package amqp

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"gastos/internal/core"
)

// Events carried by ExpenseEventMessage.
const (
	EventExpenseCreated = "expense.created"
	EventExpenseUpdated = "expense.updated"
	EventExpenseDeleted = "expense.deleted"
)

// ExpenseEventMessage is the audit message emitted whenever an expense
// changes. It carries enough to write the audit row without a database
// round trip on the consumer side.
type ExpenseEventMessage struct {
	Event      string          `json:"event"`
	ID         int64           `json:"id"`
	Amount     decimal.Decimal `json:"amount"`
	Currency   core.Currency   `json:"currency"`
	OccurredAt time.Time       `json:"occurred_at"`
}

func NewExpenseEventMessage(event string, expense core.Expense) *ExpenseEventMessage {
	return &ExpenseEventMessage{
		Event:      event,
		ID:         expense.ID,
		Amount:     expense.Amount,
		Currency:   expense.Currency,
		OccurredAt: time.Now().UTC(),
	}
}

func (m *ExpenseEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ExpenseEventMessageFromJSON(data []byte) (*ExpenseEventMessage, error) {
	var msg ExpenseEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
