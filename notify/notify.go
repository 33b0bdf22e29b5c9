// Package notify pushes order announcements to the drivers' Telegram chat so
// drivers hear about new jobs without watching the dashboard.
package notify

import (
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"logishare/models"
)

type Notifier struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

// New connects the notifier bot. Returns (nil, nil) when token or chat id is
// unset; a nil *Notifier is safe to call and does nothing.
func New(token string, chatID int64) (*Notifier, error) {
	if token == "" || chatID == 0 {
		return nil, nil
	}
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("notifier bot: %w", err)
	}
	return &Notifier{api: api, chatID: chatID}, nil
}

func (n *Notifier) send(text string) {
	if n == nil {
		return
	}
	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, err := n.api.Send(msg); err != nil {
		log.Printf("notify: send failed: %v", err)
	}
}

// OrderCreated announces a freshly created pending order.
func (n *Notifier) OrderCreated(o *models.Order) {
	if o == nil || o.Status != models.OrderStatusPending {
		return
	}
	n.send(fmt.Sprintf("New order %s\nPickup: %s\nDrop-off: %s\nFee: %s",
		o.OrderNumber, o.PickupLocation, o.DeliveryLocation, o.Fee))
}

// OrderAccepted announces that an order was taken, so other drivers stop
// chasing it.
func (n *Notifier) OrderAccepted(o *models.Order, d *models.Driver) {
	if o == nil {
		return
	}
	by := ""
	if d != nil {
		by = " by " + d.Name
	}
	n.send(fmt.Sprintf("Order %s was accepted%s.", o.OrderNumber, by))
}
