package poller

import (
	"context"
	"encoding/json"
	"fmt"

	r "github.com/mercata/cart-service/internal/repository"
	"github.com/segmentio/kafka-go"
)

// Poller drains the checkout topic and clears the cart of every user
// whose checkout completed, so a finished order never leaves a stale
// cart behind.
type Poller struct {
	repo   r.CartRepository
	reader *kafka.Reader
}

func NewPoller(repo r.CartRepository, brokers ...string) *Poller {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    "checkout-completed",
		GroupID:  "cart-service-consumer",
		MaxBytes: 10e6, // 10MB
	})
	return &Poller{repo: repo, reader: reader}
}

func (p *Poller) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		p.getMessageAndClearCart(ctx)
	}
}

func (p *Poller) Close() {
	err := p.reader.Close()
	if err != nil {
		fmt.Printf("error closing reader: %v\n", err)
	}
}

func (p *Poller) getMessageAndClearCart(ctx context.Context) {
	m, err := p.reader.ReadMessage(ctx)
	if err != nil {
		fmt.Printf("error reading message: %v\n", err)
		return
	}
	p.handleMessage(ctx, m.Value)
}

func (p *Poller) handleMessage(ctx context.Context, value []byte) {
	var payload map[string]interface{}
	if errUnMarshal := json.Unmarshal(value, &payload); errUnMarshal != nil {
		fmt.Printf("error parsing message: %v\n", errUnMarshal)
		return
	}
	userID, ok := payload["user_id"].(string)
	if !ok {
		fmt.Println("missing or invalid user_id")
		return
	}

	errDelete := p.repo.Delete(ctx, r.UserKey(userID))
	if errDelete != nil {
		fmt.Printf("failed to delete cart: %v\n", errDelete)
	}
}
