package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	pubnub "github.com/pubnub/go/v7"
)

// Notice is published to a user's channel when a submission finishes.
type Notice struct {
	Type    string    `json:"type"`
	Wizard  string    `json:"wizard"`
	Status  string    `json:"status"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

type Notifier interface {
	Notify(ctx context.Context, userID int64, notice Notice)
}

// UserChannel is the realtime channel of one user.
func UserChannel(userID int64) string {
	return fmt.Sprintf("user-%d", userID)
}

type publisher interface {
	Publish(channel string, message any) error
}

type pubnubPublisher struct {
	pn *pubnub.PubNub
}

func (p pubnubPublisher) Publish(channel string, message any) error {
	_, _, err := p.pn.Publish().
		Channel(channel).
		Message(message).
		Execute()
	return err
}

type PubNubNotifier struct {
	publisher publisher
}

func NewPubNubNotifier(pn *pubnub.PubNub) *PubNubNotifier {
	return &PubNubNotifier{publisher: pubnubPublisher{pn: pn}}
}

// Notify publishes best-effort; a failed publish is logged and otherwise ignored.
func (n *PubNubNotifier) Notify(ctx context.Context, userID int64, notice Notice) {
	channel := UserChannel(userID)
	if err := n.publisher.Publish(channel, notice); err != nil {
		slog.WarnContext(ctx, "publish notice", "channel", channel, "type", notice.Type, "error", err)
	}
}

type NopNotifier struct{}

func (NopNotifier) Notify(context.Context, int64, Notice) {}
