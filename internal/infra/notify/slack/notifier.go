// Package slack posts alert digests to a channel.
package slack

import (
	"context"
	"fmt"

	"github.com/slack-go/slack"
)

type Notifier struct {
	api     *slack.Client
	channel string
}

func New(token, channel string, opts ...slack.Option) *Notifier {
	return &Notifier{api: slack.New(token, opts...), channel: channel}
}

func (n *Notifier) Notify(ctx context.Context, text string) error {
	_, _, err := n.api.PostMessageContext(ctx, n.channel, slack.MsgOptionText(text, false))
	if err != nil {
		return fmt.Errorf("slack post to %s: %w", n.channel, err)
	}
	return nil
}
