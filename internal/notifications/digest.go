// Package notifications condenses failed outcomes into a single SMS.
package notifications

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/zeebo/errs"

	"github.com/Philanthropists/outcome/internal/logging"
)

const DefaultLimit = 5

var notifyErr = errs.Class("notifications")

type smsClient interface {
	SendMessage(from, to, msg string) ([]byte, error)
}

type failure interface {
	HasError() bool
	Message() string
}

// Digest collects one line per failed outcome until it is flushed.
type Digest struct {
	Client smsClient
	From   string
	To     string
	Limit  int
	DryRun bool

	once  sync.Once
	queue *Queue[string]
}

func (d *Digest) init() {
	d.once.Do(func() {
		d.queue = NewQueue[string](0)
	})
}

// Push queues outcome when it is a failure and reports whether it did.
func (d *Digest) Push(id string, outcome failure) bool {
	if !outcome.HasError() {
		return false
	}

	d.init()

	return d.queue.PushBack(fmt.Sprintf("%s: %s", id, firstLine(outcome.Message())))
}

func (d *Digest) Size() int {
	d.init()
	return d.queue.Size()
}

func (d *Digest) limit() int {
	if d.Limit <= 0 {
		return DefaultLimit
	}
	return d.Limit
}

// Flush sends every queued line as one message and empties the digest. An
// empty digest sends nothing, neither does a dry run.
func (d *Digest) Flush(ctx context.Context) error {
	d.init()

	log := logging.FromContext(ctx)

	lines := d.queue.Drain()
	if len(lines) == 0 {
		return nil
	}

	msg := condense(lines, d.limit())

	if d.DryRun {
		log.Info("dry run, not sending notification",
			logging.Int("failures", len(lines)),
			logging.String("message", msg),
		)
		return nil
	}

	if d.Client == nil {
		return notifyErr.New("no sms client configured")
	}

	if _, err := d.Client.SendMessage(d.From, d.To, msg); err != nil {
		log.Error("could not send notification",
			logging.String("message", msg),
			logging.Error(err),
		)
		return notifyErr.Wrap(err)
	}

	log.Debug("notification sent", logging.Int("bytes", len(msg)))

	return nil
}

func condense(lines []string, limit int) string {
	var b strings.Builder

	noun := "outcomes"
	if len(lines) == 1 {
		noun = "outcome"
	}
	fmt.Fprintf(&b, "%d failed %s", len(lines), noun)

	shown := lines
	if len(shown) > limit {
		shown = shown[:limit]
	}
	for _, l := range shown {
		b.WriteString("\n")
		b.WriteString(l)
	}

	if rest := len(lines) - len(shown); rest > 0 {
		fmt.Fprintf(&b, "\n... and %d more", rest)
	}

	return b.String()
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
