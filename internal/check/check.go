// Package check turns bank notification emails into stored outcomes.
package check

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/zeebo/errs"

	"github.com/Philanthropists/outcome/internal/bank/banktypes"
	"github.com/Philanthropists/outcome/internal/bank/rules"
	"github.com/Philanthropists/outcome/internal/check/types"
	"github.com/Philanthropists/outcome/internal/logging"
	"github.com/Philanthropists/outcome/internal/store/outcomes"
	"github.com/Philanthropists/outcome/pkg/pipe"
	"github.com/Philanthropists/outcome/pkg/result"
)

var checkErr = errs.Class("check")

type Outcome = result.Result[*banktypes.TrxInfo]

// FailedToParse is the outcome of a message that could not be read.
func FailedToParse(err error) Outcome {
	return result.FromError[*banktypes.TrxInfo](err)
}

type bankSelector interface {
	Select(ctx context.Context, msg banktypes.Message) (banktypes.BankDelegate, bool)
}

type outcomeStore interface {
	Save(ctx context.Context, rec outcomes.Record[*banktypes.TrxInfo]) error
}

type Check struct {
	Config types.Config
	DryRun bool

	Log        *logging.Logger
	Goroutines uint

	configOnce sync.Once
	deps       *Dependencies
}

type checked struct {
	id      string
	outcome Outcome
}

func (c *Check) log(ctx context.Context) *logging.Logger {
	if c.Log == nil {
		return logging.FromContext(ctx)
	}

	return c.Log
}

func (c *Check) goroutines() uint {
	if c.Goroutines == 0 {
		cpus := runtime.NumCPU()
		return uint(cpus)
	}

	return c.Goroutines
}

// Run checks every message and returns their outcomes in the same order.
// Outside of a dry run each outcome is saved and the failures are sent as a
// single notification.
func (c *Check) Run(ctx context.Context, msgs []banktypes.Message) ([]Outcome, error) {
	started := time.Now()

	log := c.log(ctx).With(logging.Bool("dryrun", c.DryRun))
	ctx = log.GetContext(ctx)
	log.Info("running check", logging.Int("messages", len(msgs)))

	if err := c.configure(ctx); err != nil {
		return nil, checkErr.Wrap(err)
	}

	if err := ctx.Err(); err != nil {
		return nil, checkErr.Wrap(err)
	}

	results, err := pipe.Ordered(ctx.Done(), int(c.goroutines()), msgs, func(m banktypes.Message) checked {
		return c.check(logging.WithFields(ctx, logging.Uint("msg_id", m.ID())), m)
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		return nil, checkErr.Wrap(err)
	}

	var failures int
	for _, r := range results {
		if r.outcome.HasError() {
			failures++
			log.Warn("message did not pass", logging.String("id", r.id), logging.Outcome("outcome", r.outcome))
		}
	}
	log.Info("checked messages",
		logging.Int("count", len(results)),
		logging.Int("failures", failures),
		logging.Duration("elapsed", time.Since(started)),
	)

	var genErr error
	if !c.DryRun {
		genErr = c.persist(ctx, results)
	}

	out := make([]Outcome, 0, len(results))
	for _, r := range results {
		out = append(out, r.outcome)
	}

	return out, genErr
}

func (c *Check) check(ctx context.Context, msg banktypes.Message) checked {
	log := logging.FromContext(ctx)

	b, ok := c.deps.BanksRepo.Select(ctx, msg)
	if !ok {
		log.Debug("no bank recognizes sender", logging.Any("from", msg.From()))
		return checked{
			id: fmt.Sprintf("%d", msg.ID()),
			outcome: result.Failf[*banktypes.TrxInfo](
				"no bank recognizes message %d from %s", msg.ID(), strings.Join(msg.From(), ", "),
			),
		}
	}

	id := fmt.Sprintf("%s-%d", b.String(), msg.ID())

	if !b.FilterMessage(msg) {
		return checked{
			id: id,
			outcome: result.Failf[*banktypes.TrxInfo](
				"message %d from %s is not a transaction notice", msg.ID(), b.String(),
			),
		}
	}

	extracted := b.ExtractTransactionInfoFromMessage(ctx, msg)
	extractedTrx, ok := extracted.Value()
	if !ok {
		return checked{id: id, outcome: extracted}
	}

	trx := *extractedTrx
	if c.deps.TimeLocale != nil {
		trx.Date = trx.Date.In(c.deps.TimeLocale)
	}

	log.Debug("transaction extracted",
		logging.String("bank", trx.Bank),
		logging.Float("value", trx.Value.Number),
		logging.Time("date", trx.Date),
	)

	// messages are already checked concurrently
	return checked{id: id, outcome: rules.Check(ctx, 1, &trx)}
}

func (c *Check) persist(ctx context.Context, results []checked) error {
	log := logging.FromContext(ctx)
	recordedAt := time.Now().UTC()

	var group errs.Group
	for _, r := range results {
		if c.deps.Store != nil {
			err := c.deps.Store.Save(ctx, outcomes.Record[*banktypes.TrxInfo]{
				ID:         r.id,
				Outcome:    r.outcome,
				RecordedAt: recordedAt,
			})
			if err != nil {
				log.Error("could not save outcome", logging.String("id", r.id), logging.Error(err))
				group.Add(err)
			}
		}

		if c.deps.Digest != nil {
			c.deps.Digest.Push(r.id, r.outcome)
		}
	}
	log.Debug("outcomes saved", logging.Time("recorded_at", recordedAt))

	if c.deps.Digest != nil {
		if err := c.deps.Digest.Flush(ctx); err != nil {
			group.Add(err)
		}
	}

	return group.Err()
}
