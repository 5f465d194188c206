package check

import (
	"context"
	"time"

	"github.com/zeebo/errs"

	"github.com/Philanthropists/outcome/internal/bank"
	"github.com/Philanthropists/outcome/internal/bank/banktypes"
	"github.com/Philanthropists/outcome/internal/check/types"
	"github.com/Philanthropists/outcome/internal/notifications"
	"github.com/Philanthropists/outcome/internal/notifications/twilio"
	"github.com/Philanthropists/outcome/internal/store/outcomes"
)

const defaultRegion = "us-east-1"

type Dependencies struct {
	TimeLocale *time.Location
	BanksRepo  bankSelector
	Store      outcomeStore
	Digest     *notifications.Digest
}

func (c *Check) configure(ctx context.Context) error {
	var genErr error

	c.configOnce.Do(func() {
		if c.deps != nil {
			return
		}

		deps, err := getDependencies(ctx, c.Config, c.DryRun)
		if err != nil {
			genErr = err
			return
		}
		c.deps = deps
	})

	if genErr == nil && c.deps == nil {
		genErr = checkErr.New("dependencies are not configured")
	}

	return genErr
}

func getDependencies(ctx context.Context, config types.Config, dryRun bool) (*Dependencies, error) {
	loc, err := getTimezone(config.Timezone)
	if err != nil {
		return nil, err
	}

	deps := &Dependencies{
		TimeLocale: loc,
		BanksRepo:  bank.Repository{},
		Digest: &notifications.Digest{
			Client: &twilio.Client{
				AccountSid: config.Twilio.AccountSid,
				Token:      config.Twilio.AuthToken,
			},
			From:   config.Twilio.FromNumber,
			To:     config.Twilio.ToNumber,
			Limit:  config.NotificationLimit,
			DryRun: dryRun,
		},
	}

	if dryRun {
		return deps, nil
	}

	region := config.Region
	if region == "" {
		region = defaultRegion
	}

	dynamoClient, err := outcomes.NewDynamoDBClient(ctx, region)
	if err != nil {
		return nil, err
	}

	deps.Store = &outcomes.Store[*banktypes.TrxInfo]{
		Client: dynamoClient,
		Table:  config.OutcomesTable,
	}

	return deps, nil
}

func getTimezone(location string) (*time.Location, error) {
	if location == "" {
		return time.UTC, nil
	}

	loc, err := time.LoadLocation(location)
	return loc, errs.Wrap(err)
}
