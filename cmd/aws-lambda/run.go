package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Philanthropists/outcome/internal/bank/banktypes"
	"github.com/Philanthropists/outcome/internal/check"
	"github.com/Philanthropists/outcome/internal/check/types"
	"github.com/Philanthropists/outcome/internal/logging"
	"github.com/Philanthropists/outcome/internal/mail"
)

const (
	credentialsFile = "credentials.json"
	versionFile     = "version"
)

// Event carries raw RFC 5322 messages.
type Event struct {
	Messages []string `json:"messages"`
}

type Response struct {
	Outcomes []check.Outcome `json:"outcomes"`
}

func getVersion() (string, error) {
	f, err := os.Open(versionFile)
	if err != nil {
		return "", err
	}
	defer f.Close()

	raw, err := io.ReadAll(f)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(string(raw)), nil
}

func getConfig() (types.Config, error) {
	credFile, err := os.Open(credentialsFile)
	if err != nil {
		return types.Config{}, err
	}
	defer credFile.Close()

	authBytes, err := io.ReadAll(credFile)
	if err != nil {
		return types.Config{}, err
	}

	var config types.Config
	err = json.Unmarshal(authBytes, &config)
	if err != nil {
		return types.Config{}, err
	}

	return config, nil
}

func configureLogger() error {
	config := zap.NewDevelopmentConfig()
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder

	logger, err := config.Build()
	if err != nil {
		return err
	}

	version := "dev"
	if v, err := getVersion(); err == nil {
		version = v
	}

	logger = logger.With(zap.String("version", version))
	logging.SetCustomGlobalLogger(logger)

	return nil
}

// parse keeps the position of every message. Messages that cannot be parsed
// are answered with their parse error instead of being checked.
func parse(raw []string) ([]banktypes.Message, map[int]check.Outcome) {
	msgs := make([]banktypes.Message, 0, len(raw))
	failed := make(map[int]check.Outcome)

	for i, r := range raw {
		msg, err := mail.Parse(strings.NewReader(r))
		if err != nil {
			failed[i] = check.FailedToParse(err)
			continue
		}
		msgs = append(msgs, msg)
	}

	return msgs, failed
}

func run(ctx context.Context, c *check.Check, event Event) (Response, error) {
	msgs, failed := parse(event.Messages)

	checked, err := c.Run(ctx, msgs)
	if err != nil && checked == nil {
		return Response{}, err
	}

	out := make([]check.Outcome, 0, len(event.Messages))
	for i := range event.Messages {
		if o, ok := failed[i]; ok {
			out = append(out, o)
			continue
		}
		out = append(out, checked[0])
		checked = checked[1:]
	}

	return Response{Outcomes: out}, err
}

func HandleRequest(ctx context.Context, event Event) (Response, error) {
	config, err := getConfig()
	if err != nil {
		return Response{}, err
	}

	if err := configureLogger(); err != nil {
		return Response{}, fmt.Errorf("could not configure logger: %w", err)
	}

	c := &check.Check{
		Config: config,
		DryRun: false,
	}

	const awsLambdaTimeout = 140 * time.Second
	ctx, cancel := context.WithTimeout(ctx, awsLambdaTimeout)
	defer cancel()

	return run(ctx, c, event)
}

func main() {
	lambda.Start(HandleRequest)
}
