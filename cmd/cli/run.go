package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Philanthropists/outcome/internal/bank/banktypes"
	"github.com/Philanthropists/outcome/internal/check"
	"github.com/Philanthropists/outcome/internal/check/types"
	"github.com/Philanthropists/outcome/internal/logging"
	"github.com/Philanthropists/outcome/internal/mail"
)

const credentialsFile = "credentials.json"

var GitCommit string

func getConfig() (types.Config, error) {
	credFile, err := os.Open(credentialsFile)
	if errors.Is(err, fs.ErrNotExist) {
		return types.Config{}, nil
	}
	if err != nil {
		return types.Config{}, err
	}
	defer credFile.Close()

	raw, err := io.ReadAll(credFile)
	if err != nil {
		return types.Config{}, err
	}

	var config types.Config
	err = json.Unmarshal(raw, &config)
	if err != nil {
		return types.Config{}, err
	}

	return config, nil
}

func getLogger() (*zap.Logger, error) {
	config := zap.NewDevelopmentConfig()
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder

	version := "dev"
	if len(GitCommit) >= 3 {
		version = GitCommit[:3]
	}

	logger, err := config.Build()
	if err != nil {
		return nil, err
	}

	return logger.With(zap.String("version", version)), nil
}

func readMessages(paths []string) ([]banktypes.Message, error) {
	msgs := make([]banktypes.Message, 0, len(paths))
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			return nil, err
		}

		msg, err := mail.Parse(f)
		_ = f.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}

		msgs = append(msgs, msg)
	}

	return msgs, nil
}

func main() {
	execute := flag.Bool("execute", false, "save outcomes and send notifications")
	timeout := flag.Uint("timeout", 0, "timeout in seconds for the check to cancel")
	flag.Parse()

	logger, err := getLogger()
	if err != nil {
		log.Panicf("could not create logger: %v", err)
	}
	logging.SetCustomGlobalLogger(logger)
	defer func() { _ = logger.Sync() }()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("failed to get credentials", zap.Error(err))
	}

	msgs, err := readMessages(flag.Args())
	if err != nil {
		logger.Fatal("failed to read messages", zap.Error(err))
	}

	ctx := context.Background()
	if *timeout != 0 {
		t := time.Duration(*timeout) * time.Second
		nctx, cancel := context.WithTimeout(ctx, t)
		ctx = nctx
		defer cancel()
	}

	c := check.Check{
		Config: config,
		DryRun: !*execute,
		Log:    logging.Wrap(logger),
	}

	outcomes, err := c.Run(ctx, msgs)
	if err != nil {
		logger.Error("check did not finish cleanly", zap.Error(err))
	}

	enc := json.NewEncoder(os.Stdout)
	for _, o := range outcomes {
		if err := enc.Encode(o); err != nil {
			logger.Fatal("could not encode outcome", zap.Error(err))
		}
	}
}
