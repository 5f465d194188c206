package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/Philanthropists/outcome/internal/check/types"
	"github.com/Philanthropists/outcome/internal/notifications"
	"github.com/Philanthropists/outcome/internal/notifications/twilio"
	"github.com/Philanthropists/outcome/pkg/result"
)

const credentialsFile = "credentials.json"

func getConfig() (types.Config, error) {
	credFile, err := os.Open(credentialsFile)
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

func main() {
	msg := flag.String("msg", "Test message", "Failure message to notify")
	to := flag.String("to", "", "To number to send message")
	flag.Parse()

	config, err := getConfig()
	if err != nil {
		panic(err)
	}

	toNumber := config.ToNumber
	if *to != "" {
		toNumber = *to
	}

	digest := &notifications.Digest{
		Client: &twilio.Client{
			AccountSid: config.Twilio.AccountSid,
			Token:      config.Twilio.AuthToken,
		},
		From: config.FromNumber,
		To:   toNumber,
	}
	digest.Push("test", result.Fail[int](*msg))

	fmt.Printf("Sending from number %s to %s: %s\n", config.FromNumber, toNumber, *msg)

	if err := digest.Flush(context.Background()); err != nil {
		panic(err)
	}
}
