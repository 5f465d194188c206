// Package mail reads raw RFC 5322 messages into bank notifications.
package mail

import (
	"hash/fnv"
	"io"
	"strings"
	"time"

	"github.com/emersion/go-message/mail"
	"github.com/zeebo/errs"
)

var mailErr = errs.Class("mail")

// Message is a parsed notification email.
type Message struct {
	id      uint32
	from    []string
	subject string
	date    time.Time
	body    []byte
}

func (m Message) ID() uint32      { return m.id }
func (m Message) From() []string  { return m.from }
func (m Message) Subject() string { return m.subject }
func (m Message) Date() time.Time { return m.date }
func (m Message) Body() []byte    { return m.body }

// Parse reads a message and keeps its first inline part as the body.
func Parse(r io.Reader) (Message, error) {
	mr, err := mail.CreateReader(r)
	if err != nil && mr == nil {
		return Message{}, mailErr.New("could not create reader: %v", err)
	}
	defer func() { _ = mr.Close() }()

	var msg Message

	addrs, err := mr.Header.AddressList("From")
	if err != nil {
		return Message{}, mailErr.New("invalid From header: %v", err)
	}
	for _, a := range addrs {
		msg.from = append(msg.from, strings.ToLower(a.Address))
	}

	msg.subject, err = mr.Header.Subject()
	if err != nil {
		return Message{}, mailErr.New("invalid Subject header: %v", err)
	}

	if mr.Header.Get("Date") != "" {
		msg.date, err = mr.Header.Date()
		if err != nil {
			return Message{}, mailErr.New("invalid Date header: %v", err)
		}
	}

	msg.body, err = firstInlineBody(mr)
	if err != nil {
		return Message{}, err
	}

	msg.id = messageID(mr.Header, msg)

	return msg, nil
}

func firstInlineBody(mr *mail.Reader) ([]byte, error) {
	for {
		p, err := mr.NextPart()
		if err == io.EOF {
			return nil, mailErr.New("no body found in message")
		}
		if err != nil {
			return nil, mailErr.New("could not read part: %v", err)
		}

		if _, ok := p.Header.(*mail.InlineHeader); !ok {
			continue
		}

		body, err := io.ReadAll(p.Body)
		if err != nil {
			return nil, mailErr.New("could not read inline body: %v", err)
		}

		return body, nil
	}
}

// messageID hashes the Message-Id header, or the date and subject when the
// header is missing.
func messageID(h mail.Header, msg Message) uint32 {
	key := h.Get("Message-Id")
	if key == "" {
		key = msg.date.UTC().Format(time.RFC3339) + "|" + msg.subject
	}

	f := fnv.New32a()
	_, _ = f.Write([]byte(key))

	return f.Sum32()
}
