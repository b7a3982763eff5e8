// Package model defines the message types exchanged with the backend.
package model

import (
	"fmt"
	"strconv"
	"strings"
)

// MessageID is the server-assigned identifier of a message.
type MessageID int64

func (id MessageID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

func ParseMessageID(s string) (MessageID, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid message id %q: %w", s, err)
	}
	return MessageID(v), nil
}

type Message struct {
	ID      MessageID `json:"id"`
	Content string    `json:"content"`
}

// MessageBody is the request payload for create and update.
type MessageBody struct {
	Content string `json:"content"`
}

// IndexOf returns the position of id in messages, or -1.
func IndexOf(messages []Message, id MessageID) int {
	for i := range messages {
		if messages[i].ID == id {
			return i
		}
	}
	return -1
}
