package sync

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Action types mirror the gateway operations a terminal can perform while
// disconnected.
const (
	ActionCheckout     = "checkout"
	ActionSaveProduct  = "product"
	ActionSaveCategory = "category"
)

// Action is one deferred write. Data holds the exact JSON body that would
// have been sent to the gateway, so replaying it later needs no re-encoding.
// ClientTimestamp is the unix-seconds moment the user performed the action;
// it travels with catalog writes as their optimistic-concurrency token.
type Action struct {
	ID              string          `json:"id"`
	Type            string          `json:"type"`
	Data            json.RawMessage `json:"data"`
	ClientTimestamp int64           `json:"client_timestamp"`
}

func NewAction(actionType string, data json.RawMessage) Action {
	return Action{
		ID:              uuid.NewString(),
		Type:            actionType,
		Data:            data,
		ClientTimestamp: time.Now().Unix(),
	}
}
