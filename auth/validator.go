package auth

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// SubscribeRequest is the body of the subscription handshake.
// ChannelName shape is validated later by domain.ParseChannel; here we
// only reject empty or oversized input before touching any store.
type SubscribeRequest struct {
	ChannelName string `json:"channel_name" validate:"required,max=64"`
	SocketID    string `json:"socket_id" validate:"omitempty,max=64"`
}

func ValidateSubscribe(req SubscribeRequest) error {
	return validate.Struct(req)
}
