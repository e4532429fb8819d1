package usecase

import (
	"fmt"

	"cdn-service/domain/apperror"
	"cdn-service/domain/model"
)

// IChannelResolver maps a logical channel name to its credential and YouTube channel id.
type IChannelResolver interface {
	Resolve(name string) (model.Channel, error)
	Channels() []model.Channel
}

// ChannelResolver looks channels up in the ordered list loaded at startup.
// Unknown names resolve to the alternate (second) channel unless strict is set.
type ChannelResolver struct {
	channels []model.Channel
	strict   bool
}

// NewChannelResolver creates a resolver over a copy of channels
func NewChannelResolver(channels []model.Channel, strict bool) *ChannelResolver {
	return &ChannelResolver{
		channels: append([]model.Channel(nil), channels...),
		strict:   strict,
	}
}

// Resolve returns the channel called name, or the fallback channel.
func (r *ChannelResolver) Resolve(name string) (model.Channel, error) {
	for _, ch := range r.channels {
		if ch.Name == name {
			return ch, nil
		}
	}
	if r.strict || len(r.channels) == 0 {
		return model.Channel{}, fmt.Errorf("%w: %q", apperror.ErrUnknownChannel, name)
	}
	if len(r.channels) == 1 {
		return r.channels[0], nil
	}
	return r.channels[1], nil
}

// Channels returns the configured channels in aggregation order.
func (r *ChannelResolver) Channels() []model.Channel {
	return append([]model.Channel(nil), r.channels...)
}
