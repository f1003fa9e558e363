package ws

import (
	"encoding/json"

	"axis-lobby/internal/lobby"
	"axis-lobby/internal/registry"
	"axis-lobby/internal/relay"

	"github.com/rs/zerolog/log"
)

// Broadcaster resolves connection ids through the registry and queues one
// encoded frame per recipient. Unknown or closed connections are skipped.
type Broadcaster struct {
	reg *registry.Registry
}

func NewBroadcaster(reg *registry.Registry) *Broadcaster {
	return &Broadcaster{reg: reg}
}

func (b *Broadcaster) Publish(ev lobby.Event, connIDs []string) {
	b.deliver(ev.Type, ev, connIDs)
}

func (b *Broadcaster) Deliver(msg relay.Message, connIDs []string) {
	b.deliver(msg.Type, msg, connIDs)
}

func (b *Broadcaster) CloseAfterFlush(connIDs []string) {
	for _, id := range connIDs {
		conn, ok := b.reg.Conn(id)
		if !ok {
			continue
		}
		if f, ok := conn.(interface{ CloseAfterFlush() }); ok {
			f.CloseAfterFlush()
			continue
		}
		conn.Close()
	}
}

func (b *Broadcaster) deliver(kind string, v any, connIDs []string) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("type", kind).Msg("broadcast encode failed")
		return
	}
	for _, id := range connIDs {
		conn, ok := b.reg.Conn(id)
		if !ok {
			continue
		}
		if conn.Send(data) {
			metricBroadcastFrames.Add(1)
		}
	}
}
