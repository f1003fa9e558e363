package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"axis-lobby/internal/config"
	"axis-lobby/internal/lobby"
	"axis-lobby/internal/lobbyclient"
	"axis-lobby/internal/logging"

	"github.com/rs/zerolog/log"
)

func main() {
	logCfg, err := config.LoadLog()
	if err != nil {
		panic(err)
	}
	logging.Init(logCfg)
	cfg, err := config.LoadBot()
	if err != nil {
		log.Fatal().Err(err).Msg("load bot config failed")
	}
	team := lobby.Team(cfg.Team)
	if team != lobby.TeamAxis && team != lobby.TeamAllies {
		log.Fatal().Str("team", cfg.Team).Msg("BOT_TEAM must be axis or allies")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := lobbyclient.Dial(ctx, cfg.WSURL)
	if err != nil {
		log.Fatal().Err(err).Msg("dial failed")
	}
	defer c.Close()
	c.Timeout = cfg.Timeout

	c.On("error", func(raw []byte) {
		log.Warn().RawJSON("frame", raw).Msg("server error")
	})
	c.OnClose(func(err error) {
		log.Info().Err(err).Msg("connection closed")
	})

	var entry lobbyclient.Entry
	if cfg.GameID == "" {
		entry, err = c.CreateGame(ctx, lobbyclient.CreateRequest{PlayerName: cfg.PlayerName})
	} else {
		entry, err = c.JoinGame(ctx, lobbyclient.JoinRequest{PlayerName: cfg.PlayerName, GameID: cfg.GameID})
	}
	if err != nil {
		log.Fatal().Err(err).Msg("enter game failed")
	}
	log.Info().Str("game_id", entry.GameID).Bool("rejoined", entry.Rejoined()).Msg("entered game")

	b := &bot{client: c, name: cfg.PlayerName, team: team}
	c.On(lobby.EventStateUpdate, b.onState)
	c.On(lobby.EventGameStarted, func([]byte) {
		log.Info().Str("game_id", entry.GameID).Msg("game started")
	})
	b.step(entry.State)

	select {
	case <-ctx.Done():
	case <-c.Done():
	}
}

type bot struct {
	client *lobbyclient.Client
	name   string
	team   lobby.Team
}

func (b *bot) onState(raw []byte) {
	var frame struct {
		State lobby.StateView `json:"state"`
	}
	if err := json.Unmarshal(raw, &frame); err != nil {
		log.Warn().Err(err).Msg("decode state_update failed")
		return
	}
	log.Debug().Str("game_id", frame.State.GameID).Int64("version", frame.State.Version).Msg("state_update")
	b.step(frame.State)
}

func (b *bot) step(state lobby.StateView) {
	action, ok := nextAction(state, b.name, b.team)
	if !ok {
		return
	}
	log.Info().Str("action", action.Type).Str("country_id", action.CountryID).Msg("bot action")
	if err := b.client.Act(action); err != nil {
		log.Error().Err(err).Msg("send action failed")
	}
}

// nextAction moves the bot one step closer to being on its team, holding one
// country of that team and ready. It returns false once there is nothing
// left to do.
func nextAction(state lobby.StateView, name string, team lobby.Team) (lobby.Action, bool) {
	me, ok := state.Player(name)
	if !ok {
		return lobby.Action{}, false
	}
	if me.Team == nil || *me.Team != team {
		return lobby.Action{Type: lobby.ActionJoinTeam, Team: team}, true
	}
	if len(me.AssignedCountries) == 0 {
		countries := state.AlliedCountries
		if team == lobby.TeamAxis {
			countries = state.AxisCountries
		}
		for _, c := range countries {
			if c.Status == lobby.CountryAvailable {
				return lobby.Action{Type: lobby.ActionAssignCountry, CountryID: c.ID}, true
			}
		}
	}
	if !me.Ready {
		return lobby.Action{Type: lobby.ActionSetReady, Ready: true}, true
	}
	return lobby.Action{}, false
}
