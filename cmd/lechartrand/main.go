// Command lechartrand runs a Le Chartrand (Rami 500) game host.
//
// Solo mode simulates a full game between computer opponents locally.
// Host mode creates a room in the store, waits for players in the lobby,
// then runs the authoritative session: it publishes a full snapshot after
// every action and applies snapshots published by the other players.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/massivemedias/Lechartrand/internal/cache"
	"github.com/massivemedias/Lechartrand/internal/config"
	"github.com/massivemedias/Lechartrand/internal/database"
	"github.com/massivemedias/Lechartrand/internal/engine"
	"github.com/massivemedias/Lechartrand/internal/game"
	"github.com/massivemedias/Lechartrand/internal/models"
)

func main() {
	var (
		mode    = flag.String("mode", "solo", "solo or host")
		players = flag.Int("players", 2, "number of players (2-4)")
		seed    = flag.Uint64("seed", uint64(time.Now().UnixNano()), "shuffle seed")
		name    = flag.String("name", "Hôte", "host player name")
	)
	flag.Parse()

	cfg := config.Load()
	if lvl, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(lvl)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.DatabaseURL != "" {
		if err := database.Connect(ctx, cfg.DatabaseURL); err != nil {
			logrus.WithError(err).Warn("persistence disabled")
		} else {
			defer database.Close()
		}
	}

	switch *mode {
	case "solo":
		runSolo(*players, *seed, cfg)
	case "host":
		runHost(ctx, *players, *seed, *name, cfg)
	default:
		logrus.Fatalf("unknown mode %q", *mode)
	}
}

// runSolo simulates a complete game between computer opponents.
func runSolo(players int, seed uint64, cfg config.Config) {
	ps := make([]*models.Player, players)
	for i := range ps {
		ps[i] = &models.Player{
			ID:       uuid.New(),
			Name:     "Ordi " + string(rune('1'+i)),
			Computer: true,
		}
	}
	sess, err := game.NewSession(ps, seed, game.ModeSolo)
	if err != nil {
		logrus.WithError(err).Fatal("create session")
	}
	defer sess.Close()
	sess.ThinkDelay = cfg.ThinkDelay

	done := make(chan game.Snapshot, 1)
	sess.PublishFn = func(snap game.Snapshot) {
		if len(snap.ActionLog) > 0 {
			last := snap.ActionLog[len(snap.ActionLog)-1]
			logrus.WithField("round", snap.RoundNumber).Infof("%s %s %s", last.Player, last.Icon, last.Action)
		}
		switch snap.GamePhase {
		case string(engine.PhaseRoundEnd):
			logrus.WithField("scores", snap.Scores).Info("fin de la manche")
			go func() {
				if err := sess.StartNextRound(); err != nil {
					logrus.WithError(err).Error("next round")
				}
			}()
		case string(engine.PhaseGameEnd):
			select {
			case done <- snap:
			default:
			}
		}
	}

	sess.Start()
	final := <-done
	logrus.WithField("scores", final.Scores).Info("partie terminée")
}

// runHost creates a room, waits for the lobby to fill, then runs the
// session against the store.
func runHost(ctx context.Context, players int, seed uint64, name string, cfg config.Config) {
	if cfg.RedisAddr == "" {
		logrus.Fatal("host mode needs REDIS_ADDR")
	}
	store, err := cache.New(ctx, cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		logrus.WithError(err).Fatal("connect store")
	}
	defer store.Close()

	host := models.Player{ID: uuid.New(), Name: name}
	code := game.NewRoomCode()
	for {
		taken, err := store.RoomExists(ctx, code)
		if err != nil {
			logrus.WithError(err).Fatal("check room code")
		}
		if !taken {
			break
		}
		code = game.NewRoomCode()
	}
	if err := store.CreateRoom(ctx, code, host); err != nil {
		logrus.WithError(err).Fatal("create room")
	}
	defer func() {
		if err := store.DeleteRoom(context.Background(), code); err != nil {
			logrus.WithError(err).Warn("delete room")
		}
	}()
	logrus.WithField("room", code).Info("room created, waiting for players")

	// Poll the lobby until enough players joined.
	var lobby []models.Player
	for {
		lobby, err = store.Players(ctx, code)
		if err != nil {
			logrus.WithError(err).Fatal("read lobby")
		}
		if len(lobby) >= players {
			break
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(time.Second):
		}
	}

	ps := make([]*models.Player, len(lobby))
	for i := range lobby {
		p := lobby[i]
		ps[i] = &p
	}
	sess, err := game.NewSession(ps, seed, game.ModeOnline)
	if err != nil {
		logrus.WithError(err).Fatal("create session")
	}
	defer sess.Close()
	sess.ThinkDelay = cfg.ThinkDelay
	sess.RoomCode = code

	gameOver := make(chan struct{}, 1)
	sess.PublishFn = func(snap game.Snapshot) {
		pctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := store.PublishState(pctx, code, snap); err != nil {
			logrus.WithError(err).Warn("publish state")
		}
		if snap.GamePhase == string(engine.PhaseGameEnd) {
			select {
			case gameOver <- struct{}{}:
			default:
			}
		}
	}
	sess.RecordFn = func(actor uuid.UUID, actionType string, payload map[string]any) {
		rec := cache.GameActionRecord{
			GameID:        sess.ID,
			ActorUserID:   actor,
			ActionType:    actionType,
			ActionPayload: payload,
			Timestamp:     time.Now().UnixMilli(),
		}
		if idx, ok := payload["actionIndex"].(int); ok {
			rec.ActionIndex = idx
		}
		go func() {
			rctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := store.PublishGameAction(rctx, rec); err != nil {
				logrus.WithError(err).Debug("publish action record")
			}
		}()
	}

	unsubscribe, err := store.SubscribeState(ctx, code, func(raw []byte) {
		if err := sess.ApplySnapshotJSON(raw); err != nil {
			logrus.WithError(err).Warn("apply remote snapshot")
		}
	})
	if err != nil {
		logrus.WithError(err).Fatal("subscribe state")
	}
	defer unsubscribe()

	if err := store.SetRoomStatus(ctx, code, models.RoomStatusPlaying); err != nil {
		logrus.WithError(err).Fatal("set room status")
	}
	sess.Start()
	logrus.WithField("room", code).WithField("players", len(ps)).Info("game started")

	select {
	case <-ctx.Done():
	case <-gameOver:
		logrus.Info("partie terminée")
	}
}
