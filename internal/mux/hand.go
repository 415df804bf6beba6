package mux

import (
	"errors"
	"net/http"
	"strconv"

	"pokerledger-server/pkg/hand"
	"pokerledger-server/pkg/live"
)

type postHandPayload struct {
	ButtonPlayerID int64 `json:"buttonPlayerId"`
	SmallBlind     int   `json:"smallBlind"`
	BigBlind       int   `json:"bigBlind"`
	// PlayerIDs restricts the hand to a subset of seated players; empty deals everyone in
	PlayerIDs []int64 `json:"playerIds"`
}

type handResponse struct {
	State     hand.State               `json:"state"`
	Positions map[string]hand.Position `json:"positions"`
}

func newHandResponse(state hand.State) handResponse {
	positions, err := hand.PositionAssignments(state.ActivePlayers, state.ActivePlayers[state.ButtonIndex].ID)
	if err != nil {
		// the button always comes from the seated players
		panic(err)
	}

	return handResponse{
		State:     state,
		Positions: positions,
	}
}

func (m *Mux) postGameUUIDHand() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var pp postHandPayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		game := gameFromContext(r.Context())
		gamePlayers, err := game.GetPlayers(r.Context())
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		dealtIn := make(map[int64]bool, len(pp.PlayerIDs))
		for _, id := range pp.PlayerIDs {
			dealtIn[id] = true
		}

		players := make([]hand.Player, 0, len(gamePlayers))
		for _, gp := range gamePlayers {
			if len(pp.PlayerIDs) > 0 && !dealtIn[gp.PlayerID] {
				continue
			}

			players = append(players, hand.Player{
				ID:   strconv.FormatInt(gp.PlayerID, 10),
				Name: gp.Player.DisplayName,
			})
		}

		if pp.SmallBlind < 0 || pp.BigBlind < 0 {
			writeJSONError(w, http.StatusBadRequest, errors.New("blinds cannot be negative"))
			return
		}

		state, err := m.hands.StartHand(game.UUID, players, strconv.FormatInt(pp.ButtonPlayerID, 10), pp.SmallBlind, pp.BigBlind)
		if err != nil {
			if err == live.ErrHandInProgress {
				writeJSONError(w, http.StatusConflict, err)
			} else {
				writeJSONError(w, http.StatusBadRequest, err)
			}
			return
		}

		writeJSON(w, http.StatusCreated, newHandResponse(state))
	})
}

func (m *Mux) getGameUUIDHand() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		game := gameFromContext(r.Context())
		state, ok := m.hands.State(game.UUID)
		if !ok {
			writeJSONError(w, http.StatusNotFound, live.ErrNoLiveHand)
			return
		}

		writeJSON(w, http.StatusOK, newHandResponse(state))
	})
}

func (m *Mux) deleteGameUUIDHand() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		game := gameFromContext(r.Context())
		m.hands.Abort(game.UUID)
		writeJSON(w, http.StatusOK, struct{}{})
	})
}

type postHandActionPayload struct {
	Action string `json:"action"`
	Amount int    `json:"amount"`
}

func (m *Mux) postGameUUIDHandAction() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var pp postHandActionPayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		actionType, err := hand.ActionTypeFromString(pp.Action)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		if pp.Amount < 0 {
			writeJSONError(w, http.StatusBadRequest, errors.New("amount cannot be negative"))
			return
		}

		game := gameFromContext(r.Context())
		snapshot, err := m.hands.Act(game.UUID, actionType, pp.Amount)
		if err != nil {
			if err == live.ErrNoLiveHand {
				writeJSONError(w, http.StatusNotFound, err)
			} else {
				writeJSONError(w, http.StatusBadRequest, err)
			}
			return
		}

		writeJSON(w, http.StatusOK, snapshot)
	})
}

func (m *Mux) postGameUUIDHandStreet() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		game := gameFromContext(r.Context())
		state, err := m.hands.AdvanceStreet(game.UUID)
		if err != nil {
			if err == live.ErrNoLiveHand {
				writeJSONError(w, http.StatusNotFound, err)
			} else {
				writeJSONError(w, http.StatusBadRequest, err)
			}
			return
		}

		writeJSON(w, http.StatusOK, newHandResponse(state))
	})
}

type postHandCompletePayload struct {
	WinnerID string `json:"winnerId"`
}

func (m *Mux) postGameUUIDHandComplete() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var pp postHandCompletePayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		game := gameFromContext(r.Context())
		state, err := m.hands.Complete(game.UUID)
		if err != nil {
			writeJSONError(w, http.StatusNotFound, err)
			return
		}

		winnerID := pp.WinnerID
		if shouldEnd, earlyWinner := state.ShouldEndHandEarly(); shouldEnd {
			winnerID = earlyWinner
		}

		record, err := game.SaveHand(r.Context(), state, winnerID)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusCreated, record)
	})
}

func (m *Mux) getGameUUIDHands() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		game := gameFromContext(r.Context())
		records, err := game.GetHands(r.Context())
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusOK, records)
	})
}
