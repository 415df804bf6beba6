package mux

import (
	"errors"
	"net/http"

	"pokerledger-server/pkg/ledger"
)

type postGamePayload struct {
	Name string `json:"name"`
}

func (m *Mux) postGame() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var pp postGamePayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		if !wordChar.MatchString(pp.Name) || len(pp.Name) < 3 || len(pp.Name) > 40 {
			writeJSONError(w, http.StatusBadRequest, errors.New("name must be 3-40 characters"))
			return
		}

		game, err := ledger.CreateGame(r.Context(), pp.Name)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusCreated, game)
	}
}

type gameResponse struct {
	*ledger.Game
	Players []*ledger.GamePlayer `json:"players"`
}

func (m *Mux) getGameUUID() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		game := gameFromContext(r.Context())
		players, err := game.GetPlayers(r.Context())
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusOK, gameResponse{
			Game:    game,
			Players: players,
		})
	})
}

type postGamePlayerPayload struct {
	PlayerID int64   `json:"playerId"`
	Seat     int     `json:"seat"`
	BuyIn    float64 `json:"buyIn"`
}

func (m *Mux) postGameUUIDPlayer() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var pp postGamePlayerPayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		if pp.BuyIn < 0 {
			writeJSONError(w, http.StatusBadRequest, errors.New("buy-in cannot be negative"))
			return
		}

		game := gameFromContext(r.Context())

		if _, err := ledger.GetPlayerByID(r.Context(), pp.PlayerID); err != nil {
			writeMaybeNotFoundError(w, err)
			return
		}

		gamePlayer, err := game.AddPlayer(r.Context(), pp.PlayerID, pp.Seat, pp.BuyIn)
		if err != nil {
			var ue ledger.UserError
			if errors.As(err, &ue) {
				writeJSONError(w, http.StatusBadRequest, err)
			} else {
				writeJSONError(w, http.StatusInternalServerError, err)
			}
			return
		}

		writeJSON(w, http.StatusCreated, gamePlayer)
	})
}

type postBuyInPayload struct {
	PlayerID int64   `json:"playerId"`
	Amount   float64 `json:"amount"`
}

func (m *Mux) postGameUUIDBuyIn() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var pp postBuyInPayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		if pp.Amount <= 0 {
			writeJSONError(w, http.StatusBadRequest, errors.New("buy-in must be greater than zero"))
			return
		}

		game := gameFromContext(r.Context())
		gamePlayer, err := game.GetGamePlayer(r.Context(), pp.PlayerID)
		if err != nil {
			writeMaybeNotFoundError(w, err)
			return
		}

		if err := gamePlayer.AddBuyIn(r.Context(), pp.Amount); err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusOK, gamePlayer)
	})
}

type postStacksPayload struct {
	Stacks []struct {
		PlayerID   int64   `json:"playerId"`
		FinalStack float64 `json:"finalStack"`
	} `json:"stacks"`
}

func (m *Mux) postGameUUIDStacks() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var pp postStacksPayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		game := gameFromContext(r.Context())

		for _, stack := range pp.Stacks {
			if stack.FinalStack < 0 {
				writeJSONError(w, http.StatusBadRequest, errors.New("final stack cannot be negative"))
				return
			}

			gamePlayer, err := game.GetGamePlayer(r.Context(), stack.PlayerID)
			if err != nil {
				writeMaybeNotFoundError(w, err)
				return
			}

			if err := gamePlayer.SetFinalStack(r.Context(), stack.FinalStack); err != nil {
				writeJSONError(w, http.StatusInternalServerError, err)
				return
			}
		}

		players, err := game.GetPlayers(r.Context())
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusOK, players)
	})
}

func (m *Mux) postGameUUIDComplete() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		game := gameFromContext(r.Context())
		if err := game.Complete(r.Context()); err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusOK, game)
	})
}
