package mux

import (
	"net/http"

	gmux "github.com/gorilla/mux"

	"pokerledger-server/internal/sharetoken"
	"pokerledger-server/pkg/ledger"
)

type shareResponse struct {
	Token string `json:"token"`
	Slug  string `json:"slug"`
}

func (m *Mux) postGameUUIDShare() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		game := gameFromContext(r.Context())
		signed, err := sharetoken.Sign(game.UUID)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusCreated, shareResponse{
			Token: signed,
			Slug:  game.ShareSlug,
		})
	})
}

type sharedGameResponse struct {
	*ledger.Game
	Players     []*ledger.GamePlayer       `json:"players"`
	Settlements []*ledger.SettlementRecord `json:"settlements"`
	Hands       []*ledger.HandRecord       `json:"hands"`
}

// getShared serves the read-only game summary behind a share link
// The token is either a signed share token or the game's share slug.
func (m *Mux) getShared() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tokenStr := gmux.Vars(r)["token"]

		var game *ledger.Game
		if gameUUID, err := sharetoken.ValidGameUUID(tokenStr); err == nil {
			game, err = ledger.GetGameByUUID(r.Context(), gameUUID)
			if err != nil {
				writeMaybeNotFoundError(w, err)
				return
			}
		} else {
			var slugErr error
			game, slugErr = ledger.GetGameByShareSlug(r.Context(), tokenStr)
			if slugErr != nil {
				writeMaybeNotFoundError(w, slugErr)
				return
			}
		}

		players, err := game.GetPlayers(r.Context())
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		settlements, err := game.GetSettlements(r.Context())
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		hands, err := game.GetHands(r.Context())
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusOK, sharedGameResponse{
			Game:        game,
			Players:     players,
			Settlements: settlements,
			Hands:       hands,
		})
	}
}
