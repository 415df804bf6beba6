package mux

import (
	"context"
	"net/http"

	gmux "github.com/gorilla/mux"

	"pokerledger-server/pkg/ledger"
	"pokerledger-server/pkg/live"
)

type ctxKey int

const (
	ctxGameKey ctxKey = iota
)

const uuidPattern = `(?i)[a-f0-9]{8}(?:-[a-f0-9]{4}){3}-[a-f0-9]{12}`

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	version string
	hands   *live.Registry
}

// NewMux returns a new HTTP mux
func NewMux(version string) *Mux {
	this := &Mux{
		Router:  gmux.NewRouter(),
		version: version,
		hands:   live.NewRegistry(),
	}

	r := this.Router
	r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())

	r.Methods(http.MethodPost).Path("/player").Handler(this.postPlayer())
	r.Methods(http.MethodGet).Path("/player").Handler(this.getPlayer())
	r.Methods(http.MethodGet).Path("/player/{id:[0-9]+}").Handler(this.getPlayerID())

	r.Methods(http.MethodPost).Path("/game").Handler(this.postGame())
	r.Methods(http.MethodPost).Path("/settlement/{id:[0-9]+}/confirm").Handler(this.postSettlementIDConfirm())
	r.Methods(http.MethodGet).Path("/shared/{token}").Handler(this.getShared())

	gr := r.PathPrefix("/game/{uuid:" + uuidPattern + "}").Subrouter()
	gr.Use(this.gameMiddleware)

	gr.Methods(http.MethodGet).Path("").Handler(this.getGameUUID())
	gr.Methods(http.MethodPost).Path("/player").Handler(this.postGameUUIDPlayer())
	gr.Methods(http.MethodPost).Path("/buyin").Handler(this.postGameUUIDBuyIn())
	gr.Methods(http.MethodPost).Path("/stacks").Handler(this.postGameUUIDStacks())
	gr.Methods(http.MethodPost).Path("/complete").Handler(this.postGameUUIDComplete())

	gr.Methods(http.MethodPost).Path("/settlements").Handler(this.postGameUUIDSettlements())
	gr.Methods(http.MethodGet).Path("/settlements").Handler(this.getGameUUIDSettlements())

	gr.Methods(http.MethodPost).Path("/hand").Handler(this.postGameUUIDHand())
	gr.Methods(http.MethodGet).Path("/hand").Handler(this.getGameUUIDHand())
	gr.Methods(http.MethodDelete).Path("/hand").Handler(this.deleteGameUUIDHand())
	gr.Methods(http.MethodPost).Path("/hand/action").Handler(this.postGameUUIDHandAction())
	gr.Methods(http.MethodPost).Path("/hand/street").Handler(this.postGameUUIDHandStreet())
	gr.Methods(http.MethodPost).Path("/hand/complete").Handler(this.postGameUUIDHandComplete())

	gr.Methods(http.MethodPost).Path("/share").Handler(this.postGameUUIDShare())
	gr.Methods(http.MethodGet).Path("/hands").Handler(this.getGameUUIDHands())

	return this
}

func (m *Mux) gameMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uuid := gmux.Vars(r)["uuid"]
		game, err := ledger.GetGameByUUID(r.Context(), uuid)
		if err != nil {
			writeMaybeNotFoundError(w, err)
			return
		}

		newCtx := context.WithValue(r.Context(), ctxGameKey, game)
		next.ServeHTTP(w, r.WithContext(newCtx))
	})
}

func gameFromContext(ctx context.Context) *ledger.Game {
	return ctx.Value(ctxGameKey).(*ledger.Game)
}
