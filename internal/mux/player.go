package mux

import (
	"errors"
	"net/http"
	"regexp"
	"strconv"

	gmux "github.com/gorilla/mux"

	"pokerledger-server/internal/util"
	"pokerledger-server/pkg/ledger"
	"pokerledger-server/pkg/settle"
)

var wordChar = regexp.MustCompile(`\w`)

type postPlayerPayload struct {
	DisplayName       string               `json:"displayName"`
	PaymentPreference settle.PaymentMethod `json:"paymentPreference"`
}

func (m *Mux) postPlayer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var pp postPlayerPayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		if pp.DisplayName == "" {
			pp.DisplayName = util.GetRandomName()
		}

		if !wordChar.MatchString(pp.DisplayName) || len(pp.DisplayName) > 40 {
			writeJSONError(w, http.StatusBadRequest, errors.New("display name must be 1-40 characters"))
			return
		}

		if pp.PaymentPreference != "" && pp.PaymentPreference != settle.Cash && pp.PaymentPreference != settle.Digital {
			writeJSONError(w, http.StatusBadRequest, errors.New("payment preference must be cash or digital"))
			return
		}

		player, err := ledger.CreatePlayer(r.Context(), pp.DisplayName, pp.PaymentPreference)
		if err != nil {
			if err == ledger.ErrDuplicateKey {
				writeJSONError(w, http.StatusBadRequest, errors.New("display name is already taken"))
			} else {
				writeJSONError(w, http.StatusInternalServerError, err)
			}
			return
		}

		writeJSON(w, http.StatusCreated, player)
	}
}

func (m *Mux) getPlayer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start, rows, err := parsePaginationOptions(r)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		players, err := ledger.GetPlayers(r.Context(), start, rows)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusOK, players)
	}
}

func (m *Mux) getPlayerID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(gmux.Vars(r)["id"], 10, 64)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		player, err := ledger.GetPlayerByID(r.Context(), id)
		if err != nil {
			writeMaybeNotFoundError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, player)
	}
}
