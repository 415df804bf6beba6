package mux

import (
	"errors"
	"net/http"
	"strconv"

	gmux "github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"pokerledger-server/pkg/ledger"
	"pokerledger-server/pkg/settle"
)

type postSettlementsPayload struct {
	ManualTransfers []settle.Transfer `json:"manualTransfers"`
	// Standard skips the payment-preference phases and runs a single greedy match
	Standard bool `json:"standard"`
}

type postSettlementsResponse struct {
	Records   []*ledger.SettlementRecord `json:"records"`
	Skipped   []settle.Transfer          `json:"skipped,omitempty"`
	Imbalance float64                    `json:"imbalance"`
}

func (m *Mux) postGameUUIDSettlements() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var pp postSettlementsPayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		for _, t := range pp.ManualTransfers {
			if t.Amount <= 0 {
				writeJSONError(w, http.StatusBadRequest, errors.New("manual transfer amounts must be greater than zero"))
				return
			}
		}

		game := gameFromContext(r.Context())
		balances, err := game.Balances(r.Context())
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		if len(balances) == 0 {
			writeJSONError(w, http.StatusBadRequest, errors.New("game has no seated players"))
			return
		}

		existing, err := game.GetSettlements(r.Context())
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		// confirmed settlements are money already paid; net them out like
		// manual transfers so the recompute doesn't issue them again
		transfers := make([]settle.Transfer, 0, len(existing)+len(pp.ManualTransfers))
		for _, s := range existing {
			if s.Confirmed {
				transfers = append(transfers, settle.Transfer{From: s.FromName, To: s.ToName, Amount: s.Amount})
			}
		}
		transfers = append(transfers, pp.ManualTransfers...)

		var result settle.Result
		if pp.Standard {
			result = settle.CalculateStandard(balances, transfers)
		} else {
			result = settle.CalculateOptimized(balances, transfers)
		}

		if result.Imbalance != 0 {
			// the dashboard surfaces this; don't fail the computation
			logrus.WithFields(logrus.Fields{
				"game":      game.UUID,
				"imbalance": result.Imbalance,
			}).Warn("balances do not sum to zero")
		}

		// persist only the manual transfers the engine actually netted in;
		// skipped ones must not become payment instructions
		records, err := game.SaveSettlements(r.Context(), result, result.Applied(pp.ManualTransfers))
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusCreated, postSettlementsResponse{
			Records:   records,
			Skipped:   result.Skipped,
			Imbalance: result.Imbalance,
		})
	})
}

func (m *Mux) getGameUUIDSettlements() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		game := gameFromContext(r.Context())
		records, err := game.GetSettlements(r.Context())
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusOK, records)
	})
}

func (m *Mux) postSettlementIDConfirm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(gmux.Vars(r)["id"], 10, 64)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		record, err := ledger.GetSettlementByID(r.Context(), id)
		if err != nil {
			writeMaybeNotFoundError(w, err)
			return
		}

		if err := record.Confirm(r.Context()); err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusOK, record)
	}
}
