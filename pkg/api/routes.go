// Package api exposes the session scoped transactions ledger over HTTP.
package api

import (
	"net/http"

	"github.com/evgeny-myasishchev/ledger.transactions-api/pkg/ledger"
	"github.com/evgeny-myasishchev/ledger.transactions-api/pkg/lib-core-golang/router"
	"github.com/evgeny-myasishchev/ledger.transactions-api/pkg/session"
)

type transactionsResponse struct {
	Transactions []ledger.Transaction `json:"transactions"`
}

type transactionResponse struct {
	Transaction *ledger.Transaction `json:"transaction"`
}

type summaryResponse struct {
	Summary *ledger.Summary `json:"summary"`
}

type createTransactionRequest struct {
	Title  string   `json:"title" validate:"required"`
	Amount *float64 `json:"amount" validate:"required"`
	Type   string   `json:"type" validate:"required,oneof=credit debit"`
}

type pingResponse struct {
	OK bool `json:"ok"`
}

// Setup registers API routes on a given router
func Setup(r router.Router, svc ledger.Service, sessions *session.Resolver) {
	// The literal summary route has to go ahead of the id pattern
	r.Handle("GET", "/v1/transactions/summary", getSummary(svc))
	r.Handle("GET", "/v1/transactions", session.RequireSession(listTransactions(svc)))
	r.Handle("GET", "/v1/transactions/:id", session.RequireSession(getTransaction(svc)))
	r.Handle("POST", "/v1/transactions", createTransaction(svc, sessions))
	r.Handle("GET", "/v1/healthcheck/ping", ping())
}

func listTransactions(svc ledger.Service) router.ToolkitHandlerFunc {
	return func(w http.ResponseWriter, req *http.Request, h router.HandlerToolkit) error {
		transactions, err := svc.ListTransactions(req.Context(), session.SessionIDValue(req.Context()))
		if err != nil {
			return err
		}
		return h.WriteJSON(transactionsResponse{Transactions: transactions})
	}
}

func getTransaction(svc ledger.Service) router.ToolkitHandlerFunc {
	return func(w http.ResponseWriter, req *http.Request, h router.HandlerToolkit) error {
		var id string
		if err := h.BindParams().PathParam("id").UUID(&id).Err(); err != nil {
			return err
		}
		transaction, err := svc.GetTransactionByID(req.Context(), id, session.SessionIDValue(req.Context()))
		if err != nil {
			return err
		}
		return h.WriteJSON(transactionResponse{Transaction: transaction})
	}
}

func getSummary(svc ledger.Service) router.ToolkitHandlerFunc {
	return func(w http.ResponseWriter, req *http.Request, h router.HandlerToolkit) error {
		summary, err := svc.GetSummary(req.Context())
		if err != nil {
			return err
		}
		return h.WriteJSON(summaryResponse{Summary: summary})
	}
}

func createTransaction(svc ledger.Service, sessions *session.Resolver) router.ToolkitHandlerFunc {
	return func(w http.ResponseWriter, req *http.Request, h router.HandlerToolkit) error {
		var payload createTransactionRequest
		if err := h.BindPayload(&payload); err != nil {
			return err
		}

		sessionID := sessions.Resolve(req)

		err := svc.CreateTransaction(req.Context(), &ledger.CreateTransactionCommand{
			Title:     payload.Title,
			Amount:    *payload.Amount,
			Type:      payload.Type,
			SessionID: sessionID,
		})
		if err != nil {
			return err
		}

		// The cookie is set even if the request already had one
		// so every create refreshes the expiry window
		return h.WriteStatus(http.StatusCreated, h.WithCookie(session.NewCookie(sessionID)))
	}
}

func ping() router.ToolkitHandlerFunc {
	return func(w http.ResponseWriter, req *http.Request, h router.HandlerToolkit) error {
		return h.WriteJSON(pingResponse{OK: true})
	}
}
