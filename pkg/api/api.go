// Package api defines the request and response messages of the splitledger
// RPC services. Messages travel as JSON over the Connect protocol; see
// package apiconnect for handlers and clients.
package api

import "encoding/json"

// Group is a group snapshot.
type Group struct {
	Name         string `json:"name"`
	Users        int    `json:"users"`
	Transactions int    `json:"transactions"`
	CreatedAt    int64  `json:"created_at"`
}

// User is a group member and what they have paid.
type User struct {
	Name      string  `json:"name"`
	Balance   float64 `json:"balance"`
	CreatedAt int64   `json:"created_at"`
}

// Transaction is a recorded payment.
type Transaction struct {
	ID        string  `json:"id"`
	User      string  `json:"user"`
	Amount    float64 `json:"amount"`
	CreatedAt int64   `json:"created_at"`
}

// Settlement is a suggested payment between two members.
type Settlement struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
}

type AddGroupRequest struct {
	Name string `json:"name"`
}

type AddGroupResponse struct {
	Group *Group `json:"group"`
}

type ListGroupsRequest struct{}

type ListGroupsResponse struct {
	Groups []string `json:"groups"`
}

type AddUserRequest struct {
	Group string `json:"group"`
	Name  string `json:"name"`
}

type AddUserResponse struct {
	User *User `json:"user"`
}

type RemoveUserRequest struct {
	Group string `json:"group"`
	Name  string `json:"name"`
}

type RemoveUserResponse struct {
	RemovedTransactions int `json:"removed_transactions"`
}

type ListUsersRequest struct {
	Group string `json:"group"`
}

type ListUsersResponse struct {
	Users []*User `json:"users"`
}

type UserBalanceRequest struct {
	Group string `json:"group"`
	Name  string `json:"name"`
}

type UserBalanceResponse struct {
	Balance float64 `json:"balance"`
}

type UnderPaidRequest struct {
	Group string `json:"group"`
}

type UnderPaidResponse struct {
	Users []*User `json:"users"`
}

type AddTransactionRequest struct {
	Group  string  `json:"group"`
	User   string  `json:"user"`
	Amount float64 `json:"amount"`
}

type AddTransactionResponse struct {
	Transaction *Transaction `json:"transaction"`
}

type RecentTransactionsRequest struct {
	Group string `json:"group"`
	Count int    `json:"count"`
}

type RecentTransactionsResponse struct {
	Transactions []*Transaction `json:"transactions"`
}

type GetSummaryRequest struct {
	Group string `json:"group"`
}

type GetSummaryResponse struct {
	Group       string        `json:"group"`
	Total       float64       `json:"total"`
	FairShare   float64       `json:"fair_share"`
	Members     []*User       `json:"members"`
	Settlements []*Settlement `json:"settlements"`
}

type LoginRequest struct {
	Operator string `json:"operator"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
}

// JSONCodec encodes messages as plain JSON. It registers under the "json"
// name so Connect clients and handlers negotiate application/json.
type JSONCodec struct{}

func (JSONCodec) Name() string { return "json" }

func (JSONCodec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

func (JSONCodec) Unmarshal(data []byte, msg any) error {
	return json.Unmarshal(data, msg)
}
