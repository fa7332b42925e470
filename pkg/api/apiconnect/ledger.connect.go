// Package apiconnect wires the splitledger services to Connect handlers and
// clients. It plays the role generated *connect packages play for protobuf
// services, using api.JSONCodec for every message.
package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/pkg/api"
)

const (
	// LedgerServiceName is the fully-qualified name of the LedgerService.
	LedgerServiceName = "splitledger.v1.LedgerService"
	// AuthServiceName is the fully-qualified name of the AuthService.
	AuthServiceName = "splitledger.v1.AuthService"
)

// Procedure paths, as seen in req.Spec().Procedure.
const (
	LedgerServiceAddGroupProcedure           = "/splitledger.v1.LedgerService/AddGroup"
	LedgerServiceListGroupsProcedure         = "/splitledger.v1.LedgerService/ListGroups"
	LedgerServiceAddUserProcedure            = "/splitledger.v1.LedgerService/AddUser"
	LedgerServiceRemoveUserProcedure         = "/splitledger.v1.LedgerService/RemoveUser"
	LedgerServiceListUsersProcedure          = "/splitledger.v1.LedgerService/ListUsers"
	LedgerServiceUserBalanceProcedure        = "/splitledger.v1.LedgerService/UserBalance"
	LedgerServiceUnderPaidProcedure          = "/splitledger.v1.LedgerService/UnderPaid"
	LedgerServiceAddTransactionProcedure     = "/splitledger.v1.LedgerService/AddTransaction"
	LedgerServiceRecentTransactionsProcedure = "/splitledger.v1.LedgerService/RecentTransactions"
	LedgerServiceGetSummaryProcedure         = "/splitledger.v1.LedgerService/GetSummary"
	AuthServiceLoginProcedure                = "/splitledger.v1.AuthService/Login"
)

// IsMutation reports whether a procedure changes ledger state.
func IsMutation(procedure string) bool {
	switch procedure {
	case LedgerServiceAddGroupProcedure,
		LedgerServiceAddUserProcedure,
		LedgerServiceRemoveUserProcedure,
		LedgerServiceAddTransactionProcedure:
		return true
	}
	return false
}

// LedgerServiceHandler is implemented by the server side of the LedgerService.
type LedgerServiceHandler interface {
	AddGroup(context.Context, *connect.Request[api.AddGroupRequest]) (*connect.Response[api.AddGroupResponse], error)
	ListGroups(context.Context, *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error)
	AddUser(context.Context, *connect.Request[api.AddUserRequest]) (*connect.Response[api.AddUserResponse], error)
	RemoveUser(context.Context, *connect.Request[api.RemoveUserRequest]) (*connect.Response[api.RemoveUserResponse], error)
	ListUsers(context.Context, *connect.Request[api.ListUsersRequest]) (*connect.Response[api.ListUsersResponse], error)
	UserBalance(context.Context, *connect.Request[api.UserBalanceRequest]) (*connect.Response[api.UserBalanceResponse], error)
	UnderPaid(context.Context, *connect.Request[api.UnderPaidRequest]) (*connect.Response[api.UnderPaidResponse], error)
	AddTransaction(context.Context, *connect.Request[api.AddTransactionRequest]) (*connect.Response[api.AddTransactionResponse], error)
	RecentTransactions(context.Context, *connect.Request[api.RecentTransactionsRequest]) (*connect.Response[api.RecentTransactionsResponse], error)
	GetSummary(context.Context, *connect.Request[api.GetSummaryRequest]) (*connect.Response[api.GetSummaryResponse], error)
}

// AuthServiceHandler is implemented by the server side of the AuthService.
type AuthServiceHandler interface {
	Login(context.Context, *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error)
}

// NewLedgerServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewLedgerServiceHandler(svc LedgerServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = withJSON(opts)
	mux := http.NewServeMux()
	mux.Handle(LedgerServiceAddGroupProcedure, connect.NewUnaryHandler(LedgerServiceAddGroupProcedure, svc.AddGroup, opts...))
	mux.Handle(LedgerServiceListGroupsProcedure, connect.NewUnaryHandler(LedgerServiceListGroupsProcedure, svc.ListGroups, opts...))
	mux.Handle(LedgerServiceAddUserProcedure, connect.NewUnaryHandler(LedgerServiceAddUserProcedure, svc.AddUser, opts...))
	mux.Handle(LedgerServiceRemoveUserProcedure, connect.NewUnaryHandler(LedgerServiceRemoveUserProcedure, svc.RemoveUser, opts...))
	mux.Handle(LedgerServiceListUsersProcedure, connect.NewUnaryHandler(LedgerServiceListUsersProcedure, svc.ListUsers, opts...))
	mux.Handle(LedgerServiceUserBalanceProcedure, connect.NewUnaryHandler(LedgerServiceUserBalanceProcedure, svc.UserBalance, opts...))
	mux.Handle(LedgerServiceUnderPaidProcedure, connect.NewUnaryHandler(LedgerServiceUnderPaidProcedure, svc.UnderPaid, opts...))
	mux.Handle(LedgerServiceAddTransactionProcedure, connect.NewUnaryHandler(LedgerServiceAddTransactionProcedure, svc.AddTransaction, opts...))
	mux.Handle(LedgerServiceRecentTransactionsProcedure, connect.NewUnaryHandler(LedgerServiceRecentTransactionsProcedure, svc.RecentTransactions, opts...))
	mux.Handle(LedgerServiceGetSummaryProcedure, connect.NewUnaryHandler(LedgerServiceGetSummaryProcedure, svc.GetSummary, opts...))
	return "/" + LedgerServiceName + "/", mux
}

// NewAuthServiceHandler builds an HTTP handler for the AuthService.
func NewAuthServiceHandler(svc AuthServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = withJSON(opts)
	mux := http.NewServeMux()
	mux.Handle(AuthServiceLoginProcedure, connect.NewUnaryHandler(AuthServiceLoginProcedure, svc.Login, opts...))
	return "/" + AuthServiceName + "/", mux
}

// LedgerServiceClient is a client for the LedgerService.
type LedgerServiceClient interface {
	AddGroup(context.Context, *connect.Request[api.AddGroupRequest]) (*connect.Response[api.AddGroupResponse], error)
	ListGroups(context.Context, *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error)
	AddUser(context.Context, *connect.Request[api.AddUserRequest]) (*connect.Response[api.AddUserResponse], error)
	RemoveUser(context.Context, *connect.Request[api.RemoveUserRequest]) (*connect.Response[api.RemoveUserResponse], error)
	ListUsers(context.Context, *connect.Request[api.ListUsersRequest]) (*connect.Response[api.ListUsersResponse], error)
	UserBalance(context.Context, *connect.Request[api.UserBalanceRequest]) (*connect.Response[api.UserBalanceResponse], error)
	UnderPaid(context.Context, *connect.Request[api.UnderPaidRequest]) (*connect.Response[api.UnderPaidResponse], error)
	AddTransaction(context.Context, *connect.Request[api.AddTransactionRequest]) (*connect.Response[api.AddTransactionResponse], error)
	RecentTransactions(context.Context, *connect.Request[api.RecentTransactionsRequest]) (*connect.Response[api.RecentTransactionsResponse], error)
	GetSummary(context.Context, *connect.Request[api.GetSummaryRequest]) (*connect.Response[api.GetSummaryResponse], error)
}

// AuthServiceClient is a client for the AuthService.
type AuthServiceClient interface {
	Login(context.Context, *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error)
}

// NewLedgerServiceClient constructs a client for the LedgerService at baseURL
// (for example, http://localhost:8080).
func NewLedgerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) LedgerServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append(opts, connect.WithCodec(api.JSONCodec{}))
	return &ledgerServiceClient{
		addGroup:           connect.NewClient[api.AddGroupRequest, api.AddGroupResponse](httpClient, baseURL+LedgerServiceAddGroupProcedure, opts...),
		listGroups:         connect.NewClient[api.ListGroupsRequest, api.ListGroupsResponse](httpClient, baseURL+LedgerServiceListGroupsProcedure, opts...),
		addUser:            connect.NewClient[api.AddUserRequest, api.AddUserResponse](httpClient, baseURL+LedgerServiceAddUserProcedure, opts...),
		removeUser:         connect.NewClient[api.RemoveUserRequest, api.RemoveUserResponse](httpClient, baseURL+LedgerServiceRemoveUserProcedure, opts...),
		listUsers:          connect.NewClient[api.ListUsersRequest, api.ListUsersResponse](httpClient, baseURL+LedgerServiceListUsersProcedure, opts...),
		userBalance:        connect.NewClient[api.UserBalanceRequest, api.UserBalanceResponse](httpClient, baseURL+LedgerServiceUserBalanceProcedure, opts...),
		underPaid:          connect.NewClient[api.UnderPaidRequest, api.UnderPaidResponse](httpClient, baseURL+LedgerServiceUnderPaidProcedure, opts...),
		addTransaction:     connect.NewClient[api.AddTransactionRequest, api.AddTransactionResponse](httpClient, baseURL+LedgerServiceAddTransactionProcedure, opts...),
		recentTransactions: connect.NewClient[api.RecentTransactionsRequest, api.RecentTransactionsResponse](httpClient, baseURL+LedgerServiceRecentTransactionsProcedure, opts...),
		getSummary:         connect.NewClient[api.GetSummaryRequest, api.GetSummaryResponse](httpClient, baseURL+LedgerServiceGetSummaryProcedure, opts...),
	}
}

// NewAuthServiceClient constructs a client for the AuthService.
func NewAuthServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) AuthServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append(opts, connect.WithCodec(api.JSONCodec{}))
	return &authServiceClient{
		login: connect.NewClient[api.LoginRequest, api.LoginResponse](httpClient, baseURL+AuthServiceLoginProcedure, opts...),
	}
}

type ledgerServiceClient struct {
	addGroup           *connect.Client[api.AddGroupRequest, api.AddGroupResponse]
	listGroups         *connect.Client[api.ListGroupsRequest, api.ListGroupsResponse]
	addUser            *connect.Client[api.AddUserRequest, api.AddUserResponse]
	removeUser         *connect.Client[api.RemoveUserRequest, api.RemoveUserResponse]
	listUsers          *connect.Client[api.ListUsersRequest, api.ListUsersResponse]
	userBalance        *connect.Client[api.UserBalanceRequest, api.UserBalanceResponse]
	underPaid          *connect.Client[api.UnderPaidRequest, api.UnderPaidResponse]
	addTransaction     *connect.Client[api.AddTransactionRequest, api.AddTransactionResponse]
	recentTransactions *connect.Client[api.RecentTransactionsRequest, api.RecentTransactionsResponse]
	getSummary         *connect.Client[api.GetSummaryRequest, api.GetSummaryResponse]
}

func (c *ledgerServiceClient) AddGroup(ctx context.Context, req *connect.Request[api.AddGroupRequest]) (*connect.Response[api.AddGroupResponse], error) {
	return c.addGroup.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) ListGroups(ctx context.Context, req *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	return c.listGroups.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) AddUser(ctx context.Context, req *connect.Request[api.AddUserRequest]) (*connect.Response[api.AddUserResponse], error) {
	return c.addUser.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) RemoveUser(ctx context.Context, req *connect.Request[api.RemoveUserRequest]) (*connect.Response[api.RemoveUserResponse], error) {
	return c.removeUser.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) ListUsers(ctx context.Context, req *connect.Request[api.ListUsersRequest]) (*connect.Response[api.ListUsersResponse], error) {
	return c.listUsers.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) UserBalance(ctx context.Context, req *connect.Request[api.UserBalanceRequest]) (*connect.Response[api.UserBalanceResponse], error) {
	return c.userBalance.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) UnderPaid(ctx context.Context, req *connect.Request[api.UnderPaidRequest]) (*connect.Response[api.UnderPaidResponse], error) {
	return c.underPaid.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) AddTransaction(ctx context.Context, req *connect.Request[api.AddTransactionRequest]) (*connect.Response[api.AddTransactionResponse], error) {
	return c.addTransaction.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) RecentTransactions(ctx context.Context, req *connect.Request[api.RecentTransactionsRequest]) (*connect.Response[api.RecentTransactionsResponse], error) {
	return c.recentTransactions.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) GetSummary(ctx context.Context, req *connect.Request[api.GetSummaryRequest]) (*connect.Response[api.GetSummaryResponse], error) {
	return c.getSummary.CallUnary(ctx, req)
}

type authServiceClient struct {
	login *connect.Client[api.LoginRequest, api.LoginResponse]
}

func (c *authServiceClient) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	return c.login.CallUnary(ctx, req)
}

func withJSON(opts []connect.HandlerOption) []connect.HandlerOption {
	return append(opts, connect.WithCodec(api.JSONCodec{}))
}
