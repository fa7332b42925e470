package service

import (
	"context"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/internal/events"
	"github.com/mmynk/splitledger/internal/storage"
	"github.com/mmynk/splitledger/pkg/api"
	"github.com/mmynk/splitledger/pkg/api/apiconnect"
)

// Ensure LedgerService implements the Connect handler interface
var _ apiconnect.LedgerServiceHandler = (*LedgerService)(nil)

// LedgerService implements the Connect LedgerService
type LedgerService struct {
	store     storage.Ledger
	publisher events.Publisher
}

// NewLedgerService creates a new LedgerService with the given ledger backend.
// Committed mutations are published to publisher; nil drops them.
func NewLedgerService(store storage.Ledger, publisher events.Publisher) *LedgerService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &LedgerService{store: store, publisher: publisher}
}

// AddGroup creates a new group.
func (s *LedgerService) AddGroup(ctx context.Context, req *connect.Request[api.AddGroupRequest]) (*connect.Response[api.AddGroupResponse], error) {
	slog.Info("AddGroup request received", "group", req.Msg.Name)

	group, err := s.store.AddGroup(req.Msg.Name)
	if err != nil {
		slog.Warn("AddGroup failed", "group", req.Msg.Name, "error", err)
		return nil, toConnectError(err)
	}

	s.publish(ctx, events.Event{Type: events.GroupAdded, Group: group.Name})
	slog.Info("Group added", "group", group.Name)

	return connect.NewResponse(&api.AddGroupResponse{Group: toAPIGroup(group)}), nil
}

// ListGroups lists group names in the order they were added.
func (s *LedgerService) ListGroups(ctx context.Context, req *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	slog.Info("ListGroups request received")

	groups, err := s.store.ListGroups()
	if err != nil {
		slog.Error("ListGroups failed", "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("ListGroups successful", "count", len(groups))
	return connect.NewResponse(&api.ListGroupsResponse{Groups: groups}), nil
}

// AddUser adds a user to a group.
func (s *LedgerService) AddUser(ctx context.Context, req *connect.Request[api.AddUserRequest]) (*connect.Response[api.AddUserResponse], error) {
	slog.Info("AddUser request received", "group", req.Msg.Group, "user", req.Msg.Name)

	user, err := s.store.AddUser(req.Msg.Group, req.Msg.Name)
	if err != nil {
		slog.Warn("AddUser failed", "group", req.Msg.Group, "user", req.Msg.Name, "error", err)
		return nil, toConnectError(err)
	}

	s.publish(ctx, events.Event{Type: events.UserAdded, Group: req.Msg.Group, User: user.Name})
	slog.Info("User added", "group", req.Msg.Group, "user", user.Name)

	return connect.NewResponse(&api.AddUserResponse{User: toAPIUser(user)}), nil
}

// RemoveUser removes a user and all of their transactions.
func (s *LedgerService) RemoveUser(ctx context.Context, req *connect.Request[api.RemoveUserRequest]) (*connect.Response[api.RemoveUserResponse], error) {
	slog.Info("RemoveUser request received", "group", req.Msg.Group, "user", req.Msg.Name)

	removed, err := s.store.RemoveUser(req.Msg.Group, req.Msg.Name)
	if err != nil {
		slog.Warn("RemoveUser failed", "group", req.Msg.Group, "user", req.Msg.Name, "error", err)
		return nil, toConnectError(err)
	}

	s.publish(ctx, events.Event{
		Type:                events.UserRemoved,
		Group:               req.Msg.Group,
		User:                req.Msg.Name,
		RemovedTransactions: removed,
	})
	slog.Info("User removed",
		"group", req.Msg.Group,
		"user", req.Msg.Name,
		"removed_transactions", removed,
	)

	return connect.NewResponse(&api.RemoveUserResponse{RemovedTransactions: removed}), nil
}

// ListUsers lists a group's users, lowest payer first.
func (s *LedgerService) ListUsers(ctx context.Context, req *connect.Request[api.ListUsersRequest]) (*connect.Response[api.ListUsersResponse], error) {
	slog.Info("ListUsers request received", "group", req.Msg.Group)

	users, err := s.store.ListUsers(req.Msg.Group)
	if err != nil {
		slog.Warn("ListUsers failed", "group", req.Msg.Group, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("ListUsers successful", "group", req.Msg.Group, "count", len(users))
	return connect.NewResponse(&api.ListUsersResponse{Users: toAPIUsers(users)}), nil
}

// UserBalance returns what a user has paid so far.
func (s *LedgerService) UserBalance(ctx context.Context, req *connect.Request[api.UserBalanceRequest]) (*connect.Response[api.UserBalanceResponse], error) {
	slog.Info("UserBalance request received", "group", req.Msg.Group, "user", req.Msg.Name)

	balance, err := s.store.UserBalance(req.Msg.Group, req.Msg.Name)
	if err != nil {
		slog.Warn("UserBalance failed", "group", req.Msg.Group, "user", req.Msg.Name, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.UserBalanceResponse{Balance: balance}), nil
}

// UnderPaid returns the users tied for the lowest balance.
func (s *LedgerService) UnderPaid(ctx context.Context, req *connect.Request[api.UnderPaidRequest]) (*connect.Response[api.UnderPaidResponse], error) {
	slog.Info("UnderPaid request received", "group", req.Msg.Group)

	users, err := s.store.UnderPaid(req.Msg.Group)
	if err != nil {
		slog.Warn("UnderPaid failed", "group", req.Msg.Group, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("UnderPaid successful", "group", req.Msg.Group, "count", len(users))
	return connect.NewResponse(&api.UnderPaidResponse{Users: toAPIUsers(users)}), nil
}

// AddTransaction records a payment.
func (s *LedgerService) AddTransaction(ctx context.Context, req *connect.Request[api.AddTransactionRequest]) (*connect.Response[api.AddTransactionResponse], error) {
	slog.Info("AddTransaction request received",
		"group", req.Msg.Group,
		"user", req.Msg.User,
		"amount", req.Msg.Amount,
	)

	xct, err := s.store.AddTransaction(req.Msg.Group, req.Msg.User, req.Msg.Amount)
	if err != nil {
		slog.Warn("AddTransaction failed", "group", req.Msg.Group, "user", req.Msg.User, "error", err)
		return nil, toConnectError(err)
	}

	s.publish(ctx, events.Event{
		Type:          events.TransactionAdded,
		Group:         req.Msg.Group,
		User:          xct.User,
		TransactionID: xct.ID,
		Amount:        xct.Amount,
	})
	slog.Info("Transaction added", "group", req.Msg.Group, "transaction_id", xct.ID)

	return connect.NewResponse(&api.AddTransactionResponse{Transaction: toAPITransaction(xct)}), nil
}

// RecentTransactions returns up to Count transactions, newest first.
func (s *LedgerService) RecentTransactions(ctx context.Context, req *connect.Request[api.RecentTransactionsRequest]) (*connect.Response[api.RecentTransactionsResponse], error) {
	slog.Info("RecentTransactions request received", "group", req.Msg.Group, "count", req.Msg.Count)

	xcts, err := s.store.RecentTransactions(req.Msg.Group, req.Msg.Count)
	if err != nil {
		slog.Warn("RecentTransactions failed", "group", req.Msg.Group, "error", err)
		return nil, toConnectError(err)
	}

	out := make([]*api.Transaction, len(xcts))
	for i, x := range xcts {
		out[i] = toAPITransaction(x)
	}
	return connect.NewResponse(&api.RecentTransactionsResponse{Transactions: out}), nil
}

// GetSummary reports totals and the settle-up plan of a group.
func (s *LedgerService) GetSummary(ctx context.Context, req *connect.Request[api.GetSummaryRequest]) (*connect.Response[api.GetSummaryResponse], error) {
	slog.Info("GetSummary request received", "group", req.Msg.Group)

	summary, err := s.store.Summary(req.Msg.Group)
	if err != nil {
		slog.Warn("GetSummary failed", "group", req.Msg.Group, "error", err)
		return nil, toConnectError(err)
	}

	settlements := make([]*api.Settlement, len(summary.Settlements))
	for i, st := range summary.Settlements {
		settlements[i] = &api.Settlement{From: st.From, To: st.To, Amount: st.Amount}
	}

	slog.Info("GetSummary successful",
		"group", req.Msg.Group,
		"members_count", len(summary.Members),
		"settlements_count", len(settlements),
	)

	return connect.NewResponse(&api.GetSummaryResponse{
		Group:       summary.Group,
		Total:       summary.Total,
		FairShare:   summary.FairShare,
		Members:     toAPIUsers(summary.Members),
		Settlements: settlements,
	}), nil
}

// publish delivers a committed mutation. Failures are logged only: the
// ledger change has already happened.
func (s *LedgerService) publish(ctx context.Context, event events.Event) {
	event.OccurredAt = time.Now()
	if err := s.publisher.Publish(ctx, event); err != nil {
		slog.Error("Failed to publish ledger event", "type", event.Type, "group", event.Group, "error", err)
	}
}
