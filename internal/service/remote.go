package service

import (
	"context"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
	"github.com/mmynk/splitledger/pkg/api"
	"github.com/mmynk/splitledger/pkg/api/apiconnect"
)

// Ensure RemoteLedger implements storage.Ledger
var _ storage.Ledger = (*RemoteLedger)(nil)

// RemoteLedger implements storage.Ledger over a LedgerService client, so the
// REPL can drive a running server the same way it drives an in-process ledger.
// Errors come back as the ledger sentinels the server mapped them from.
type RemoteLedger struct {
	client  apiconnect.LedgerServiceClient
	timeout time.Duration
}

// NewRemoteLedger wraps client. Each call is bounded by timeout.
func NewRemoteLedger(client apiconnect.LedgerServiceClient, timeout time.Duration) *RemoteLedger {
	return &RemoteLedger{client: client, timeout: timeout}
}

func (r *RemoteLedger) callContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), r.timeout)
}

func (r *RemoteLedger) AddGroup(name string) (models.Group, error) {
	ctx, cancel := r.callContext()
	defer cancel()

	resp, err := r.client.AddGroup(ctx, connect.NewRequest(&api.AddGroupRequest{Name: name}))
	if err != nil {
		return models.Group{}, fromConnectError(err)
	}
	return fromAPIGroup(resp.Msg.Group), nil
}

func (r *RemoteLedger) ListGroups() ([]string, error) {
	ctx, cancel := r.callContext()
	defer cancel()

	resp, err := r.client.ListGroups(ctx, connect.NewRequest(&api.ListGroupsRequest{}))
	if err != nil {
		return nil, fromConnectError(err)
	}
	if resp.Msg.Groups == nil {
		return []string{}, nil
	}
	return resp.Msg.Groups, nil
}

func (r *RemoteLedger) AddUser(group, name string) (models.User, error) {
	ctx, cancel := r.callContext()
	defer cancel()

	resp, err := r.client.AddUser(ctx, connect.NewRequest(&api.AddUserRequest{Group: group, Name: name}))
	if err != nil {
		return models.User{}, fromConnectError(err)
	}
	return fromAPIUser(resp.Msg.User), nil
}

func (r *RemoteLedger) RemoveUser(group, name string) (int, error) {
	ctx, cancel := r.callContext()
	defer cancel()

	resp, err := r.client.RemoveUser(ctx, connect.NewRequest(&api.RemoveUserRequest{Group: group, Name: name}))
	if err != nil {
		return 0, fromConnectError(err)
	}
	return resp.Msg.RemovedTransactions, nil
}

func (r *RemoteLedger) ListUsers(group string) ([]models.User, error) {
	ctx, cancel := r.callContext()
	defer cancel()

	resp, err := r.client.ListUsers(ctx, connect.NewRequest(&api.ListUsersRequest{Group: group}))
	if err != nil {
		return nil, fromConnectError(err)
	}
	return fromAPIUsers(resp.Msg.Users), nil
}

func (r *RemoteLedger) UserBalance(group, name string) (float64, error) {
	ctx, cancel := r.callContext()
	defer cancel()

	resp, err := r.client.UserBalance(ctx, connect.NewRequest(&api.UserBalanceRequest{Group: group, Name: name}))
	if err != nil {
		return 0, fromConnectError(err)
	}
	return resp.Msg.Balance, nil
}

func (r *RemoteLedger) UnderPaid(group string) ([]models.User, error) {
	ctx, cancel := r.callContext()
	defer cancel()

	resp, err := r.client.UnderPaid(ctx, connect.NewRequest(&api.UnderPaidRequest{Group: group}))
	if err != nil {
		return nil, fromConnectError(err)
	}
	return fromAPIUsers(resp.Msg.Users), nil
}

func (r *RemoteLedger) AddTransaction(group, user string, amount float64) (models.Transaction, error) {
	ctx, cancel := r.callContext()
	defer cancel()

	resp, err := r.client.AddTransaction(ctx, connect.NewRequest(&api.AddTransactionRequest{
		Group:  group,
		User:   user,
		Amount: amount,
	}))
	if err != nil {
		return models.Transaction{}, fromConnectError(err)
	}
	return fromAPITransaction(resp.Msg.Transaction), nil
}

func (r *RemoteLedger) RecentTransactions(group string, n int) ([]models.Transaction, error) {
	ctx, cancel := r.callContext()
	defer cancel()

	resp, err := r.client.RecentTransactions(ctx, connect.NewRequest(&api.RecentTransactionsRequest{
		Group: group,
		Count: n,
	}))
	if err != nil {
		return nil, fromConnectError(err)
	}

	xcts := make([]models.Transaction, len(resp.Msg.Transactions))
	for i, x := range resp.Msg.Transactions {
		xcts[i] = fromAPITransaction(x)
	}
	return xcts, nil
}

func (r *RemoteLedger) Summary(group string) (models.Summary, error) {
	ctx, cancel := r.callContext()
	defer cancel()

	resp, err := r.client.GetSummary(ctx, connect.NewRequest(&api.GetSummaryRequest{Group: group}))
	if err != nil {
		return models.Summary{}, fromConnectError(err)
	}

	summary := models.Summary{
		Group:     resp.Msg.Group,
		Total:     resp.Msg.Total,
		FairShare: resp.Msg.FairShare,
		Members:   fromAPIUsers(resp.Msg.Members),
	}
	for _, st := range resp.Msg.Settlements {
		if st == nil {
			continue
		}
		summary.Settlements = append(summary.Settlements, models.Settlement{
			From:   st.From,
			To:     st.To,
			Amount: st.Amount,
		})
	}
	return summary, nil
}
