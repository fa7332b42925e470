package service

import (
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/pkg/api"
)

func toAPIGroup(g models.Group) *api.Group {
	return &api.Group{
		Name:         g.Name,
		Users:        g.Users,
		Transactions: g.Transactions,
		CreatedAt:    g.CreatedAt,
	}
}

func toAPIUser(u models.User) *api.User {
	return &api.User{
		Name:      u.Name,
		Balance:   u.Balance,
		CreatedAt: u.CreatedAt,
	}
}

func toAPIUsers(users []models.User) []*api.User {
	out := make([]*api.User, len(users))
	for i, u := range users {
		out[i] = toAPIUser(u)
	}
	return out
}

func toAPITransaction(x models.Transaction) *api.Transaction {
	return &api.Transaction{
		ID:        x.ID,
		User:      x.User,
		Amount:    x.Amount,
		CreatedAt: x.CreatedAt,
	}
}

func fromAPIGroup(g *api.Group) models.Group {
	if g == nil {
		return models.Group{}
	}
	return models.Group{
		Name:         g.Name,
		Users:        g.Users,
		Transactions: g.Transactions,
		CreatedAt:    g.CreatedAt,
	}
}

func fromAPIUser(u *api.User) models.User {
	if u == nil {
		return models.User{}
	}
	return models.User{
		Name:      u.Name,
		Balance:   u.Balance,
		CreatedAt: u.CreatedAt,
	}
}

func fromAPIUsers(users []*api.User) []models.User {
	out := make([]models.User, len(users))
	for i, u := range users {
		out[i] = fromAPIUser(u)
	}
	return out
}

func fromAPITransaction(x *api.Transaction) models.Transaction {
	if x == nil {
		return models.Transaction{}
	}
	return models.Transaction{
		ID:        x.ID,
		User:      x.User,
		Amount:    x.Amount,
		CreatedAt: x.CreatedAt,
	}
}
