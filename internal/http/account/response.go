package account

import (
	"github.com/dkrasnov/kopilka/internal/account"
)

type accountResponse struct {
	ID    int64        `json:"id"`
	Email string       `json:"email"`
	Name  string       `json:"name"`
	Role  account.Role `json:"role"`
}

func toResponse(a *account.Account) accountResponse {
	return accountResponse{
		ID:    a.ID,
		Email: a.Email,
		Name:  a.Name,
		Role:  a.Role,
	}
}

func toResponseList(accounts []*account.Account) []accountResponse {
	out := make([]accountResponse, len(accounts))
	for i, a := range accounts {
		out[i] = toResponse(a)
	}

	return out
}
