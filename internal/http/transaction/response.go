package transaction

import (
	"time"

	"github.com/dkrasnov/kopilka/internal/transaction"
)

type transactionResponse struct {
	ID          int64            `json:"id"`
	OwnerID     int64            `json:"owner_id"`
	Amount      float64          `json:"amount"`
	Category    string           `json:"category"`
	Date        string           `json:"date"`
	Description string           `json:"description"`
	Type        transaction.Type `json:"type"`
}

func toResponse(tx *transaction.Transaction) transactionResponse {
	return transactionResponse{
		ID:          tx.ID,
		OwnerID:     tx.OwnerID,
		Amount:      tx.Amount,
		Category:    tx.Category,
		Date:        tx.Date.Format(time.DateOnly),
		Description: tx.Description,
		Type:        tx.Type,
	}
}

func toResponseList(txs []*transaction.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx)
	}

	return resp
}
