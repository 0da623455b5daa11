package importcsv

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dkrasnov/kopilka/internal/http/auth"
	"github.com/dkrasnov/kopilka/internal/importer"
	"github.com/dkrasnov/kopilka/internal/transaction"
)

type Handler struct {
	importSvc *importer.Service
	txSvc     *transaction.Service
}

func NewHandler(importSvc *importer.Service, txSvc *transaction.Service) *Handler {
	return &Handler{
		importSvc: importSvc,
		txSvc:     txSvc,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
}

type importResponse struct {
	BatchID  string  `json:"batch_id"`
	Imported int     `json:"imported"`
	IDs      []int64 `json:"ids"`
}

// importCSV bulk-creates transactions for the authenticated account from an
// uploaded statement. Every row goes through the transaction service, so an
// imported row is indistinguishable from a hand-entered one.
func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.FromContext(r.Context())

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	format := importer.Format(r.FormValue("format"))
	if format == "" {
		format = importer.FormatGeneric
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	params, err := h.importSvc.Import(format, file)
	if err != nil {
		http.Error(w, "failed to parse statement: "+err.Error(), http.StatusBadRequest)
		return
	}

	resp := importResponse{
		BatchID: uuid.NewString(),
		IDs:     make([]int64, 0, len(params)),
	}

	for _, p := range params {
		p.OwnerID = identity.AccountID

		tx, err := h.txSvc.Create(r.Context(), p)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		resp.IDs = append(resp.IDs, tx.ID)
	}

	resp.Imported = len(resp.IDs)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
