package httppresentation

import (
	"math"
	"net/http"
	"time"

	appdiscount "github.com/Zhima-Mochi/minishop-marketplace/internal/application/discount"
	appitem "github.com/Zhima-Mochi/minishop-marketplace/internal/application/item"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/application/purchase"
	appreservation "github.com/Zhima-Mochi/minishop-marketplace/internal/application/reservation"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/domain/category"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/domain/identity"
	"github.com/Zhima-Mochi/minishop-marketplace/internal/domain/item"
)

type listItemRequest struct {
	Price int64  `json:"price"`
	Title string `json:"title"`
}

type idResponse struct {
	ID int64 `json:"id"`
}

func (h *Handler) handleListItem(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, errCallerRequired)
		return
	}
	var req listItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	id, err := h.svc.Items.List(r.Context(), appitem.ListInput{Owner: caller, Price: req.Price, Title: req.Title})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, idResponse{ID: int64(id)})
}

type discountView struct {
	Percent         int   `json:"percent"`
	DiscountedPrice int64 `json:"discounted_price"`
}

type reservationView struct {
	Reserver  string    `json:"reserver"`
	ExpiresAt time.Time `json:"expires_at"`
}

type itemResponse struct {
	ID          int64            `json:"id"`
	Owner       string           `json:"owner"`
	Price       int64            `json:"price"`
	Title       string           `json:"title"`
	Listed      bool             `json:"listed"`
	Discount    *discountView    `json:"discount,omitempty"`
	Reservation *reservationView `json:"reservation,omitempty"`
}

func (h *Handler) handleGetItem(w http.ResponseWriter, r *http.Request) {
	raw, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, errInvalidID)
		return
	}
	ctx := r.Context()
	id := item.ID(raw)

	it, found, err := h.svc.Items.Get(ctx, id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if !found {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "item not found", Code: "not_found"})
		return
	}

	resp := itemResponse{
		ID:     int64(it.ID),
		Owner:  it.Owner.String(),
		Price:  it.Price,
		Title:  it.Title,
		Listed: it.IsListed(),
	}

	if h.svc.Discounts != nil {
		d, found, err := h.svc.Discounts.Get(ctx, id)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		if found {
			quoted, err := h.svc.Discounts.Quote(ctx, id)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			resp.Discount = &discountView{Percent: d.Percent, DiscountedPrice: quoted}
		}
	}
	if h.svc.Reservations != nil {
		res, found, err := h.svc.Reservations.Get(ctx, id)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		if found {
			resp.Reservation = &reservationView{Reserver: res.Reserver.String(), ExpiresAt: res.ExpiresAt}
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

type purchaseResponse struct {
	ID     int64  `json:"id"`
	Seller string `json:"seller"`
	Owner  string `json:"owner"`
	Price  int64  `json:"price"`
}

func (h *Handler) handlePurchase(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, errCallerRequired)
		return
	}
	raw, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, errInvalidID)
		return
	}

	res, err := h.svc.Purchases.Execute(r.Context(), purchase.PurchaseInput{
		ItemID:   item.ID(raw),
		Buyer:    caller,
		Transfer: h.svc.Payments.For(caller),
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, purchaseResponse{
		ID:     int64(res.ItemID),
		Seller: res.Seller.String(),
		Owner:  res.Buyer.String(),
		Price:  res.Price,
	})
}

type setDiscountRequest struct {
	Percent int `json:"percent"`
}

func (h *Handler) handleSetDiscount(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, errCallerRequired)
		return
	}
	raw, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, errInvalidID)
		return
	}
	var req setDiscountRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	err := h.svc.Discounts.Set(r.Context(), appdiscount.SetInput{ItemID: item.ID(raw), Percent: req.Percent, Caller: caller})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type reserveRequest struct {
	TTLSeconds int64 `json:"ttl_seconds"`
}

// maxTTLSeconds is the longest hold whose duration still fits in time.Duration.
const maxTTLSeconds = int64(math.MaxInt64 / time.Second)

func (h *Handler) handleReserve(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, errCallerRequired)
		return
	}
	raw, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, errInvalidID)
		return
	}
	var req reserveRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.TTLSeconds < 0 || req.TTLSeconds > maxTTLSeconds {
		writeError(w, http.StatusBadRequest, errInvalidTTL)
		return
	}

	err := h.svc.Reservations.Reserve(r.Context(), appreservation.ReserveInput{
		ItemID:   item.ID(raw),
		Reserver: caller,
		TTL:      time.Duration(req.TTLSeconds) * time.Second,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type addCategoryRequest struct {
	Name string `json:"name"`
}

type categoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func (h *Handler) handleAddCategory(w http.ResponseWriter, r *http.Request) {
	var req addCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	id, err := h.svc.Categories.Add(r.Context(), req.Name)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, idResponse{ID: int64(id)})
}

func (h *Handler) handleGetCategory(w http.ResponseWriter, r *http.Request) {
	raw, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, errInvalidID)
		return
	}

	c, err := h.svc.Categories.Get(r.Context(), category.ID(raw))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, categoryResponse{ID: int64(c.ID), Name: c.Name})
}

func (h *Handler) handleListCategories(w http.ResponseWriter, r *http.Request) {
	all, err := h.svc.Categories.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	out := make([]categoryResponse, 0, len(all))
	for _, c := range all {
		out = append(out, categoryResponse{ID: int64(c.ID), Name: c.Name})
	}
	writeJSON(w, http.StatusOK, out)
}

type depositRequest struct {
	Amount int64 `json:"amount"`
}

type walletResponse struct {
	Owner   string `json:"owner"`
	Balance int64  `json:"balance"`
}

func (h *Handler) handleDeposit(w http.ResponseWriter, r *http.Request) {
	owner := identity.ID(r.PathValue("owner"))
	var req depositRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	balance, err := h.svc.Wallets.Deposit(r.Context(), owner, req.Amount)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, walletResponse{Owner: owner.String(), Balance: balance})
}

func (h *Handler) handleBalance(w http.ResponseWriter, r *http.Request) {
	owner := identity.ID(r.PathValue("owner"))

	balance, err := h.svc.Wallets.Balance(r.Context(), owner)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, walletResponse{Owner: owner.String(), Balance: balance})
}

type receiptView struct {
	ItemID int64     `json:"item_id"`
	Buyer  string    `json:"buyer"`
	Title  string    `json:"title"`
	Price  int64     `json:"price"`
	SoldAt time.Time `json:"sold_at"`
}

type salesResponse struct {
	Seller   string        `json:"seller"`
	Count    int           `json:"count"`
	Revenue  int64         `json:"revenue"`
	Receipts []receiptView `json:"receipts"`
}

func (h *Handler) handleSales(w http.ResponseWriter, r *http.Request) {
	seller := identity.ID(r.PathValue("owner"))

	summary, err := h.svc.Sales.Summary(r.Context(), seller)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	resp := salesResponse{
		Seller:   summary.Seller.String(),
		Count:    summary.Count,
		Revenue:  summary.Revenue,
		Receipts: make([]receiptView, 0, len(summary.Receipts)),
	}
	for _, rc := range summary.Receipts {
		resp.Receipts = append(resp.Receipts, receiptView{
			ItemID: int64(rc.ItemID),
			Buyer:  rc.Buyer.String(),
			Title:  rc.Title,
			Price:  rc.Price,
			SoldAt: rc.SoldAt,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}
