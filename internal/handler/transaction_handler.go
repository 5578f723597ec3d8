package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/studio-api/internal/models"
	"github.com/noah-isme/studio-api/internal/service"
	"github.com/noah-isme/studio-api/pkg/response"
)

type transactionService interface {
	List(ctx context.Context) ([]models.Transaction, error)
	Create(ctx context.Context, req service.CreateTransactionRequest) (*models.Transaction, error)
	UpdateStatus(ctx context.Context, id int64, req service.UpdateTransactionRequest) (*models.Transaction, error)
	Delete(ctx context.Context, id int64) error
}

// TransactionHandler exposes financial entry endpoints.
type TransactionHandler struct {
	transactions transactionService
}

// NewTransactionHandler constructs TransactionHandler.
func NewTransactionHandler(transactions transactionService) *TransactionHandler {
	return &TransactionHandler{transactions: transactions}
}

// List godoc
// @Summary List transactions
// @Tags Transactions
// @Produce json
// @Success 200 {array} models.Transaction
// @Failure 500 {object} response.ErrorBody
// @Router /transactions [get]
func (h *TransactionHandler) List(c *gin.Context) {
	transactions, err := h.transactions.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, transactions)
}

// Create godoc
// @Summary Record transaction
// @Description Status defaults to Pendente when omitted.
// @Tags Transactions
// @Accept json
// @Produce json
// @Param payload body service.CreateTransactionRequest true "Transaction payload"
// @Success 201 {object} models.Transaction
// @Failure 500 {object} response.ErrorBody
// @Router /transactions [post]
func (h *TransactionHandler) Create(c *gin.Context) {
	var req service.CreateTransactionRequest
	if !bindJSON(c, &req) {
		return
	}
	transaction, err := h.transactions.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, transaction)
}

// Update godoc
// @Summary Change transaction status
// @Tags Transactions
// @Accept json
// @Produce json
// @Param id path int true "Transaction ID"
// @Param payload body service.UpdateTransactionRequest true "New status"
// @Success 200 {object} models.Transaction
// @Failure 400 {object} response.ErrorBody
// @Failure 500 {object} response.ErrorBody
// @Router /transactions/{id} [patch]
func (h *TransactionHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req service.UpdateTransactionRequest
	if !bindJSON(c, &req) {
		return
	}
	transaction, err := h.transactions.UpdateStatus(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, transaction)
}

// Delete godoc
// @Summary Delete transaction
// @Tags Transactions
// @Param id path int true "Transaction ID"
// @Success 204
// @Failure 500 {object} response.ErrorBody
// @Router /transactions/{id} [delete]
func (h *TransactionHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.transactions.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
