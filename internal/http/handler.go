package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nurpe/formwork-contracts/internal/ai"
	"github.com/nurpe/formwork-contracts/internal/export"
	"github.com/nurpe/formwork-contracts/internal/model"
	"github.com/nurpe/formwork-contracts/internal/repository"
	"github.com/nurpe/formwork-contracts/internal/service"
)

// ClauseDrafter is the generative-text collaborator surface the handler
// depends on.
type ClauseDrafter interface {
	DraftClause(ctx context.Context, prompt string) (string, error)
	ReviewRisks(ctx context.Context, contractText string) (string, error)
}

type Handler struct {
	contracts *service.ContractService
	drafter   ClauseDrafter
	log       zerolog.Logger
}

func NewHandler(contracts *service.ContractService, drafter ClauseDrafter, log zerolog.Logger) *Handler {
	return &Handler{contracts: contracts, drafter: drafter, log: log}
}

func (h *Handler) Register(router gin.IRoutes) {
	router.GET("/contracts", h.listContracts)
	router.POST("/contracts", h.newContract)
	router.GET("/contracts/export/csv", h.exportContractsCSV)
	router.GET("/contracts/:id", h.getContract)
	router.PUT("/contracts/:id", h.saveContract)
	router.POST("/contracts/:id/delete-request", h.requestDelete)
	router.DELETE("/contracts/:id", h.confirmDelete)
	router.GET("/contracts/:id/pdf", h.contractPDF)

	router.GET("/history", h.priceHistory)
	router.GET("/history/export/xlsx", h.exportHistoryXLSX)

	router.GET("/parties/:directory", h.listParties)
	router.PUT("/parties/:directory", h.upsertParty)
	router.DELETE("/parties/:directory/:index", h.deleteParty)
	router.GET("/parties/:directory/export/csv", h.exportPartiesCSV)

	router.POST("/clauses/draft", h.draftClause)
	router.POST("/clauses/review", h.reviewRisks)
}

func (h *Handler) listContracts(c *gin.Context) {
	c.JSON(http.StatusOK, h.contracts.ListContracts())
}

func (h *Handler) newContract(c *gin.Context) {
	c.JSON(http.StatusCreated, h.contracts.NewContract())
}

func (h *Handler) getContract(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid contract id"})
		return
	}

	contract, err := h.contracts.GetContract(id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, contract)
}

func (h *Handler) saveContract(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid contract id"})
		return
	}

	var contract model.Contract
	if err := c.ShouldBindJSON(&contract); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if contract.ID == uuid.Nil {
		contract.ID = id
	}
	if contract.ID != id {
		c.JSON(http.StatusBadRequest, gin.H{"error": "contract id mismatch"})
		return
	}

	saved, err := h.contracts.SaveContract(c.Request.Context(), contract)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

func (h *Handler) requestDelete(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid contract id"})
		return
	}

	token, err := h.contracts.RequestDelete(id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"confirmToken": token})
}

type confirmDeleteRequest struct {
	ConfirmToken string `json:"confirmToken" binding:"required"`
}

func (h *Handler) confirmDelete(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid contract id"})
		return
	}

	var req confirmDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.contracts.ConfirmDelete(c.Request.Context(), id, req.ConfirmToken); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) contractPDF(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid contract id"})
		return
	}

	result, err := h.contracts.RenderContractPDF(id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, "application/pdf", result.Content)
}

func (h *Handler) exportContractsCSV(c *gin.Context) {
	content, err := export.ContractsCSV(h.contracts.ListContracts())
	if err != nil {
		h.handleError(c, err)
		return
	}
	fileName := "contracts-" + time.Now().Format("20060102") + ".csv"
	c.Header("Content-Disposition", "attachment; filename=\""+fileName+"\"")
	c.Data(http.StatusOK, "text/csv; charset=utf-8", content)
}

func (h *Handler) priceHistory(c *gin.Context) {
	c.JSON(http.StatusOK, h.contracts.PriceHistory())
}

func (h *Handler) exportHistoryXLSX(c *gin.Context) {
	result, err := h.contracts.ExportHistoryWorkbook()
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", result.Content)
}

func (h *Handler) listParties(c *gin.Context) {
	dir, err := repository.ParseDirectory(c.Param("directory"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid directory"})
		return
	}

	parties, err := h.contracts.ListParties(dir)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, parties)
}

func (h *Handler) upsertParty(c *gin.Context) {
	dir, err := repository.ParseDirectory(c.Param("directory"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid directory"})
		return
	}

	var party model.PartyInfo
	if err := c.ShouldBindJSON(&party); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.contracts.UpsertParty(c.Request.Context(), dir, party); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) deleteParty(c *gin.Context) {
	dir, err := repository.ParseDirectory(c.Param("directory"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid directory"})
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid index"})
		return
	}

	if err := h.contracts.DeleteParty(c.Request.Context(), dir, index); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) exportPartiesCSV(c *gin.Context) {
	dir, err := repository.ParseDirectory(c.Param("directory"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid directory"})
		return
	}

	parties, err := h.contracts.ListParties(dir)
	if err != nil {
		h.handleError(c, err)
		return
	}

	content, err := export.PartiesCSV(parties)
	if err != nil {
		h.handleError(c, err)
		return
	}
	fileName := "parties-" + string(dir) + "-" + time.Now().Format("20060102") + ".csv"
	c.Header("Content-Disposition", "attachment; filename=\""+fileName+"\"")
	c.Data(http.StatusOK, "text/csv; charset=utf-8", content)
}

type draftRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

func (h *Handler) draftClause(c *gin.Context) {
	var req draftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	text, err := h.drafter.DraftClause(c.Request.Context(), strings.TrimSpace(req.Prompt))
	if err != nil {
		h.handleDraftError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"content": text})
}

type reviewRequest struct {
	ContractText string `json:"contractText" binding:"required"`
}

func (h *Handler) reviewRisks(c *gin.Context) {
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	text, err := h.drafter.ReviewRisks(c.Request.Context(), strings.TrimSpace(req.ContractText))
	if err != nil {
		h.handleDraftError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"content": text})
}

// handleDraftError keeps drafting failures non-fatal: they map to retryable
// statuses and never disturb the editing session's state.
func (h *Handler) handleDraftError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ai.ErrBusy):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "a drafting request is already in progress"})
	case errors.Is(err, ai.ErrUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "clause drafting service unavailable"})
	default:
		h.log.Error().Err(err).Msg("clause drafting failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrDeleteNotConfirmed):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func parseID(raw string) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimSpace(raw))
}
