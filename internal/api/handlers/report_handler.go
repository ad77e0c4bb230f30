package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/andresuchdata/smart-reorder/backend-go/internal/domain"
	"github.com/andresuchdata/smart-reorder/backend-go/internal/service"
	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	service *service.ReportService
}

func NewReportHandler(service *service.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

type simulationBody struct {
	ProductID  string  `json:"product_id"`
	Multiplier float64 `json:"multiplier"`
}

// parseSimulation reads the optional simulate_product and multiplier query params.
func parseSimulation(c *gin.Context) (service.SimulationRequest, error) {
	productID := strings.TrimSpace(c.Query("simulate_product"))
	if productID == "" {
		return service.SimulationRequest{}, nil
	}

	req := service.SimulationRequest{Active: true, ProductID: productID}
	if raw := strings.TrimSpace(c.Query("multiplier")); raw != "" {
		m, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return req, fmt.Errorf("%w: multiplier %q is not a number", domain.ErrInvalidInput, raw)
		}
		req.Multiplier = m
	}
	return req, nil
}

func (h *ReportHandler) GetReorder(c *gin.Context) {
	report, err := h.service.Generate(c.Request.Context(), service.SimulationRequest{})
	if err != nil {
		respondError(c, err, "failed to generate report")
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *ReportHandler) Simulate(c *gin.Context) {
	var body simulationBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	report, err := h.service.Generate(c.Request.Context(), service.SimulationRequest{
		Active:     true,
		ProductID:  body.ProductID,
		Multiplier: body.Multiplier,
	})
	if err != nil {
		respondError(c, err, "failed to run simulation")
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *ReportHandler) DownloadCSV(c *gin.Context) {
	req, err := parseSimulation(c)
	if err != nil {
		respondError(c, err, "invalid simulation parameters")
		return
	}

	var buf bytes.Buffer
	if err := h.service.WriteCSV(c.Request.Context(), &buf, req); err != nil {
		respondError(c, err, "failed to render report")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="reorder_report.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func (h *ReportHandler) Export(c *gin.Context) {
	req, err := parseSimulation(c)
	if err != nil {
		respondError(c, err, "invalid simulation parameters")
		return
	}

	key, err := h.service.Export(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "failed to export report")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "report exported", "key": key})
}
