package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Skufu/diagnosa/internal/diagnosis"
	"github.com/Skufu/diagnosa/internal/symptom"
)

type symptomField struct {
	Name    symptom.Feature `json:"name"`
	Label   string          `json:"label"`
	Hint    string          `json:"hint"`
	Choices []string        `json:"choices"`
}

type diagnosisResponse struct {
	ID              string             `json:"id"`
	Input           symptom.Input      `json:"input"`
	Label           int                `json:"label"`
	Category        diagnosis.Category `json:"category"`
	Probability     float64            `json:"probability"`
	ProbabilityText string             `json:"probabilityText"`
	Recommendations []string           `json:"recommendations"`
}

type importanceResponse struct {
	diagnosis.Importance
	Percent string `json:"percent"`
}

func (s *server) readyz(c *gin.Context) {
	status := http.StatusOK
	body := gin.H{
		"status":  "ok",
		"model":   availability(s.diagnosis.Err()),
		"dataset": availability(s.dataset.Err()),
		"db":      "disabled",
	}
	if !s.diagnosis.Available() {
		status = http.StatusServiceUnavailable
		body["status"] = "degraded"
	}

	if s.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		body["db"] = "ok"
		if err := s.db.Ping(ctx); err != nil {
			status = http.StatusServiceUnavailable
			body["status"] = "degraded"
			body["db"] = fmt.Sprintf("unhealthy: %v", err)
		}
	}

	c.JSON(status, body)
}

func availability(err error) string {
	if err != nil {
		return fmt.Sprintf("unavailable: %v", err)
	}
	return "ok"
}

func (s *server) symptoms(c *gin.Context) {
	fields := make([]symptomField, 0, len(symptom.Features()))
	for _, f := range symptom.Features() {
		fields = append(fields, symptomField{Name: f, Label: f.Label(), Hint: f.Hint(), Choices: f.Choices()})
	}
	c.JSON(http.StatusOK, gin.H{"symptoms": fields})
}

func (s *server) diagnose(c *gin.Context) {
	if !s.diagnosis.Available() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "model unavailable",
			"details": s.diagnosis.Err().Error(),
		})
		return
	}

	var input symptom.Input
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	result, err := s.diagnosis.Diagnose(input)
	switch {
	case errors.Is(err, symptom.ErrUnknownCategory):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   "validation_failed",
			"details": err.Error(),
		})
		return
	case errors.Is(err, diagnosis.ErrUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "model unavailable", "details": err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "diagnosis failed", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, diagnosisResponse{
		ID:              c.GetString("requestID"),
		Input:           input,
		Label:           result.Label,
		Category:        result.Category,
		Probability:     result.Probability,
		ProbabilityText: result.Percent(),
		Recommendations: result.Recommendations,
	})
}

func (s *server) datasetRecords(c *gin.Context) {
	records, err := s.dataset.Records()
	if err != nil {
		datasetUnavailable(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": len(records), "records": records})
}

func (s *server) datasetSummary(c *gin.Context) {
	summary, err := s.dataset.Summary()
	if err != nil {
		datasetUnavailable(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func datasetUnavailable(c *gin.Context, err error) {
	c.JSON(http.StatusServiceUnavailable, gin.H{
		"error":   "dataset unavailable",
		"details": err.Error(),
	})
}

func (s *server) model(c *gin.Context) {
	m, err := s.diagnosis.Model()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "model unavailable", "details": err.Error()})
		return
	}

	importances := []importanceResponse{}
	for _, imp := range m.Importances() {
		importances = append(importances, importanceResponse{
			Importance: imp,
			Percent:    fmt.Sprintf("%.1f%%", imp.Importance*100),
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"criterion":    m.Criterion(),
		"featureNames": m.Order().Strings(),
		"importances":  importances,
	})
}

func (s *server) diagram(c *gin.Context) {
	if !s.diagnosis.Available() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "model unavailable"})
		return
	}
	if !fileExists(s.diagramPath) {
		c.JSON(http.StatusNotFound, gin.H{"error": "diagram not found"})
		return
	}
	c.File(s.diagramPath)
}
