package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ranayash24/formbricks/pkg/models"
	"github.com/ranayash24/formbricks/pkg/service"
)

// CreateSurveyInput DTO for creating a new survey
type CreateSurveyInput struct {
	Name        string `json:"name" binding:"required"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

// CreateSurvey creates a survey in the caller's environment.
func (h *Handler) CreateSurvey(c *gin.Context) {
	var input CreateSurveyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	surveyType := NormalizeSurveyType(input.Type)
	var description *string
	if input.Description != "" {
		description = &input.Description
	}

	survey, err := h.Surveys.Create(c.Request.Context(), environmentID(c), input.Name, surveyType, description)
	if err != nil {
		if errors.Is(err, service.ErrEnvironmentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Environment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create survey"})
		return
	}

	c.JSON(http.StatusCreated, survey)
}

// ListSurveys retrieves all surveys of the caller's environment.
func (h *Handler) ListSurveys(c *gin.Context) {
	surveys, err := h.Surveys.List(c.Request.Context(), environmentID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve surveys"})
		return
	}

	c.JSON(http.StatusOK, surveys)
}

// GetSurvey retrieves a single survey, including its share URL. The path
// segment may be a full id or an id prefix from list output.
func (h *Handler) GetSurvey(c *gin.Context) {
	survey, err := h.Surveys.GetByRef(c.Request.Context(), environmentID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrSurveyNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Survey not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve survey"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"survey":    survey,
		"share_url": h.Surveys.ShareURL(survey),
	})
}

// UpdateSurveyInput DTO for updating a survey
type UpdateSurveyInput struct {
	Name        *string `json:"name"`
	Status      *string `json:"status"`
	Description *string `json:"description"`
}

// UpdateSurvey updates an existing survey.
func (h *Handler) UpdateSurvey(c *gin.Context) {
	existing, err := h.Surveys.GetByRef(c.Request.Context(), environmentID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrSurveyNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Survey not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve survey"})
		return
	}

	var input UpdateSurveyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	survey, err := h.Surveys.Update(c.Request.Context(), environmentID(c), existing.ID, service.UpdateInput{
		Name:        input.Name,
		Status:      input.Status,
		Description: input.Description,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSurveyNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Survey not found"})
		case errors.Is(err, service.ErrInvalidSurveyStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid survey status"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update survey"})
		}
		return
	}

	c.JSON(http.StatusOK, survey)
}

// DeleteSurvey deletes a survey and its responses.
func (h *Handler) DeleteSurvey(c *gin.Context) {
	survey, err := h.Surveys.GetByRef(c.Request.Context(), environmentID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrSurveyNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Survey not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve survey"})
		return
	}

	if err := h.Surveys.Delete(c.Request.Context(), environmentID(c), survey.ID); err != nil {
		if errors.Is(err, service.ErrSurveyNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Survey not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete survey"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Survey deleted successfully"})
}

// NormalizeSurveyType maps user input to a survey type, defaulting to link.
func NormalizeSurveyType(t string) models.SurveyType {
	switch t {
	case "app", "APP":
		return models.SurveyTypeApp
	case "link", "LINK", "":
		return models.SurveyTypeLink
	default:
		return models.SurveyTypeLink
	}
}
