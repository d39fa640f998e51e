package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ranayash24/formbricks/pkg/service"
	"gorm.io/datatypes"
)

// CreateResponseInput DTO for submitting a response
type CreateResponseInput struct {
	Data     map[string]any `json:"data" binding:"required"`
	Finished bool           `json:"finished"`
}

// CreateResponse stores a submission for a survey.
func (h *Handler) CreateResponse(c *gin.Context) {
	survey, err := h.Surveys.GetByRef(c.Request.Context(), environmentID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrSurveyNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Survey not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve survey"})
		return
	}

	var input CreateResponseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	raw, err := json.Marshal(input.Data)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid response data"})
		return
	}

	response, err := h.Responses.Create(c.Request.Context(), environmentID(c), survey.ID, datatypes.JSON(raw), input.Finished)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create response"})
		return
	}

	c.JSON(http.StatusCreated, response)
}

// ListResponses retrieves a survey's responses.
func (h *Handler) ListResponses(c *gin.Context) {
	survey, err := h.Surveys.GetByRef(c.Request.Context(), environmentID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrSurveyNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Survey not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve survey"})
		return
	}

	responses, err := h.Responses.List(c.Request.Context(), environmentID(c), survey.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve responses"})
		return
	}

	c.JSON(http.StatusOK, responses)
}

// GetResponse retrieves a single response with its tags.
func (h *Handler) GetResponse(c *gin.Context) {
	response, err := h.Responses.GetByRef(c.Request.Context(), environmentID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrResponseNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Response not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve response"})
		return
	}

	c.JSON(http.StatusOK, response)
}

// DeleteResponse deletes a response.
func (h *Handler) DeleteResponse(c *gin.Context) {
	response, err := h.Responses.GetByRef(c.Request.Context(), environmentID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrResponseNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Response not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve response"})
		return
	}

	if err := h.Responses.Delete(c.Request.Context(), environmentID(c), response.ID); err != nil {
		if errors.Is(err, service.ErrResponseNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Response not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete response"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Response deleted successfully"})
}

// TagResponseInput DTO for applying a tag to a response
type TagResponseInput struct {
	TagID string `json:"tag_id" binding:"required"`
}

// TagResponse applies a tag to a response.
func (h *Handler) TagResponse(c *gin.Context) {
	response, err := h.Responses.GetByRef(c.Request.Context(), environmentID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrResponseNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Response not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve response"})
		return
	}

	var input TagResponseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tag, err := h.Tags.GetByRef(c.Request.Context(), environmentID(c), input.TagID)
	if err != nil {
		if errors.Is(err, service.ErrTagNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Tag not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tag"})
		return
	}

	if err := h.Responses.AddTag(c.Request.Context(), environmentID(c), response.ID, tag.ID); err != nil {
		switch {
		case errors.Is(err, service.ErrResponseNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Response not found"})
		case errors.Is(err, service.ErrTagNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Tag not found"})
		case errors.Is(err, service.ErrTagAlreadyApplied):
			c.JSON(http.StatusConflict, gin.H{"error": "Tag already applied"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to tag response"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Tag applied successfully"})
}

// UntagResponse removes a tag from a response.
func (h *Handler) UntagResponse(c *gin.Context) {
	response, err := h.Responses.GetByRef(c.Request.Context(), environmentID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrResponseNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Response not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve response"})
		return
	}
	tag, err := h.Tags.GetByRef(c.Request.Context(), environmentID(c), c.Param("tagId"))
	if err != nil {
		if errors.Is(err, service.ErrTagNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Tag not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tag"})
		return
	}

	if err := h.Responses.RemoveTag(c.Request.Context(), environmentID(c), response.ID, tag.ID); err != nil {
		if errors.Is(err, service.ErrTagNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Tag not found on response"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to untag response"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Tag removed successfully"})
}

// ExportResponses streams a survey's responses as a CSV attachment.
func (h *Handler) ExportResponses(c *gin.Context) {
	survey, err := h.Surveys.GetByRef(c.Request.Context(), environmentID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrSurveyNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Survey not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve survey"})
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "responses-"+survey.ID.String()+".csv"))

	if err := h.Responses.ExportCSV(c.Request.Context(), environmentID(c), survey.ID, c.Writer); err != nil {
		// Headers may already be out; nothing better to do than log via gin.
		_ = c.Error(err)
	}
}
