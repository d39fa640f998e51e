package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ranayash24/formbricks/pkg/service"
)

// CreateTagInput DTO for creating a new tag
type CreateTagInput struct {
	Name string `json:"name" binding:"required"`
}

// CreateTag creates a tag in the caller's environment.
func (h *Handler) CreateTag(c *gin.Context) {
	var input CreateTagInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tag, err := h.Tags.Create(c.Request.Context(), environmentID(c), input.Name)
	if err != nil {
		if errors.Is(err, service.ErrTagNameTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "Tag name already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create tag"})
		return
	}

	c.JSON(http.StatusCreated, tag)
}

// ListTags retrieves all tags of the caller's environment.
func (h *Handler) ListTags(c *gin.Context) {
	tags, err := h.Tags.List(c.Request.Context(), environmentID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tags"})
		return
	}

	c.JSON(http.StatusOK, tags)
}

// UpdateTagInput DTO for renaming a tag
type UpdateTagInput struct {
	Name string `json:"name" binding:"required"`
}

// UpdateTag renames a tag. The path segment may be a full id or an id
// prefix from list output.
func (h *Handler) UpdateTag(c *gin.Context) {
	existing, err := h.Tags.GetByRef(c.Request.Context(), environmentID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrTagNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Tag not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tag"})
		return
	}

	var input UpdateTagInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tag, err := h.Tags.Rename(c.Request.Context(), environmentID(c), existing.ID, input.Name)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTagNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Tag not found"})
		case errors.Is(err, service.ErrTagNameTaken):
			c.JSON(http.StatusConflict, gin.H{"error": "Tag name already exists"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update tag"})
		}
		return
	}

	c.JSON(http.StatusOK, tag)
}

// DeleteTag deletes a tag and its response associations.
func (h *Handler) DeleteTag(c *gin.Context) {
	tag, err := h.Tags.GetByRef(c.Request.Context(), environmentID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrTagNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Tag not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tag"})
		return
	}

	if err := h.Tags.Delete(c.Request.Context(), environmentID(c), tag.ID); err != nil {
		if errors.Is(err, service.ErrTagNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Tag not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete tag"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Tag deleted successfully"})
}

// MergeTagsInput DTO for merging a tag into another
type MergeTagsInput struct {
	DestinationTagID string `json:"destination_tag_id" binding:"required"`
}

// MergeTags collapses the tag in the path into the destination tag from
// the body and returns the destination tag.
func (h *Handler) MergeTags(c *gin.Context) {
	source, err := h.Tags.GetByRef(c.Request.Context(), environmentID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrTagNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Tag not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tag"})
		return
	}

	var input MergeTagsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	destination, err := h.Tags.GetByRef(c.Request.Context(), environmentID(c), input.DestinationTagID)
	if err != nil {
		if errors.Is(err, service.ErrTagNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Destination tag not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tag"})
		return
	}

	tag, err := h.Tags.Merge(c.Request.Context(), environmentID(c), source.ID, destination.ID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTagNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Tag not found"})
		case errors.Is(err, service.ErrMergeSameTag):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot merge a tag into itself"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to merge tags"})
		}
		return
	}

	c.JSON(http.StatusOK, tag)
}
