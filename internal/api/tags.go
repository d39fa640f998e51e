package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ranayash24/formbricks/pkg/models"
)

// ListTags returns all tags of the key's environment.
func (c *Client) ListTags() ([]models.Tag, error) {
	body, err := c.makeRequest(http.MethodGet, "/tags", nil)
	if err != nil {
		return nil, err
	}

	var tags []models.Tag
	if err := json.Unmarshal(body, &tags); err != nil {
		return nil, fmt.Errorf("failed to parse tags: %w", err)
	}
	return tags, nil
}

// CreateTag creates a tag.
func (c *Client) CreateTag(name string) (*models.Tag, error) {
	body, err := c.makeRequest(http.MethodPost, "/tags", map[string]string{"name": name})
	if err != nil {
		return nil, err
	}

	var tag models.Tag
	if err := json.Unmarshal(body, &tag); err != nil {
		return nil, fmt.Errorf("failed to parse tag: %w", err)
	}
	return &tag, nil
}

// RenameTag changes a tag's name.
func (c *Client) RenameTag(tagID, name string) (*models.Tag, error) {
	body, err := c.makeRequest(http.MethodPut, "/tags/"+tagID, map[string]string{"name": name})
	if err != nil {
		return nil, err
	}

	var tag models.Tag
	if err := json.Unmarshal(body, &tag); err != nil {
		return nil, fmt.Errorf("failed to parse tag: %w", err)
	}
	return &tag, nil
}

// DeleteTag removes a tag.
func (c *Client) DeleteTag(tagID string) error {
	_, err := c.makeRequest(http.MethodDelete, "/tags/"+tagID, nil)
	return err
}

// MergeTags merges the source tag into the destination tag and returns the
// destination.
func (c *Client) MergeTags(sourceID, destinationID string) (*models.Tag, error) {
	body, err := c.makeRequest(http.MethodPost, "/tags/"+sourceID+"/merge",
		map[string]string{"destination_tag_id": destinationID})
	if err != nil {
		return nil, err
	}

	var tag models.Tag
	if err := json.Unmarshal(body, &tag); err != nil {
		return nil, fmt.Errorf("failed to parse tag: %w", err)
	}
	return &tag, nil
}
