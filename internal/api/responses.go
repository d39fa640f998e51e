package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ranayash24/formbricks/pkg/models"
)

// ListResponses returns a survey's responses.
func (c *Client) ListResponses(surveyID string) ([]models.Response, error) {
	body, err := c.makeRequest(http.MethodGet, "/surveys/"+surveyID+"/responses", nil)
	if err != nil {
		return nil, err
	}

	var responses []models.Response
	if err := json.Unmarshal(body, &responses); err != nil {
		return nil, fmt.Errorf("failed to parse responses: %w", err)
	}
	return responses, nil
}

// GetResponse returns a single response with its tags.
func (c *Client) GetResponse(responseID string) (*models.Response, error) {
	body, err := c.makeRequest(http.MethodGet, "/responses/"+responseID, nil)
	if err != nil {
		return nil, err
	}

	var response models.Response
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &response, nil
}

// TagResponse applies a tag to a response.
func (c *Client) TagResponse(responseID, tagID string) error {
	_, err := c.makeRequest(http.MethodPost, "/responses/"+responseID+"/tags",
		map[string]string{"tag_id": tagID})
	return err
}

// UntagResponse removes a tag from a response.
func (c *Client) UntagResponse(responseID, tagID string) error {
	_, err := c.makeRequest(http.MethodDelete, "/responses/"+responseID+"/tags/"+tagID, nil)
	return err
}

// ExportResponses downloads a survey's responses as CSV.
func (c *Client) ExportResponses(surveyID string) ([]byte, error) {
	return c.makeRequest(http.MethodGet, "/surveys/"+surveyID+"/responses/export", nil)
}
