package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ranayash24/formbricks/pkg/models"
)

// SurveyDetails carries a survey together with its public share URL.
type SurveyDetails struct {
	Survey   models.Survey `json:"survey"`
	ShareURL string        `json:"share_url"`
}

// ListSurveys returns all surveys of the key's environment.
func (c *Client) ListSurveys() ([]models.Survey, error) {
	body, err := c.makeRequest(http.MethodGet, "/surveys", nil)
	if err != nil {
		return nil, err
	}

	var surveys []models.Survey
	if err := json.Unmarshal(body, &surveys); err != nil {
		return nil, fmt.Errorf("failed to parse surveys: %w", err)
	}
	return surveys, nil
}

// CreateSurvey creates a survey.
func (c *Client) CreateSurvey(name, surveyType, description string) (*models.Survey, error) {
	payload := map[string]string{"name": name}
	if surveyType != "" {
		payload["type"] = surveyType
	}
	if description != "" {
		payload["description"] = description
	}

	body, err := c.makeRequest(http.MethodPost, "/surveys", payload)
	if err != nil {
		return nil, err
	}

	var survey models.Survey
	if err := json.Unmarshal(body, &survey); err != nil {
		return nil, fmt.Errorf("failed to parse survey: %w", err)
	}
	return &survey, nil
}

// GetSurvey returns a survey with its share URL.
func (c *Client) GetSurvey(surveyID string) (*SurveyDetails, error) {
	body, err := c.makeRequest(http.MethodGet, "/surveys/"+surveyID, nil)
	if err != nil {
		return nil, err
	}

	var details SurveyDetails
	if err := json.Unmarshal(body, &details); err != nil {
		return nil, fmt.Errorf("failed to parse survey: %w", err)
	}
	return &details, nil
}

// UpdateSurveyStatus changes a survey's status.
func (c *Client) UpdateSurveyStatus(surveyID, status string) (*models.Survey, error) {
	body, err := c.makeRequest(http.MethodPut, "/surveys/"+surveyID, map[string]string{"status": status})
	if err != nil {
		return nil, err
	}

	var survey models.Survey
	if err := json.Unmarshal(body, &survey); err != nil {
		return nil, fmt.Errorf("failed to parse survey: %w", err)
	}
	return &survey, nil
}

// DeleteSurvey removes a survey and its responses.
func (c *Client) DeleteSurvey(surveyID string) error {
	_, err := c.makeRequest(http.MethodDelete, "/surveys/"+surveyID, nil)
	return err
}
