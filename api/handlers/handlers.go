package handlers

import (
	"github.com/ranayash24/formbricks/pkg/service"
)

// Handler bundles the services the HTTP layer dispatches into.
type Handler struct {
	Environments *service.EnvironmentService
	Surveys      *service.SurveyService
	Responses    *service.ResponseService
	Tags         *service.TagService
	APIKeys      *service.APIKeyService
}

// New creates a handler over the given services.
func New(environments *service.EnvironmentService, surveys *service.SurveyService, responses *service.ResponseService, tags *service.TagService, apiKeys *service.APIKeyService) *Handler {
	return &Handler{
		Environments: environments,
		Surveys:      surveys,
		Responses:    responses,
		Tags:         tags,
		APIKeys:      apiKeys,
	}
}
