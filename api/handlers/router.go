package handlers

import "github.com/gin-gonic/gin"

// NewRouter wires all routes. Everything under /v1 requires a valid
// environment API key.
func NewRouter(h *Handler) *gin.Engine {
	r := gin.Default()

	// Ping endpoint for health check
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	v1.Use(h.EnvironmentAuth())
	{
		v1.GET("/tags", h.ListTags)
		v1.POST("/tags", h.CreateTag)
		v1.PUT("/tags/:id", h.UpdateTag)
		v1.DELETE("/tags/:id", h.DeleteTag)
		v1.POST("/tags/:id/merge", h.MergeTags)

		v1.GET("/surveys", h.ListSurveys)
		v1.POST("/surveys", h.CreateSurvey)
		v1.GET("/surveys/:id", h.GetSurvey)
		v1.PUT("/surveys/:id", h.UpdateSurvey)
		v1.DELETE("/surveys/:id", h.DeleteSurvey)
		v1.GET("/surveys/:id/responses", h.ListResponses)
		v1.POST("/surveys/:id/responses", h.CreateResponse)
		v1.GET("/surveys/:id/responses/export", h.ExportResponses)

		v1.GET("/responses/:id", h.GetResponse)
		v1.DELETE("/responses/:id", h.DeleteResponse)
		v1.POST("/responses/:id/tags", h.TagResponse)
		v1.DELETE("/responses/:id/tags/:tagId", h.UntagResponse)
	}

	return r
}
