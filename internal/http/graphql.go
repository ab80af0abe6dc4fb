package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type graphqlReq struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// @Summary Execute a GraphQL query or mutation document
// @Tags graphql
// @Accept json
// @Produce json
// @Param input body graphqlReq true "GraphQL request"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errorResp
// @Router /graphql [post]
func (s *Server) graphql(c *gin.Context) {
	var req graphqlReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	// field errors travel inside the response body with a 200
	resp := s.schema.Exec(c.Request.Context(), req.Query, req.OperationName, req.Variables)
	if len(resp.Errors) > 0 {
		s.log.Debug("graphql errors", "operation", req.OperationName, "errors", len(resp.Errors))
	}
	c.JSON(http.StatusOK, resp)
}
