package webapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"brandkit-server-go/internal/platform/errors"
	httptransport "brandkit-server-go/internal/transport/http"
)

func (s *Service) respondSuccess(c *gin.Context, statusCode int, data interface{}, message string) {
	httptransport.RespondSuccess(c, statusCode, data, message)
}

func (s *Service) respondError(c *gin.Context, statusCode int, message string) {
	httptransport.RespondError(c, statusCode, message, nil)
}

// respondDomainError maps error kinds onto HTTP status codes.
func (s *Service) respondDomainError(c *gin.Context, err error) {
	switch {
	case errors.IsKind(err, errors.KindDomain):
		status := http.StatusBadRequest
		if strings.Contains(err.Error(), "not found") {
			status = http.StatusNotFound
		}
		s.respondError(c, status, err.Error())
	case errors.IsKind(err, errors.KindAuth):
		s.respondError(c, http.StatusUnauthorized, err.Error())
	case errors.IsKind(err, errors.KindTransport):
		s.respondError(c, http.StatusBadRequest, err.Error())
	default:
		s.logger.ErrorTag("HTTP", "internal error: %v", err)
		s.respondError(c, http.StatusInternalServerError, "internal error")
	}
}
