package middleware

import (
	"errors"
	"net/http"

	"github.com/abhayy08/AlumniConnect-Platform-Backend/internal/delivery/http/response"
	"github.com/abhayy08/AlumniConnect-Platform-Backend/pkg/apperror"
	"github.com/abhayy08/AlumniConnect-Platform-Backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			var appErr *apperror.AppError
			if errors.As(err, &appErr) {
				if appErr.Code == http.StatusInternalServerError {
					logger.Log.Error("internal error", "path", c.FullPath(), "error", appErr.Err)
				}
				response.Error(c, appErr.Code, appErr.Message, nil)
				return
			}
			// Never expose internal error details to clients.
			logger.Log.Error("unhandled error", "path", c.FullPath(), "error", err)
			response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
		}
	}
}
