package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/thereayou/pelican/pkg/apperrors"
)

// Единственное место, где доменные коды превращаются в HTTP-статусы
var statusByCode = map[apperrors.Code]int{
	apperrors.CodeChannelNotFound:      http.StatusNotFound,
	apperrors.CodeChannelAlreadyExists: http.StatusConflict,
	apperrors.CodeMemberNotFound:       http.StatusNotFound,
	apperrors.CodeMemberAlreadyExists:  http.StatusConflict,
	apperrors.CodeMissingPermissions:   http.StatusForbidden,
	apperrors.CodeMessageNotFound:      http.StatusNotFound,
	apperrors.CodeUnknownAttachment:    http.StatusNotFound,
	apperrors.CodeAttachmentsEmpty:     http.StatusBadRequest,
	apperrors.CodeUploadFailed:         http.StatusBadRequest,
}

func fail(c *gin.Context, err error) {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		if status, ok := statusByCode[appErr.Code]; ok {
			c.JSON(status, gin.H{"error": appErr.Message, "code": appErr.Code})
			return
		}
	}

	log.Printf("Unhandled error: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
