package httpapi

import (
	"errors"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/siteforge/draftsvc/internal/sitebuilder/domain"
)

// errorEnvelope is the `{error, message, details?}` shape of spec §6.1
// "Response envelopes", plus the requestId RequestIDMiddleware stamped on
// the request so a client can hand it back when reporting a problem.
type errorEnvelope struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	Details   any    `json:"details,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

func writeError(c *gin.Context, status int, code, message string, details any) {
	c.JSON(status, errorEnvelope{
		Error:     code,
		Message:   message,
		Details:   details,
		RequestID: GetRequestID(c.Request.Context()),
	})
}

// kindStatus maps each domain.ErrorKind to the HTTP status of spec §7's
// taxonomy table.
var kindStatus = map[domain.ErrorKind]int{
	domain.KindInvalidInput:          400,
	domain.KindUnauthorized:          401,
	domain.KindDraftNotFound:         404,
	domain.KindAssetNotFound:         404,
	domain.KindDraftExpired:          410,
	domain.KindDraftAlreadyCommitted: 200,
	domain.KindCommitInProgress:      409,
	domain.KindPreviewUnsafe:         500,
	domain.KindInternal:              500,
}

// handleError maps any error surfacing from the core to spec §7's wire
// contract. A domain.ValidationError (raised by the domain constructors
// and NormalizeBrandName) becomes InvalidInput/400; a domain.KindedError
// is mapped by its Kind through kindStatus; anything else becomes
// Internal/500.
func handleError(c *gin.Context, err error) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		writeError(c, 400, string(domain.KindInvalidInput), err.Error(), nil)
		return
	}

	var ke *domain.KindedError
	if errors.As(err, &ke) {
		status, ok := kindStatus[ke.Kind]
		if !ok {
			status = 500
		}
		writeError(c, status, string(ke.Kind), ke.Message, ke.Details)
		return
	}

	log.Printf("httpapi: unmapped error: request_id=%s err=%v", GetRequestID(c.Request.Context()), err)
	writeError(c, 500, string(domain.KindInternal), "internal error", nil)
}
