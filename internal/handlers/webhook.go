package handlers

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vibecoding/landing-service/internal/models"
	"github.com/vibecoding/landing-service/internal/store"
)

// webhookSource tags event rows ingested from the payment service.
const webhookSource = "payment_service"

// uuidPattern accepts UUID v1 through v5 text form: version nibble 1-5,
// variant nibble 8/9/a/b, case-insensitive. Deliberately stricter than
// uuid.Parse, which also accepts URN and un-hyphenated forms.
var uuidPattern = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[1-5][0-9a-fA-F]{3}-[89abAB][0-9a-fA-F]{3}-[0-9a-fA-F]{12}$`)

// RegisterWebhookRoutes registers the payment-webhook ingestion endpoint.
//
// POST /api/webhook/payment
// - Auth: X-Webhook-Secret must equal the configured secret. An empty
//   configured secret disables the endpoint (every request is 401).
// - Idempotent: the external event_id is the event_logs primary key, so
//   redelivery collides on it and returns 200 "duplicate_ignored".
func RegisterWebhookRoutes(r gin.IRoutes, st Store, secret string, logger *zap.SugaredLogger) {
	r.POST("/api/webhook/payment", func(c *gin.Context) {
		header := c.GetHeader("X-Webhook-Secret")
		if secret == "" || subtle.ConstantTimeCompare([]byte(header), []byte(secret)) != 1 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var req models.WebhookRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON payload"})
			return
		}

		eventID := strings.TrimSpace(req.EventID)
		eventType := strings.TrimSpace(req.EventType)

		if eventID == "" || eventType == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "event_id and event_type are required"})
			return
		}
		if !uuidPattern.MatchString(eventID) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "event_id must be a UUID"})
			return
		}

		leadID := lookupLeadRef(c.Request.Context(), st, req.Data)

		_, err := st.CreateEventLog(c.Request.Context(), models.NewEventLog{
			ID:      eventID,
			Type:    eventType,
			Source:  webhookSource,
			Payload: req.Data,
			LeadID:  leadID,
		})
		if err != nil {
			// The payment service redelivers until it sees 2xx; a replayed
			// event is a success from its point of view.
			if errors.Is(err, store.ErrDuplicateEventID) {
				c.JSON(http.StatusOK, gin.H{"status": "duplicate_ignored"})
				return
			}
			logger.Errorw("webhook event insert failed", "event_id", eventID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// lookupLeadRef resolves an optional data.lead_id to an existing lead id.
// Absent data, non-object data, malformed ids and unknown ids all yield no
// reference; none of them is an error.
func lookupLeadRef(ctx context.Context, st Store, data json.RawMessage) *string {
	if len(data) == 0 {
		return nil
	}

	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil
	}

	id, ok := obj["lead_id"].(string)
	if !ok || !uuidPattern.MatchString(id) {
		return nil
	}

	lead, err := st.FindLeadByID(ctx, id)
	if err != nil || lead == nil {
		return nil
	}
	return &lead.ID
}
