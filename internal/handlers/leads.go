package handlers

import (
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vibecoding/landing-service/internal/models"
	"github.com/vibecoding/landing-service/internal/store"
)

// phonePattern: leading '+' followed by digits only. Matches the
// normalization the landing form applies before submitting.
var phonePattern = regexp.MustCompile(`^\+\d+$`)

// RegisterLeadRoutes registers the intake-path endpoint.
//
// POST /api/leads
// - No auth: the form is public.
// - Durable: 201 only after the lead row is written.
// - Uniqueness: duplicate phones surface as 409 via the DB constraint.
func RegisterLeadRoutes(r gin.IRoutes, st Store, rec Recorder, logger *zap.SugaredLogger) {
	r.POST("/api/leads", func(c *gin.Context) {
		var req models.LeadCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON payload"})
			return
		}

		name := strings.TrimSpace(req.Name)
		phone := strings.TrimSpace(req.Phone)

		// Recorded before validation so abandoned and invalid submissions
		// still show up in the funnel.
		rec.Record(c.Request.Context(), "cta_click", map[string]any{
			"name":  name,
			"phone": phone,
		}, nil)

		if name == "" || phone == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name and phone are required"})
			return
		}
		if !phonePattern.MatchString(phone) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "phone must be '+' followed by digits"})
			return
		}

		lead, err := st.CreateLead(c.Request.Context(), name, phone)
		if err != nil {
			if errors.Is(err, store.ErrDuplicatePhone) {
				c.JSON(http.StatusConflict, gin.H{"error": "duplicate_contact"})
				return
			}
			logger.Errorw("lead insert failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
			return
		}

		rec.Record(c.Request.Context(), "lead_created", map[string]any{
			"lead_id": lead.ID,
		}, &lead.ID)

		c.JSON(http.StatusCreated, lead)
	})
}
