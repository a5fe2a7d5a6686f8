package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"pocketbudget/internal/models"
	"pocketbudget/internal/pagination"
)

func TestAuditHandler_GetAuditLogs(t *testing.T) {
	audit := &mockAuditService{
		getUserAuditLogsFn: func(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.AuditLog], error) {
			if userID != "user-1" {
				t.Errorf("expected user-1, got %s", userID)
			}
			resp := pagination.NewPageResponse([]models.AuditLog{{UserID: userID, Action: "LOGIN"}}, 1, 20, 1)
			return &resp, nil
		},
	}
	r := gin.New()
	r.GET("/audit-logs", injectSession("user-1", "sess-1"), NewAuditHandler(audit).GetAuditLogs)

	rec := doRequest(r, "GET", "/audit-logs", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	data := parseJSON(t, rec)["data"].([]interface{})
	if len(data) != 1 || data[0].(map[string]interface{})["action"] != "LOGIN" {
		t.Errorf("unexpected data %v", data)
	}
}
