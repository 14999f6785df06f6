package handler

import (
	"net/http"
	"strconv"

	"github.com/lexfirm/backoffice-api/internal/service"
	"go.uber.org/zap"
)

type NotificationHandler struct {
	notificationService *service.NotificationService
	logger              *zap.Logger
}

func NewNotificationHandler(notificationService *service.NotificationService, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		logger:              logger,
	}
}

// List godoc
// @Summary Recent notifications
// @Description Outcome messages of recent operations, oldest first. Pass the last seen id as since to get only newer ones.
// @Tags Notifications
// @Produce json
// @Param since query int false "Last notification id already seen"
// @Success 200 {array} domain.Notification
// @Failure 400 {object} domain.APIError
// @Router /notifications [get]
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	var since uint64
	if s := r.URL.Query().Get("since"); s != "" {
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "since must be a non-negative integer")
			return
		}
		since = v
	}
	respondJSON(w, http.StatusOK, h.notificationService.Recent(since))
}
