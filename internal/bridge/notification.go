package bridge

import (
	"fmt"
	"os/exec"

	"github.com/yourusername/flash-convert-go/internal/domain"
	"go.uber.org/zap"
)

// NotificationService is the desktop stand-in for the app's toast
// notifications: advisory for warnings, blocking-style alerts for
// permission denial and download failure.
type NotificationService struct {
	config *domain.NotificationConfig
	logger *zap.Logger
}

// NewNotificationService creates a new notification service
func NewNotificationService(config *domain.NotificationConfig, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		config: config,
		logger: logger,
	}
}

// Notify sends a notification
func (n *NotificationService) Notify(title, message string) {
	if !n.config.Enabled {
		n.logger.Debug("Notifications disabled, skipping",
			zap.String("title", title),
			zap.String("message", message))
		return
	}

	var cmd *exec.Cmd
	switch n.config.Method {
	case "osascript":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, message, title)
		cmd = exec.Command("osascript", "-e", script)
	case "notify-send":
		cmd = exec.Command("notify-send", title, message)
	default:
		n.logger.Warn("Unknown notification method", zap.String("method", n.config.Method))
		return
	}

	if err := cmd.Run(); err != nil {
		n.logger.Error("Failed to send notification",
			zap.String("method", n.config.Method),
			zap.Error(err))
		return
	}

	n.logger.Debug("Notification sent",
		zap.String("title", title),
		zap.String("message", message))
}
