package services

import (
	"go.uber.org/zap"

	"kakeibo/internal/logger"
)

// auditService records write operations to the structured log.
type auditService struct {
	log *zap.SugaredLogger
}

// NewAuditService creates a new AuditServicer writing to the global logger.
func NewAuditService() AuditServicer {
	return NewAuditServiceWithLogger(logger.With("component", "audit"))
}

// NewAuditServiceWithLogger creates an AuditServicer writing to log.
func NewAuditServiceWithLogger(log *zap.SugaredLogger) AuditServicer {
	return &auditService{log: log}
}

// Log records an audit event. It never fails the calling operation.
func (s *auditService) Log(action, resourceType, resourceID, ipAddress string, changes map[string]any) {
	kv := []any{
		"action", action,
		"resource_type", resourceType,
		"resource_id", resourceID,
		"ip_address", ipAddress,
	}
	if len(changes) > 0 {
		kv = append(kv, "changes", changes)
	}
	s.log.Infow("audit", kv...)
}
