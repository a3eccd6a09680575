package service

import (
	"context"
	"encoding/json"
	"log"

	"github.com/google/uuid"
	"github.com/lumierestudio/salon-api/internal/domain/entity"
	"github.com/lumierestudio/salon-api/internal/domain/repository"
	"gorm.io/datatypes"
)

// writeAuditEntry appends one row to the audit trail. Best effort: the
// audited operation has already succeeded, so failures are only logged.
func writeAuditEntry(ctx context.Context, repo repository.AuditLogRepository, actorID uuid.UUID, action, entityType string, entityID *uuid.UUID, metadata map[string]interface{}) {
	payload, err := json.Marshal(metadata)
	if err != nil {
		log.Printf("audit %s: failed to encode metadata: %v", action, err)
		payload = nil
	}
	entry := &entity.AuditLog{
		ActorID:    actorID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Metadata:   datatypes.JSON(payload),
	}
	if err := repo.Create(ctx, entry); err != nil {
		log.Printf("audit %s: failed to write entry: %v", action, err)
	}
}
