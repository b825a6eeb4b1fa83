package worker

import (
	"context"
	"encoding/json"

	"updatepos/internal/model"
	"updatepos/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// AuditoriaJobPayload is the job envelope sent to QueueAuditoria.
type AuditoriaJobPayload struct {
	UsuarioID     string `json:"usuario_id"`
	UsuarioNombre string `json:"usuario_nombre"`
	Accion        string `json:"accion"`
	Tabla         string `json:"tabla"`
	RegistroID    string `json:"registro_id"`
	Detalle       string `json:"detalle"`
}

// AuditoriaWorker appends audit-log rows out of the request path.
type AuditoriaWorker struct {
	repo repository.AuditoriaRepository
}

func NewAuditoriaWorker(repo repository.AuditoriaRepository) *AuditoriaWorker {
	return &AuditoriaWorker{repo: repo}
}

func (w *AuditoriaWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload AuditoriaJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("auditoria_worker: invalid payload")
		return nil
	}

	entry := model.Auditoria{
		UsuarioNombre: payload.UsuarioNombre,
		Accion:        payload.Accion,
		Tabla:         payload.Tabla,
		Detalle:       payload.Detalle,
	}
	if id, err := uuid.Parse(payload.UsuarioID); err == nil {
		entry.UsuarioID = &id
	}
	if id, err := uuid.Parse(payload.RegistroID); err == nil {
		entry.RegistroID = &id
	}
	return w.repo.Create(ctx, &entry)
}
