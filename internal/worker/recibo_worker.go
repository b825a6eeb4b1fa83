package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"updatepos/internal/infra"
	"updatepos/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ReciboJobPayload is the job envelope sent to QueueRecibo.
type ReciboJobPayload struct {
	VentaID string `json:"venta_id"`
}

// ReciboWorker generates the PDF receipt for a committed sale and, when the
// client has an email on file, sends it as an attachment.
type ReciboWorker struct {
	ventaRepo   repository.VentaRepository
	clienteRepo repository.ClienteRepository
	mailer      *infra.Mailer
	storagePath string
}

func NewReciboWorker(ventaRepo repository.VentaRepository, clienteRepo repository.ClienteRepository, mailer *infra.Mailer, storagePath string) *ReciboWorker {
	return &ReciboWorker{
		ventaRepo:   ventaRepo,
		clienteRepo: clienteRepo,
		mailer:      mailer,
		storagePath: storagePath,
	}
}

// Process generates the receipt. A malformed payload is dropped; a transient
// failure (DB, filesystem, SMTP) is returned so the pool retries it.
func (w *ReciboWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload ReciboJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("recibo_worker: invalid payload")
		return nil
	}
	ventaID, err := uuid.Parse(payload.VentaID)
	if err != nil {
		log.Error().Str("venta_id", payload.VentaID).Msg("recibo_worker: invalid venta_id")
		return nil
	}

	venta, err := w.ventaRepo.FindByID(ctx, ventaID)
	if err != nil {
		return fmt.Errorf("recibo_worker: venta %s: %w", payload.VentaID, err)
	}

	pdfPath, err := infra.GenerarReciboPDF(venta, w.storagePath)
	if err != nil {
		return fmt.Errorf("recibo_worker: pdf: %w", err)
	}
	log.Info().Str("venta", venta.Numero).Str("pdf", pdfPath).Msg("recibo_worker: recibo generado")

	if venta.ClienteID == nil || w.mailer == nil {
		return nil
	}
	cliente, err := w.clienteRepo.FindByID(ctx, *venta.ClienteID)
	if err != nil || cliente.Email == nil || *cliente.Email == "" {
		return nil
	}

	subject := fmt.Sprintf("Recibo de compra %s", venta.Numero)
	body := fmt.Sprintf("Hola %s,\n\nAdjuntamos el recibo de tu compra %s por $%s.\n\n¡Gracias!",
		cliente.Nombre, venta.Numero, venta.Total.StringFixed(2))
	if err := w.mailer.SendRecibo(*cliente.Email, subject, body, pdfPath); err != nil {
		return fmt.Errorf("recibo_worker: email: %w", err)
	}
	log.Info().Str("to", *cliente.Email).Str("venta", venta.Numero).Msg("recibo_worker: recibo enviado")
	return nil
}
