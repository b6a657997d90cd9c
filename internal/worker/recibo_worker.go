package worker

// recibo_worker.go
// Renders the PDF receipt for a freshly settled sale and, when a report
// address is configured, chains an email job with the file attached.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/SpiderLabsSRL/HokkoriBackend/internal/service"

	"github.com/rs/zerolog/log"
)

// ReciboJobPayload is the job envelope sent to QueueRecibos.
type ReciboJobPayload struct {
	VentaID int64 `json:"venta_id"`
}

type ReciboWorker struct {
	recibos    service.ReciboService
	dispatcher *Dispatcher
	// notifyTo, when set, receives every generated receipt by email.
	notifyTo string
}

func NewReciboWorker(recibos service.ReciboService, dispatcher *Dispatcher, notifyTo string) *ReciboWorker {
	return &ReciboWorker{recibos: recibos, dispatcher: dispatcher, notifyTo: notifyTo}
}

func (w *ReciboWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload ReciboJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("recibo_worker: invalid payload")
		return nil // malformed jobs are not retryable
	}

	path, err := w.recibos.GuardarEnDisco(ctx, payload.VentaID)
	if err != nil {
		log.Error().Err(err).Int64("venta_id", payload.VentaID).Msg("recibo_worker: generation failed")
		return err
	}

	if w.notifyTo != "" {
		emailJob := EmailJobPayload{
			ToEmail: w.notifyTo,
			Subject: fmt.Sprintf("Recibo de venta #%d", payload.VentaID),
			Body:    fmt.Sprintf("Se adjunta el recibo de la venta #%d.", payload.VentaID),
			PDFPath: path,
		}
		if err := w.dispatcher.EnqueueEmail(ctx, emailJob); err != nil {
			log.Error().Err(err).Int64("venta_id", payload.VentaID).Msg("recibo_worker: enqueue email failed")
		}
	}
	return nil
}
