package worker

// comprobante_worker.go
// Processes comprobante jobs from QueueComprobante: renders the Boleta or
// Factura PDF, stores its path, and chains an email job to the customer.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Alcm1997/Agroconecta/internal/infra"
	"github.com/Alcm1997/Agroconecta/internal/repository"

	"github.com/rs/zerolog/log"
)

// ComprobanteJobPayload is the job envelope sent to QueueComprobante.
type ComprobanteJobPayload struct {
	IDComprobante int64  `json:"id_comprobante"`
	ClienteEmail  string `json:"cliente_email"`
	ClienteNombre string `json:"cliente_nombre"`
}

// ComprobanteWorker renders the fiscal PDF for an issued comprobante.
type ComprobanteWorker struct {
	comprobanteRepo repository.ComprobanteRepository
	dispatcher      *Dispatcher
	pdfStoragePath  string
}

func NewComprobanteWorker(
	comprobanteRepo repository.ComprobanteRepository,
	dispatcher *Dispatcher,
	pdfStoragePath string,
) *ComprobanteWorker {
	return &ComprobanteWorker{
		comprobanteRepo: comprobanteRepo,
		dispatcher:      dispatcher,
		pdfStoragePath:  pdfStoragePath,
	}
}

// Process handles a single comprobante job:
//  1. Fetch the comprobante with its lines and products
//  2. Render the PDF and persist its path
//  3. Enqueue the confirmation email with the PDF attached
func (w *ComprobanteWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload ComprobanteJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("comprobante_worker: invalid payload")
		return
	}

	comp, err := w.comprobanteRepo.FindByID(ctx, payload.IDComprobante)
	if err != nil {
		log.Error().Err(err).Int64("id_comprobante", payload.IDComprobante).
			Msg("comprobante_worker: comprobante not found")
		return
	}

	pdfPath, err := infra.GenerarComprobantePDF(comp, payload.ClienteNombre, w.pdfStoragePath)
	if err != nil {
		log.Error().Err(err).Int64("id_comprobante", comp.ID).
			Msg("comprobante_worker: PDF generation failed")
		return
	}
	if err := w.comprobanteRepo.UpdatePDFPath(ctx, comp.ID, pdfPath); err != nil {
		log.Warn().Err(err).Int64("id_comprobante", comp.ID).
			Msg("comprobante_worker: failed to store pdf path")
	}
	log.Info().Str("pdf", pdfPath).Int64("id_comprobante", comp.ID).
		Msg("comprobante_worker: PDF generated")

	if payload.ClienteEmail == "" {
		return
	}
	emailJob := EmailJobPayload{
		ToEmail: payload.ClienteEmail,
		Subject: fmt.Sprintf("AgroConecta - %s N° %d", comp.TipoComprobante, comp.NumeroComprobante),
		Body: fmt.Sprintf(
			"Hola %s,\n\nGracias por tu pedido. Adjuntamos tu %s N° %d por un total de S/ %s.\n\nEquipo AgroConecta",
			payload.ClienteNombre, comp.TipoComprobante, comp.NumeroComprobante, comp.TotalPago.StringFixed(2),
		),
		PDFPath: pdfPath,
	}
	if err := w.dispatcher.EnqueueEmail(ctx, emailJob); err != nil {
		log.Warn().Err(err).Str("email", payload.ClienteEmail).
			Msg("comprobante_worker: failed to enqueue email")
	}
}
