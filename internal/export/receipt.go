// Package export builds the durable delivery-confirmation document. This
// core owns the data contract only; visual design belongs to whatever
// renders the artifact downstream. Rendering is deterministic, so the
// document can be regenerated any number of times without touching the
// stored confirmation.
package export

import (
	"bytes"
	"errors"
	"text/template"
	"time"

	"materialOrderManagement/models"
)

// ErrNotConfirmed is returned when a receipt is requested for an order that
// has no delivery confirmation.
var ErrNotConfirmed = errors.New("export: order has no delivery confirmation")

// ReceiptItem is one line of the document.
type ReceiptItem struct {
	MaterialName string  `json:"material_name"`
	Quantity     int     `json:"quantity"`
	Unit         string  `json:"unit"`
	UnitPrice    float64 `json:"unit_price"`
	Subtotal     float64 `json:"subtotal"`
}

// Receipt is the data contract of the delivery-confirmation document.
type Receipt struct {
	OrderID       int64         `json:"order_id"`
	RequesterName string        `json:"requester_name"`
	ProjectName   string        `json:"project_name"`
	DeliveredAt   time.Time     `json:"delivered_at"`
	SignatureRef  string        `json:"signature_ref"`
	Items         []ReceiptItem `json:"items"`
	Total         float64       `json:"total"`
}

// FromOrder derives the receipt contract from a confirmed order.
func FromOrder(o *models.Order) (*Receipt, error) {
	if o == nil {
		return nil, errors.New("export: order is nil")
	}
	if o.Confirmation == nil {
		return nil, ErrNotConfirmed
	}
	items := make([]ReceiptItem, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, ReceiptItem{
			MaterialName: it.MaterialName,
			Quantity:     it.Quantity,
			Unit:         it.Unit,
			UnitPrice:    it.UnitPrice,
			Subtotal:     it.Subtotal,
		})
	}
	return &Receipt{
		OrderID:       o.ID,
		RequesterName: o.RequesterName,
		ProjectName:   o.ProjectName,
		DeliveredAt:   o.Confirmation.ConfirmedAt,
		SignatureRef:  o.Confirmation.Signature,
		Items:         items,
		Total:         o.Total,
	}, nil
}

var receiptTmpl = template.Must(template.New("receipt").Parse(`DELIVERY CONFIRMATION
Order #{{.OrderID}}

Requester: {{.RequesterName}}
Project:   {{.ProjectName}}
Delivered: {{.DeliveredAt.Format "2006-01-02 15:04 MST"}}

Items:
{{- range .Items}}
  {{.Quantity}} {{.Unit}} {{.MaterialName}} @ {{printf "%.2f" .UnitPrice}} = {{printf "%.2f" .Subtotal}}
{{- end}}

Total: {{printf "%.2f" .Total}}

Received and signed (artifact {{len .SignatureRef}} bytes).
`))

// Render produces the document bytes. Same receipt in, same bytes out.
func (r *Receipt) Render() ([]byte, error) {
	var buf bytes.Buffer
	if err := receiptTmpl.Execute(&buf, r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
