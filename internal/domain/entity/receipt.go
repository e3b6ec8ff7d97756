package entity

import (
	"fmt"
	"time"
)

// Receipt recibo de entrega; no máximo um por requisição.
type Receipt struct {
	ID            string
	RequisitionID string
	Scope
	Number   string
	IssuedBy string
	IssuedAt time.Time
	Note     string
}

// ReceiptNumber gera o número do recibo: REC-<YYYYMMDD-HHMMSS>-<id da requisição>.
func ReceiptNumber(now time.Time, requisitionID string) string {
	return fmt.Sprintf("REC-%s-%s", now.Format("20060102-150405"), requisitionID)
}
