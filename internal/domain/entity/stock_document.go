package entity

import "time"

// DocumentType tipo do documento que suporta um movimento.
type DocumentType string

const (
	DocumentInvoice  DocumentType = "NF"
	DocumentReceipt  DocumentType = "RECIBO"
	DocumentInternal DocumentType = "CI"
	DocumentOfficial DocumentType = "OFICIO"
	DocumentOther    DocumentType = "OUTRO"
)

// StockDocument metadados de um documento de suporte (nota fiscal, ofício etc.).
type StockDocument struct {
	ID string
	Scope
	Type        DocumentType
	Number      string
	IssueDate   *time.Time
	Description string
	FileRef     string // caminho ou chave do arquivo digitalizado, se houver
	CreatedAt   time.Time
	CreatedBy   string
}
