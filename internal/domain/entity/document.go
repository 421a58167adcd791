// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// TransactionDocument represents a file attached to a transaction (receipt,
// invoice). The binary lives in object storage under StorageKey.
type TransactionDocument struct {
	ID            uuid.UUID
	TransactionID uuid.UUID
	FileName      string
	StorageKey    string
	ContentType   string
	SizeBytes     int64
	UploadedAt    time.Time
}

// NewTransactionDocument creates a new TransactionDocument entity.
func NewTransactionDocument(transactionID uuid.UUID, fileName, storageKey, contentType string, sizeBytes int64) *TransactionDocument {
	return &TransactionDocument{
		ID:            uuid.New(),
		TransactionID: transactionID,
		FileName:      fileName,
		StorageKey:    storageKey,
		ContentType:   contentType,
		SizeBytes:     sizeBytes,
		UploadedAt:    time.Now().UTC(),
	}
}

// SupplierDocument represents a file attached to a supplier (contract,
// certificate).
type SupplierDocument struct {
	ID          uuid.UUID
	SupplierID  uuid.UUID
	FileName    string
	StorageKey  string
	ContentType string
	SizeBytes   int64
	UploadedAt  time.Time
}

// NewSupplierDocument creates a new SupplierDocument entity.
func NewSupplierDocument(supplierID uuid.UUID, fileName, storageKey, contentType string, sizeBytes int64) *SupplierDocument {
	return &SupplierDocument{
		ID:          uuid.New(),
		SupplierID:  supplierID,
		FileName:    fileName,
		StorageKey:  storageKey,
		ContentType: contentType,
		SizeBytes:   sizeBytes,
		UploadedAt:  time.Now().UTC(),
	}
}
