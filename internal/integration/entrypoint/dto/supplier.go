package dto

import (
	"time"

	"github.com/property-ledger/backend/internal/application/usecase/supplier"
	"github.com/property-ledger/backend/internal/domain/entity"
)

// CreateSupplierRequest represents the request body for supplier creation.
type CreateSupplierRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=255"`
	Email string `json:"email,omitempty" binding:"omitempty,email"`
	Phone string `json:"phone,omitempty" binding:"omitempty,max=50"`
	TaxID string `json:"tax_id,omitempty" binding:"omitempty,max=50"`
	Notes string `json:"notes,omitempty" binding:"omitempty,max=1000"`
}

// UpdateSupplierRequest represents the request body for supplier update.
type UpdateSupplierRequest struct {
	Name     *string `json:"name,omitempty" binding:"omitempty,min=1,max=255"`
	Email    *string `json:"email,omitempty" binding:"omitempty,email"`
	Phone    *string `json:"phone,omitempty" binding:"omitempty,max=50"`
	TaxID    *string `json:"tax_id,omitempty" binding:"omitempty,max=50"`
	Notes    *string `json:"notes,omitempty" binding:"omitempty,max=1000"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// SupplierResponse represents a supplier in API responses.
type SupplierResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	TaxID     string    `json:"tax_id"`
	Notes     string    `json:"notes"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SupplierListResponse represents the response for listing suppliers.
type SupplierListResponse struct {
	Suppliers []SupplierResponse `json:"suppliers"`
}

// SupplierDocumentResponse represents a supplier document in API responses.
type SupplierDocumentResponse struct {
	ID          string    `json:"id"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// SupplierDocumentListResponse represents the response for listing supplier documents.
type SupplierDocumentListResponse struct {
	Documents []SupplierDocumentResponse `json:"documents"`
}

// ToSupplierResponse converts a domain Supplier entity to a SupplierResponse DTO.
func ToSupplierResponse(s *entity.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:        s.ID.String(),
		Name:      s.Name,
		Email:     s.Email,
		Phone:     s.Phone,
		TaxID:     s.TaxID,
		Notes:     s.Notes,
		IsActive:  s.IsActive,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// ToSupplierListResponse converts supplier entities to a SupplierListResponse.
func ToSupplierListResponse(suppliers []*entity.Supplier) SupplierListResponse {
	items := make([]SupplierResponse, len(suppliers))
	for i, s := range suppliers {
		items[i] = ToSupplierResponse(s)
	}
	return SupplierListResponse{Suppliers: items}
}

// ToSupplierDocumentResponse converts a supplier DocumentOutput to its DTO.
func ToSupplierDocumentResponse(doc *supplier.DocumentOutput) SupplierDocumentResponse {
	return SupplierDocumentResponse{
		ID:          doc.ID.String(),
		FileName:    doc.FileName,
		ContentType: doc.ContentType,
		SizeBytes:   doc.SizeBytes,
		UploadedAt:  doc.UploadedAt,
	}
}

// ToSupplierDocumentListResponse converts supplier document outputs to the list DTO.
func ToSupplierDocumentListResponse(docs []*supplier.DocumentOutput) SupplierDocumentListResponse {
	items := make([]SupplierDocumentResponse, len(docs))
	for i, doc := range docs {
		items[i] = ToSupplierDocumentResponse(doc)
	}
	return SupplierDocumentListResponse{Documents: items}
}
