// internal/services/receipt_service.go
package services

import (
	"bytes"
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf/v2"

	"github.com/pantrypal/pantrypal-backend/internal/store"
)

type ReceiptService struct {
	store store.Store
}

func NewReceiptService(store store.Store) *ReceiptService {
	return &ReceiptService{store: store}
}

// GenerateReceipt renders a sale as a PDF. Only the retailer who made the
// sale may fetch its receipt.
func (s *ReceiptService) GenerateReceipt(ctx context.Context, retailerUserID, saleID uuid.UUID) ([]byte, error) {
	retailer, err := s.store.GetRetailerProfileByUserID(ctx, retailerUserID)
	if err != nil {
		return nil, err
	}
	sale, err := s.store.GetSaleWithItems(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sale.RetailerID != retailer.ID {
		return nil, store.ErrNotFound
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Sale Receipt", false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, retailer.ShopName)
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Receipt for sale %s", sale.ID))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", sale.CreatedAt.Format("2006-01-02 15:04")))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Claim code: %s", sale.ClaimCode))
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(70, 8, "Product", "1", 0, "L", true, 0, "")
	pdf.CellFormat(25, 8, "Qty", "1", 0, "R", true, 0, "")
	pdf.CellFormat(30, 8, "Unit Price", "1", 0, "R", true, 0, "")
	pdf.CellFormat(30, 8, "Expiry", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 8, "Total", "1", 1, "R", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, item := range sale.Items {
		name := item.Product.Name
		if name == "" {
			name = item.ProductID.String()
		}
		pdf.CellFormat(70, 8, name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 8, fmt.Sprintf("%d", item.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 8, fmt.Sprintf("%.2f", item.PricePerUnit), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 8, item.ExpiryDate.Format("2006-01-02"), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 8, fmt.Sprintf("%.2f", item.TotalPrice), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(155, 10, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(30, 10, fmt.Sprintf("%.2f", sale.TotalAmount), "1", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering receipt: %w", err)
	}
	return buf.Bytes(), nil
}
