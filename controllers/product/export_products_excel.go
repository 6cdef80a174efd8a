package productcontroller

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/shopfront-api/controllers/respond"
	"github.com/junaidrashid-git/shopfront-api/models"
	"github.com/tealeg/xlsx"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var exportHeaders = []string{"ID", "Name", "Category", "Price", "ImageURL"}

// Export writes the whole catalog to w as a single-sheet workbook.
func (s *Service) Export(ctx context.Context, w io.Writer) error {
	products, err := s.store.ListProducts(ctx, "")
	if err != nil {
		return err
	}
	file, err := buildWorkbook(products)
	if err != nil {
		return err
	}
	return file.Write(w)
}

func buildWorkbook(products []models.Product) (*xlsx.File, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		return nil, fmt.Errorf("add sheet: %w", err)
	}

	headerRow := sheet.AddRow()
	for _, h := range exportHeaders {
		headerRow.AddCell().SetValue(h)
	}

	for _, p := range products {
		row := sheet.AddRow()
		row.AddCell().SetInt(int(p.ID))
		row.AddCell().SetValue(p.Name)
		row.AddCell().SetValue(p.Category)
		row.AddCell().SetFloat(p.Price)
		row.AddCell().SetValue(p.ImageURL)
	}
	return file, nil
}

// GET /admin/product/export
func ExportProductsToExcel(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Build the workbook in memory so a failure can still be reported as JSON.
		var buf bytes.Buffer
		if err := svc.Export(c.Request.Context(), &buf); err != nil {
			respond.Error(c, err, "Failed to export products")
			return
		}

		// Set response headers for download
		c.Header("Content-Disposition", "attachment; filename=products.xlsx")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")
		c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
	}
}
