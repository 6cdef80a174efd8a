package productcontroller

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/shopfront-api/controllers/respond"
	"github.com/junaidrashid-git/shopfront-api/models"
	"github.com/tealeg/xlsx"
)

// ImportResult counts what happened to each data row of an uploaded sheet.
type ImportResult struct {
	Created int `json:"created_count"`
	Skipped int `json:"skipped_count"`
}

// Import creates one product per data row of the first sheet. The column
// layout is the one Export writes; the ID column is ignored. Rows with a
// missing field or an unparseable price are skipped.
func (s *Service) Import(ctx context.Context, r io.ReaderAt, size int64) (ImportResult, error) {
	var res ImportResult

	xlFile, err := xlsx.OpenReaderAt(r, size)
	if err != nil {
		return res, models.ValidationError("Failed to parse Excel file")
	}
	if len(xlFile.Sheets) == 0 || xlFile.Sheets[0].MaxRow < 2 {
		return res, models.ValidationError("Excel file is empty or missing header row")
	}

	sheet := xlFile.Sheets[0]
	for i := 1; i < len(sheet.Rows); i++ {
		row := sheet.Rows[i]
		get := func(index int) string {
			if row != nil && index < len(row.Cells) {
				return strings.TrimSpace(row.Cells[index].String())
			}
			return ""
		}

		price, perr := strconv.ParseFloat(get(3), 64)
		input := CreateProductInput{
			Name:     get(1),
			Category: get(2),
			ImageURL: get(4),
		}
		if perr == nil {
			input.Price = &price
		}

		if _, err := s.Create(ctx, input); err != nil {
			if models.KindOf(err) == 0 {
				return res, err
			}
			res.Skipped++
			continue
		}
		res.Created++
	}
	return res, nil
}

// POST /admin/product/import
func ImportProductsFromExcel(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		excelFileHeader, err := c.FormFile("file")
		if err != nil {
			respond.Invalid(c, "Excel file is required")
			return
		}

		file, err := excelFileHeader.Open()
		if err != nil {
			respond.Error(c, err, "Failed to open Excel file")
			return
		}
		defer file.Close()

		res, err := svc.Import(c.Request.Context(), file, excelFileHeader.Size)
		if err != nil {
			respond.Error(c, err, "Import failed")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":       "Import completed",
			"created_count": res.Created,
			"skipped_count": res.Skipped,
		})
	}
}
