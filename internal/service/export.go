package service

import (
	"context"
	"fmt"
	"io"

	"procurement-service/pkg/apperrors"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const archiveSheet = "Archived suppliers"

var archiveColumns = []string{"ID", "Name", "Code", "Country", "Contact", "Email", "Phone", "Orders", "Archived at"}

// ExportArchived writes the archived supplier list as an xlsx workbook
func (s *SupplierService) ExportArchived(ctx context.Context, w io.Writer) (err error) {
	defer func() { s.metrics.RecordOperation("supplier", "export_archived", err) }()

	suppliers, err := s.ListArchived(ctx)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil {
			s.log.Debug("Closing workbook failed", zap.Error(cerr))
		}
	}()

	if err := f.SetSheetName("Sheet1", archiveSheet); err != nil {
		return apperrors.Internal("Failed to export suppliers", err)
	}

	if err := f.SetSheetRow(archiveSheet, "A1", &archiveColumns); err != nil {
		return apperrors.Internal("Failed to export suppliers", err)
	}
	for i, sup := range suppliers {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return apperrors.Internal("Failed to export suppliers", err)
		}
		row := []interface{}{
			sup.ID,
			sup.Name,
			sup.Code,
			sup.Country,
			sup.ContactPerson,
			sup.Email,
			sup.Phone,
			sup.OrdersCount,
			sup.UpdatedAt.UTC().Format("2006-01-02 15:04"),
		}
		if err := f.SetSheetRow(archiveSheet, cell, &row); err != nil {
			return apperrors.Internal("Failed to export suppliers", err)
		}
	}

	if err := f.SetColWidth(archiveSheet, "B", "B", 32); err != nil {
		return apperrors.Internal("Failed to export suppliers", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return apperrors.Internal("Failed to export suppliers", fmt.Errorf("write workbook: %w", err))
	}
	s.log.Info("Archived suppliers exported", zap.Int("rows", len(suppliers)))
	return nil
}
