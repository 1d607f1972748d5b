package services

import (
	"assist_flow_app_go/models"
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

var exportHeaders = []string{
	"Nro Caso",
	"Nro Caso Corresponsal",
	"Corresponsal",
	"País",
	"Fecha de Inicio",
	"Fee",
	"Costo USD",
	"Monto Agregado",
	"Costo Total",
	"Moneda",
	"Estado Factura",
	"Nro Factura",
	"Fecha Emisión",
	"Fecha Vencimiento",
	"Fecha Pago",
	"Informe Médico",
	"Observaciones",
}

// ExportCasosExcel writes every case matching the filter criteria to an
// Excel workbook, one row per case with its derived invoice status.
func ExportCasosExcel(dbConn *gorm.DB, filtros FiltrosInput) (*bytes.Buffer, error) {
	var casos []models.Caso
	query := ApplyCasoFilters(dbConn, dbConn.Model(&models.Caso{}), filtros, time.Now())
	if err := query.
		Preload("Corresponsal").
		Order("created_at DESC").
		Find(&casos).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch cases for export: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Casos"
	f.SetSheetName("Sheet1", sheet)

	for col, header := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to build header cell: %w", err)
		}
		f.SetCellValue(sheet, cell, header)
	}

	for i, caso := range casos {
		row := i + 2
		corresponsal := ""
		if caso.Corresponsal != nil {
			corresponsal = caso.Corresponsal.Nombre
		}

		values := []interface{}{
			caso.NroCasoAssistravel,
			derefString(caso.NroCasoCorresponsal),
			corresponsal,
			caso.Pais,
			FormatDate(caso.FechaDeInicio),
			caso.Fee,
			caso.CostoUSD,
			caso.MontoAgregado,
			caso.CostoTotal,
			caso.SimboloML,
			caso.EstadoFactura(),
			derefString(caso.NroFactura),
			formatOptDate(caso.FechaEmisionFactura),
			formatOptDate(caso.FechaVencimientoFactura),
			formatOptDate(caso.FechaPagoFactura),
			boolToSiNo(caso.InformeMedico),
			derefString(caso.Observaciones),
		}

		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, fmt.Errorf("failed to build cell: %w", err)
			}
			f.SetCellValue(sheet, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf, nil
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatOptDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return FormatDate(*t)
}

func boolToSiNo(b bool) string {
	if b {
		return "Sí"
	}
	return "No"
}
