package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/MateoRicci/gestion-cec-sub000/internal/dto"
	"github.com/MateoRicci/gestion-cec-sub000/internal/model"
	"github.com/MateoRicci/gestion-cec-sub000/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

type ReporteService interface {
	IngresosPorConvenio(ctx context.Context, desde, hasta string) (*dto.ReporteIngresosResponse, error)
	// ExportarIngresosXLSX renders the same report as an Excel workbook for
	// the club's administration.
	ExportarIngresosXLSX(ctx context.Context, desde, hasta string) (*bytes.Buffer, error)
}

type reporteService struct {
	ventaRepo repository.VentaRepository
}

func NewReporteService(ventaRepo repository.VentaRepository) ReporteService {
	return &reporteService{ventaRepo: ventaRepo}
}

// IngresosPorConvenio aggregates non-cancelled ventas in the range by the
// convenio captured at sale time. Personas counts entry detail rows — one
// row, one person. Walk-in ventas group under "No Afiliados".
func (s *reporteService) IngresosPorConvenio(ctx context.Context, desde, hasta string) (*dto.ReporteIngresosResponse, error) {
	ventas, err := s.ventaRepo.ListByRango(ctx, desde, hasta)
	if err != nil {
		return nil, err
	}

	type acumulado struct {
		ventas   int
		personas int
		total    decimal.Decimal
	}
	porConvenio := make(map[string]*acumulado)
	orden := make([]string, 0, 8)
	total := decimal.Zero

	grupo := func(nombre string) *acumulado {
		acc, ok := porConvenio[nombre]
		if !ok {
			acc = &acumulado{total: decimal.Zero}
			porConvenio[nombre] = acc
			orden = append(orden, nombre)
		}
		return acc
	}

	for i := range ventas {
		v := &ventas[i]
		if v.Estado == model.VentaCancelada {
			continue
		}
		convenio := "No Afiliados"
		if v.Convenio != nil {
			convenio = v.Convenio.Nombre
		}
		acc := grupo(convenio)
		acc.ventas++
		acc.total = acc.total.Add(v.Total)
		total = total.Add(v.Total)
		for _, d := range v.Detalles {
			if !d.EsEntrada {
				continue
			}
			// Head counts follow the row's afiliado: exploded walk-in rows
			// inside a member sale count as general public.
			if d.AfiliadoID == nil {
				grupo("No Afiliados").personas += d.Cantidad
				continue
			}
			acc.personas += d.Cantidad
		}
	}

	filas := make([]dto.IngresoPorConvenio, 0, len(orden))
	for _, convenio := range orden {
		acc := porConvenio[convenio]
		filas = append(filas, dto.IngresoPorConvenio{
			Convenio: convenio,
			Ventas:   acc.ventas,
			Personas: acc.personas,
			Total:    acc.total,
		})
	}

	return &dto.ReporteIngresosResponse{
		Desde: desde,
		Hasta: hasta,
		Filas: filas,
		Total: total,
	}, nil
}

func (s *reporteService) ExportarIngresosXLSX(ctx context.Context, desde, hasta string) (*bytes.Buffer, error) {
	reporte, err := s.IngresosPorConvenio(ctx, desde, hasta)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const hoja = "Ingresos"
	f.SetSheetName("Sheet1", hoja)

	headers := []string{"Convenio", "Ventas", "Personas", "Total"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(hoja, cell, h)
	}

	for i, fila := range reporte.Filas {
		row := i + 2
		f.SetCellValue(hoja, fmt.Sprintf("A%d", row), fila.Convenio)
		f.SetCellValue(hoja, fmt.Sprintf("B%d", row), fila.Ventas)
		f.SetCellValue(hoja, fmt.Sprintf("C%d", row), fila.Personas)
		f.SetCellValue(hoja, fmt.Sprintf("D%d", row), fila.Total.InexactFloat64())
	}

	totalRow := len(reporte.Filas) + 2
	f.SetCellValue(hoja, fmt.Sprintf("A%d", totalRow), "TOTAL")
	f.SetCellValue(hoja, fmt.Sprintf("D%d", totalRow), reporte.Total.InexactFloat64())

	return f.WriteToBuffer()
}
