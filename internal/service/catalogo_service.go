package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MateoRicci/gestion-cec-sub000/internal/dto"
	"github.com/MateoRicci/gestion-cec-sub000/internal/model"
	"github.com/MateoRicci/gestion-cec-sub000/internal/repository"

	"github.com/google/uuid"
)

// CatalogoService covers the read-mostly catalogs the venta screen loads at
// startup: convenios, puntos de venta, medios de pago.
type CatalogoService interface {
	ListarConvenios(ctx context.Context) ([]dto.ConvenioResponse, error)
	CrearConvenio(ctx context.Context, req dto.CrearConvenioRequest) (*dto.ConvenioResponse, error)
	ListarPuntosVenta(ctx context.Context) ([]dto.PuntoVentaResponse, error)
	ListarMediosPago(ctx context.Context) ([]dto.MedioPagoResponse, error)
}

type catalogoService struct {
	repo repository.CatalogoRepository
}

func NewCatalogoService(repo repository.CatalogoRepository) CatalogoService {
	return &catalogoService{repo: repo}
}

func (s *catalogoService) ListarConvenios(ctx context.Context) ([]dto.ConvenioResponse, error) {
	convenios, err := s.repo.ListConvenios(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ConvenioResponse, len(convenios))
	for i, c := range convenios {
		resp[i] = dto.ConvenioResponse{
			ID:            c.ID.String(),
			Nombre:        c.Nombre,
			Descripcion:   c.Descripcion,
			ListaPrecioID: c.ListaPrecioID,
		}
	}
	return resp, nil
}

func (s *catalogoService) CrearConvenio(ctx context.Context, req dto.CrearConvenioRequest) (*dto.ConvenioResponse, error) {
	if existing, err := s.repo.FindConvenioByNombre(ctx, req.Nombre); err == nil && existing != nil && existing.ID != uuid.Nil {
		return nil, fmt.Errorf("ya existe un convenio con nombre %s", req.Nombre)
	}
	if req.ListaPrecioID == nil {
		return nil, errors.New("todo convenio nuevo debe declarar su lista de precios")
	}
	convenio := &model.Convenio{
		Nombre:        req.Nombre,
		Descripcion:   req.Descripcion,
		ListaPrecioID: req.ListaPrecioID,
		Activo:        true,
	}
	if err := s.repo.CreateConvenio(ctx, convenio); err != nil {
		return nil, err
	}
	return &dto.ConvenioResponse{
		ID:            convenio.ID.String(),
		Nombre:        convenio.Nombre,
		Descripcion:   convenio.Descripcion,
		ListaPrecioID: convenio.ListaPrecioID,
	}, nil
}

func (s *catalogoService) ListarPuntosVenta(ctx context.Context) ([]dto.PuntoVentaResponse, error) {
	puntos, err := s.repo.ListPuntosVenta(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.PuntoVentaResponse, len(puntos))
	for i, p := range puntos {
		resp[i] = dto.PuntoVentaResponse{ID: p.ID.String(), Nombre: p.Nombre}
	}
	return resp, nil
}

func (s *catalogoService) ListarMediosPago(ctx context.Context) ([]dto.MedioPagoResponse, error) {
	medios, err := s.repo.ListMediosPago(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.MedioPagoResponse, len(medios))
	for i, m := range medios {
		resp[i] = dto.MedioPagoResponse{ID: m.ID.String(), Nombre: m.Nombre, EsEfectivo: m.EsEfectivo}
	}
	return resp, nil
}
