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

// DocumentoConsumidorFinal is the magic DNI the venta screen sends for
// walk-in clients.
const DocumentoConsumidorFinal = "0"

type AfiliadoService interface {
	BuscarPorDocumento(ctx context.Context, documento string) (*dto.AfiliadoLookupResponse, error)
	Crear(ctx context.Context, req dto.CrearAfiliadoRequest) (*dto.AfiliadoResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarAfiliadoRequest) (*dto.AfiliadoResponse, error)
	Listar(ctx context.Context, incluirInactivos bool) ([]dto.AfiliadoResponse, error)
	AgregarFamiliar(ctx context.Context, afiliadoID uuid.UUID, req dto.CrearFamiliarRequest) error
	QuitarFamiliar(ctx context.Context, familiarID uuid.UUID) error
}

type afiliadoService struct {
	repo    repository.AfiliadoRepository
	catRepo repository.CatalogoRepository
	precios PrecioService
}

func NewAfiliadoService(
	repo repository.AfiliadoRepository,
	catRepo repository.CatalogoRepository,
	precios PrecioService,
) AfiliadoService {
	return &afiliadoService{repo: repo, catRepo: catRepo, precios: precios}
}

// ── BuscarPorDocumento ────────────────────────────────────────────────────────
// Venta screen lookup. DNI "0" short-circuits to the Consumidor Final
// sentinel: walk-in prices, no familiares, no compro_hoy tracking.

func (s *afiliadoService) BuscarPorDocumento(ctx context.Context, documento string) (*dto.AfiliadoLookupResponse, error) {
	if documento == DocumentoConsumidorFinal {
		return &dto.AfiliadoLookupResponse{
			IDAfiliado:    dto.ConsumidorFinalID,
			Documento:     DocumentoConsumidorFinal,
			Convenio:      model.NombreConsumidorFinal,
			ListaPrecioID: ListaNoSocios,
			Familiares:    []dto.FamiliarLookup{},
		}, nil
	}

	afiliado, err := s.repo.FindByDocumento(ctx, documento)
	if err != nil {
		return nil, errors.New("afiliado no encontrado")
	}

	presentes, err := s.repo.DocumentosConEntradaHoy(ctx, afiliado.ID)
	if err != nil {
		return nil, err
	}

	familiares := make([]dto.FamiliarLookup, 0, len(afiliado.Familiares))
	for _, f := range afiliado.Familiares {
		familiares = append(familiares, dto.FamiliarLookup{
			ID:         f.ID.String(),
			Documento:  f.Documento,
			Nombre:     f.Nombre,
			Apellido:   f.Apellido,
			Parentesco: f.Parentesco,
			Categoria:  f.Categoria,
			ComproHoy:  presentes[f.ID],
		})
	}

	resp := &dto.AfiliadoLookupResponse{
		IDAfiliado:    afiliado.ID.String(),
		Documento:     afiliado.Documento,
		Nombre:        afiliado.Nombre,
		Apellido:      afiliado.Apellido,
		ListaPrecioID: s.precios.ListaParaConvenio(afiliado.Convenio),
		ComproHoy:     presentes[afiliado.ID],
		Familiares:    familiares,
	}
	if afiliado.Convenio != nil {
		resp.Convenio = afiliado.Convenio.Nombre
		cid := afiliado.Convenio.ID.String()
		resp.ConvenioID = &cid
	}
	return resp, nil
}

// ── Administración ────────────────────────────────────────────────────────────

func (s *afiliadoService) Crear(ctx context.Context, req dto.CrearAfiliadoRequest) (*dto.AfiliadoResponse, error) {
	if existing, err := s.repo.FindByDocumento(ctx, req.Documento); err == nil && existing != nil {
		return nil, fmt.Errorf("ya existe un afiliado con documento %s", req.Documento)
	}

	convenioID, err := uuid.Parse(req.ConvenioID)
	if err != nil {
		return nil, fmt.Errorf("convenio_id inválido: %w", err)
	}
	convenio, err := s.catRepo.FindConvenioByID(ctx, convenioID)
	if err != nil {
		return nil, errors.New("convenio no encontrado")
	}

	afiliado := &model.Afiliado{
		Documento:  req.Documento,
		Nombre:     req.Nombre,
		Apellido:   req.Apellido,
		Email:      req.Email,
		Telefono:   req.Telefono,
		ConvenioID: convenio.ID,
		Activo:     true,
	}
	if err := s.repo.Create(ctx, afiliado); err != nil {
		return nil, err
	}
	afiliado.Convenio = convenio
	return afiliadoToResponse(afiliado), nil
}

func (s *afiliadoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarAfiliadoRequest) (*dto.AfiliadoResponse, error) {
	afiliado, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("afiliado no encontrado")
	}
	if req.Nombre != nil {
		afiliado.Nombre = *req.Nombre
	}
	if req.Apellido != nil {
		afiliado.Apellido = *req.Apellido
	}
	if req.Email != nil {
		afiliado.Email = req.Email
	}
	if req.Telefono != nil {
		afiliado.Telefono = req.Telefono
	}
	if req.ConvenioID != nil {
		cid, err := uuid.Parse(*req.ConvenioID)
		if err != nil {
			return nil, fmt.Errorf("convenio_id inválido: %w", err)
		}
		convenio, err := s.catRepo.FindConvenioByID(ctx, cid)
		if err != nil {
			return nil, errors.New("convenio no encontrado")
		}
		afiliado.ConvenioID = convenio.ID
		afiliado.Convenio = convenio
	}
	if req.Activo != nil {
		afiliado.Activo = *req.Activo
	}
	if err := s.repo.Update(ctx, afiliado); err != nil {
		return nil, err
	}
	return afiliadoToResponse(afiliado), nil
}

func (s *afiliadoService) Listar(ctx context.Context, incluirInactivos bool) ([]dto.AfiliadoResponse, error) {
	afiliados, err := s.repo.List(ctx, incluirInactivos)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.AfiliadoResponse, len(afiliados))
	for i := range afiliados {
		resp[i] = *afiliadoToResponse(&afiliados[i])
	}
	return resp, nil
}

func (s *afiliadoService) AgregarFamiliar(ctx context.Context, afiliadoID uuid.UUID, req dto.CrearFamiliarRequest) error {
	if _, err := s.repo.FindByID(ctx, afiliadoID); err != nil {
		return errors.New("afiliado no encontrado")
	}
	return s.repo.CreateFamiliar(ctx, &model.Familiar{
		AfiliadoID: afiliadoID,
		Documento:  req.Documento,
		Nombre:     req.Nombre,
		Apellido:   req.Apellido,
		Parentesco: req.Parentesco,
		Categoria:  req.Categoria,
		Activo:     true,
	})
}

func (s *afiliadoService) QuitarFamiliar(ctx context.Context, familiarID uuid.UUID) error {
	return s.repo.DeleteFamiliar(ctx, familiarID)
}

func afiliadoToResponse(a *model.Afiliado) *dto.AfiliadoResponse {
	resp := &dto.AfiliadoResponse{
		ID:        a.ID.String(),
		Documento: a.Documento,
		Nombre:    a.Nombre,
		Apellido:  a.Apellido,
		Email:     a.Email,
		Telefono:  a.Telefono,
		Activo:    a.Activo,
	}
	if a.Convenio != nil {
		resp.Convenio = a.Convenio.Nombre
	}
	return resp
}
