package service

import (
	"context"
	"errors"

	"github.com/MateoRicci/gestion-cec-sub000/internal/dto"
	"github.com/MateoRicci/gestion-cec-sub000/internal/model"
	"github.com/MateoRicci/gestion-cec-sub000/internal/repository"

	"github.com/google/uuid"
)

type ProductoService interface {
	Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error)
	Listar(ctx context.Context, puntoVentaID *uuid.UUID) ([]dto.ProductoResponse, error)
	Precios(ctx context.Context, productoID uuid.UUID) (*dto.PreciosProductoResponse, error)
	ActualizarPrecio(ctx context.Context, productoID uuid.UUID, req dto.ActualizarPrecioRequest) error
	ListasPrecios(ctx context.Context) ([]dto.ListaPrecioResponse, error)
}

type productoService struct {
	repo repository.ProductoRepository
}

func NewProductoService(repo repository.ProductoRepository) ProductoService {
	return &productoService{repo: repo}
}

func (s *productoService) Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	producto := &model.Producto{
		Nombre:        req.Nombre,
		Descripcion:   req.Descripcion,
		EsEntrada:     req.EsEntrada,
		ControlaStock: req.ControlaStock,
		Stock:         req.Stock,
		Activo:        true,
	}
	if err := s.repo.Create(ctx, producto); err != nil {
		return nil, err
	}
	return productoToResponse(producto), nil
}

func (s *productoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	producto, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("producto no encontrado")
	}
	if req.Nombre != nil {
		producto.Nombre = *req.Nombre
	}
	if req.Descripcion != nil {
		producto.Descripcion = req.Descripcion
	}
	if req.EsEntrada != nil {
		producto.EsEntrada = *req.EsEntrada
	}
	if req.ControlaStock != nil {
		producto.ControlaStock = *req.ControlaStock
	}
	if req.Stock != nil {
		producto.Stock = *req.Stock
	}
	if req.Activo != nil {
		producto.Activo = *req.Activo
	}
	if err := s.repo.Update(ctx, producto); err != nil {
		return nil, err
	}
	return productoToResponse(producto), nil
}

func (s *productoService) Listar(ctx context.Context, puntoVentaID *uuid.UUID) ([]dto.ProductoResponse, error) {
	productos, err := s.repo.List(ctx, puntoVentaID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ProductoResponse, len(productos))
	for i := range productos {
		resp[i] = *productoToResponse(&productos[i])
	}
	return resp, nil
}

func (s *productoService) Precios(ctx context.Context, productoID uuid.UUID) (*dto.PreciosProductoResponse, error) {
	if _, err := s.repo.FindByID(ctx, productoID); err != nil {
		return nil, errors.New("producto no encontrado")
	}
	precios, err := s.repo.ListPrecios(ctx, productoID)
	if err != nil {
		return nil, err
	}
	return &dto.PreciosProductoResponse{
		ProductoID: productoID.String(),
		Precios:    preciosToResponse(precios),
	}, nil
}

func (s *productoService) ActualizarPrecio(ctx context.Context, productoID uuid.UUID, req dto.ActualizarPrecioRequest) error {
	if _, err := s.repo.FindByID(ctx, productoID); err != nil {
		return errors.New("producto no encontrado")
	}
	return s.repo.UpsertPrecio(ctx, &model.PrecioProducto{
		ProductoID:     productoID,
		ListaPrecioID:  req.ListaPrecioID,
		PrecioUnitario: req.PrecioUnitario,
	})
}

func (s *productoService) ListasPrecios(ctx context.Context) ([]dto.ListaPrecioResponse, error) {
	listas, err := s.repo.ListListasPrecios(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ListaPrecioResponse, len(listas))
	for i, l := range listas {
		resp[i] = dto.ListaPrecioResponse{ID: l.ID, Nombre: l.Nombre, Descripcion: l.Descripcion}
	}
	return resp, nil
}

func productoToResponse(p *model.Producto) *dto.ProductoResponse {
	return &dto.ProductoResponse{
		ID:            p.ID.String(),
		Nombre:        p.Nombre,
		Descripcion:   p.Descripcion,
		EsEntrada:     p.EsEntrada,
		ControlaStock: p.ControlaStock,
		Stock:         p.Stock,
		Activo:        p.Activo,
		Precios:       preciosToResponse(p.Precios),
	}
}

func preciosToResponse(precios []model.PrecioProducto) []dto.PrecioProductoResponse {
	resp := make([]dto.PrecioProductoResponse, 0, len(precios))
	for _, p := range precios {
		row := dto.PrecioProductoResponse{
			ListaPrecioID:  p.ListaPrecioID,
			PrecioUnitario: p.PrecioUnitario,
		}
		if p.ListaPrecio != nil {
			row.NombreLista = p.ListaPrecio.Nombre
		}
		resp = append(resp, row)
	}
	return resp
}
