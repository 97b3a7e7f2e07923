// Carga los datos base de un club recien instalado: usuario administrador,
// listas de precios, convenios, entradas, medios de pago y punto de venta.
// Idempotente: corre sobre una base ya sembrada sin duplicar nada.
package main

import (
	"github.com/MateoRicci/gestion-cec-sub000/internal/config"
	"github.com/MateoRicci/gestion-cec-sub000/internal/infra"
	"github.com/MateoRicci/gestion-cec-sub000/internal/model"
	"github.com/MateoRicci/gestion-cec-sub000/internal/service"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("no se pudo cargar la configuracion")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("no se pudo conectar a la base de datos")
	}

	seedListas(db)
	seedConvenios(db)
	seedProductos(db)
	seedMediosPago(db)
	seedPuntoVenta(db)
	seedAdmin(db)

	log.Info().Msg("seed completado")
}

func seedListas(db *gorm.DB) {
	desc := func(s string) *string { return &s }
	listas := []model.ListaPrecio{
		{ID: service.ListaSocios, Nombre: "Socios", Descripcion: desc("Afiliados y sus familiares"), Activo: true},
		{ID: service.ListaSociosEmpleados, Nombre: "Socios Empleados", Descripcion: desc("Empleados de la empresa convenida"), Activo: true},
		{ID: service.ListaNoSocios, Nombre: "No Socios", Descripcion: desc("Publico general"), Activo: true},
	}
	for _, l := range listas {
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&l).Error; err != nil {
			log.Fatal().Err(err).Str("lista", l.Nombre).Msg("no se pudo crear la lista de precios")
		}
	}
}

func seedConvenios(db *gorm.DB) {
	socios := service.ListaSocios
	empleados := service.ListaSociosEmpleados
	noSocios := service.ListaNoSocios
	// Convenios cuyo nombre contiene "empleado" van a la lista Socios
	// Empleados; el resto de los afiliados compra por la lista Socios.
	convenios := []model.Convenio{
		{Nombre: "Socios del Club", ListaPrecioID: &socios, Activo: true},
		{Nombre: "Empleados de Comercio", ListaPrecioID: &empleados, Activo: true},
		{Nombre: "Empleados CEC", ListaPrecioID: &empleados, Activo: true},
		{Nombre: model.NombreConsumidorFinal, ListaPrecioID: &noSocios, Activo: true},
	}
	for _, c := range convenios {
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&c).Error; err != nil {
			log.Fatal().Err(err).Str("convenio", c.Nombre).Msg("no se pudo crear el convenio")
		}
	}
}

func seedProductos(db *gorm.DB) {
	precio := func(socios, empleados, noSocios string) map[int]decimal.Decimal {
		return map[int]decimal.Decimal{
			service.ListaSocios:          decimal.RequireFromString(socios),
			service.ListaSociosEmpleados: decimal.RequireFromString(empleados),
			service.ListaNoSocios:        decimal.RequireFromString(noSocios),
		}
	}
	entradas := []struct {
		nombre  string
		precios map[int]decimal.Decimal
	}{
		{service.ProductoEntradaMayor, precio("1500", "1000", "4000")},
		{service.ProductoEntradaMenor, precio("800", "500", "2500")},
		{service.ProductoEntradaGeneral, precio("2000", "2000", "3500")},
	}
	for _, e := range entradas {
		var producto model.Producto
		err := db.Where("nombre = ?", e.nombre).
			Attrs(model.Producto{EsEntrada: true, Activo: true}).
			FirstOrCreate(&producto, model.Producto{Nombre: e.nombre}).Error
		if err != nil {
			log.Fatal().Err(err).Str("producto", e.nombre).Msg("no se pudo crear el producto")
		}
		for listaID, p := range e.precios {
			pp := model.PrecioProducto{ProductoID: producto.ID, ListaPrecioID: listaID, PrecioUnitario: p}
			if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&pp).Error; err != nil {
				log.Fatal().Err(err).Str("producto", e.nombre).Int("lista", listaID).Msg("no se pudo fijar el precio")
			}
		}
	}
}

func seedMediosPago(db *gorm.DB) {
	medios := []model.MedioPago{
		{Nombre: "Efectivo", EsEfectivo: true, Activo: true},
		{Nombre: "Tarjeta de Debito", Activo: true},
		{Nombre: "Tarjeta de Credito", Activo: true},
		{Nombre: "Transferencia", Activo: true},
		{Nombre: "Mercado Pago", Activo: true},
	}
	for _, m := range medios {
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&m).Error; err != nil {
			log.Fatal().Err(err).Str("medio", m.Nombre).Msg("no se pudo crear el medio de pago")
		}
	}
}

func seedPuntoVenta(db *gorm.DB) {
	pv := model.PuntoVenta{Nombre: "Pileta", Activo: true}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&pv).Error; err != nil {
		log.Fatal().Err(err).Msg("no se pudo crear el punto de venta")
	}
}

func seedAdmin(db *gorm.DB) {
	var count int64
	db.Model(&model.Usuario{}).Where("username = ?", "admin").Count(&count)
	if count > 0 {
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte("cambiar-al-ingresar"), 12)
	if err != nil {
		log.Fatal().Err(err).Msg("no se pudo generar el hash del administrador")
	}
	admin := model.Usuario{
		Username:     "admin",
		Nombre:       "Administrador",
		Apellido:     "General",
		PasswordHash: string(hash),
		Rol:          "administrador",
		Activo:       true,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Fatal().Err(err).Msg("no se pudo crear el usuario administrador")
	}
	log.Info().Msg("usuario admin creado — cambiar la clave en el primer ingreso")
}
