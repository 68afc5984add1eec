package models

import (
	"time"
)

// Estados de stock derivados de cantidad_disponible y stock_minimo.
const (
	StockSin    = "Sin stock"
	StockBajo   = "Bajo stock"
	StockNormal = "Stock normal"
)

type Producto struct {
	ID                 uint    `gorm:"column:id_producto;primaryKey;autoIncrement" json:"id_producto"`
	Nombre             string  `gorm:"column:nombre;not null"                      json:"nombre"`
	CantidadDisponible int     `gorm:"column:cantidad_disponible;not null"         json:"cantidad_disponible"`
	StockMinimo        int     `gorm:"column:stock_minimo;not null"                json:"stock_minimo"`
	Precio             float64 `gorm:"column:precio;not null"                      json:"precio"`
}

func (Producto) TableName() string { return "stock" }

// EstadoStock clasifica la disponibilidad actual del producto.
func (p Producto) EstadoStock() string {
	switch {
	case p.CantidadDisponible <= 0:
		return StockSin
	case p.CantidadDisponible < p.StockMinimo:
		return StockBajo
	default:
		return StockNormal
	}
}

type Rol struct {
	ID     uint   `gorm:"column:id_rol;primaryKey;autoIncrement" json:"id_rol"`
	Nombre string `gorm:"column:nombre_rol;not null"             json:"nombre_rol"`
}

func (Rol) TableName() string { return "roles" }

type Usuario struct {
	ID         uint    `gorm:"column:id_usuario;primaryKey;autoIncrement" json:"id_usuario"`
	Nombre     string  `gorm:"column:nombre;not null"                     json:"nombre"`
	Email      string  `gorm:"column:email;unique;not null"               json:"email"`
	Contrasena string  `gorm:"column:contrasena;not null"                 json:"-"`
	IDRol      uint    `gorm:"column:id_rol"                              json:"id_rol"`
	Telefono   *string `gorm:"column:telefono"                            json:"telefono,omitempty"`
}

func (Usuario) TableName() string { return "usuarios" }

type Estado struct {
	ID     uint   `gorm:"column:id_estado;primaryKey;autoIncrement" json:"id_estado"`
	Nombre string `gorm:"column:nombre_estado;unique;not null"      json:"nombre_estado"`
}

func (Estado) TableName() string { return "estados" }

// Nombres de estado sembrados en la migración. "Entregado" dispara el
// descuento de stock y el alta automática de la venta.
const (
	EstadoPendiente = "Pendiente"
	EstadoEntregado = "Entregado"
)

type Pedido struct {
	ID               uint      `gorm:"column:id_pedido;primaryKey;autoIncrement" json:"id_pedido"`
	IDUsuario        uint      `gorm:"column:id_usuario;not null;index"          json:"id_usuario"`
	FechaCreacion    time.Time `gorm:"column:fecha_creacion;not null"            json:"fecha_creacion"`
	Total            float64   `gorm:"column:total;not null"                     json:"total"`
	TelefonoContacto *string   `gorm:"column:telefono_contacto"                  json:"telefono_contacto,omitempty"`
	IDEstado         uint      `gorm:"column:id_estado;not null"                 json:"id_estado"`

	Usuario   *Usuario         `gorm:"foreignKey:IDUsuario" json:"usuario,omitempty"`
	Estado    *Estado          `gorm:"foreignKey:IDEstado"  json:"estado,omitempty"`
	Productos []PedidoProducto `gorm:"foreignKey:IDPedido"  json:"productos,omitempty"`
}

func (Pedido) TableName() string { return "pedidos" }

type PedidoProducto struct {
	ID         uint `gorm:"primaryKey;autoIncrement"        json:"id"`
	IDPedido   uint `gorm:"column:id_pedido;not null;index" json:"id_pedido"`
	IDProducto uint `gorm:"column:id_producto;not null"     json:"id_producto"`
	Cantidad   int  `gorm:"column:cantidad;not null"        json:"cantidad"`

	Producto *Producto `gorm:"foreignKey:IDProducto" json:"producto,omitempty"`
}

func (PedidoProducto) TableName() string { return "pedido_productos" }

type Venta struct {
	ID        uint      `gorm:"column:id_venta;primaryKey;autoIncrement" json:"id_venta"`
	FechaPago time.Time `gorm:"column:fecha_pago;not null"               json:"fecha_pago"`
	Monto     float64   `gorm:"column:monto;not null"                    json:"monto"`
	Total     float64   `gorm:"column:total;not null"                    json:"total"`
	IDPedido  uint      `gorm:"column:id_pedido;unique;not null"         json:"id_pedido"`
	IDMetodo  uint      `gorm:"column:id_metodo;not null"                json:"id_metodo"`
}

func (Venta) TableName() string { return "ventas" }

type MetodoPago struct {
	ID     uint   `gorm:"column:id_metodo;primaryKey;autoIncrement" json:"id_metodo"`
	Nombre string `gorm:"column:nombre_metodo;not null"             json:"nombre_metodo"`
}

func (MetodoPago) TableName() string { return "metodos_pago" }
