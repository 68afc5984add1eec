package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/SantiPratti/FerrariMenudencias-Backend/internal/models"
)

type Config struct {
	HTTP_ADDR     string
	DB_HOST       string
	DB_PORT       string
	DB_USER       string
	DB_PASSWORD   string
	DB_NAME       string
	JWT_SECRET    string
	KAFKA_ADDRESS string
	ES_URL        string
	ES_USER       string
	ES_PASSWORD   string
	LOG_LEVEL     string
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	config := &Config{
		HTTP_ADDR:     getenvDefault("HTTP_ADDR", ":3000"),
		DB_HOST:       os.Getenv("DB_HOST"),
		DB_PORT:       os.Getenv("DB_PORT"),
		DB_USER:       os.Getenv("DB_USER"),
		DB_PASSWORD:   os.Getenv("DB_PASSWORD"),
		DB_NAME:       os.Getenv("DB_NAME"),
		JWT_SECRET:    os.Getenv("JWT_SECRET"),
		KAFKA_ADDRESS: os.Getenv("KAFKA_ADDRESS"),
		ES_URL:        os.Getenv("ES_URL"),
		ES_USER:       os.Getenv("ES_USER"),
		ES_PASSWORD:   os.Getenv("ES_PASSWORD"),
		LOG_LEVEL:     getenvDefault("LOG_LEVEL", "info"),
	}

	return config, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DB_USER, c.DB_PASSWORD, c.DB_HOST, c.DB_PORT, c.DB_NAME,
	)
}

func InitDB(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Rol{},
		&models.Usuario{},
		&models.Estado{},
		&models.Producto{},
		&models.Pedido{},
		&models.PedidoProducto{},
		&models.Venta{},
		&models.MetodoPago{},
	); err != nil {
		return fmt.Errorf("no se pudo ejecutar la migración: %w", err)
	}
	return SeedCatalogos(db)
}

// SeedCatalogos inserta las enumeraciones de estado y método de pago si la
// tabla está vacía. El orden de inserción fija los ids (Pendiente=1,
// Entregado=4, Efectivo=1).
func SeedCatalogos(db *gorm.DB) error {
	var estados int64
	if err := db.Model(&models.Estado{}).Count(&estados).Error; err != nil {
		return err
	}
	if estados == 0 {
		seed := []models.Estado{
			{Nombre: models.EstadoPendiente},
			{Nombre: "En preparación"},
			{Nombre: "Listo para entrega"},
			{Nombre: models.EstadoEntregado},
		}
		if err := db.Create(&seed).Error; err != nil {
			return fmt.Errorf("no se pudieron sembrar los estados: %w", err)
		}
	}

	var metodos int64
	if err := db.Model(&models.MetodoPago{}).Count(&metodos).Error; err != nil {
		return err
	}
	if metodos == 0 {
		seed := []models.MetodoPago{
			{Nombre: "Efectivo"},
			{Nombre: "Transferencia"},
		}
		if err := db.Create(&seed).Error; err != nil {
			return fmt.Errorf("no se pudieron sembrar los métodos de pago: %w", err)
		}
	}

	return nil
}

// ResolverEstado busca el id de un estado por nombre. El id de "Entregado"
// se resuelve una sola vez al arrancar en lugar de repartir el literal 4
// por la lógica de negocio.
func ResolverEstado(db *gorm.DB, nombre string) (uint, error) {
	var estado models.Estado
	if err := db.Where("nombre_estado = ?", nombre).First(&estado).Error; err != nil {
		return 0, fmt.Errorf("estado %q no encontrado: %w", nombre, err)
	}
	return estado.ID, nil
}

func ResolverMetodoPago(db *gorm.DB, nombre string) (uint, error) {
	var metodo models.MetodoPago
	if err := db.Where("nombre_metodo = ?", nombre).First(&metodo).Error; err != nil {
		return 0, fmt.Errorf("método de pago %q no encontrado: %w", nombre, err)
	}
	return metodo.ID, nil
}

