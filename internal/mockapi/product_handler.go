package mockapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/suteetoe/productdesk/internal/model"
)

// bindProduct decodes and validates a product body
func bindProduct(c echo.Context) (model.Payload, error) {
	var req model.Payload
	if err := c.Bind(&req); err != nil {
		return model.Payload{}, errors.New("invalid request data")
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Category = strings.TrimSpace(req.Category)
	if req.Name == "" || req.Category == "" {
		return model.Payload{}, errors.New("idsanpham and loaisp are required")
	}
	if req.Price <= 0 {
		return model.Payload{}, errors.New("gia must be greater than zero")
	}
	return req, nil
}

// ListProducts handles retrieving all products
func (s *Server) ListProducts(c echo.Context) error {
	log := s.loggerFrom(c)

	products := s.store.Products()
	log.Info("Products retrieved successfully", zap.Int("count", len(products)))
	return c.JSON(http.StatusOK, products)
}

// CreateProduct handles creating a new product
func (s *Server) CreateProduct(c echo.Context) error {
	log := s.loggerFrom(c)

	req, err := bindProduct(c)
	if err != nil {
		log.Warn("Invalid product request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	record := s.store.Insert(req)

	fields := []zap.Field{
		zap.String("product_id", record.ID),
		zap.String("name", record.Name),
		zap.Float64("price", float64(record.Price)),
	}
	if claims := userFrom(c); claims != nil {
		fields = append(fields, zap.String("created_by", claims.Email))
	}
	log.Info("Product created successfully", fields...)
	return c.JSON(http.StatusCreated, record)
}

// UpdateProduct handles replacing an existing product
func (s *Server) UpdateProduct(c echo.Context) error {
	log := s.loggerFrom(c)
	id := c.Param("id")

	req, err := bindProduct(c)
	if err != nil {
		log.Warn("Invalid product request", zap.String("product_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	record, err := s.store.Replace(id, req)
	if err != nil {
		log.Warn("Product not found for update", zap.String("product_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Product not found"})
	}

	log.Info("Product updated successfully",
		zap.String("product_id", id),
		zap.String("name", record.Name),
		zap.Float64("price", float64(record.Price)))
	return c.JSON(http.StatusOK, record)
}

// DeleteProduct handles deleting a product
func (s *Server) DeleteProduct(c echo.Context) error {
	log := s.loggerFrom(c)
	id := c.Param("id")

	if err := s.store.Remove(id); err != nil {
		log.Warn("Product not found for deletion", zap.String("product_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Product not found"})
	}

	log.Info("Product deleted successfully", zap.String("product_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "Product deleted successfully"})
}
