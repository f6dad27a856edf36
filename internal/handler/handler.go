package handler

import (
	"errors"
	"net/http"
	"strconv"

	"trails/internal/model"
	"trails/internal/repository"
	"trails/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Сообщения, которые видит клиент API.
const (
	msgCreated          = "Trail created successfully!"
	msgUpdated          = "Trail updated successfully!"
	msgDeleted          = "Trail deleted successfully!"
	msgDuplicateTrailID = "TrailID already exists. Please use a unique TrailID."
	msgUnknownLocation  = "Invalid LocationID. Ensure the location exists in the TrailLocation table."
	msgTrailNotFound    = "Trail not found"
	msgLocationNotFound = "Location not found"
	msgInvalidID        = "Invalid id: must be an integer"
)

// Handler обрабатывает HTTP-запросы к тропам и локациям.
type Handler struct {
	TrailService    *service.TrailService
	LocationService *service.LocationService
	log             logrus.FieldLogger
}

// NewHandler создает новый Handler с внедрением зависимостей.
func NewHandler(ts *service.TrailService, ls *service.LocationService, log logrus.FieldLogger) *Handler {
	return &Handler{TrailService: ts, LocationService: ls, log: log}
}

// Register регистрирует маршруты.
func (h *Handler) Register(r gin.IRoutes) {
	r.GET("/trails", h.ListTrails)
	r.POST("/trails", h.CreateTrail)
	r.GET("/trails/:id", h.GetTrail)
	r.PUT("/trails/:id", h.UpdateTrail)
	r.DELETE("/trails/:id", h.DeleteTrail)

	r.GET("/locations", h.ListLocations)
	r.GET("/locations/:id", h.GetLocation)
}

// ListTrails обработчик для GET /trails - возвращает список всех троп.
func (h *Handler) ListTrails(c *gin.Context) {
	trails, err := h.TrailService.ListTrails(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, trails)
}

// GetTrail обработчик для GET /trails/:id.
func (h *Handler) GetTrail(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	trail, err := h.TrailService.GetTrail(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, trail)
}

// CreateTrail обработчик для POST /trails. Тело - полная запись тропы;
// теги binding модели проверяются при разборе.
func (h *Handler) CreateTrail(c *gin.Context) {
	var trail model.Trail
	if err := c.ShouldBindJSON(&trail); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if err := h.TrailService.CreateTrail(c.Request.Context(), &trail); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": msgCreated})
}

// UpdateTrail обработчик для PUT /trails/:id. Тело - полная запись тропы,
// пропущенные поля обнуляются.
func (h *Handler) UpdateTrail(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var trail model.Trail
	if err := c.ShouldBindJSON(&trail); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if err := h.TrailService.UpdateTrail(c.Request.Context(), id, &trail); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msgUpdated})
}

// DeleteTrail обработчик для DELETE /trails/:id.
func (h *Handler) DeleteTrail(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.TrailService.DeleteTrail(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msgDeleted})
}

// ListLocations обработчик для GET /locations - возвращает список всех локаций.
func (h *Handler) ListLocations(c *gin.Context) {
	locations, err := h.LocationService.ListLocations(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, locations)
}

// GetLocation обработчик для GET /locations/:id.
func (h *Handler) GetLocation(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	location, err := h.LocationService.GetLocation(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": msgLocationNotFound})
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, location)
}

func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidID})
		return 0, false
	}
	return id, true
}

// fail переводит ошибку сервиса в HTTP-ответ.
func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrDuplicateTrailID):
		c.JSON(http.StatusBadRequest, gin.H{"error": msgDuplicateTrailID})
	case errors.Is(err, repository.ErrUnknownLocation):
		c.JSON(http.StatusBadRequest, gin.H{"error": msgUnknownLocation})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": msgTrailNotFound})
	default:
		h.log.WithFields(logrus.Fields{
			"request_id": c.GetString(requestIDKey),
			"path":       c.FullPath(),
		}).WithError(err).Error("Ошибка базы данных")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error: " + err.Error()})
	}
}
