package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/shopme/shopme-backend/internal/middleware/auth"
	"github.com/shopme/shopme-backend/internal/models"
)

type ReviewHandler struct {
	DB *gorm.DB
}

type reviewView struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	ProductID uint      `json:"product_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UserName  string    `json:"user_name"`
}

func (h *ReviewHandler) ListByProduct(c echo.Context) error {
	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil || productID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	var reviews []reviewView
	if err := h.DB.Model(&models.Review{}).
		Select("reviews.id, reviews.user_id, reviews.product_id, reviews.rating, reviews.comment, reviews.created_at, users.name AS user_name").
		Joins("JOIN users ON users.id = reviews.user_id").
		Where("reviews.product_id = ?", productID).
		Order("reviews.created_at DESC").
		Scan(&reviews).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, reviews)
}

func (h *ReviewHandler) AddReview(c echo.Context) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var req struct {
		ProductID uint   `json:"product_id"`
		Rating    int    `json:"rating"`
		Comment   string `json:"comment"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Rating < 1 || req.Rating > 5 {
		return echo.NewHTTPError(http.StatusBadRequest, "Rating must be between 1 and 5")
	}

	var existing models.Review
	result := h.DB.Where("user_id = ? AND product_id = ?", userID, req.ProductID).First(&existing)
	if result.Error == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "You have already reviewed this product")
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return echo.NewHTTPError(http.StatusInternalServerError, result.Error.Error())
	}

	review := models.Review{
		UserID:    userID,
		ProductID: req.ProductID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	if err := h.DB.Create(&review).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Review added successfully"})
}

type reviewSummary struct {
	TotalReviews  int64   `json:"total_reviews"`
	AverageRating float64 `json:"average_rating"`
	FiveStar      int64   `json:"five_star"`
	FourStar      int64   `json:"four_star"`
	ThreeStar     int64   `json:"three_star"`
	TwoStar       int64   `json:"two_star"`
	OneStar       int64   `json:"one_star"`
}

func (h *ReviewHandler) Summary(c echo.Context) error {
	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil || productID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	var s reviewSummary
	if err := h.DB.Model(&models.Review{}).
		Select(`COUNT(*) AS total_reviews,
			COALESCE(AVG(rating), 0) AS average_rating,
			COUNT(CASE WHEN rating = 5 THEN 1 END) AS five_star,
			COUNT(CASE WHEN rating = 4 THEN 1 END) AS four_star,
			COUNT(CASE WHEN rating = 3 THEN 1 END) AS three_star,
			COUNT(CASE WHEN rating = 2 THEN 1 END) AS two_star,
			COUNT(CASE WHEN rating = 1 THEN 1 END) AS one_star`).
		Where("product_id = ?", productID).
		Scan(&s).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, s)
}
