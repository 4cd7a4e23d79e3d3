package api

import (
	"errors"
	"fmt"

	"stocksvc/internal/calendar"
	"stocksvc/internal/domain"

	"github.com/gin-gonic/gin"
)

type purchaseRequest struct {
	Amount *int64 `json:"amount" binding:"required"`
}

func (h ApiHandler) getStock(c *gin.Context) {
	symbol := c.Param("symbol")
	date := c.Query("date")

	quote, err := h.StockService.GetStock(c, symbol, date)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidSymbol) || errors.Is(err, calendar.ErrInvalidDate) {
			returnErrorJsonCode(err, c, 400)
			return
		}
		returnErrorJsonCode(err, c, 502)
		return
	}

	c.JSON(200, quote)
}

func (h ApiHandler) addPurchase(c *gin.Context) {
	symbol := c.Param("symbol")

	var requestBody purchaseRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}
	if *requestBody.Amount < 0 {
		returnErrorJsonCode(fmt.Errorf("amount must not be negative"), c, 400)
		return
	}

	row, err := h.PurchaseService.RecordPurchase(c, symbol, *requestBody.Amount)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidSymbol) {
			returnErrorJsonCode(err, c, 400)
			return
		}
		returnErrorJson(err, c)
		return
	}

	c.JSON(201, gin.H{
		"message": fmt.Sprintf("%d units of stock %s were added to your stock record", row.Amount, row.Symbol),
	})
}
