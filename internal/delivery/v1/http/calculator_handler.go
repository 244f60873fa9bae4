package http

import (
	"net/http"

	"github.com/DRSN-tech/okna-shop/internal/usecase"
	"github.com/DRSN-tech/okna-shop/pkg/logger"
)

type CalculatorHandler struct {
	calculatorUsecase usecase.CalculatorUC
	logger            logger.Logger
}

func NewCalculatorHandler(calculatorUsecase usecase.CalculatorUC, logger logger.Logger) *CalculatorHandler {
	return &CalculatorHandler{calculatorUsecase: calculatorUsecase, logger: logger}
}

// getCalculator
//
//	@Summary	Калькулятор
//	@Tags		calculator
//	@Produce	json
//	@Success	200	{object}	CalculatorResponse
//	@Router		/calculator [get]
func (h *CalculatorHandler) getCalculator(w http.ResponseWriter, r *http.Request) {
	calc, err := h.calculatorUsecase.GetCalculator(r.Context(), SessionID(r.Context()))
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	WriteSuccess(w, http.StatusOK, newCalculatorResponse(calc))
}

// updateCalculator
//
//	@Summary		Изменить выбор калькулятора
//	@Description	Меняет товар и/или количество. Количество меньше 0.1 отклоняется
//	@Tags			calculator
//	@Accept			json
//	@Produce		json
//	@Param			calculator	body		UpdateCalculatorRequest	true	"Товар и количество"
//	@Success		200			{object}	CalculatorResponse
//	@Failure		400			{object}	ErrorResponse
//	@Failure		404			{object}	ErrorResponse	"Товар не найден"
//	@Router			/calculator [put]
func (h *CalculatorHandler) updateCalculator(w http.ResponseWriter, r *http.Request) {
	var body UpdateCalculatorRequest
	if err := decodeJSON(w, r, &body); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	req := &usecase.UpdateCalculatorReq{ProductID: body.ProductID}
	if body.Quantity != nil {
		quantity, err := parseQuantity(*body.Quantity)
		if err != nil {
			respondError(w, r, h.logger, err)
			return
		}
		req.Quantity = &quantity
	}

	calc, err := h.calculatorUsecase.UpdateCalculator(r.Context(), SessionID(r.Context()), req)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	WriteSuccess(w, http.StatusOK, newCalculatorResponse(calc))
}

// addToCart
//
//	@Summary		Добавить расчёт в корзину
//	@Description	Добавляет выбранный товар в рассчитанном количестве и переключает вкладку на корзину
//	@Tags			calculator
//	@Produce		json
//	@Success		200	{object}	AddToCartResponse
//	@Failure		404	{object}	ErrorResponse	"Товар не найден"
//	@Router			/calculator/cart [post]
func (h *CalculatorHandler) addToCart(w http.ResponseWriter, r *http.Request) {
	res, err := h.calculatorUsecase.AddToCart(r.Context(), SessionID(r.Context()))
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	WriteSuccess(w, http.StatusOK, newAddToCartResponse(res))
}
