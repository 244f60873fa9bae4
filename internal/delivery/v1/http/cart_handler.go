package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/DRSN-tech/okna-shop/internal/usecase"
	"github.com/DRSN-tech/okna-shop/pkg/logger"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type CartHandler struct {
	cartUsecase usecase.CartUC
	logger      logger.Logger
}

func NewCartHandler(cartUsecase usecase.CartUC, logger logger.Logger) *CartHandler {
	return &CartHandler{cartUsecase: cartUsecase, logger: logger}
}

// getCart
//
//	@Summary	Корзина
//	@Tags		cart
//	@Produce	json
//	@Success	200	{object}	CartResponse
//	@Router		/cart [get]
func (h *CartHandler) getCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.cartUsecase.GetCart(r.Context(), SessionID(r.Context()))
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	WriteSuccess(w, http.StatusOK, newCartResponse(cart))
}

// updateQuantity
//
//	@Summary		Изменить количество
//	@Description	Значение меньше 0.1 игнорируется (applied=false)
//	@Tags			cart
//	@Accept			json
//	@Produce		json
//	@Param			productID	path		int						true	"ID товара"
//	@Param			quantity	body		UpdateQuantityRequest	true	"Новое количество"
//	@Success		200			{object}	CartMutationResponse
//	@Failure		400			{object}	ErrorResponse	"Нечисловое количество"
//	@Router			/cart/items/{productID} [put]
func (h *CartHandler) updateQuantity(w http.ResponseWriter, r *http.Request) {
	productID, err := productIDParam(r)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	var req UpdateQuantityRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	quantity, err := parseQuantity(req.Quantity)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	h.writeMutation(w, r, func() (*usecase.CartMutationRes, error) {
		return h.cartUsecase.UpdateQuantity(r.Context(), SessionID(r.Context()), productID, quantity)
	})
}

// increment
//
//	@Summary	Увеличить количество на 0.5
//	@Tags		cart
//	@Produce	json
//	@Param		productID	path		int	true	"ID товара"
//	@Success	200			{object}	CartMutationResponse
//	@Router		/cart/items/{productID}/increment [post]
func (h *CartHandler) increment(w http.ResponseWriter, r *http.Request) {
	h.mutateByID(w, r, h.cartUsecase.Increment)
}

// decrement
//
//	@Summary		Уменьшить количество на 0.5
//	@Description	Если результат меньше 0.1, количество не меняется (applied=false)
//	@Tags			cart
//	@Produce		json
//	@Param			productID	path		int	true	"ID товара"
//	@Success		200			{object}	CartMutationResponse
//	@Router			/cart/items/{productID}/decrement [post]
func (h *CartHandler) decrement(w http.ResponseWriter, r *http.Request) {
	h.mutateByID(w, r, h.cartUsecase.Decrement)
}

// remove
//
//	@Summary		Удалить строку корзины
//	@Description	Удаление отсутствующего товара ничего не меняет
//	@Tags			cart
//	@Produce		json
//	@Param			productID	path		int	true	"ID товара"
//	@Success		200			{object}	CartMutationResponse
//	@Router			/cart/items/{productID} [delete]
func (h *CartHandler) remove(w http.ResponseWriter, r *http.Request) {
	h.mutateByID(w, r, h.cartUsecase.Remove)
}

// clear
//
//	@Summary	Очистить корзину
//	@Tags		cart
//	@Produce	json
//	@Success	200	{object}	CartMutationResponse
//	@Router		/cart [delete]
func (h *CartHandler) clear(w http.ResponseWriter, r *http.Request) {
	h.writeMutation(w, r, func() (*usecase.CartMutationRes, error) {
		return h.cartUsecase.Clear(r.Context(), SessionID(r.Context()))
	})
}

// exportEstimate
//
//	@Summary	Смета в Excel
//	@Tags		cart
//	@Produce	application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
//	@Success	200	{file}	file
//	@Router		/cart/export [get]
func (h *CartHandler) exportEstimate(w http.ResponseWriter, r *http.Request) {
	data, err := h.cartUsecase.ExportEstimate(r.Context(), SessionID(r.Context()))
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	filename := "smeta-" + time.Now().Format("2006-01-02") + ".xlsx"
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// checkout
//
//	@Summary		Оформить заказ
//	@Description	Заказ не отправляется, корзина сохраняется
//	@Tags			cart
//	@Produce		json
//	@Success		202	{object}	CheckoutResponse
//	@Router			/cart/checkout [post]
func (h *CartHandler) checkout(w http.ResponseWriter, r *http.Request) {
	res, err := h.cartUsecase.Checkout(r.Context(), SessionID(r.Context()))
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	WriteSuccess(w, http.StatusAccepted, CheckoutResponse{
		Message: res.Message,
		Cart:    newCartResponse(res.Cart),
	})
}

type cartMutation func(ctx context.Context, sessionID string, productID int64) (*usecase.CartMutationRes, error)

func (h *CartHandler) mutateByID(w http.ResponseWriter, r *http.Request, fn cartMutation) {
	productID, err := productIDParam(r)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	h.writeMutation(w, r, func() (*usecase.CartMutationRes, error) {
		return fn(r.Context(), SessionID(r.Context()), productID)
	})
}

func (h *CartHandler) writeMutation(w http.ResponseWriter, r *http.Request, fn func() (*usecase.CartMutationRes, error)) {
	res, err := fn()
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	if !res.Applied {
		h.logger.Debugf("cart change ignored for session %s: %s %s", SessionID(r.Context()), r.Method, r.URL.Path)
	}

	WriteSuccess(w, http.StatusOK, newCartMutationResponse(res))
}
