package http

import (
	"net/http"

	"github.com/DRSN-tech/okna-shop/internal/domain"
	"github.com/DRSN-tech/okna-shop/internal/usecase"
	"github.com/DRSN-tech/okna-shop/pkg/logger"
)

type CatalogHandler struct {
	catalogUsecase usecase.CatalogUC
	cartUsecase    usecase.CartUC
	logger         logger.Logger
}

func NewCatalogHandler(catalogUsecase usecase.CatalogUC, cartUsecase usecase.CartUC, logger logger.Logger) *CatalogHandler {
	return &CatalogHandler{catalogUsecase: catalogUsecase, cartUsecase: cartUsecase, logger: logger}
}

// listProducts
//
//	@Summary		Список товаров
//	@Description	Фильтрует каталог по категории и поисковой строке. Незаданные параметры берутся из сохранённого фильтра; фильтр сессии не меняется
//	@Tags			catalog
//	@Produce		json
//	@Param			category	query		string	false	"Категория: all, seals, sills, panels"
//	@Param			q			query		string	false	"Подстрока названия без учёта регистра"
//	@Success		200			{object}	ProductListResponse
//	@Failure		400			{object}	ErrorResponse	"Неизвестная категория"
//	@Router			/catalog/products [get]
func (h *CatalogHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &usecase.ListProductsReq{}

	if query.Has("category") {
		category, err := domain.ParseCategory(query.Get("category"))
		if err != nil {
			respondError(w, r, h.logger, err)
			return
		}
		req.Category = &category
	}
	if query.Has("q") {
		q := query.Get("q")
		req.Query = &q
	}

	res, err := h.catalogUsecase.ListProducts(r.Context(), SessionID(r.Context()), req)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	WriteSuccess(w, http.StatusOK, newProductListResponse(res))
}

// setFilter
//
//	@Summary		Сохранить фильтр каталога
//	@Tags			catalog
//	@Accept			json
//	@Produce		json
//	@Param			filter	body		SetFilterRequest	true	"Категория и поисковая строка"
//	@Success		200		{object}	ProductListResponse
//	@Failure		400		{object}	ErrorResponse
//	@Router			/catalog/filters [put]
func (h *CatalogHandler) setFilter(w http.ResponseWriter, r *http.Request) {
	var req SetFilterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	category, err := domain.ParseCategory(req.Category)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	res, err := h.catalogUsecase.SetFilter(r.Context(), SessionID(r.Context()), domain.Filter{
		Category: category,
		Query:    req.Query,
	})
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	WriteSuccess(w, http.StatusOK, newProductListResponse(res))
}

// resetFilter
//
//	@Summary	Сбросить фильтры
//	@Tags		catalog
//	@Produce	json
//	@Success	200	{object}	ProductListResponse
//	@Router		/catalog/filters/reset [post]
func (h *CatalogHandler) resetFilter(w http.ResponseWriter, r *http.Request) {
	res, err := h.catalogUsecase.ResetFilter(r.Context(), SessionID(r.Context()))
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	WriteSuccess(w, http.StatusOK, newProductListResponse(res))
}

// listCategories
//
//	@Summary	Категории каталога
//	@Tags		catalog
//	@Produce	json
//	@Success	200	{array}	CategoryResponse
//	@Router		/catalog/categories [get]
func (h *CatalogHandler) listCategories(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, http.StatusOK, newCategoryResponses(h.catalogUsecase.Categories()))
}

// addToCart
//
//	@Summary		Добавить товар в корзину
//	@Description	Добавляет 1 единицу товара. Повторное добавление увеличивает количество в строке
//	@Tags			catalog
//	@Produce		json
//	@Param			productID	path		int	true	"ID товара"
//	@Success		200			{object}	AddToCartResponse
//	@Failure		400			{object}	ErrorResponse
//	@Failure		404			{object}	ErrorResponse	"Товар не найден"
//	@Router			/catalog/products/{productID}/cart [post]
func (h *CatalogHandler) addToCart(w http.ResponseWriter, r *http.Request) {
	productID, err := productIDParam(r)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	res, err := h.cartUsecase.AddFromCatalog(r.Context(), SessionID(r.Context()), productID)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	WriteSuccess(w, http.StatusOK, newAddToCartResponse(res))
}
