package handlers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/labstack/echo/v4"

	"shopfront/internal/es"
	"shopfront/internal/flash"
	"shopfront/internal/logging"
	"shopfront/internal/models"
	"shopfront/internal/mykafka"
	"shopfront/internal/repo"
	"shopfront/internal/service"
	"shopfront/internal/upload"
	"shopfront/internal/util"
)

type ProductHandler struct {
	Catalog  *service.CatalogService
	Uploads  *upload.Store
	Producer *mykafka.Producer
	Indexer  *es.Indexer
}

type productForm struct {
	Name        string `form:"name"     validate:"required"`
	Description string `form:"desc"`
	Price       int    `form:"price"    validate:"gte=0"`
	Quantity    int    `form:"quantity" validate:"gte=0"`
}

func (h *ProductHandler) Home(c echo.Context) error {
	return c.Render(http.StatusOK, "index.html", pageData(c, nil))
}

func (h *ProductHandler) ListProducts(c echo.Context) error {
	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, items, err := h.Catalog.List(c.Request().Context(), offset, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err)
	}

	return c.Render(http.StatusOK, "product.html", pageData(c, echo.Map{
		"Products": items,
		"Page":     page,
		"PrevPage": page - 1,
		"NextPage": page + 1,
		"HasPrev":  page > 1,
		"HasNext":  int64(offset+limit) < total,
	}))
}

func (h *ProductHandler) ViewItem(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		flash.Set(c, "invalid product id")
		return c.Redirect(http.StatusFound, "/products")
	}

	product, err := h.Catalog.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			flash.Set(c, "product not found")
			return c.Redirect(http.StatusFound, "/products")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err)
	}

	return c.Render(http.StatusOK, "viewitem.html", pageData(c, echo.Map{"Product": product}))
}

func (h *ProductHandler) AddProductPage(c echo.Context) error {
	return c.Render(http.StatusOK, "add_pro.html", pageData(c, nil))
}

func (h *ProductHandler) AddProduct(c echo.Context) error {
	var req productForm
	if err := c.Bind(&req); err != nil {
		return c.Render(http.StatusBadRequest, "add_pro.html", pageData(c, echo.Map{"Flash": "invalid form data"}))
	}
	if err := c.Validate(&req); err != nil {
		return c.Render(http.StatusOK, "add_pro.html", pageData(c, echo.Map{
			"Flash": "name is required; price and quantity must not be negative",
		}))
	}

	fh, err := c.FormFile("file")
	if err != nil && !errors.Is(err, http.ErrMissingFile) {
		return c.Render(http.StatusOK, "add_pro.html", pageData(c, echo.Map{"Flash": "No file part"}))
	}

	img, err := h.storeUpload(fh)
	if err != nil {
		if errors.Is(err, upload.ErrUnsupportedFileType) {
			return c.Render(http.StatusOK, "add_pro.html", pageData(c, echo.Map{
				"Flash": "only png, jpg and jpeg images are allowed",
			}))
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err)
	}

	product := models.Product{
		Name:        req.Name,
		Img:         img,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
	}
	if err := h.Catalog.Create(c.Request().Context(), &product); err != nil {
		if errors.Is(err, repo.ErrProductNameTaken) {
			return c.Render(http.StatusOK, "add_pro.html", pageData(c, echo.Map{
				"Flash": "a product with this name already exists",
			}))
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err)
	}

	h.syncIndex(c, &product)
	publish(c, h.Producer, "product_events", fmt.Sprint(product.ID), map[string]interface{}{
		"type":      "product_created",
		"productID": product.ID,
		"name":      product.Name,
	})

	flash.Set(c, "product created")
	return c.Redirect(http.StatusSeeOther, "/products")
}

func (h *ProductHandler) ManageProducts(c echo.Context) error {
	page := parseIntDefault(c.QueryParam("page"), 1)
	offset, limit := util.Calculate(page, 100)

	_, items, err := h.Catalog.List(c.Request().Context(), offset, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err)
	}
	return c.Render(http.StatusOK, "view.html", pageData(c, echo.Map{"Products": items}))
}

func (h *ProductHandler) ModifyPage(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		flash.Set(c, "invalid product id")
		return c.Redirect(http.StatusFound, "/view")
	}

	product, err := h.Catalog.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			flash.Set(c, "product not found")
			return c.Redirect(http.StatusFound, "/view")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err)
	}

	return c.Render(http.StatusOK, "modify.html", pageData(c, echo.Map{"Product": product}))
}

func (h *ProductHandler) Modify(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		flash.Set(c, "invalid product id")
		return c.Redirect(http.StatusSeeOther, "/view")
	}

	var req productForm
	if err := c.Bind(&req); err != nil {
		flash.Set(c, "invalid form data")
		return c.Redirect(http.StatusSeeOther, "/view")
	}
	if err := c.Validate(&req); err != nil {
		flash.Set(c, "name is required; price and quantity must not be negative")
		return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/modify?id=%d", id))
	}

	// A new image is optional on modify; the current one stays unless a
	// valid file is posted.
	var img string
	if fh, err := c.FormFile("file"); err == nil && fh != nil && fh.Filename != "" {
		img, err = h.storeUpload(fh)
		if err != nil {
			if errors.Is(err, upload.ErrUnsupportedFileType) {
				flash.Set(c, "only png, jpg and jpeg images are allowed")
				return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/modify?id=%d", id))
			}
			return echo.NewHTTPError(http.StatusInternalServerError, err)
		}
	}

	fields := models.Product{
		Name:        req.Name,
		Img:         img,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
	}
	product, err := h.Catalog.Update(c.Request().Context(), id, fields)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrNotFound):
			flash.Set(c, "product not found")
			return c.Redirect(http.StatusSeeOther, "/view")
		case errors.Is(err, repo.ErrProductNameTaken):
			flash.Set(c, "a product with this name already exists")
			return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/modify?id=%d", id))
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err)
		}
	}

	h.syncIndex(c, product)
	publish(c, h.Producer, "product_events", fmt.Sprint(product.ID), map[string]interface{}{
		"type":      "product_updated",
		"productID": product.ID,
		"name":      product.Name,
	})

	flash.Set(c, "product updated")
	return c.Redirect(http.StatusSeeOther, "/view")
}

func (h *ProductHandler) Delete(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		flash.Set(c, "invalid product id")
		return c.Redirect(http.StatusFound, "/view")
	}

	if err := h.Catalog.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			flash.Set(c, "product not found")
			return c.Redirect(http.StatusFound, "/view")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err)
	}

	if h.Indexer.Enabled() {
		if err := h.Indexer.DeleteProduct(c.Request().Context(), id); err != nil {
			logging.FromContext(c.Request().Context()).Error("search deindex error", "productID", id, "error", err)
		}
	}
	publish(c, h.Producer, "product_events", fmt.Sprint(id), map[string]interface{}{
		"type":      "product_deleted",
		"productID": id,
	})

	flash.Set(c, "product deleted")
	return c.Redirect(http.StatusFound, "/view")
}

func (h *ProductHandler) storeUpload(fh *multipart.FileHeader) (string, error) {
	if fh == nil || fh.Filename == "" {
		return h.Uploads.Save("", nil)
	}
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()
	return h.Uploads.Save(fh.Filename, src)
}

func (h *ProductHandler) syncIndex(c echo.Context, p *models.Product) {
	if !h.Indexer.Enabled() {
		return
	}
	if err := h.Indexer.IndexProduct(c.Request().Context(), p); err != nil {
		logging.FromContext(c.Request().Context()).Error("search index error", "productID", p.ID, "error", err)
	}
}
