package controllers

import (
	"strings"

	"github.com/shashiranjanraj/shopfront/app/repositories"
	"github.com/shashiranjanraj/shopfront/app/requests"
	"github.com/shashiranjanraj/shopfront/app/services"
	"github.com/shashiranjanraj/shopfront/pkg/ctx"
	"github.com/shashiranjanraj/shopfront/pkg/response"
)

type ProductController struct {
	products *services.ProductService
}

func NewProductController(products *services.ProductService) *ProductController {
	return &ProductController{products: products}
}

// Index lists the catalogue newest first.
func (p *ProductController) Index(c *ctx.Context) {
	f := repositories.ProductFilter{
		Category: c.Query("category"),
		Featured: c.QueryBool("featured"),
		Search:   strings.TrimSpace(c.Query("search")),
	}
	page := c.Window(productPage)

	list, total, err := p.products.List(c.Context(), f, page)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Paginated("products", list, total, page)
}

func (p *ProductController) Show(c *ctx.Context) {
	product, err := p.products.Get(c.Context(), c.Param("id"))
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(response.M{"product": product})
}

func (p *ProductController) Store(c *ctx.Context) {
	var in requests.ProductForm
	if !c.Bind(&in) {
		return
	}

	product, err := p.products.Create(c.Context(), &in, c.Files("images"))
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(response.M{"productId": product.ID, "product": product})
}

func (p *ProductController) Update(c *ctx.Context) {
	var in requests.ProductForm
	if !c.Bind(&in) {
		return
	}

	product, err := p.products.Update(c.Context(), c.Param("id"), &in, c.Files("images"))
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(response.M{"message": "Product updated successfully", "product": product})
}

func (p *ProductController) Destroy(c *ctx.Context) {
	if err := p.products.Delete(c.Context(), c.Param("id")); err != nil {
		c.Fail(err)
		return
	}
	c.Success(response.M{"message": "Product deleted successfully"})
}
