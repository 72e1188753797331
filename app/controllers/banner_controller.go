package controllers

import (
	"mime/multipart"

	"github.com/shashiranjanraj/shopfront/app/repositories"
	"github.com/shashiranjanraj/shopfront/app/requests"
	"github.com/shashiranjanraj/shopfront/app/services"
	"github.com/shashiranjanraj/shopfront/pkg/ctx"
	"github.com/shashiranjanraj/shopfront/pkg/response"
)

type BannerController struct {
	banners *services.BannerService
}

func NewBannerController(banners *services.BannerService) *BannerController {
	return &BannerController{banners: banners}
}

// Index lists active banners, optionally for one position.
func (b *BannerController) Index(c *ctx.Context) {
	list, err := b.banners.List(c.Context(), repositories.BannerFilter{ActiveOnly: true, Position: c.Query("position")})
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(response.M{"banners": list})
}

func (b *BannerController) Show(c *ctx.Context) {
	banner, err := b.banners.Get(c.Context(), c.Param("id"))
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(response.M{"banner": banner})
}

func (b *BannerController) Store(c *ctx.Context) {
	var in requests.BannerForm
	if !c.Bind(&in) {
		return
	}

	banner, err := b.banners.Create(c.Context(), &in, firstFile(c, "image"))
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(response.M{"bannerId": banner.ID, "banner": banner})
}

func (b *BannerController) Update(c *ctx.Context) {
	var in requests.BannerForm
	if !c.Bind(&in) {
		return
	}

	banner, err := b.banners.Update(c.Context(), c.Param("id"), &in, firstFile(c, "image"))
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(response.M{"message": "Banner updated successfully", "banner": banner})
}

func (b *BannerController) Destroy(c *ctx.Context) {
	if err := b.banners.Delete(c.Context(), c.Param("id")); err != nil {
		c.Fail(err)
		return
	}
	c.Success(response.M{"message": "Banner deleted successfully"})
}

func firstFile(c *ctx.Context, key string) *multipart.FileHeader {
	if files := c.Files(key); len(files) > 0 {
		return files[0]
	}
	return nil
}
