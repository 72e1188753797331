package services

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/shopfront/app/models"
	"github.com/shashiranjanraj/shopfront/app/requests"
	"github.com/shashiranjanraj/shopfront/pkg/apperrors"
	"github.com/shashiranjanraj/shopfront/pkg/cache"
	"github.com/shashiranjanraj/shopfront/pkg/event"
	"github.com/shashiranjanraj/shopfront/pkg/storage"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

func str(s string) *string { return &s }

func imagePart(t *testing.T, name string) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("images", name)
	require.NoError(t, err)
	_, err = fw.Write(pngHeader)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["images"][0]
}

func newProductService(t *testing.T, cat *memCatalog, c *cache.Cache, events Publisher) *ProductService {
	t.Helper()
	disk, err := storage.NewLocalDisk(t.TempDir(), "/storage")
	require.NoError(t, err)
	return NewProductService(memProducts{cat}, memReviews{cat}, disk, c, events)
}

func TestProductService_Create(t *testing.T) {
	cat := newMemCatalog()
	svc := newProductService(t, cat, nil, &recordingBus{})
	price := 19.5

	p, err := svc.Create(context.Background(), &requests.ProductForm{
		Name:           str(" Kettle "),
		Price:          &price,
		Category:       str("kitchen"),
		Featured:       str("true"),
		Tags:           str("steel, 1.7l ,"),
		Specifications: str(`{"watts":2200}`),
	}, []*multipart.FileHeader{imagePart(t, "kettle.png")})
	require.NoError(t, err)

	stored := cat.product(p.ID.Hex())
	assert.Equal(t, "Kettle", stored.Name)
	assert.True(t, stored.Featured)
	assert.Equal(t, []string{"steel", "1.7l"}, stored.Tags)
	assert.EqualValues(t, 2200, stored.Specifications["watts"])
	assert.Zero(t, stored.Rating)
	require.Len(t, stored.Images, 1)
	assert.True(t, strings.HasPrefix(stored.Images[0], "/storage/uploads/products/"))
	assert.True(t, strings.HasSuffix(stored.Images[0], ".png"))
}

func TestProductService_CreateRequiresFields(t *testing.T) {
	svc := newProductService(t, newMemCatalog(), nil, &recordingBus{})

	_, err := svc.Create(context.Background(), &requests.ProductForm{Name: str("Kettle")}, nil)
	app, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, "Missing required fields", app.Message)
	assert.Contains(t, app.Fields, "price")
	assert.Contains(t, app.Fields, "category")
}

func TestProductService_UpdateKeepsAggregate(t *testing.T) {
	cat := newMemCatalog()
	id := cat.addProduct(models.Product{Name: "Kettle", Price: 10, Rating: 4.3, ReviewCount: 7, Images: []string{"/a.png"}})
	bus := &recordingBus{}
	svc := newProductService(t, cat, nil, bus)

	p, err := svc.Update(context.Background(), id, &requests.ProductForm{Description: str("Boils water")},
		[]*multipart.FileHeader{imagePart(t, "side.png")})
	require.NoError(t, err)

	stored := cat.product(id)
	assert.Equal(t, "Kettle", stored.Name)
	assert.Equal(t, "Boils water", stored.Description)
	assert.Equal(t, 4.3, stored.Rating)
	assert.Equal(t, 7, stored.ReviewCount)
	assert.Len(t, p.Images, 2)
	assert.Equal(t, []string{event.ProductChanged}, bus.events)
}

func TestProductService_DeleteDropsReviews(t *testing.T) {
	cat := newMemCatalog()
	id := cat.addProduct(models.Product{Name: "Kettle"})
	seedReview(t, cat, id, models.ReviewApproved)
	seedReview(t, cat, id, models.ReviewPending)
	svc := newProductService(t, cat, nil, &recordingBus{})

	require.NoError(t, svc.Delete(context.Background(), id))

	left, err := memReviews{cat}.ApprovedRatings(context.Background(), id)
	require.NoError(t, err)
	assert.Empty(t, left)
	_, err = svc.Get(context.Background(), id)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestProductService_CachedReadIsInvalidated(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	c := cache.New(client, time.Minute)

	cat := newMemCatalog()
	id := cat.addProduct(models.Product{Name: "Kettle", Price: 10})
	bus := event.NewBus()
	svc := newProductService(t, cat, c, bus)
	svc.Listen(bus)

	p, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Kettle", p.Name)
	assert.True(t, mr.Exists(cache.ProductKey(id)))

	_, err = svc.Update(ctx, id, &requests.ProductForm{Name: str("Travel Kettle")}, nil)
	require.NoError(t, err)
	assert.False(t, mr.Exists(cache.ProductKey(id)))

	p, err = svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Travel Kettle", p.Name)
}

func TestRecompute_ForgetsCachedProduct(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	c := cache.New(client, time.Minute)

	cat := newMemCatalog()
	id := cat.addProduct(models.Product{Name: "Kettle"})
	seedReview(t, cat, id, models.ReviewApproved)
	require.NoError(t, c.Set(ctx, cache.ProductKey(id), models.Product{Name: "Kettle"}))

	require.NoError(t, NewRatingService(memReviews{cat}, memProducts{cat}, c).Recompute(ctx, id))
	assert.False(t, mr.Exists(cache.ProductKey(id)))
}
