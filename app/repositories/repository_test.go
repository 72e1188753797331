package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/shashiranjanraj/shopfront/app/models"
	"github.com/shashiranjanraj/shopfront/pkg/apperrors"
	"github.com/shashiranjanraj/shopfront/pkg/database"
	"github.com/shashiranjanraj/shopfront/pkg/pagination"
)

func TestProductRepository_SetRating(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	id := primitive.NewObjectID().Hex()

	mt.Run("writes both fields", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}))
		repo := NewProductRepository(database.NewStore(mt.DB))

		require.NoError(t, repo.SetRating(context.Background(), id, 4.5, 2))

		started := mt.GetStartedEvent()
		require.NotNil(t, started)
		assert.Equal(t, "update", started.CommandName)
		set := started.Command.Lookup("updates").Array().Index(0).Value().Document().Lookup("u", "$set").Document()
		assert.Equal(t, 4.5, set.Lookup("rating").Double())
		assert.EqualValues(t, 2, set.Lookup("reviewCount").AsInt64())
	})

	mt.Run("missing product", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))
		repo := NewProductRepository(database.NewStore(mt.DB))

		err := repo.SetRating(context.Background(), id, 0, 0)
		assert.True(t, apperrors.IsNotFound(err))
	})

	mt.Run("malformed id never reaches the server", func(mt *mtest.T) {
		repo := NewProductRepository(database.NewStore(mt.DB))
		err := repo.SetRating(context.Background(), "not-hex", 0, 0)
		assert.True(t, apperrors.IsNotFound(err))
		assert.Nil(t, mt.GetStartedEvent())
	})
}

func TestProductRepository_ReserveStock(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("insufficient", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))
		repo := NewProductRepository(database.NewStore(mt.DB))

		err := repo.ReserveStock(context.Background(), primitive.NewObjectID().Hex(), 3)
		assert.True(t, apperrors.IsConflict(err))
	})
}

func TestProductRepository_List(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("page with count", func(mt *mtest.T) {
		ns := mt.DB.Name() + "." + database.Products
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
				bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "name", Value: "Phone"}, {Key: "category", Value: "mobile"}},
			),
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{{Key: "n", Value: int32(21)}}),
		)
		repo := NewProductRepository(database.NewStore(mt.DB))

		items, total, err := repo.List(context.Background(),
			ProductFilter{Category: "mobile", Featured: true},
			pagination.Params{Limit: 20, Skip: 20},
		)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "Phone", items[0].Name)
		assert.EqualValues(t, 21, total)

		find := mt.GetStartedEvent()
		filter := find.Command.Lookup("filter").Document()
		assert.Equal(t, "mobile", filter.Lookup("category").StringValue())
		assert.True(t, filter.Lookup("featured").Boolean())
		assert.EqualValues(t, 20, find.Command.Lookup("skip").AsInt64())
	})
}

func TestReviewRepository_ApprovedRatings(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("reads approved star values", func(mt *mtest.T) {
		ns := mt.DB.Name() + "." + database.Reviews
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{{Key: "rating", Value: 5}},
			bson.D{{Key: "rating", Value: 4}},
			bson.D{{Key: "rating", Value: 3}},
		))
		repo := NewReviewRepository(database.NewStore(mt.DB))

		got, err := repo.ApprovedRatings(context.Background(), "p1")
		require.NoError(t, err)
		assert.Equal(t, []int{5, 4, 3}, got)

		filter := mt.GetStartedEvent().Command.Lookup("filter").Document()
		assert.Equal(t, "p1", filter.Lookup("productId").StringValue())
		assert.Equal(t, models.ReviewApproved, filter.Lookup("status").StringValue())
	})
}

func TestUserRepository_FindAccount(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	oid := primitive.NewObjectID()

	mt.Run("found", func(mt *mtest.T) {
		ns := mt.DB.Name() + "." + database.Users
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: oid},
			{Key: "name", Value: "Ada"},
			{Key: "email", Value: "ada@shop.test"},
			{Key: "isAdmin", Value: true},
		}))
		repo := NewUserRepository(database.NewStore(mt.DB))

		acct, err := repo.FindAccount(context.Background(), oid.Hex())
		require.NoError(t, err)
		require.NotNil(t, acct)
		assert.Equal(t, oid.Hex(), acct.ID)
		assert.True(t, acct.IsAdmin)

		proj := mt.GetStartedEvent().Command.Lookup("projection").Document()
		assert.EqualValues(t, 0, proj.Lookup("password").AsInt64())
	})

	mt.Run("missing is nil without error", func(mt *mtest.T) {
		ns := mt.DB.Name() + "." + database.Users
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))
		repo := NewUserRepository(database.NewStore(mt.DB))

		acct, err := repo.FindAccount(context.Background(), oid.Hex())
		assert.NoError(t, err)
		assert.Nil(t, acct)
	})

	mt.Run("driver failure is surfaced", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 2, Message: "boom"}))
		repo := NewUserRepository(database.NewStore(mt.DB))

		_, err := repo.FindAccount(context.Background(), oid.Hex())
		assert.Error(t, err)
		assert.False(t, apperrors.IsNotFound(err))
	})
}

func TestUserRepository_CreateDuplicate(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("unique index", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "E11000 duplicate key"}))
		repo := NewUserRepository(database.NewStore(mt.DB))

		err := repo.Create(context.Background(), &models.User{Email: "a@b.co"})
		require.Error(t, err)
		assert.True(t, apperrors.IsConflict(err))
		assert.Equal(t, "User already exists", apperrors.PublicMessage(err))
	})
}

func TestUserRepository_ListEscapesSearch(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("regex", func(mt *mtest.T) {
		ns := mt.DB.Name() + "." + database.Users
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch),
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{{Key: "n", Value: int32(0)}}),
		)
		repo := NewUserRepository(database.NewStore(mt.DB))

		_, total, err := repo.List(context.Background(), "a.b+", pagination.Params{Limit: 20})
		require.NoError(t, err)
		assert.Zero(t, total)

		or := mt.GetStartedEvent().Command.Lookup("filter", "$or").Array()
		pattern, opts := or.Index(0).Value().Document().Lookup("name").Regex()
		assert.Equal(t, `a\.b\+`, pattern)
		assert.Equal(t, "i", opts)
	})
}

func TestOrderRepository_Revenue(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("sums", func(mt *mtest.T) {
		ns := mt.DB.Name() + "." + database.Orders
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: nil}, {Key: "total", Value: 349.5}},
		))
		repo := NewOrderRepository(database.NewStore(mt.DB))

		got, err := repo.Revenue(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 349.5, got)
	})

	mt.Run("no orders", func(mt *mtest.T) {
		ns := mt.DB.Name() + "." + database.Orders
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))
		repo := NewOrderRepository(database.NewStore(mt.DB))

		got, err := repo.Revenue(context.Background())
		require.NoError(t, err)
		assert.Zero(t, got)
	})
}

func TestSubscriberRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("duplicate email", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "E11000 duplicate key"}))
		repo := NewSubscriberRepository(database.NewStore(mt.DB))

		err := repo.Create(context.Background(), &models.Subscriber{Email: "a@b.co"})
		assert.Equal(t, "Email already subscribed", apperrors.PublicMessage(err))
	})

	mt.Run("unsubscribe unknown email", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))
		repo := NewSubscriberRepository(database.NewStore(mt.DB))

		assert.True(t, apperrors.IsNotFound(repo.Unsubscribe(context.Background(), "x@y.z")))
	})
}

func TestCartRepository_ItemsEmpty(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("no cart", func(mt *mtest.T) {
		ns := mt.DB.Name() + "." + database.Carts
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))
		repo := NewCartRepository(database.NewStore(mt.DB))

		items, err := repo.Items(context.Background(), "u1")
		require.NoError(t, err)
		assert.NotNil(t, items)
		assert.Empty(t, items)
	})
}
