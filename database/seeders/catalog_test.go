package seeders

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestFillEmpty(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ns := func(mt *mtest.T) string { return mt.DB.Name() + "." + mt.Coll.Name() }

	mt.Run("skips a populated collection", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch, bson.D{{Key: "n", Value: int32(4)}}))

		n, err := fillEmpty(context.Background(), mt.Coll, sampleProducts(time.Now()))
		require.NoError(t, err)
		assert.Zero(t, n)

		started := mt.GetAllStartedEvents()
		require.Len(t, started, 1)
		assert.Equal(t, "aggregate", started[0].CommandName)
	})

	mt.Run("inserts into an empty collection", func(mt *mtest.T) {
		docs := sampleProducts(time.Now())
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch),
			mtest.CreateSuccessResponse(),
		)

		n, err := fillEmpty(context.Background(), mt.Coll, docs)
		require.NoError(t, err)
		assert.Equal(t, len(docs), n)

		started := mt.GetAllStartedEvents()
		require.Len(t, started, 2)
		assert.Equal(t, "insert", started[1].CommandName)
	})

	mt.Run("count failure is returned", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 13, Message: "Unauthorized"}))

		_, err := fillEmpty(context.Background(), mt.Coll, sampleProducts(time.Now()))
		assert.ErrorContains(t, err, "Unauthorized")
	})
}
