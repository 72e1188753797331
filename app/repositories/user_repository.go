package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/shopfront/app/models"
	"github.com/shashiranjanraj/shopfront/pkg/apperrors"
	"github.com/shashiranjanraj/shopfront/pkg/database"
	"github.com/shashiranjanraj/shopfront/pkg/pagination"
	"github.com/shashiranjanraj/shopfront/pkg/rbac"
)

const userEntity = "User"

var withoutPassword = bson.M{"password": 0}

// UserRepository handles database operations for User.
type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(store *database.Store) *UserRepository {
	return &UserRepository{col: store.Collection(database.Users)}
}

// FindByEmail looks up a user by email, password hash included. Only the
// login and seeding paths need the hash.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	defer database.Observe(database.Users, "findOne")()

	var u models.User
	if err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&u); err != nil {
		return nil, mapErr(err, userEntity)
	}
	return &u, nil
}

// FindByID looks up a user by id without the password hash.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	defer database.Observe(database.Users, "findOne")()
	return findByID[models.User](ctx, r.col, id, userEntity, options.FindOne().SetProjection(withoutPassword))
}

// FindAccount satisfies rbac.AccountFinder. A missing user is (nil, nil).
func (r *UserRepository) FindAccount(ctx context.Context, id string) (*rbac.Account, error) {
	u, err := r.FindByID(ctx, id)
	if apperrors.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rbac.Account{ID: u.ID.Hex(), Email: u.Email, Name: u.Name, IsAdmin: u.IsAdmin}, nil
}

// Create persists a new user. A taken email surfaces as a Conflict from the
// unique index.
func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	defer database.Observe(database.Users, "insert")()

	res, err := r.col.InsertOne(ctx, u)
	if err != nil {
		return mapErr(err, userEntity)
	}
	u.ID = insertedID(res)
	return nil
}

// Update writes name, email and the admin flag.
func (r *UserRepository) Update(ctx context.Context, u *models.User) error {
	defer database.Observe(database.Users, "update")()

	return setByID(ctx, r.col, u.ID.Hex(), userEntity, bson.M{
		"name":      u.Name,
		"email":     u.Email,
		"isAdmin":   u.IsAdmin,
		"updatedAt": time.Now().UTC(),
	})
}

// SetPassword replaces the stored hash.
func (r *UserRepository) SetPassword(ctx context.Context, id, hash string) error {
	defer database.Observe(database.Users, "update")()
	return setByID(ctx, r.col, id, userEntity, bson.M{"password": hash, "updatedAt": time.Now().UTC()})
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	defer database.Observe(database.Users, "delete")()
	return deleteByID(ctx, r.col, id, userEntity)
}

// List returns one page of users matching search against name or email.
func (r *UserRepository) List(ctx context.Context, search string, p pagination.Params) ([]models.User, int64, error) {
	defer database.Observe(database.Users, "find")()

	filter := bson.M{}
	if search != "" {
		rx := containsFold(search)
		filter["$or"] = bson.A{bson.M{"name": rx}, bson.M{"email": rx}}
	}

	users, err := findAll[models.User](ctx, r.col, filter, window(p, newestFirst).SetProjection(withoutPassword))
	if err != nil {
		return nil, 0, mapErr(err, userEntity)
	}
	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, mapErr(err, userEntity)
	}
	return users, total, nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	defer database.Observe(database.Users, "count")()
	n, err := r.col.CountDocuments(ctx, bson.M{})
	return n, mapErr(err, userEntity)
}
