package postgres

import (
	"context"
	"errors"

	userDatamodel "github.com/frahmantamala/planforge/internal/core/datamodel/user"
	"github.com/frahmantamala/planforge/internal/core/store"
	"github.com/frahmantamala/planforge/internal/user"
	"gorm.io/gorm"
)

type UserRepository struct {
	db   *gorm.DB
	coll *store.Collection[userDatamodel.User]
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{
		db:   db,
		coll: store.NewCollection[userDatamodel.User](db),
	}
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*userDatamodel.User, error) {
	return r.coll.FindByID(ctx, id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*userDatamodel.User, error) {
	var u userDatamodel.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// Create inserts u. A concurrent insert of the same email loses on the
// unique index and reports user.ErrEmailTaken.
func (r *UserRepository) Create(ctx context.Context, u *userDatamodel.User) error {
	err := r.coll.Insert(ctx, u)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return user.ErrEmailTaken
	}
	return err
}

func (r *UserRepository) List(ctx context.Context) ([]*userDatamodel.User, error) {
	return r.coll.Find(ctx, nil)
}
