package persistence

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/khoavn/devfolio/internal/domain/profile"
	"github.com/khoavn/devfolio/pkg/apperror"
	"github.com/khoavn/devfolio/pkg/logger"
)

const profileCollection = "developer_profiles"

// mongoProfileRepo persists each aggregate as one denormalized document;
// the whole document is the unit of write, so Update is a plain ReplaceOne
// with no field-level diffing.
type mongoProfileRepo struct {
	col    *mongo.Collection
	logger logger.Logger
}

func NewMongoProfileRepo(db *mongo.Database, logger logger.Logger) profile.Repository {
	return &mongoProfileRepo{col: db.Collection(profileCollection), logger: logger}
}

func (r *mongoProfileRepo) Create(ctx context.Context, p *profile.DeveloperProfile) (*profile.DeveloperProfile, error) {
	rec := newProfileRecord(p)
	if _, err := r.col.InsertOne(ctx, rec); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperror.NewConflict("profile", "id", rec.ID)
		}
		return nil, apperror.NewInternal("failed to insert profile document", err)
	}
	return p, nil
}

func (r *mongoProfileRepo) GetByID(ctx context.Context, id uuid.UUID) (*profile.DeveloperProfile, error) {
	var rec profileRecord
	err := r.col.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&rec)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, apperror.NewInternal("failed to fetch profile document", err)
	}

	p, err := rec.toDomain()
	if err != nil {
		return nil, apperror.NewInternal("failed to map stored profile", err)
	}
	return p, nil
}

func (r *mongoProfileRepo) GetAll(ctx context.Context) ([]*profile.DeveloperProfile, error) {
	cursor, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, apperror.NewInternal("failed to query profile documents", err)
	}
	return r.decodeAll(ctx, cursor)
}

func (r *mongoProfileRepo) Update(ctx context.Context, p *profile.DeveloperProfile) (*profile.DeveloperProfile, error) {
	rec := newProfileRecord(p)
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": rec.ID}, rec)
	if err != nil {
		return nil, apperror.NewInternal("failed to replace profile document", err)
	}
	if res.MatchedCount == 0 {
		return nil, nil
	}
	return p, nil
}

func (r *mongoProfileRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return false, apperror.NewInternal("failed to delete profile document", err)
	}
	return res.DeletedCount > 0, nil
}

func (r *mongoProfileRepo) SearchCatalog(ctx context.Context, q profile.CatalogQuery) (*profile.CatalogResult, error) {
	if err := q.Validate(); err != nil {
		return nil, apperror.NewInvalidInput("invalid catalog query", err)
	}
	filter := catalogFilter(q)

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, apperror.NewInternal("failed to count catalog matches", err)
	}

	result := &profile.CatalogResult{
		Items:      []*profile.DeveloperProfile{},
		TotalCount: total,
		PageNumber: q.PageNumber,
		PageSize:   q.PageSize,
	}
	if total == 0 {
		return result, nil
	}

	findOpts := options.Find().
		SetSort(catalogSort(q)).
		SetSkip(int64(q.Offset())).
		SetLimit(int64(q.PageSize))

	cursor, err := r.col.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, apperror.NewInternal("failed to query catalog page", err)
	}
	items, err := r.decodeAll(ctx, cursor)
	if err != nil {
		return nil, err
	}
	result.Items = items
	return result, nil
}

// catalogFilter translates the backend-neutral filters into a native filter
// document with the same semantics as the relational adapter: substring match
// on either name part, exact matches for the flags, and $all for skills.
func catalogFilter(q profile.CatalogQuery) bson.M {
	var conds []bson.M
	if s := strings.TrimSpace(q.Search); s != "" {
		rx := primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
		conds = append(conds, bson.M{"$or": []bson.M{
			{"firstName": rx},
			{"lastName": rx},
		}})
	}
	if q.OpenToWork != nil {
		conds = append(conds, bson.M{"openToWork": *q.OpenToWork})
	}
	if q.Verification != nil {
		conds = append(conds, bson.M{"verificationStatus": int(*q.Verification)})
	}
	if len(q.Skills) > 0 {
		conds = append(conds, bson.M{"skills": bson.M{"$all": q.Skills}})
	}
	if len(conds) == 0 {
		return bson.M{}
	}
	return bson.M{"$and": conds}
}

// catalogSort mirrors the relational ORDER BY keys, trailing _id tie-break
// included, so both backends page identically.
func catalogSort(q profile.CatalogQuery) bson.D {
	dir := 1
	if q.SortOrder == profile.SortDesc {
		dir = -1
	}
	switch q.SortField {
	case profile.SortByID:
		return bson.D{{Key: "_id", Value: dir}}
	case profile.SortByUpdatedAt:
		return bson.D{{Key: "updatedAt", Value: dir}, {Key: "_id", Value: dir}}
	default:
		return bson.D{{Key: "lastName", Value: dir}, {Key: "firstName", Value: dir}, {Key: "_id", Value: dir}}
	}
}

func (r *mongoProfileRepo) decodeAll(ctx context.Context, cursor *mongo.Cursor) ([]*profile.DeveloperProfile, error) {
	defer cursor.Close(ctx)

	out := make([]*profile.DeveloperProfile, 0)
	for cursor.Next(ctx) {
		var rec profileRecord
		if err := cursor.Decode(&rec); err != nil {
			return nil, apperror.NewInternal("failed to decode profile document", err)
		}
		p, err := rec.toDomain()
		if err != nil {
			return nil, apperror.NewInternal("failed to map stored profile", err)
		}
		out = append(out, p)
	}
	if err := cursor.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating profile documents", err)
	}
	return out, nil
}
