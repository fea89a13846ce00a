package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/restohub/staff-service/internal/core/domain"
)

const staffCollection = "staff"

// StaffRepository implements ports.StaffRepository using MongoDB. A unique
// index on email makes the store the single authority on email uniqueness;
// duplicate-key errors surface as domain.ErrEmailTaken.
type StaffRepository struct {
	coll *mongo.Collection
}

func NewStaffRepository(db *mongo.Database) *StaffRepository {
	return &StaffRepository{coll: db.Collection(staffCollection)}
}

type staffDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	FirstName    string             `bson:"first_name"`
	LastName     string             `bson:"last_name"`
	DateOfBirth  time.Time          `bson:"date_of_birth"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password_hash"`
	PhoneNumber  string             `bson:"phone_number"`
	Role         string             `bson:"role"`
	Experience   int                `bson:"experience"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func toDoc(s *domain.Staff) staffDoc {
	return staffDoc{
		FirstName:    s.FirstName,
		LastName:     s.LastName,
		DateOfBirth:  s.DateOfBirth.UTC(),
		Email:        s.Email,
		PasswordHash: s.PasswordHash,
		PhoneNumber:  s.PhoneNumber,
		Role:         string(s.Role),
		Experience:   s.Experience,
		CreatedAt:    s.CreatedAt.UTC(),
		UpdatedAt:    s.UpdatedAt.UTC(),
	}
}

func (d staffDoc) toDomain() *domain.Staff {
	return &domain.Staff{
		ID:           d.ID.Hex(),
		FirstName:    d.FirstName,
		LastName:     d.LastName,
		DateOfBirth:  d.DateOfBirth,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		PhoneNumber:  d.PhoneNumber,
		Role:         domain.Role(d.Role),
		Experience:   d.Experience,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func (r *StaffRepository) Create(ctx context.Context, staff *domain.Staff) (*domain.Staff, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.InsertOne(ctx, toDoc(staff))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("insert staff: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("insert staff: unexpected id type %T", res.InsertedID)
	}

	created := *staff
	created.ID = oid.Hex()
	return &created, nil
}

func (r *StaffRepository) FindByID(ctx context.Context, id string) (*domain.Staff, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrStaffNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc staffDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrStaffNotFound
		}
		return nil, fmt.Errorf("find staff by id: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *StaffRepository) FindByEmail(ctx context.Context, email string) (*domain.Staff, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc staffDoc
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrStaffNotFound
		}
		return nil, fmt.Errorf("find staff by email: %w", err)
	}
	return doc.toDomain(), nil
}

// Update overwrites every mutable field of the document; _id is immutable.
func (r *StaffRepository) Update(ctx context.Context, staff *domain.Staff) (*domain.Staff, error) {
	oid, err := primitive.ObjectIDFromHex(staff.ID)
	if err != nil {
		return nil, domain.ErrStaffNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateByID(ctx, oid, bson.M{"$set": toDoc(staff)})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("update staff: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrStaffNotFound
	}

	updated := *staff
	return &updated, nil
}

func (r *StaffRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrStaffNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete staff: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrStaffNotFound
	}
	return nil
}

// ListAll returns every staff document in natural (insertion) order.
func (r *StaffRepository) ListAll(ctx context.Context) ([]*domain.Staff, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list staff: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []staffDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode staff list: %w", err)
	}

	members := make([]*domain.Staff, 0, len(docs))
	for _, d := range docs {
		members = append(members, d.toDomain())
	}
	return members, nil
}

// EnsureIndexes creates the unique email index backing the conflict
// semantics of Create and Update.
func (r *StaffRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
