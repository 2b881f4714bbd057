// Package docdb stores identity users in MongoDB, one document per user
// with the reset cycle embedded.
package docdb

import (
	"context"
	"errors"
	"time"

	"github.com/shandysiswandi/floorease/internal/identity/entity"
	"github.com/shandysiswandi/floorease/internal/pkg/goerror"
	"github.com/shandysiswandi/floorease/internal/pkg/instrument"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const collectionUsers = "users"

type userDocument struct {
	ID            int64      `bson:"_id"`
	FullName      string     `bson:"full_name"`
	Email         string     `bson:"email"`
	Phone         string     `bson:"phone"`
	Password      string     `bson:"password"`
	Role          string     `bson:"role"`
	ProfileImage  string     `bson:"profile_image"`
	OTPHash       string     `bson:"otp_hash"`
	OTPExpiresAt  *time.Time `bson:"otp_expires_at"`
	OTPVerified   bool       `bson:"otp_verified"`
	OTPAttempts   int        `bson:"otp_attempts"`
	OTPLastSentAt *time.Time `bson:"otp_last_sent_at"`
	CreatedAt     time.Time  `bson:"created_at"`
	UpdatedAt     time.Time  `bson:"updated_at"`
}

func (d userDocument) toEntity() *entity.User {
	return &entity.User{
		ID:           d.ID,
		FullName:     d.FullName,
		Email:        d.Email,
		Phone:        d.Phone,
		Password:     d.Password,
		Role:         entity.Role(d.Role).Ensure(),
		ProfileImage: d.ProfileImage,
		Reset: entity.RestoreResetState(entity.ResetRecord{
			OTPHash:       d.OTPHash,
			OTPExpiresAt:  d.OTPExpiresAt,
			OTPVerified:   d.OTPVerified,
			OTPAttempts:   d.OTPAttempts,
			OTPLastSentAt: d.OTPLastSentAt,
		}),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type DocDB struct {
	users *mongo.Collection
	ins   instrument.Instrumentation
	now   func() time.Time
}

func NewDocDB(db *mongo.Database, ins instrument.Instrumentation) *DocDB {
	return &DocDB{
		users: db.Collection(collectionUsers),
		ins:   ins,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// EnsureIndexes creates the unique email index. It is safe to call on
// every start.
func (s *DocDB) EnsureIndexes(ctx context.Context) error {
	_, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("users_email_key"),
	})
	return err
}

func (s *DocDB) mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return goerror.ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return goerror.ErrConflict
	}
	return err
}

func (s *DocDB) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("identity.outbound.docdb").Start(ctx, name)
}

func (s *DocDB) endSpan(span trace.Span, err error) {
	if err != nil && !errors.Is(err, goerror.ErrNotFound) && !errors.Is(err, goerror.ErrConflict) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (s *DocDB) findOne(ctx context.Context, filter bson.M) (*entity.User, error) {
	var doc userDocument
	if err := s.users.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, s.mapError(err)
	}
	return doc.toEntity(), nil
}

func (s *DocDB) updateOne(ctx context.Context, id int64, update bson.M) error {
	res, err := s.users.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return s.mapError(err)
	}
	if res.MatchedCount == 0 {
		return goerror.ErrNotFound
	}
	return nil
}

func (s *DocDB) GetUserByEmail(ctx context.Context, email string) (_ *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByEmail")
	defer func() { s.endSpan(span, err) }()

	return s.findOne(ctx, bson.M{"email": email})
}

func (s *DocDB) GetUserByID(ctx context.Context, id int64) (_ *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByID")
	defer func() { s.endSpan(span, err) }()

	return s.findOne(ctx, bson.M{"_id": id})
}

func (s *DocDB) CreateUser(ctx context.Context, user entity.User) (err error) {
	ctx, span := s.startSpan(ctx, "CreateUser")
	defer func() { s.endSpan(span, err) }()

	_, err = s.users.InsertOne(ctx, userDocument{
		ID:           user.ID,
		FullName:     user.FullName,
		Email:        user.Email,
		Phone:        user.Phone,
		Password:     user.Password,
		Role:         string(user.Role.Ensure()),
		ProfileImage: user.ProfileImage,
		CreatedAt:    user.CreatedAt.UTC(),
		UpdatedAt:    user.UpdatedAt.UTC(),
	})
	err = s.mapError(err)
	return err
}

func (s *DocDB) UpdateUserProfile(ctx context.Context, id int64, change entity.ProfileChange) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateUserProfile")
	defer func() { s.endSpan(span, err) }()

	set := bson.M{
		"full_name":  change.FullName,
		"email":      change.Email,
		"phone":      change.Phone,
		"updated_at": s.now(),
	}
	if change.PasswordHash != "" {
		set["password"] = change.PasswordHash
	}

	err = s.updateOne(ctx, id, bson.M{"$set": set})
	return err
}

func (s *DocDB) UpdateUserProfileImage(ctx context.Context, id int64, url string) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateUserProfileImage")
	defer func() { s.endSpan(span, err) }()

	err = s.updateOne(ctx, id, bson.M{"$set": bson.M{"profile_image": url, "updated_at": s.now()}})
	return err
}

func (s *DocDB) SaveResetState(ctx context.Context, userID int64, state entity.ResetState) (err error) {
	ctx, span := s.startSpan(ctx, "SaveResetState")
	defer func() { s.endSpan(span, err) }()

	err = s.updateOne(ctx, userID, bson.M{"$set": resetFields(state.Record(), s.now())})
	return err
}

func (s *DocDB) CommitPassword(ctx context.Context, userID int64, passwordHash string) (err error) {
	ctx, span := s.startSpan(ctx, "CommitPassword")
	defer func() { s.endSpan(span, err) }()

	set := resetFields(entity.IdleReset().Record(), s.now())
	set["password"] = passwordHash

	err = s.updateOne(ctx, userID, bson.M{"$set": set})
	return err
}

func resetFields(rec entity.ResetRecord, now time.Time) bson.M {
	return bson.M{
		"otp_hash":         rec.OTPHash,
		"otp_expires_at":   rec.OTPExpiresAt,
		"otp_verified":     rec.OTPVerified,
		"otp_attempts":     rec.OTPAttempts,
		"otp_last_sent_at": rec.OTPLastSentAt,
		"updated_at":       now,
	}
}
