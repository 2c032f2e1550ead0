// Package mongodb реализует хранилище пользователей в MongoDB (коллекция users).
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/GoArmGo/UserRegistry/internal/domain"
)

// Имена уникальных индексов; по ним определяется поле конфликта.
const (
	EmailIndex = "email_unique"
	PhoneIndex = "phoneNo_unique"
)

// userDocument описывает пользователя в коллекции.
type userDocument struct {
	ID           string    `bson:"_id"`
	FirstName    string    `bson:"firstName"`
	LastName     string    `bson:"lastName"`
	Email        string    `bson:"email"`
	PhoneNo      string    `bson:"phoneNo"`
	PasswordHash string    `bson:"password,omitempty"`
	CreatedAt    time.Time `bson:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt"`
}

func toDocument(u *domain.User) userDocument {
	return userDocument{
		ID:           u.ID.String(),
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Email:        u.Email,
		PhoneNo:      u.PhoneNo,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (d userDocument) toDomain() (domain.User, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return domain.User{}, fmt.Errorf("parse user id %q: %w", d.ID, err)
	}
	return domain.User{
		ID:        id,
		FirstName: d.FirstName,
		LastName:  d.LastName,
		Email:     d.Email,
		PhoneNo:   d.PhoneNo,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}, nil
}

var withoutPassword = bson.M{"password": 0}

// Client держит подключение к MongoDB.
type Client struct {
	client *mongo.Client
	logger *slog.Logger
}

// NewClient подключается к MongoDB и проверяет соединение.
func NewClient(ctx context.Context, uri string, logger *slog.Logger) (*Client, error) {
	start := time.Now()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	logger.Info("MongoDB connection established successfully",
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return &Client{client: client, logger: logger}, nil
}

// Collection возвращает коллекцию database.name.
func (c *Client) Collection(database, name string) *mongo.Collection {
	return c.client.Database(database).Collection(name)
}

func (c *Client) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.client.Disconnect(ctx); err != nil {
		c.logger.Error("failed to disconnect from mongo", "error", err)
		return err
	}
	c.logger.Info("mongo connection closed")
	return nil
}

// UserStorage реализует ports.UserStorage поверх коллекции MongoDB.
type UserStorage struct {
	coll   *mongo.Collection
	logger *slog.Logger
}

func NewUserStorage(coll *mongo.Collection, logger *slog.Logger) *UserStorage {
	return &UserStorage{coll: coll, logger: logger}
}

// EnsureIndexes создаёт уникальные индексы email и phoneNo. Операция идемпотентна.
func (s *UserStorage) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName(EmailIndex),
		},
		{
			Keys:    bson.D{{Key: "phoneNo", Value: 1}},
			Options: options.Index().SetUnique(true).SetName(PhoneIndex),
		},
		{
			Keys:    bson.D{{Key: "createdAt", Value: 1}},
			Options: options.Index().SetName("createdAt_1"),
		},
	})
	if err != nil {
		return fmt.Errorf("create user indexes: %w", err)
	}
	return nil
}

func (s *UserStorage) FindByEmailOrPhone(ctx context.Context, email, phone string) (*domain.User, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"email": email},
		bson.M{"phoneNo": phone},
	}}
	// максимум две записи: одна по email, одна по телефону
	opts := options.Find().SetProjection(withoutPassword).SetLimit(2)

	cursor, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		s.logger.Error("failed to find user by email or phone", "error", err)
		return nil, fmt.Errorf("find user by email or phone: %w", err)
	}

	var docs []userDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	if len(docs) == 0 {
		return nil, nil
	}

	match := docs[0]
	for _, d := range docs {
		if d.Email == email {
			match = d
			break
		}
	}

	user, err := match.toDomain()
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserStorage) Create(ctx context.Context, user *domain.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}

	if _, err := s.coll.InsertOne(ctx, toDocument(user)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			if field := duplicateField(err); field != "" {
				s.logger.Warn("unique index rejected user insert", "field", field)
				return domain.NewConflictError(field)
			}
		}
		s.logger.Error("failed to insert user", "error", err)
		return fmt.Errorf("insert user: %w", err)
	}

	s.logger.Info("user saved successfully (mongo)", "user_id", user.ID)
	return nil
}

func (s *UserStorage) ListAll(ctx context.Context) ([]domain.User, error) {
	opts := options.Find().
		SetProjection(withoutPassword).
		SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})

	cursor, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, fmt.Errorf("list users: %w", err)
	}

	var docs []userDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}

	users := make([]domain.User, 0, len(docs))
	for _, d := range docs {
		u, err := d.toDomain()
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}

// duplicateField определяет поле по имени сработавшего индекса.
// Пустая строка: индекс не относится к email или phoneNo (например, _id).
func duplicateField(err error) string {
	messages := []string{err.Error()}
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			messages = append(messages, e.Message)
		}
	}
	for _, msg := range messages {
		switch {
		case strings.Contains(msg, EmailIndex):
			return domain.FieldEmail
		case strings.Contains(msg, PhoneIndex):
			return domain.FieldPhoneNo
		}
	}
	return ""
}
