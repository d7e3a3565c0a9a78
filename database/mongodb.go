package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/biosecret/go-todo/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// MongoStore lưu mỗi user là một document, todos nhúng bên trong
type MongoStore struct {
	client *mongo.Client
	users  *mongo.Collection
	logger *zap.Logger
}

type userDocument struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Name     string             `bson:"name"`
	Password string             `bson:"password"`
	Todos    []todoDocument     `bson:"todos"`
}

type todoDocument struct {
	ID    primitive.ObjectID `bson:"_id"`
	Title string             `bson:"title"`
	Data  string             `bson:"data"`
}

func (d *userDocument) toModel() *models.User {
	user := &models.User{
		ID:       d.ID.Hex(),
		Name:     d.Name,
		Password: d.Password,
		Todos:    make([]models.Todo, 0, len(d.Todos)),
	}
	for _, t := range d.Todos {
		user.Todos = append(user.Todos, models.Todo{ID: t.ID.Hex(), Title: t.Title, Data: t.Data})
	}
	return user
}

// StartMongoDB kết nối MongoDB và tạo unique index cho name
func StartMongoDB(ctx context.Context, uri, dbName string, logger *zap.Logger) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to open MongoDB connection: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("cannot connect to MongoDB: %w", err)
	}

	logger.Info("Connected to MongoDB successfully", zap.String("database", dbName))

	s := &MongoStore{
		client: client,
		users:  client.Database(dbName).Collection("users"),
		logger: logger,
	}

	_, err = s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to create users index: %w", err)
	}

	return s, nil
}

func (s *MongoStore) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var doc userDocument
	err := s.users.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		s.logger.Error("Error fetching user from database", zap.Error(err))
		return nil, err
	}
	return doc.toModel(), nil
}

func (s *MongoStore) FindUserByName(ctx context.Context, name string) (*models.User, error) {
	return s.findOne(ctx, bson.M{"name": name})
}

func (s *MongoStore) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return s.findOne(ctx, bson.M{"_id": oid})
}

func (s *MongoStore) CreateUser(ctx context.Context, user *models.User) error {
	doc := userDocument{
		Name:     user.Name,
		Password: user.Password,
		Todos:    []todoDocument{},
	}
	res, err := s.users.InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateName
	}
	if err != nil {
		s.logger.Error("Error inserting user into database", zap.Error(err))
		return err
	}
	user.ID = res.InsertedID.(primitive.ObjectID).Hex()
	user.Todos = []models.Todo{}
	return nil
}

func (s *MongoStore) AddTodo(ctx context.Context, userID string, title, data string) (models.Todo, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return models.Todo{}, ErrNotFound
	}

	doc := todoDocument{ID: primitive.NewObjectID(), Title: title, Data: data}
	res, err := s.users.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$push": bson.M{"todos": doc}},
	)
	if err != nil {
		s.logger.Error("Error pushing todo into user document", zap.Error(err))
		return models.Todo{}, err
	}
	if res.MatchedCount == 0 {
		return models.Todo{}, ErrNotFound
	}
	return models.Todo{ID: doc.ID.Hex(), Title: title, Data: data}, nil
}

func (s *MongoStore) DeleteTodo(ctx context.Context, userID, todoID string) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return ErrNotFound
	}
	tid, err := primitive.ObjectIDFromHex(todoID)
	if err != nil {
		return ErrTodoNotFound
	}

	res, err := s.users.UpdateOne(ctx,
		bson.M{"_id": oid, "todos._id": tid},
		bson.M{"$pull": bson.M{"todos": bson.M{"_id": tid}}},
	)
	if err != nil {
		s.logger.Error("Error pulling todo from user document", zap.Error(err))
		return err
	}
	if res.MatchedCount == 0 {
		return ErrTodoNotFound
	}
	return nil
}

func (s *MongoStore) DeleteUser(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var doc userDocument
	err = s.users.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		s.logger.Error("Error deleting user from database", zap.Error(err))
		return nil, err
	}
	return doc.toModel(), nil
}

func (s *MongoStore) FindUsersExcept(ctx context.Context, name string) ([]models.User, error) {
	cursor, err := s.users.Find(ctx,
		bson.M{"name": bson.M{"$ne": name}},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}),
	)
	if err != nil {
		s.logger.Error("Error fetching users from database", zap.Error(err))
		return nil, err
	}

	var docs []userDocument
	if err := cursor.All(ctx, &docs); err != nil {
		s.logger.Error("Error decoding user documents", zap.Error(err))
		return nil, err
	}

	users := make([]models.User, 0, len(docs))
	for i := range docs {
		users = append(users, *docs[i].toModel())
	}
	return users, nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *MongoStore) Close(ctx context.Context) error {
	if err := s.client.Disconnect(ctx); err != nil {
		return err
	}
	s.logger.Info("MongoDB connection closed")
	return nil
}
