// Package mongodb stores blog posts as documents in a MongoDB collection.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/information-sharing-networks/blog-demo/internal/blog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	// DefaultDatabase is used when the connection URL does not name a database
	DefaultDatabase = "blog"

	// CollectionName is the collection holding the blog posts
	CollectionName = "blogposts"
)

type Config struct {
	URL             string
	MaxConnections  uint64
	MinConnections  uint64
	MaxConnIdleTime time.Duration
	ConnectTimeout  time.Duration
}

type authorDocument struct {
	FirstName string `bson:"firstName"`
	LastName  string `bson:"lastName"`
}

type postDocument struct {
	ID      primitive.ObjectID `bson:"_id,omitempty"`
	Author  authorDocument     `bson:"author"`
	Title   string             `bson:"title"`
	Content string             `bson:"content"`
	Created time.Time          `bson:"created"`
}

func (d postDocument) toPost() blog.Post {
	return blog.Post{
		ID: d.ID.Hex(),
		Author: blog.Author{
			FirstName: d.Author.FirstName,
			LastName:  d.Author.LastName,
		},
		Title:   d.Title,
		Content: d.Content,
		Created: d.Created.UTC(),
	}
}

func newPostDocument(p blog.Post) postDocument {
	created := p.Created
	if created.IsZero() {
		created = time.Now()
	}
	return postDocument{
		ID: primitive.NewObjectID(),
		Author: authorDocument{
			FirstName: p.Author.FirstName,
			LastName:  p.Author.LastName,
		},
		Title:   p.Title,
		Content: p.Content,
		Created: blog.NormalizeCreated(created),
	}
}

// sortByCreated is the FindAll order: oldest first, ties broken by id
var sortByCreated = bson.D{{Key: "created", Value: 1}, {Key: "_id", Value: 1}}

// Store implements blog.Store
type Store struct {
	client *mongo.Client
	db     *mongo.Database
	posts  *mongo.Collection
}

// New connects to MongoDB and pings the primary. The database is taken from the URL path.
func New(ctx context.Context, cfg Config) (*Store, error) {
	dbName, err := DatabaseNameFromURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts := options.Client().ApplyURI(cfg.URL)
	if cfg.MaxConnections > 0 {
		opts.SetMaxPoolSize(cfg.MaxConnections)
	}
	opts.SetMinPoolSize(cfg.MinConnections)
	if cfg.MaxConnIdleTime > 0 {
		opts.SetMaxConnIdleTime(cfg.MaxConnIdleTime)
	}
	if cfg.ConnectTimeout > 0 {
		opts.SetConnectTimeout(cfg.ConnectTimeout)
		opts.SetServerSelectionTimeout(cfg.ConnectTimeout)
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	db := client.Database(dbName)
	return &Store{
		client: client,
		db:     db,
		posts:  db.Collection(CollectionName),
	}, nil
}

// DatabaseNameFromURL returns the database named in the path of a mongodb:// URL, or DefaultDatabase.
func DatabaseNameFromURL(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid MongoDB URL: %w", err)
	}
	name := strings.Trim(u.Path, "/")
	if name == "" {
		return DefaultDatabase, nil
	}
	if strings.ContainsAny(name, `/\. "$`) {
		return "", fmt.Errorf("invalid MongoDB database name %q", name)
	}
	return name, nil
}

func (s *Store) DatabaseName() string {
	return s.db.Name()
}

func (s *Store) Insert(ctx context.Context, post blog.Post) (blog.Post, error) {
	doc := newPostDocument(post)
	if _, err := s.posts.InsertOne(ctx, doc); err != nil {
		return blog.Post{}, fmt.Errorf("failed to insert blog post: %w", err)
	}
	return doc.toPost(), nil
}

func (s *Store) InsertMany(ctx context.Context, posts []blog.Post) ([]blog.Post, error) {
	if len(posts) == 0 {
		return []blog.Post{}, nil
	}

	docs := make([]any, 0, len(posts))
	inserted := make([]blog.Post, 0, len(posts))
	for _, p := range posts {
		doc := newPostDocument(p)
		docs = append(docs, doc)
		inserted = append(inserted, doc.toPost())
	}

	if _, err := s.posts.InsertMany(ctx, docs); err != nil {
		return nil, fmt.Errorf("failed to insert blog posts: %w", err)
	}
	return inserted, nil
}

func (s *Store) FindAll(ctx context.Context) ([]blog.Post, error) {
	cursor, err := s.posts.Find(ctx, bson.D{}, options.Find().SetSort(sortByCreated))
	if err != nil {
		return nil, fmt.Errorf("failed to find blog posts: %w", err)
	}

	var docs []postDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode blog posts: %w", err)
	}

	posts := make([]blog.Post, 0, len(docs))
	for _, d := range docs {
		posts = append(posts, d.toPost())
	}
	return posts, nil
}

func (s *Store) FindByID(ctx context.Context, id string) (blog.Post, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return blog.Post{}, blog.ErrPostNotFound
	}
	return s.findOne(ctx, bson.M{"_id": oid}, options.FindOne())
}

func (s *Store) FindOne(ctx context.Context) (blog.Post, error) {
	return s.findOne(ctx, bson.D{}, options.FindOne().SetSort(sortByCreated))
}

func (s *Store) findOne(ctx context.Context, filter any, opts *options.FindOneOptions) (blog.Post, error) {
	var doc postDocument
	err := s.posts.FindOne(ctx, filter, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return blog.Post{}, blog.ErrPostNotFound
	}
	if err != nil {
		return blog.Post{}, fmt.Errorf("failed to find blog post: %w", err)
	}
	return doc.toPost(), nil
}

func (s *Store) Count(ctx context.Context) (int64, error) {
	n, err := s.posts.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("failed to count blog posts: %w", err)
	}
	return n, nil
}

func (s *Store) Update(ctx context.Context, id string, update blog.PostUpdate) (blog.Post, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return blog.Post{}, blog.ErrPostNotFound
	}

	set := bson.D{}
	if update.Title != nil {
		set = append(set, bson.E{Key: "title", Value: *update.Title})
	}
	if update.Content != nil {
		set = append(set, bson.E{Key: "content", Value: *update.Content})
	}
	if update.FirstName != nil {
		set = append(set, bson.E{Key: "author.firstName", Value: *update.FirstName})
	}
	if update.LastName != nil {
		set = append(set, bson.E{Key: "author.lastName", Value: *update.LastName})
	}

	// $set with no fields is rejected by the server
	if len(set) == 0 {
		return s.FindByID(ctx, id)
	}

	var doc postDocument
	err = s.posts.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.D{{Key: "$set", Value: set}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return blog.Post{}, blog.ErrPostNotFound
	}
	if err != nil {
		return blog.Post{}, fmt.Errorf("failed to update blog post: %w", err)
	}
	return doc.toPost(), nil
}

func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}
	res, err := s.posts.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, fmt.Errorf("failed to delete blog post: %w", err)
	}
	return res.DeletedCount > 0, nil
}

// Drop drops the whole database
func (s *Store) Drop(ctx context.Context) error {
	if err := s.db.Drop(ctx); err != nil {
		return fmt.Errorf("failed to drop database %s: %w", s.db.Name(), err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
