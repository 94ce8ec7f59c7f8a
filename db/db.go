package db

import (
	"context"
	"time"

	"agrimart/globals"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UserCollection             *mongo.Collection
	FarmersCollection          *mongo.Collection
	ProductsCollection         *mongo.Collection
	BidsCollection             *mongo.Collection
	OrdersCollection           *mongo.Collection
	TransactionsCollection     *mongo.Collection
	ShippingRequestsCollection *mongo.Collection
	NegotiationsCollection     *mongo.Collection
	NotificationsCollection    *mongo.Collection
	TrackingCollection         *mongo.Collection
	TrucksCollection           *mongo.Collection
	DriversCollection          *mongo.Collection
	ReviewsCollection          *mongo.Collection
	WishlistCollection         *mongo.Collection
	SupportCollection          *mongo.Collection
	ChatsCollection            *mongo.Collection
	MessagesCollection         *mongo.Collection
	Client                     *mongo.Client
)

// Init connects to MongoDB and binds the collection globals. Config is
// injected from main rather than read here.
func Init(cfg globals.Config) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return err
	}
	Client = client

	d := client.Database(cfg.MongoDB)
	UserCollection = d.Collection("users")
	FarmersCollection = d.Collection("farmers")
	ProductsCollection = d.Collection("products")
	BidsCollection = d.Collection("bids")
	OrdersCollection = d.Collection("orders")
	TransactionsCollection = d.Collection("transactions")
	ShippingRequestsCollection = d.Collection("shippingrequests")
	NegotiationsCollection = d.Collection("negotiations")
	NotificationsCollection = d.Collection("notifications")
	TrackingCollection = d.Collection("tracking")
	TrucksCollection = d.Collection("trucks")
	DriversCollection = d.Collection("drivers")
	ReviewsCollection = d.Collection("reviews")
	WishlistCollection = d.Collection("wishlist")
	SupportCollection = d.Collection("support")
	ChatsCollection = d.Collection("chats")
	MessagesCollection = d.Collection("messages")

	return ensureIndexes(ctx)
}

// ensureIndexes creates the unique keys the write paths rely on,
// notably the (buyer, product) wishlist constraint.
func ensureIndexes(ctx context.Context) error {
	_, err := WishlistCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "buyerid", Value: 1}, {Key: "productid", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}
	_, err = UserCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// Close disconnects the client; called on graceful shutdown.
func Close(ctx context.Context) error {
	if Client == nil {
		return nil
	}
	return Client.Disconnect(ctx)
}
