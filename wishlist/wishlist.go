package wishlist

import (
	"context"
	"net/http"
	"time"

	"agrimart/db"
	"agrimart/models"
	"agrimart/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// POST /api/wishlist/:productId — idempotent: re-adding an item already
// on the list succeeds without complaint. Uniqueness is enforced by the
// (buyerid, productid) index.
func AddToWishlist(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	buyerID := utils.GetUserIDFromRequest(r)
	productID := ps.ByName("productId")

	count, err := db.ProductsCollection.CountDocuments(ctx, bson.M{"productid": productID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to check product")
		return
	}
	if count == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	item := models.WishlistItem{
		BuyerID:   buyerID,
		ProductID: productID,
		CreatedAt: time.Now(),
	}
	_, err = db.WishlistCollection.InsertOne(ctx, item)
	if !insertOK(err) {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to add to wishlist")
		return
	}
	utils.RespondSuccess(w, http.StatusOK, item, "Added to wishlist")
}

// insertOK treats a duplicate-key error as success: the item is on the
// list either way.
func insertOK(err error) bool {
	return err == nil || mongo.IsDuplicateKeyError(err)
}

// GET /api/wishlist — the caller's saved products, hydrated.
func GetWishlist(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	buyerID := utils.GetUserIDFromRequest(r)
	items, err := utils.FindAndDecode[models.WishlistItem](ctx, db.WishlistCollection,
		bson.M{"buyerid": buyerID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch wishlist")
		return
	}

	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ProductID)
	}
	products := []models.Product{}
	if len(ids) > 0 {
		products, err = utils.FindAndDecode[models.Product](ctx, db.ProductsCollection,
			bson.M{"productid": bson.M{"$in": ids}})
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch products")
			return
		}
	}
	utils.RespondSuccess(w, http.StatusOK, products, "")
}

// DELETE /api/wishlist/:productId
func RemoveFromWishlist(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	buyerID := utils.GetUserIDFromRequest(r)
	res, err := db.WishlistCollection.DeleteOne(ctx,
		bson.M{"buyerid": buyerID, "productid": ps.ByName("productId")})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to remove from wishlist")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Item not on wishlist")
		return
	}
	utils.RespondSuccess(w, http.StatusOK, nil, "Removed from wishlist")
}
