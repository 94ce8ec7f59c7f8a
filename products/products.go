package products

import (
	"context"
	"net/http"
	"time"

	"agrimart/db"
	"agrimart/filemgr"
	"agrimart/models"
	"agrimart/mq"
	"agrimart/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// POST /api/products — agent lists a product. Multipart so the image
// rides along.
func CreateProduct(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	agentID := utils.GetUserIDFromRequest(r)

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid form")
		return
	}
	name := r.FormValue("name")
	if name == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Name is required")
		return
	}

	product := models.Product{
		ProductID: utils.NewID("p"),
		OwnerID:   agentID,
		FarmerID:  r.FormValue("farmerid"),
		Name:      name,
		Category:  r.FormValue("category"),
		Region:    r.FormValue("region"),
		Price:     utils.ParseFloat(r.FormValue("price")),
		Quantity:  utils.ParseInt(r.FormValue("quantity")),
		SizeInKG:  utils.ParseFloat(r.FormValue("size_in_kg")),
		Notes:     r.FormValue("notes"),
		Featured:  r.FormValue("featured") == "true",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if product.Price <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Price must be positive")
		return
	}

	if filename, err := filemgr.SaveFormImage(r.MultipartForm, "image", filemgr.EntityProduct, false); err == nil && filename != "" {
		product.ImageURL = filename
	}

	if _, err := db.ProductsCollection.InsertOne(ctx, product); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create product")
		return
	}

	go mq.Emit("product-created", models.Index{EntityType: "product", EntityId: product.ProductID, Method: "POST"})
	invalidateCatalogue()

	utils.RespondSuccess(w, http.StatusCreated, product, "Product created")
}

// PUT /api/products/:id — owner-only partial update via form fields.
func EditProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	agentID := utils.GetUserIDFromRequest(r)
	productID := ps.ByName("id")

	var existing models.Product
	err := db.ProductsCollection.FindOne(ctx, bson.M{"productid": productID}).Decode(&existing)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load product")
		return
	}
	if existing.OwnerID != agentID {
		utils.RespondWithError(w, http.StatusForbidden, "You do not own this product")
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid form")
		return
	}

	update := bson.M{"updated_at": time.Now()}
	if v := r.FormValue("name"); v != "" {
		update["name"] = v
	}
	if v := r.FormValue("category"); v != "" {
		update["category"] = v
	}
	if v := r.FormValue("region"); v != "" {
		update["region"] = v
	}
	if v := r.FormValue("price"); v != "" {
		update["price"] = utils.ParseFloat(v)
	}
	if v := r.FormValue("quantity"); v != "" {
		update["quantity"] = utils.ParseInt(v)
	}
	if v := r.FormValue("size_in_kg"); v != "" {
		update["size_in_kg"] = utils.ParseFloat(v)
	}
	if v := r.FormValue("notes"); v != "" {
		update["notes"] = v
	}
	if v := r.FormValue("featured"); v != "" {
		update["featured"] = v == "true"
	}
	if filename, err := filemgr.SaveFormImage(r.MultipartForm, "image", filemgr.EntityProduct, false); err == nil && filename != "" {
		update["image_url"] = filename
	}

	if _, err := db.ProductsCollection.UpdateOne(ctx,
		bson.M{"productid": productID}, bson.M{"$set": update}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update product")
		return
	}

	go mq.Emit("product-updated", models.Index{EntityType: "product", EntityId: productID, Method: "PUT"})
	invalidateCatalogue()

	utils.RespondSuccess(w, http.StatusOK, nil, "Product updated")
}

// DELETE /api/products/:id
func DeleteProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	agentID := utils.GetUserIDFromRequest(r)
	productID := ps.ByName("id")

	res, err := db.ProductsCollection.DeleteOne(ctx, bson.M{"productid": productID, "ownerid": agentID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete product")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	go mq.Emit("product-deleted", models.Index{EntityType: "product", EntityId: productID, Method: "DELETE"})
	invalidateCatalogue()

	utils.RespondSuccess(w, http.StatusOK, nil, "Product deleted")
}
