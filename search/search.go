package search

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"agrimart/db"
	"agrimart/models"
	"agrimart/rdx"
	"agrimart/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// The index is a set of redis hash entries keyed by entity, plus one
// token set per lowercased word so lookups are prefix-free exact-word
// matches. Only products and farmers are indexed.

func indexKey(entityType, id string) string {
	return fmt.Sprintf("search:%s:%s", entityType, id)
}

func tokenKey(token string) string {
	return "search:token:" + strings.ToLower(token)
}

func tokenize(fields ...string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, f := range fields {
		for _, word := range strings.Fields(strings.ToLower(f)) {
			word = strings.Trim(word, ".,;:!?\"'()")
			if len(word) < 2 || seen[word] {
				continue
			}
			seen[word] = true
			out = append(out, word)
		}
	}
	return out
}

// IndexEntity handles one mq event: fetch the current document and
// rewrite its token entries. DELETE events drop the entry.
func IndexEntity(ctx context.Context, event models.Index) error {
	if event.Method == "DELETE" {
		return rdx.Conn.Del(ctx, indexKey(event.EntityType, event.EntityId)).Err()
	}

	var name, category, extra string
	switch event.EntityType {
	case "product":
		var p models.Product
		if err := db.ProductsCollection.FindOne(ctx, bson.M{"productid": event.EntityId}).Decode(&p); err != nil {
			return err
		}
		name, category, extra = p.Name, p.Category, p.Region
	case "farmer":
		var f models.Farmer
		if err := db.FarmersCollection.FindOne(ctx, bson.M{"farmerid": event.EntityId}).Decode(&f); err != nil {
			return err
		}
		name, extra = f.Name, f.Region
	default:
		return nil
	}

	key := indexKey(event.EntityType, event.EntityId)
	if err := rdx.Conn.HSet(ctx, key, "name", name, "category", category, "extra", extra, "type", event.EntityType).Err(); err != nil {
		return err
	}
	for _, token := range tokenize(name, category, extra) {
		if err := rdx.Conn.SAdd(ctx, tokenKey(token), key).Err(); err != nil {
			return err
		}
	}
	return nil
}

type result struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
}

// GET /api/search?q=...
func Search(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing query")
		return
	}

	keys, err := rdx.Conn.SMembers(ctx, tokenKey(query)).Result()
	if err != nil || len(keys) == 0 {
		// Fall back to a mongo scan when the index has nothing.
		fallbackSearch(ctx, w, query)
		return
	}

	var results []result
	for _, key := range keys {
		fields, err := rdx.Conn.HGetAll(ctx, key).Result()
		if err != nil || len(fields) == 0 {
			continue
		}
		parts := strings.Split(key, ":")
		results = append(results, result{
			ID:       parts[len(parts)-1],
			Type:     fields["type"],
			Name:     fields["name"],
			Category: fields["category"],
		})
	}
	utils.RespondSuccess(w, http.StatusOK, results, "")
}

func fallbackSearch(ctx context.Context, w http.ResponseWriter, query string) {
	filter := bson.M{"name": bson.M{"$regex": query, "$options": "i"}}
	products, err := utils.FindAndDecode[models.Product](ctx, db.ProductsCollection, filter)
	if err != nil && err != mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusInternalServerError, "Search failed")
		return
	}

	var results []result
	for _, p := range products {
		results = append(results, result{ID: p.ProductID, Type: "product", Name: p.Name, Category: p.Category})
	}
	utils.RespondSuccess(w, http.StatusOK, results, "")
}
