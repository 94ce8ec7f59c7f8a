package wishlist

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestInsertOK(t *testing.T) {
	assert.True(t, insertOK(nil))

	dup := mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
	assert.True(t, insertOK(dup), "duplicate key means already wishlisted")

	assert.False(t, insertOK(errors.New("connection reset")))
}
