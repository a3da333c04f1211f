package searchstage

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
)

// MetaSearchHighlights builds a projection that stores highlight metadata of
// the preceding $search stage in the named field.
func MetaSearchHighlights(field string) (bson.D, error) {
	return metaProjection(field, "searchHighlights")
}

// MetaSearchScore builds a projection that stores the relevance score of the
// preceding $search stage in the named field.
func MetaSearchScore(field string) (bson.D, error) {
	return metaProjection(field, "searchScore")
}

func metaProjection(field, meta string) (bson.D, error) {
	if field == "" {
		return nil, fmt.Errorf("projection field is required")
	}
	return bson.D{{Key: field, Value: bson.D{{Key: "$meta", Value: meta}}}}, nil
}
