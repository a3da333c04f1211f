package searchstage

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
)

type scoreKind uint8

const (
	scoreBoostValue scoreKind = iota + 1
	scoreBoostPath
	scoreConstant
)

// ScoreDefinition alters the relevance score of documents matched by a
// clause. The zero value is invalid; construct with BoostValue, BoostPath or
// ConstantScore.
type ScoreDefinition struct {
	kind  scoreKind
	value float64
	path  FieldRef
}

// BoostValue multiplies the clause score by a constant factor. The factor
// must be positive.
func BoostValue(v float64) (ScoreDefinition, error) {
	if v <= 0 {
		return ScoreDefinition{}, fmt.Errorf("boost value must be positive, got %v", v)
	}
	return ScoreDefinition{kind: scoreBoostValue, value: v}, nil
}

// BoostPath multiplies the clause score by the numeric value of the
// referenced field.
func BoostPath(ref FieldRef) (ScoreDefinition, error) {
	if ref.isZero() {
		return ScoreDefinition{}, fmt.Errorf("boost path field is required")
	}
	return ScoreDefinition{kind: scoreBoostPath, path: ref}, nil
}

// ConstantScore replaces the clause score with a fixed positive value.
func ConstantScore(v float64) (ScoreDefinition, error) {
	if v <= 0 {
		return ScoreDefinition{}, fmt.Errorf("constant score must be positive, got %v", v)
	}
	return ScoreDefinition{kind: scoreConstant, value: v}, nil
}

// Render produces the score sub-document.
func (s ScoreDefinition) Render(r *Renderer) (bson.D, error) {
	switch s.kind {
	case scoreBoostValue:
		return bson.D{{Key: "boost", Value: bson.D{{Key: "value", Value: s.value}}}}, nil
	case scoreBoostPath:
		name, err := r.resolve(s.path)
		if err != nil {
			return nil, fmt.Errorf("boost path: %w", err)
		}
		return bson.D{{Key: "boost", Value: bson.D{{Key: "path", Value: name}}}}, nil
	case scoreConstant:
		return bson.D{{Key: "constant", Value: bson.D{{Key: "value", Value: s.value}}}}, nil
	default:
		return nil, fmt.Errorf("score is not set")
	}
}

func (s ScoreDefinition) isZero() bool { return s.kind == 0 }
