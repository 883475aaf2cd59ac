package mongo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/formgate/formgate/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// formDocument stores the serialized aggregate alongside the title so
// listing does not have to deserialize every form.
type formDocument struct {
	ID    string `bson:"_id"`
	Title string `bson:"title"`
	Data  []byte `bson:"data"`
}

// FormStore persists form aggregates in MongoDB, one collection per
// workspace, documents keyed by form id.
type FormStore struct {
	client *Client
}

// NewFormStore creates a Mongo-backed form store.
func NewFormStore(client *Client) *FormStore {
	return &FormStore{client: client}
}

func (s *FormStore) collection(workspace domain.WorkspaceID) *mongo.Collection {
	return s.client.db.Collection(fmt.Sprintf("forms_%s", workspace))
}

func (s *FormStore) Get(ctx context.Context, workspace domain.WorkspaceID, id domain.FormID) (*domain.Form, error) {
	var doc formDocument
	err := s.collection(workspace).FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get form: %w", err)
	}

	var form domain.Form
	if err := json.Unmarshal(doc.Data, &form); err != nil {
		return nil, fmt.Errorf("failed to unmarshal form: %w", err)
	}

	return &form, nil
}

func (s *FormStore) Save(ctx context.Context, workspace domain.WorkspaceID, form *domain.Form) error {
	data, err := json.Marshal(form)
	if err != nil {
		return fmt.Errorf("failed to marshal form: %w", err)
	}

	doc := formDocument{
		ID:    form.ID.String(),
		Title: form.Title,
		Data:  data,
	}

	_, err = s.collection(workspace).ReplaceOne(
		ctx,
		bson.M{"_id": doc.ID},
		doc,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to save form: %w", err)
	}

	return nil
}

func (s *FormStore) Delete(ctx context.Context, workspace domain.WorkspaceID, id domain.FormID) (bool, error) {
	result, err := s.collection(workspace).DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return false, fmt.Errorf("failed to delete form: %w", err)
	}
	return result.DeletedCount > 0, nil
}

func (s *FormStore) List(ctx context.Context, workspace domain.WorkspaceID) ([]domain.FormSummary, error) {
	cursor, err := s.collection(workspace).Find(
		ctx,
		bson.M{},
		options.Find().SetProjection(bson.M{"_id": 1, "title": 1}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list forms: %w", err)
	}
	defer cursor.Close(ctx)

	var summaries []domain.FormSummary
	for cursor.Next(ctx) {
		var doc formDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode form: %w", err)
		}

		id, err := domain.ParseFormID(doc.ID)
		if err != nil {
			return nil, fmt.Errorf("invalid form id %q: %w", doc.ID, err)
		}

		summaries = append(summaries, domain.FormSummary{ID: id, Title: doc.Title})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate forms: %w", err)
	}

	return summaries, nil
}
