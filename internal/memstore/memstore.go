// Package memstore keeps entities in process memory. It mirrors the MongoDB
// repositories closely enough to back local development (STORAGE_DRIVER=memory)
// and the handler and service tests.
package memstore

import (
	"context"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/joshua-takyi/findmymess/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store is safe for concurrent use. Documents are kept BSON-encoded so that
// filters see the same field names and value types the database would.
type Store[T any, PT models.DocumentPtr[T]] struct {
	mu        sync.RWMutex
	ids       []primitive.ObjectID
	docs      map[primitive.ObjectID]bson.Raw
	unique    []string
	uniqueErr error
}

var _ models.Repository[models.Mess] = (*Store[models.Mess, *models.Mess])(nil)

func New[T any, PT models.DocumentPtr[T]]() *Store[T, PT] {
	return &Store[T, PT]{
		docs: make(map[primitive.ObjectID]bson.Raw),
	}
}

// WithUnique makes Create fail with err when a stored document already holds
// the same values for all of keys.
func (s *Store[T, PT]) WithUnique(err error, keys ...string) *Store[T, PT] {
	s.unique = keys
	s.uniqueErr = err
	return s
}

func (s *Store[T, PT]) Create(ctx context.Context, item *T) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	PT(item).BeforeCreate(time.Now().UTC())
	raw, err := bson.Marshal(item)
	if err != nil {
		return nil, fmt.Errorf("error encoding document: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := PT(item).GetID()
	if _, exists := s.docs[id]; exists {
		return nil, fmt.Errorf("document %s already exists", id.Hex())
	}
	if len(s.unique) > 0 {
		doc, err := toM(raw)
		if err != nil {
			return nil, err
		}
		for _, existingID := range s.ids {
			existing, err := toM(s.docs[existingID])
			if err != nil {
				return nil, err
			}
			if sameValues(doc, existing, s.unique) {
				return nil, s.uniqueErr
			}
		}
	}

	s.docs[id] = raw
	s.ids = append(s.ids, id)
	return decode[T, PT](raw)
}

func (s *Store[T, PT]) Update(ctx context.Context, id string, fields bson.M) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	set, err := normalize(fields)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok := s.docs[objectID]
	if !ok {
		return nil, nil
	}
	doc, err := toM(raw)
	if err != nil {
		return nil, err
	}
	for k, v := range set {
		doc[k] = v
	}
	doc["updatedAt"] = primitive.NewDateTimeFromTime(time.Now().UTC())

	updated, err := bson.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("error encoding document: %w", err)
	}
	s.docs[objectID] = updated
	return decode[T, PT](updated)
}

func (s *Store[T, PT]) Delete(ctx context.Context, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[objectID]; !ok {
		return false, nil
	}
	delete(s.docs, objectID)
	for i, existing := range s.ids {
		if existing == objectID {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			break
		}
	}
	return true, nil
}

func (s *Store[T, PT]) Find(ctx context.Context, filter bson.M) ([]*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	want, err := normalize(filter)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	items := []*T{}
	for _, id := range s.ids {
		raw := s.docs[id]
		doc, err := toM(raw)
		if err != nil {
			return nil, err
		}
		ok, err := matches(doc, want)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		item, err := decode[T, PT](raw)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *Store[T, PT]) FindByID(ctx context.Context, id string) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	raw, ok := s.docs[objectID]
	if !ok {
		return nil, nil
	}
	return decode[T, PT](raw)
}

func decode[T any, PT models.DocumentPtr[T]](raw bson.Raw) (*T, error) {
	var item T
	if err := bson.Unmarshal(raw, &item); err != nil {
		return nil, fmt.Errorf("error decoding document: %w", err)
	}
	PT(&item).AfterLoad()
	return &item, nil
}

func toM(raw bson.Raw) (bson.M, error) {
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("error decoding document: %w", err)
	}
	return doc, nil
}

// normalize round-trips a map through BSON so its values carry the same types
// as stored documents.
func normalize(m bson.M) (bson.M, error) {
	if len(m) == 0 {
		return bson.M{}, nil
	}
	raw, err := bson.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("error encoding filter: %w", err)
	}
	return toM(raw)
}

func matches(doc, filter bson.M) (bool, error) {
	for key, want := range filter {
		got, ok := doc[key]
		if re, isRegex := want.(primitive.Regex); isRegex {
			str, isString := got.(string)
			if !ok || !isString {
				return false, nil
			}
			pattern := re.Pattern
			if strings.Contains(re.Options, "i") {
				pattern = "(?i)" + pattern
			}
			compiled, err := regexp.Compile(pattern)
			if err != nil {
				return false, fmt.Errorf("invalid pattern for %s: %w", key, err)
			}
			if !compiled.MatchString(str) {
				return false, nil
			}
			continue
		}
		if !ok || !reflect.DeepEqual(got, want) {
			return false, nil
		}
	}
	return true, nil
}

func sameValues(a, b bson.M, keys []string) bool {
	for _, k := range keys {
		if !reflect.DeepEqual(a[k], b[k]) {
			return false
		}
	}
	return true
}
