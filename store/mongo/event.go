package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	mongod "go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/xraph/faultline/event"
	"github.com/xraph/faultline/repository"
)

// InsertEvents persists the batch in a single ordered insert. The caller
// has already validated every document, so a failure aborts the write
// before any later document lands.
func (s *Store) InsertEvents(ctx context.Context, events []*event.Event) error {
	if len(events) == 0 {
		return nil
	}

	docs := make([]any, 0, len(events))
	for _, evt := range events {
		docs = append(docs, toEventModel(evt))
	}

	_, err := s.mdb.Collection(colEvents).InsertMany(ctx, docs)
	if err != nil {
		return fmt.Errorf("faultline/mongo: insert events: %w", err)
	}

	return nil
}

// GetEvent returns an event by ID.
func (s *Store) GetEvent(ctx context.Context, eventID string) (*event.Event, error) {
	var m eventModel

	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": eventID}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, repository.ErrNotFound
		}

		return nil, fmt.Errorf("faultline/mongo: get event: %w", err)
	}

	return fromEventModel(&m), nil
}

// FindEvents returns events matching the query, sorted by occurrence date.
func (s *Store) FindEvents(ctx context.Context, q repository.Query) ([]*event.Event, error) {
	var models []eventModel

	find := s.mdb.NewFind(&models).
		Filter(queryFilter(q, "date")).
		Sort(querySort(q, "date"))

	if q.Limit > 0 {
		find = find.Limit(int64(q.Limit))
	}

	if err := find.Scan(ctx); err != nil {
		return nil, fmt.Errorf("faultline/mongo: find events: %w", err)
	}

	result := make([]*event.Event, 0, len(models))
	for i := range models {
		result = append(result, fromEventModel(&models[i]))
	}

	return result, nil
}

// DeleteEventsByStackID removes every event owned by the stack and
// returns the number removed.
func (s *Store) DeleteEventsByStackID(ctx context.Context, stackID string) (int64, error) {
	res, err := s.mdb.NewDelete((*eventModel)(nil)).
		Many().
		Filter(bson.M{"stack_id": stackID}).
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("faultline/mongo: delete events by stack: %w", err)
	}

	return res.DeletedCount(), nil
}

// queryFilter translates a repository query into a Mongo filter document.
// Before/After bound the named date field strictly, matching the cursor
// contract.
func queryFilter(q repository.Query, dateField string) bson.M {
	filter := bson.M{}

	if len(q.OrganizationIDs) > 0 {
		filter["organization_id"] = bson.M{"$in": q.OrganizationIDs}
	}

	if q.ProjectID != "" {
		filter["project_id"] = q.ProjectID
	}

	if q.StackID != "" {
		filter["stack_id"] = q.StackID
	}

	if q.Before != nil || q.After != nil {
		dateFilter := bson.M{}
		if q.Before != nil {
			dateFilter["$lt"] = *q.Before
		}

		if q.After != nil {
			dateFilter["$gt"] = *q.After
		}

		filter[dateField] = dateFilter
	}

	return filter
}

// querySort returns the sort document for a repository query. Ties on the
// date field break by _id so pages stay stable under equal dates.
func querySort(q repository.Query, dateField string) bson.D {
	dir := -1
	if q.Ascending {
		dir = 1
	}

	return bson.D{{Key: dateField, Value: dir}, {Key: "_id", Value: dir}}
}

// isNoDocuments checks if an error wraps mongo.ErrNoDocuments.
func isNoDocuments(err error) bool {
	return errors.Is(err, mongod.ErrNoDocuments)
}
