package redis

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/xraph/faultline/event"
	"github.com/xraph/faultline/repository"
)

// InsertEvents persists the batch. Entity writes and index updates run
// in a single transactional pipeline, so the batch lands all-or-nothing.
func (s *Store) InsertEvents(ctx context.Context, events []*event.Event) error {
	if len(events) == 0 {
		return nil
	}

	pipe := s.rdb.TxPipeline()
	for _, e := range events {
		raw, err := marshalEntity(e)
		if err != nil {
			return err
		}
		score := scoreFromTime(e.Date)
		pipe.Set(ctx, entityKey(prefixEvent, e.ID), raw, 0)
		pipe.ZAdd(ctx, zEventStack+e.StackID, goredis.Z{Score: score, Member: e.ID})
		pipe.ZAdd(ctx, zEventProject+e.ProjectID, goredis.Z{Score: score, Member: e.ID})
		pipe.ZAdd(ctx, zEventOrg+e.OrganizationID, goredis.Z{Score: score, Member: e.ID})
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("faultline/redis: insert events: %w", err)
	}
	return nil
}

// GetEvent returns an event by ID.
func (s *Store) GetEvent(ctx context.Context, eventID string) (*event.Event, error) {
	var e event.Event
	if err := s.getEntity(ctx, entityKey(prefixEvent, eventID), &e); err != nil {
		if isNotFound(err) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("faultline/redis: get event: %w", err)
	}
	return &e, nil
}

// FindEvents returns events matching the query. Candidates come from
// the narrowest date index the query allows.
func (s *Store) FindEvents(ctx context.Context, q repository.Query) ([]*event.Event, error) {
	ids, err := s.indexMembers(ctx, eventIndexKeys(q), q)
	if err != nil {
		return nil, fmt.Errorf("faultline/redis: find events: %w", err)
	}

	out := make([]*event.Event, 0, len(ids))
	for _, eventID := range ids {
		var e event.Event
		if err := s.getEntity(ctx, entityKey(prefixEvent, eventID), &e); err != nil {
			if isNotFound(err) {
				continue
			}
			return nil, fmt.Errorf("faultline/redis: find events: %w", err)
		}
		if q.Matches(&e) {
			out = append(out, &e)
		}
	}
	return sortAndLimit(out, q), nil
}

// DeleteEventsByStackID removes every event owned by the stack, along
// with its index entries.
func (s *Store) DeleteEventsByStackID(ctx context.Context, stackID string) (int64, error) {
	ids, err := s.rdb.ZRange(ctx, zEventStack+stackID, 0, -1).Result()
	if err != nil {
		return 0, fmt.Errorf("faultline/redis: delete events by stack: %w", err)
	}
	if len(ids) == 0 {
		return 0, nil
	}

	var removed int64
	pipe := s.rdb.TxPipeline()
	for _, eventID := range ids {
		var e event.Event
		if err := s.getEntity(ctx, entityKey(prefixEvent, eventID), &e); err != nil {
			if isNotFound(err) {
				continue
			}
			return 0, fmt.Errorf("faultline/redis: delete events by stack: %w", err)
		}
		pipe.Del(ctx, entityKey(prefixEvent, eventID))
		pipe.ZRem(ctx, zEventProject+e.ProjectID, eventID)
		pipe.ZRem(ctx, zEventOrg+e.OrganizationID, eventID)
		removed++
	}
	pipe.Del(ctx, zEventStack+stackID)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("faultline/redis: delete events by stack: %w", err)
	}
	return removed, nil
}

// eventIndexKeys picks the tightest index for the query: a stack scopes
// harder than a project, which scopes harder than the organization set.
func eventIndexKeys(q repository.Query) []string {
	switch {
	case q.StackID != "":
		return []string{zEventStack + q.StackID}
	case q.ProjectID != "":
		return []string{zEventProject + q.ProjectID}
	}
	keys := make([]string, 0, len(q.OrganizationIDs))
	for _, orgID := range q.OrganizationIDs {
		keys = append(keys, zEventOrg+orgID)
	}
	return keys
}
