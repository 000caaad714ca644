package redis

// Key prefixes for primary entity storage. Entities are stored as JSON
// under prefix+id.
const (
	prefixOrganization = "faultline:org:"
	prefixProject      = "faultline:proj:"
	prefixStack        = "faultline:stack:"
	prefixEvent        = "faultline:evt:"
)

// Key prefixes for sorted set indexes. Members are entity ids scored by
// the entity's ordering date, so range queries walk the same date axis
// the cursors do.
const (
	zProjectOrg   = "faultline:z:proj:org:"   // + organization ID
	zStackOrg     = "faultline:z:stack:org:"  // + organization ID
	zStackProject = "faultline:z:stack:proj:" // + project ID
	zEventOrg     = "faultline:z:evt:org:"    // + organization ID
	zEventProject = "faultline:z:evt:proj:"   // + project ID
	zEventStack   = "faultline:z:evt:stack:"  // + stack ID
)

// entityKey returns the primary key for an entity.
func entityKey(prefix, id string) string {
	return prefix + id
}
