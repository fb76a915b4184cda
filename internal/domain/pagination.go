package domain

// ListParams holds optional limit/offset for list queries. A nil field
// means "no limit" / "no offset", which is not the same as zero.
type ListParams struct {
	Limit  *int
	Offset *int
}
