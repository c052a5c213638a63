package datagov

// RecordsResponse exposes the unexported response envelope to external tests.
type RecordsResponse = recordsResponse
