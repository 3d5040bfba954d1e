package constants

// Ordering applied when a list request names no sortable column
const DefaultOrderColumn = "id"

// Offset ceiling for list queries; deeper pages are served empty
const MaxListOffset = 1_000_000
