package dto

import "athenaeum/data"

// QsListBooks defines the query strings used for listing books.
type QsListBooks struct {
	Filters data.Filters
}

// QsSearchBooks defines the query strings used for searching available books.
type QsSearchBooks struct {
	Query string
}
