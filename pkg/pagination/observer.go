package pagination

// PageProgress describes one processed history page.
type PageProgress struct {
	Category  Category
	Page      int
	Cursor    int64
	Matches   int
	Remaining int
	Total     int
	Fetched   int
}

// CategoryProgress describes the start of one fan-out category.
type CategoryProgress struct {
	Index    int
	Count    int
	Category Category
	Fetched  int
}

// Observer receives progress callbacks at page and category boundaries.
// Callbacks run on the aggregating goroutine and must not block.
type Observer interface {
	PageFetched(PageProgress)
	CategoryStarted(CategoryProgress)
}

// ObserverFuncs adapts plain functions to Observer. Nil fields are skipped.
type ObserverFuncs struct {
	OnPage     func(PageProgress)
	OnCategory func(CategoryProgress)
}

// PageFetched implements Observer.
func (o ObserverFuncs) PageFetched(p PageProgress) {
	if o.OnPage != nil {
		o.OnPage(p)
	}
}

// CategoryStarted implements Observer.
func (o ObserverFuncs) CategoryStarted(c CategoryProgress) {
	if o.OnCategory != nil {
		o.OnCategory(c)
	}
}
